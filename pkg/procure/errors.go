package procure

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a failed envelope from the procurement API. The wire
// carries it as {success: false, error: "..."}; clients surface it as a Go
// error with the HTTP status attached.
type APIError struct {
	Status    int    `json:"status"              yaml:"status"`
	ErrorText string `json:"error"               yaml:"error"`
	Message   string `json:"message,omitempty"   yaml:"message,omitempty"`
	RequestID string `json:"requestId,omitempty" yaml:"requestId,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.ErrorText, e.Message, e.Status)
	}

	return fmt.Sprintf("%s (status: %d)", e.ErrorText, e.Status)
}

// Common error types keyed by HTTP status.
var (
	ErrNotFound           = &APIError{Status: http.StatusNotFound, ErrorText: "resource not found"}
	ErrBadRequest         = &APIError{Status: http.StatusBadRequest, ErrorText: "bad request"}
	ErrUnauthorized       = &APIError{Status: http.StatusUnauthorized, ErrorText: "not authenticated"}
	ErrForbidden          = &APIError{Status: http.StatusForbidden, ErrorText: "not authorized"}
	ErrTooManyRequests    = &APIError{Status: http.StatusTooManyRequests, ErrorText: "too many requests"}
	ErrServiceUnavailable = &APIError{Status: http.StatusServiceUnavailable, ErrorText: "service unavailable"}
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrBaseURLRequired      = errors.New("base URL is required")
	ErrUnknownServiceMode   = errors.New("unknown service mode")
	ErrManufacturerNotFound = errors.New("manufacturer not found")
	ErrSupplierNotFound     = errors.New("supplier not found")
	ErrRFQNotFound          = errors.New("RFQ not found")
	ErrLineItemNotFound     = errors.New("line item not found")
	ErrUnknownSortField     = errors.New("unknown sort field")
	ErrInvalidSortDirection = errors.New("invalid sort direction")
	ErrUnknownExportFormat  = errors.New("unknown export format")
	ErrEmptyEnvelope        = errors.New("envelope carries no data")
	ErrCacheKeyNotFound     = errors.New("key not found")
	ErrCacheEntryExpired    = errors.New("entry expired")
	ErrUnknownCacheBackend  = errors.New("unknown cache backend")
	ErrNoCacheConfigured    = errors.New("no cache configured")
	ErrTokenRequired        = errors.New("token is required")
)

// IsNotFound checks if the error is a not found error, from either a typed
// API error or one of the per-resource sentinels.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound
	}

	return errors.Is(err, ErrManufacturerNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrRFQNotFound) ||
		errors.Is(err, ErrLineItemNotFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}

	return false
}

// IsRetryable reports whether the error came from a response the transport
// would have retried (rate limiting or a server-side failure).
func IsRetryable(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
	}

	return false
}

// ParseAPIError parses a failed envelope body into a typed error. The
// status comes from the HTTP response, not the body.
func ParseAPIError(status int, data []byte) (*APIError, error) {
	var env Envelope[json.RawMessage]

	err := json.Unmarshal(data, &env)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal error envelope: %w", err)
	}

	apiErr := &APIError{
		Status:    status,
		ErrorText: env.Error,
		Message:   env.Message,
		RequestID: env.RequestID,
	}
	if apiErr.ErrorText == "" {
		apiErr.ErrorText = http.StatusText(status)
	}

	return apiErr, nil
}
