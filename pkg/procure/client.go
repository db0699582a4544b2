package procure

import (
	"context"
	"time"
)

// ServiceMode selects which backing a service factory hands out.
type ServiceMode string

const (
	// ModeMock serves from in-memory fixtures with simulated latency.
	ModeMock ServiceMode = "mock"
	// ModeAPI serves from the remote procurement API over HTTP.
	ModeAPI ServiceMode = "api"
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents the configuration for building the service factory and
// its clients. Zero values fall back to the defaults below.
type Config struct {
	// BaseURL: base URL for the procurement API (e.g. "https://api.example.com").
	BaseURL string
	// APIVersion: path prefix appended to BaseURL. Defaults to "/api".
	APIVersion string

	// Mode selects mock or API backing for the factory. Defaults to ModeMock.
	Mode ServiceMode

	// AuthToken: if set, sent as a static Bearer token on every request.
	AuthToken string

	// Timeout: per-request timeout. Defaults to 30s.
	Timeout time.Duration
	// RetryMax: attempts for transient failures (connection errors, 429, 5xx).
	// Defaults to 3.
	RetryMax int
	// RetryWaitMin: base backoff between retries. Defaults to 1s, doubling
	// per attempt.
	RetryWaitMin time.Duration
	// RetryWaitMax: backoff ceiling. Defaults to 10s.
	RetryWaitMax time.Duration

	// MockLatency: artificial delay applied by mock services so the UI's
	// loading states stay exercised. Defaults to 0 (no delay).
	MockLatency time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables verbose HTTP request/response logging when a Logger is set.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and services.
	Logger Logger
}

// Configuration defaults.
const (
	DefaultAPIVersion   = "/api"
	DefaultTimeout      = 30 * time.Second
	DefaultRetryMax     = 3
	DefaultRetryWaitMin = 1 * time.Second
	DefaultRetryWaitMax = 10 * time.Second
)

// Normalize fills defaulted fields in place and validates the result.
func (c *Config) Normalize() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.Mode == "" {
		c.Mode = ModeMock
	}

	if c.Mode != ModeMock && c.Mode != ModeAPI {
		return ErrUnknownServiceMode
	}

	if c.Mode == ModeAPI && c.BaseURL == "" {
		return ErrBaseURLRequired
	}

	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}

	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	if c.RetryMax <= 0 {
		c.RetryMax = DefaultRetryMax
	}

	if c.RetryWaitMin <= 0 {
		c.RetryWaitMin = DefaultRetryWaitMin
	}

	if c.RetryWaitMax <= 0 {
		c.RetryWaitMax = DefaultRetryWaitMax
	}

	return nil
}

// ResourceService is the uniform CRUD contract every resource service
// satisfies. T is the record type, C the create payload, U the partial
// update payload.
//
// Bulk operations are best-effort: identifiers with no matching record are
// counted as skipped, never as failures.
type ResourceService[T any, C any, U any] interface {
	List(ctx context.Context, query *QueryParams) (*Page[T], error)
	GetByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id string, req *U) (*T, error)
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (*BulkResult, error)
	BulkUpdate(ctx context.Context, items []BulkUpdateItem[U]) (*BulkResult, error)
	Search(ctx context.Context, term string) ([]T, error)
	Export(ctx context.Context, format ExportFormat, query *QueryParams) (string, error)
}

// ManufacturersService manages the manufacturer directory.
type ManufacturersService interface {
	ResourceService[Manufacturer, ManufacturerCreateRequest, ManufacturerUpdateRequest]

	Stats(ctx context.Context) (*DirectoryStats, error)
}

// SuppliersService manages the supplier directory.
type SuppliersService interface {
	ResourceService[Supplier, SupplierCreateRequest, SupplierUpdateRequest]

	Stats(ctx context.Context) (*DirectoryStats, error)
}

// RFQsService manages uploaded RFQs and their line items.
type RFQsService interface {
	ResourceService[RFQRecord, RFQCreateRequest, RFQUpdateRequest]

	Stats(ctx context.Context) (*RFQStats, error)

	CreateLineItem(ctx context.Context, rfqID string, req *LineItemCreateRequest) (*RFQRecord, error)
	UpdateLineItem(ctx context.Context, rfqID, itemID string, req *LineItemUpdateRequest) (*RFQRecord, error)
	UpdateLineItemStatus(ctx context.Context, rfqID, itemID string, status LineItemStatus) (*RFQRecord, error)
	DeleteLineItem(ctx context.Context, rfqID, itemID string) (*RFQRecord, error)
	BulkUpdateLineItems(ctx context.Context, rfqID string, items []BulkUpdateItem[LineItemUpdateRequest]) (*RFQRecord, error)
	BulkDeleteLineItems(ctx context.Context, rfqID string, itemIDs []string) (*RFQRecord, error)
}
