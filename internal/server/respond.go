package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotia-io/procure/pkg/procure"
)

const requestIDKey = "requestID"

func newRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)

	return hex.EncodeToString(buf)
}

// requestID tags every request, echoing a caller-provided X-Request-ID.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = newRequestID()
		}

		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// respond writes a success envelope.
func respond[T any](c *gin.Context, status int, data T) {
	c.JSON(status, procure.Envelope[T]{
		Success:   true,
		Data:      &data,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(requestIDKey),
	})
}

// respondMessage writes a success envelope with no payload.
func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, procure.Envelope[struct{}]{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(requestIDKey),
	})
}

// respondError writes a failure envelope.
func respondError(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, procure.Envelope[struct{}]{
		Success:   false,
		Error:     err.Error(),
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString(requestIDKey),
	})
}

// respondServiceError maps service errors onto wire statuses.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case procure.IsNotFound(err):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, procure.ErrUnknownSortField),
		errors.Is(err, procure.ErrInvalidSortDirection),
		errors.Is(err, procure.ErrUnknownExportFormat):
		respondError(c, http.StatusBadRequest, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}

// parseQuery lifts list-shaping options out of the URL: page, limit, sort,
// and everything else as filters.
func parseQuery(c *gin.Context) (*procure.QueryParams, error) {
	query := procure.NewQueryParams()

	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}

		value := values[0]

		switch key {
		case "page":
			page, err := strconv.Atoi(value)
			if err == nil {
				query.Page = page
			}
		case "limit":
			limit, err := strconv.Atoi(value)
			if err == nil {
				query.Limit = limit
			}
		case "sort":
			sort, err := procure.ParseSort(value)
			if err != nil {
				return nil, err
			}

			query.Sort = sort
		default:
			query.WithFilter(key, value)
		}
	}

	return query, nil
}
