package client

import (
	"context"
	"fmt"

	"github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// SuppliersClient implements procure.SuppliersService against the API.
type SuppliersClient struct {
	resourceClient[procure.Supplier, procure.SupplierCreateRequest, procure.SupplierUpdateRequest]
}

// NewSuppliersClient creates a new suppliers client.
func NewSuppliersClient(httpClient *http.Client) *SuppliersClient {
	return &SuppliersClient{
		resourceClient: resourceClient[procure.Supplier, procure.SupplierCreateRequest, procure.SupplierUpdateRequest]{
			httpClient: httpClient,
			basePath:   "/suppliers",
			name:       "supplier",
		},
	}
}

// Stats implements procure.SuppliersService.Stats.
func (c *SuppliersClient) Stats(ctx context.Context) (*procure.DirectoryStats, error) {
	resp, err := c.httpClient.Get(ctx, "/suppliers/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("getting supplier stats: %w", err)
	}

	return decodeEnvelope[procure.DirectoryStats](resp)
}
