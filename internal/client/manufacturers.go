package client

import (
	"context"
	"fmt"

	"github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// ManufacturersClient implements procure.ManufacturersService against the API.
type ManufacturersClient struct {
	resourceClient[procure.Manufacturer, procure.ManufacturerCreateRequest, procure.ManufacturerUpdateRequest]
}

// NewManufacturersClient creates a new manufacturers client.
func NewManufacturersClient(httpClient *http.Client) *ManufacturersClient {
	return &ManufacturersClient{
		resourceClient: resourceClient[procure.Manufacturer, procure.ManufacturerCreateRequest, procure.ManufacturerUpdateRequest]{
			httpClient: httpClient,
			basePath:   "/manufacturers",
			name:       "manufacturer",
		},
	}
}

// Stats implements procure.ManufacturersService.Stats.
func (c *ManufacturersClient) Stats(ctx context.Context) (*procure.DirectoryStats, error) {
	resp, err := c.httpClient.Get(ctx, "/manufacturers/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("getting manufacturer stats: %w", err)
	}

	return decodeEnvelope[procure.DirectoryStats](resp)
}
