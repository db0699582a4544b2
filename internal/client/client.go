// Package client implements the API-backed resource services. Each client
// speaks the envelope wire protocol through the shared HTTP transport.
package client

import (
	"github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// Client bundles the per-resource API clients over one transport.
type Client struct {
	httpClient    *http.Client
	suppliers     *SuppliersClient
	manufacturers *ManufacturersClient
	rfqs          *RFQsClient
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *procure.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.AuthToken != "" {
		httpOpts = append(httpOpts, http.WithAuthToken(config.AuthToken))
	}

	if config.Timeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.Timeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := procure.DefaultRetryWaitMin
		retryWaitMax := procure.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates an API client from config. The config must name a base URL.
func New(config *procure.Config) (*Client, error) {
	if config == nil {
		return nil, procure.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, procure.ErrBaseURLRequired
	}

	httpClient := http.NewClient(config.BaseURL+config.APIVersion, createHTTPClientOptions(config)...)

	client := &Client{httpClient: httpClient}
	client.suppliers = NewSuppliersClient(httpClient)
	client.manufacturers = NewManufacturersClient(httpClient)
	client.rfqs = NewRFQsClient(httpClient)

	return client, nil
}

// SetAuthToken installs a bearer token on the shared transport.
func (c *Client) SetAuthToken(token string) {
	c.httpClient.SetAuthToken(token)
}

// ClearAuthToken removes the bearer token from the shared transport.
func (c *Client) ClearAuthToken() {
	c.httpClient.ClearAuthToken()
}

// Suppliers returns the supplier directory service.
func (c *Client) Suppliers() procure.SuppliersService {
	return c.suppliers
}

// Manufacturers returns the manufacturer directory service.
func (c *Client) Manufacturers() procure.ManufacturersService {
	return c.manufacturers
}

// RFQs returns the RFQ service.
func (c *Client) RFQs() procure.RFQsService {
	return c.rfqs
}
