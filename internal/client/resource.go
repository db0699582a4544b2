package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// decodeEnvelope unwraps a successful response envelope into its payload.
func decodeEnvelope[T any](resp *http.Response) (*T, error) {
	var env procure.Envelope[T]

	err := json.Unmarshal(resp.Body, &env)
	if err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}

	if env.Data == nil {
		return nil, procure.ErrEmptyEnvelope
	}

	return env.Data, nil
}

// resourceClient implements the generic CRUD surface over one API
// collection. Per-resource clients embed it and add their extras.
type resourceClient[T any, C any, U any] struct {
	httpClient *http.Client
	basePath   string
	name       string
}

func (c *resourceClient[T, C, U]) List(ctx context.Context, query *procure.QueryParams) (*procure.Page[T], error) {
	var values url.Values
	if query != nil {
		values = query.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, c.basePath, values)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.name, err)
	}

	return decodeEnvelope[procure.Page[T]](resp)
}

func (c *resourceClient[T, C, U]) GetByID(ctx context.Context, id string) (*T, error) {
	resp, err := c.httpClient.Get(ctx, c.basePath+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.name, err)
	}

	return decodeEnvelope[T](resp)
}

func (c *resourceClient[T, C, U]) Create(ctx context.Context, request *C) (*T, error) {
	resp, err := c.httpClient.Post(ctx, c.basePath, request)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", c.name, err)
	}

	return decodeEnvelope[T](resp)
}

// Update sends a partial payload, so it goes over PATCH.
func (c *resourceClient[T, C, U]) Update(ctx context.Context, id string, request *U) (*T, error) {
	resp, err := c.httpClient.Patch(ctx, c.basePath+"/"+id, request)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", c.name, err)
	}

	return decodeEnvelope[T](resp)
}

func (c *resourceClient[T, C, U]) Delete(ctx context.Context, id string) error {
	_, err := c.httpClient.Delete(ctx, c.basePath+"/"+id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", c.name, err)
	}

	return nil
}

func (c *resourceClient[T, C, U]) BulkDelete(ctx context.Context, ids []string) (*procure.BulkResult, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}

	resp, err := c.httpClient.Post(ctx, c.basePath+"/bulk-delete", body)
	if err != nil {
		return nil, fmt.Errorf("bulk deleting %ss: %w", c.name, err)
	}

	return decodeEnvelope[procure.BulkResult](resp)
}

func (c *resourceClient[T, C, U]) BulkUpdate(ctx context.Context, items []procure.BulkUpdateItem[U]) (*procure.BulkResult, error) {
	body := struct {
		Updates []procure.BulkUpdateItem[U] `json:"updates"`
	}{Updates: items}

	resp, err := c.httpClient.Post(ctx, c.basePath+"/bulk-update", body)
	if err != nil {
		return nil, fmt.Errorf("bulk updating %ss: %w", c.name, err)
	}

	return decodeEnvelope[procure.BulkResult](resp)
}

func (c *resourceClient[T, C, U]) Search(ctx context.Context, term string) ([]T, error) {
	query := url.Values{}
	query.Set("q", term)

	resp, err := c.httpClient.Get(ctx, c.basePath+"/search", query)
	if err != nil {
		return nil, fmt.Errorf("searching %ss: %w", c.name, err)
	}

	results, err := decodeEnvelope[[]T](resp)
	if err != nil {
		return nil, err
	}

	return *results, nil
}

func (c *resourceClient[T, C, U]) Export(ctx context.Context, format procure.ExportFormat, query *procure.QueryParams) (string, error) {
	values := url.Values{}
	if query != nil {
		values = query.ToValues()
	}

	values.Set("format", string(format))

	resp, err := c.httpClient.Get(ctx, c.basePath+"/export", values)
	if err != nil {
		return "", fmt.Errorf("exporting %ss: %w", c.name, err)
	}

	uri, err := decodeEnvelope[string](resp)
	if err != nil {
		return "", err
	}

	return *uri, nil
}
