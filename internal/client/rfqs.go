package client

import (
	"context"
	"fmt"

	"github.com/quotia-io/procure/internal/http"
	"github.com/quotia-io/procure/pkg/procure"
)

// RFQsClient implements procure.RFQsService against the API.
type RFQsClient struct {
	resourceClient[procure.RFQRecord, procure.RFQCreateRequest, procure.RFQUpdateRequest]
}

// NewRFQsClient creates a new RFQs client.
func NewRFQsClient(httpClient *http.Client) *RFQsClient {
	return &RFQsClient{
		resourceClient: resourceClient[procure.RFQRecord, procure.RFQCreateRequest, procure.RFQUpdateRequest]{
			httpClient: httpClient,
			basePath:   "/rfqs",
			name:       "RFQ",
		},
	}
}

// Stats implements procure.RFQsService.Stats.
func (c *RFQsClient) Stats(ctx context.Context) (*procure.RFQStats, error) {
	resp, err := c.httpClient.Get(ctx, "/rfqs/stats", nil)
	if err != nil {
		return nil, fmt.Errorf("getting RFQ stats: %w", err)
	}

	return decodeEnvelope[procure.RFQStats](resp)
}

// CreateLineItem implements procure.RFQsService.CreateLineItem.
func (c *RFQsClient) CreateLineItem(ctx context.Context, rfqID string, request *procure.LineItemCreateRequest) (*procure.RFQRecord, error) {
	resp, err := c.httpClient.Post(ctx, "/rfqs/"+rfqID+"/line-items", request)
	if err != nil {
		return nil, fmt.Errorf("creating line item: %w", err)
	}

	return decodeEnvelope[procure.RFQRecord](resp)
}

// UpdateLineItem implements procure.RFQsService.UpdateLineItem.
func (c *RFQsClient) UpdateLineItem(ctx context.Context, rfqID, itemID string, request *procure.LineItemUpdateRequest) (*procure.RFQRecord, error) {
	resp, err := c.httpClient.Patch(ctx, "/rfqs/"+rfqID+"/line-items/"+itemID, request)
	if err != nil {
		return nil, fmt.Errorf("updating line item: %w", err)
	}

	return decodeEnvelope[procure.RFQRecord](resp)
}

// UpdateLineItemStatus implements procure.RFQsService.UpdateLineItemStatus.
func (c *RFQsClient) UpdateLineItemStatus(ctx context.Context, rfqID, itemID string, status procure.LineItemStatus) (*procure.RFQRecord, error) {
	return c.UpdateLineItem(ctx, rfqID, itemID, &procure.LineItemUpdateRequest{Status: &status})
}

// DeleteLineItem implements procure.RFQsService.DeleteLineItem.
func (c *RFQsClient) DeleteLineItem(ctx context.Context, rfqID, itemID string) (*procure.RFQRecord, error) {
	resp, err := c.httpClient.Delete(ctx, "/rfqs/"+rfqID+"/line-items/"+itemID)
	if err != nil {
		return nil, fmt.Errorf("deleting line item: %w", err)
	}

	return decodeEnvelope[procure.RFQRecord](resp)
}

// BulkUpdateLineItems implements procure.RFQsService.BulkUpdateLineItems.
func (c *RFQsClient) BulkUpdateLineItems(ctx context.Context, rfqID string, items []procure.BulkUpdateItem[procure.LineItemUpdateRequest]) (*procure.RFQRecord, error) {
	body := struct {
		Updates []procure.BulkUpdateItem[procure.LineItemUpdateRequest] `json:"updates"`
	}{Updates: items}

	resp, err := c.httpClient.Post(ctx, "/rfqs/"+rfqID+"/line-items/bulk-update", body)
	if err != nil {
		return nil, fmt.Errorf("bulk updating line items: %w", err)
	}

	return decodeEnvelope[procure.RFQRecord](resp)
}

// BulkDeleteLineItems implements procure.RFQsService.BulkDeleteLineItems.
func (c *RFQsClient) BulkDeleteLineItems(ctx context.Context, rfqID string, itemIDs []string) (*procure.RFQRecord, error) {
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: itemIDs}

	resp, err := c.httpClient.Post(ctx, "/rfqs/"+rfqID+"/line-items/bulk-delete", body)
	if err != nil {
		return nil, fmt.Errorf("bulk deleting line items: %w", err)
	}

	return decodeEnvelope[procure.RFQRecord](resp)
}
