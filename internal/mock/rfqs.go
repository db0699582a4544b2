package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/quotia-io/procure/pkg/procure"
)

// RFQsService implements procure.RFQsService in memory.
type RFQsService struct {
	store   *Store
	latency time.Duration
}

// NewRFQsService creates a mock RFQs service over the store.
func NewRFQsService(store *Store, latency time.Duration) *RFQsService {
	return &RFQsService{store: store, latency: latency}
}

// cloneRFQ deep-copies one record so callers never alias the stored
// line item slice.
func cloneRFQ(record procure.RFQRecord) *procure.RFQRecord {
	out := record
	out.LineItems = cloneSlice(record.LineItems)

	return &out
}

func cloneRFQs(records []procure.RFQRecord) []procure.RFQRecord {
	out := make([]procure.RFQRecord, len(records))

	for i, record := range records {
		out[i] = *cloneRFQ(record)
	}

	return out
}

// List implements procure.RFQsService.List.
func (s *RFQsService) List(ctx context.Context, query *procure.QueryParams) (*procure.Page[procure.RFQRecord], error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneRFQs(s.store.rfqs)
	s.store.mu.RUnlock()

	page, err := procure.Apply(records, procure.RFQSchema(), query)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// GetByID implements procure.RFQsService.GetByID.
func (s *RFQsService) GetByID(ctx context.Context, id string) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, record := range s.store.rfqs {
		if record.ID == id {
			return cloneRFQ(record), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, id)
}

// Create implements procure.RFQsService.Create. Line items arriving
// without ids get them assigned.
func (s *RFQsService) Create(ctx context.Context, request *procure.RFQCreateRequest) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()

	items := make([]procure.LineItem, len(request.LineItems))

	for i, item := range request.LineItems {
		if item.ID == "" {
			item.ID = s.store.nextID("li")
		}

		if item.Status == "" {
			item.Status = procure.LineItemStatusOpen
		}

		items[i] = item
	}

	record := procure.RFQRecord{
		ID:          s.store.nextID("rfq"),
		RFQNo:       request.RFQNo,
		Client:      request.Client,
		PublishDate: request.PublishDate,
		BidDate:     request.BidDate,
		Status:      request.Status,
		LastUpdated: now,
		LineItems:   items,
	}
	if record.Status == "" {
		record.Status = procure.RFQStatusOpen
	}

	s.store.rfqs = append(s.store.rfqs, record)

	return cloneRFQ(record), nil
}

// Update implements procure.RFQsService.Update. A non-nil LineItems
// replaces the whole collection.
func (s *RFQsService) Update(ctx context.Context, id string, request *procure.RFQUpdateRequest) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return s.updateLocked(id, request)
}

func (s *RFQsService) updateLocked(id string, request *procure.RFQUpdateRequest) (*procure.RFQRecord, error) {
	record := s.findLocked(id)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, id)
	}

	setIf(&record.RFQNo, request.RFQNo)
	setIf(&record.Client, request.Client)
	setIf(&record.PublishDate, request.PublishDate)
	setIf(&record.BidDate, request.BidDate)
	setIf(&record.Status, request.Status)

	if request.LineItems != nil {
		items := make([]procure.LineItem, len(*request.LineItems))

		for i, item := range *request.LineItems {
			if item.ID == "" {
				item.ID = s.store.nextID("li")
			}

			items[i] = item
		}

		record.LineItems = items
	}

	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}

func (s *RFQsService) findLocked(id string) *procure.RFQRecord {
	for i := range s.store.rfqs {
		if s.store.rfqs[i].ID == id {
			return &s.store.rfqs[i]
		}
	}

	return nil
}

// Delete implements procure.RFQsService.Delete.
func (s *RFQsService) Delete(ctx context.Context, id string) error {
	if err := sleep(ctx, s.latency); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if !s.deleteLocked(id) {
		return fmt.Errorf("%w: %s", procure.ErrRFQNotFound, id)
	}

	return nil
}

func (s *RFQsService) deleteLocked(id string) bool {
	for i := range s.store.rfqs {
		if s.store.rfqs[i].ID == id {
			s.store.rfqs = append(s.store.rfqs[:i], s.store.rfqs[i+1:]...)

			return true
		}
	}

	return false
}

// BulkDelete implements procure.RFQsService.BulkDelete.
func (s *RFQsService) BulkDelete(ctx context.Context, ids []string) (*procure.BulkResult, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	result := &procure.BulkResult{}

	for _, id := range ids {
		if s.deleteLocked(id) {
			result.Applied++
		} else {
			result.Skipped++
		}
	}

	return result, nil
}

// BulkUpdate implements procure.RFQsService.BulkUpdate.
func (s *RFQsService) BulkUpdate(ctx context.Context, items []procure.BulkUpdateItem[procure.RFQUpdateRequest]) (*procure.BulkResult, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	result := &procure.BulkResult{}

	for _, item := range items {
		data := item.Data
		if _, err := s.updateLocked(item.ID, &data); err != nil {
			result.Skipped++
		} else {
			result.Applied++
		}
	}

	return result, nil
}

// Search implements procure.RFQsService.Search. The term also matches
// line item ids, manufacturers, and suppliers.
func (s *RFQsService) Search(ctx context.Context, term string) ([]procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneRFQs(s.store.rfqs)
	s.store.mu.RUnlock()

	query := procure.NewQueryParams().WithSearch(term).WithLimit(maxLimit(len(records)))

	page, err := procure.Apply(records, procure.RFQSchema(), query)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// Export implements procure.RFQsService.Export.
func (s *RFQsService) Export(ctx context.Context, format procure.ExportFormat, query *procure.QueryParams) (string, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return "", err
	}

	s.store.mu.RLock()
	records := cloneRFQs(s.store.rfqs)
	s.store.mu.RUnlock()

	filtered, err := applyAll(records, procure.RFQSchema(), query)
	if err != nil {
		return "", err
	}

	return procure.ExportRFQs(format, filtered)
}

// Stats implements procure.RFQsService.Stats.
func (s *RFQsService) Stats(ctx context.Context) (*procure.RFQStats, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	stats := &procure.RFQStats{TotalRFQs: len(s.store.rfqs)}

	for _, record := range s.store.rfqs {
		switch record.Status {
		case procure.RFQStatusOpen:
			stats.OpenRFQs++
		case procure.RFQStatusSubmitted:
			stats.SubmittedRFQs++
		case procure.RFQStatusClosed:
			stats.ClosedRFQs++
		case procure.RFQStatusPending:
			stats.PendingRFQs++
		}

		stats.TotalLineItems += len(record.LineItems)
	}

	if stats.TotalRFQs > 0 {
		stats.AverageLineItemsPerRFQ = float64(stats.TotalLineItems) / float64(stats.TotalRFQs)
	}

	return stats, nil
}

// CreateLineItem implements procure.RFQsService.CreateLineItem.
func (s *RFQsService) CreateLineItem(ctx context.Context, rfqID string, request *procure.LineItemCreateRequest) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record := s.findLocked(rfqID)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, rfqID)
	}

	item := procure.LineItem{
		ID:           s.store.nextID("li"),
		LineNumber:   request.LineNumber,
		ItemID:       request.ItemID,
		Manufacturer: request.Manufacturer,
		Supplier:     request.Supplier,
		Email:        request.Email,
		Status:       request.Status,
		Qty:          request.Qty,
	}
	if item.Status == "" {
		item.Status = procure.LineItemStatusOpen
	}

	record.LineItems = append(record.LineItems, item)
	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}

// UpdateLineItem implements procure.RFQsService.UpdateLineItem.
func (s *RFQsService) UpdateLineItem(ctx context.Context, rfqID, itemID string, request *procure.LineItemUpdateRequest) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record := s.findLocked(rfqID)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, rfqID)
	}

	if !updateLineItemLocked(record, itemID, request) {
		return nil, fmt.Errorf("%w: %s", procure.ErrLineItemNotFound, itemID)
	}

	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}

func updateLineItemLocked(record *procure.RFQRecord, itemID string, request *procure.LineItemUpdateRequest) bool {
	for i := range record.LineItems {
		if record.LineItems[i].ID != itemID {
			continue
		}

		item := &record.LineItems[i]

		setIf(&item.LineNumber, request.LineNumber)
		setIf(&item.ItemID, request.ItemID)
		setIf(&item.Manufacturer, request.Manufacturer)
		setIf(&item.Supplier, request.Supplier)
		setIf(&item.Email, request.Email)
		setIf(&item.Status, request.Status)
		setIf(&item.Qty, request.Qty)

		return true
	}

	return false
}

// UpdateLineItemStatus implements procure.RFQsService.UpdateLineItemStatus.
func (s *RFQsService) UpdateLineItemStatus(ctx context.Context, rfqID, itemID string, status procure.LineItemStatus) (*procure.RFQRecord, error) {
	return s.UpdateLineItem(ctx, rfqID, itemID, &procure.LineItemUpdateRequest{Status: &status})
}

// DeleteLineItem implements procure.RFQsService.DeleteLineItem.
func (s *RFQsService) DeleteLineItem(ctx context.Context, rfqID, itemID string) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record := s.findLocked(rfqID)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, rfqID)
	}

	if !deleteLineItemLocked(record, itemID) {
		return nil, fmt.Errorf("%w: %s", procure.ErrLineItemNotFound, itemID)
	}

	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}

func deleteLineItemLocked(record *procure.RFQRecord, itemID string) bool {
	for i := range record.LineItems {
		if record.LineItems[i].ID == itemID {
			record.LineItems = append(record.LineItems[:i], record.LineItems[i+1:]...)

			return true
		}
	}

	return false
}

// BulkUpdateLineItems implements procure.RFQsService.BulkUpdateLineItems.
// Unknown item ids are skipped.
func (s *RFQsService) BulkUpdateLineItems(ctx context.Context, rfqID string, items []procure.BulkUpdateItem[procure.LineItemUpdateRequest]) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record := s.findLocked(rfqID)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, rfqID)
	}

	for _, item := range items {
		data := item.Data
		_ = updateLineItemLocked(record, item.ID, &data)
	}

	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}

// BulkDeleteLineItems implements procure.RFQsService.BulkDeleteLineItems.
// Unknown item ids are skipped.
func (s *RFQsService) BulkDeleteLineItems(ctx context.Context, rfqID string, itemIDs []string) (*procure.RFQRecord, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record := s.findLocked(rfqID)
	if record == nil {
		return nil, fmt.Errorf("%w: %s", procure.ErrRFQNotFound, rfqID)
	}

	for _, itemID := range itemIDs {
		_ = deleteLineItemLocked(record, itemID)
	}

	record.LastUpdated = s.store.now()

	return cloneRFQ(*record), nil
}
