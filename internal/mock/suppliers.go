package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/quotia-io/procure/pkg/procure"
)

// SuppliersService implements procure.SuppliersService in memory.
type SuppliersService struct {
	store   *Store
	latency time.Duration
}

// NewSuppliersService creates a mock suppliers service over the store.
func NewSuppliersService(store *Store, latency time.Duration) *SuppliersService {
	return &SuppliersService{store: store, latency: latency}
}

// cloneSupplier deep-copies one record so callers never alias the stored
// contact and link slices.
func cloneSupplier(record procure.Supplier) *procure.Supplier {
	out := record
	out.Contacts = cloneSlice(record.Contacts)
	out.LinkedManufacturerIDs = cloneSlice(record.LinkedManufacturerIDs)
	out.Specializations = cloneSlice(record.Specializations)

	return &out
}

func cloneSuppliers(records []procure.Supplier) []procure.Supplier {
	out := make([]procure.Supplier, len(records))

	for i, record := range records {
		out[i] = *cloneSupplier(record)
	}

	return out
}

// List implements procure.SuppliersService.List.
func (s *SuppliersService) List(ctx context.Context, query *procure.QueryParams) (*procure.Page[procure.Supplier], error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneSuppliers(s.store.suppliers)
	s.store.mu.RUnlock()

	page, err := procure.Apply(records, procure.SupplierSchema(), query)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// GetByID implements procure.SuppliersService.GetByID.
func (s *SuppliersService) GetByID(ctx context.Context, id string) (*procure.Supplier, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, record := range s.store.suppliers {
		if record.ID == id {
			return cloneSupplier(record), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", procure.ErrSupplierNotFound, id)
}

// Create implements procure.SuppliersService.Create.
func (s *SuppliersService) Create(ctx context.Context, request *procure.SupplierCreateRequest) (*procure.Supplier, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()

	record := procure.Supplier{
		ID:                    s.store.nextID("sup"),
		Name:                  request.Name,
		Description:           request.Description,
		Type:                  request.Type,
		Website:               request.Website,
		Address:               request.Address,
		Contacts:              assignContactIDs(s.store, request.Contacts),
		LinkedManufacturerIDs: orEmpty(request.LinkedManufacturerIDs),
		Specializations:       orEmpty(request.Specializations),
		PaymentTerms:          request.PaymentTerms,
		DeliveryTime:          request.DeliveryTime,
		Status:                request.Status,
		CreatedAt:             now,
		UpdatedAt:             now,
		LastContactDate:       request.LastContactDate,
		Notes:                 request.Notes,
	}
	if record.Status == "" {
		record.Status = procure.StatusPending
	}

	s.store.suppliers = append(s.store.suppliers, record)

	return cloneSupplier(record), nil
}

// Update implements procure.SuppliersService.Update.
func (s *SuppliersService) Update(ctx context.Context, id string, request *procure.SupplierUpdateRequest) (*procure.Supplier, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	return s.updateLocked(id, request)
}

func (s *SuppliersService) updateLocked(id string, request *procure.SupplierUpdateRequest) (*procure.Supplier, error) {
	for i := range s.store.suppliers {
		if s.store.suppliers[i].ID != id {
			continue
		}

		record := &s.store.suppliers[i]

		setIf(&record.Name, request.Name)
		setIf(&record.Description, request.Description)
		setIf(&record.Type, request.Type)
		setIf(&record.Website, request.Website)
		setIf(&record.Address, request.Address)
		setIf(&record.LinkedManufacturerIDs, request.LinkedManufacturerIDs)
		setIf(&record.Specializations, request.Specializations)
		setIf(&record.PaymentTerms, request.PaymentTerms)
		setIf(&record.DeliveryTime, request.DeliveryTime)
		setIf(&record.Status, request.Status)
		setIf(&record.Notes, request.Notes)

		if request.Contacts != nil {
			record.Contacts = assignContactIDs(s.store, *request.Contacts)
		}

		if request.LastContactDate != nil {
			record.LastContactDate = request.LastContactDate
		}

		record.UpdatedAt = s.store.now()

		return cloneSupplier(*record), nil
	}

	return nil, fmt.Errorf("%w: %s", procure.ErrSupplierNotFound, id)
}

// Delete implements procure.SuppliersService.Delete. The deleted id is
// retracted from every manufacturer that linked to it.
func (s *SuppliersService) Delete(ctx context.Context, id string) error {
	if err := sleep(ctx, s.latency); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if !s.deleteLocked(id) {
		return fmt.Errorf("%w: %s", procure.ErrSupplierNotFound, id)
	}

	return nil
}

func (s *SuppliersService) deleteLocked(id string) bool {
	for i := range s.store.suppliers {
		if s.store.suppliers[i].ID != id {
			continue
		}

		s.store.suppliers = append(s.store.suppliers[:i], s.store.suppliers[i+1:]...)

		for j := range s.store.manufacturers {
			s.store.manufacturers[j].LinkedSupplierIDs = removeID(s.store.manufacturers[j].LinkedSupplierIDs, id)
		}

		return true
	}

	return false
}

// BulkDelete implements procure.SuppliersService.BulkDelete.
func (s *SuppliersService) BulkDelete(ctx context.Context, ids []string) (*procure.BulkResult, error) {
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

// BulkUpdate implements procure.SuppliersService.BulkUpdate.
func (s *SuppliersService) BulkUpdate(ctx context.Context, items []procure.BulkUpdateItem[procure.SupplierUpdateRequest]) (*procure.BulkResult, error) {
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

// Search implements procure.SuppliersService.Search.
func (s *SuppliersService) Search(ctx context.Context, term string) ([]procure.Supplier, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneSuppliers(s.store.suppliers)
	s.store.mu.RUnlock()

	query := procure.NewQueryParams().WithSearch(term).WithLimit(maxLimit(len(records)))

	page, err := procure.Apply(records, procure.SupplierSchema(), query)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// Export implements procure.SuppliersService.Export.
func (s *SuppliersService) Export(ctx context.Context, format procure.ExportFormat, query *procure.QueryParams) (string, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return "", err
	}

	s.store.mu.RLock()
	records := cloneSuppliers(s.store.suppliers)
	s.store.mu.RUnlock()

	filtered, err := applyAll(records, procure.SupplierSchema(), query)
	if err != nil {
		return "", err
	}

	return procure.ExportSuppliers(format, filtered)
}

// Stats implements procure.SuppliersService.Stats.
func (s *SuppliersService) Stats(ctx context.Context) (*procure.DirectoryStats, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	return directoryStatsLocked(s.store), nil
}
