package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/quotia-io/procure/pkg/procure"
)

// ManufacturersService implements procure.ManufacturersService in memory.
type ManufacturersService struct {
	store   *Store
	latency time.Duration
}

// NewManufacturersService creates a mock manufacturers service over the store.
func NewManufacturersService(store *Store, latency time.Duration) *ManufacturersService {
	return &ManufacturersService{store: store, latency: latency}
}

// cloneManufacturer deep-copies one record so callers never alias the
// stored contact and link slices.
func cloneManufacturer(record procure.Manufacturer) *procure.Manufacturer {
	out := record
	out.Contacts = cloneSlice(record.Contacts)
	out.LinkedSupplierIDs = cloneSlice(record.LinkedSupplierIDs)
	out.Capabilities = cloneSlice(record.Capabilities)
	out.Certifications = cloneSlice(record.Certifications)

	return &out
}

func cloneManufacturers(records []procure.Manufacturer) []procure.Manufacturer {
	out := make([]procure.Manufacturer, len(records))

	for i, record := range records {
		out[i] = *cloneManufacturer(record)
	}

	return out
}

// List implements procure.ManufacturersService.List.
func (s *ManufacturersService) List(ctx context.Context, query *procure.QueryParams) (*procure.Page[procure.Manufacturer], error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneManufacturers(s.store.manufacturers)
	s.store.mu.RUnlock()

	page, err := procure.Apply(records, procure.ManufacturerSchema(), query)
	if err != nil {
		return nil, err
	}

	return &page, nil
}

// GetByID implements procure.ManufacturersService.GetByID.
func (s *ManufacturersService) GetByID(ctx context.Context, id string) (*procure.Manufacturer, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, record := range s.store.manufacturers {
		if record.ID == id {
			return cloneManufacturer(record), nil
		}
	}

	return nil, fmt.Errorf("%w: %s", procure.ErrManufacturerNotFound, id)
}

// Create implements procure.ManufacturersService.Create.
func (s *ManufacturersService) Create(ctx context.Context, request *procure.ManufacturerCreateRequest) (*procure.Manufacturer, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now()

	record := procure.Manufacturer{
		ID:                s.store.nextID("mfg"),
		Name:              request.Name,
		Description:       request.Description,
		Industry:          request.Industry,
		Website:           request.Website,
		Address:           request.Address,
		Contacts:          assignContactIDs(s.store, request.Contacts),
		LinkedSupplierIDs: orEmpty(request.LinkedSupplierIDs),
		Capabilities:      orEmpty(request.Capabilities),
		Certifications:    orEmpty(request.Certifications),
		Status:            request.Status,
		CreatedAt:         now,
		UpdatedAt:         now,
		LastContactDate:   request.LastContactDate,
		Notes:             request.Notes,
	}
	if record.Status == "" {
		record.Status = procure.StatusPending
	}

	s.store.manufacturers = append(s.store.manufacturers, record)

	return cloneManufacturer(record), nil
}

// Update implements procure.ManufacturersService.Update. Nil fields in the
// request leave the stored values untouched.
func (s *ManufacturersService) Update(ctx context.Context, id string, request *procure.ManufacturerUpdateRequest) (*procure.Manufacturer, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	record, err := s.updateLocked(id, request)
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (s *ManufacturersService) updateLocked(id string, request *procure.ManufacturerUpdateRequest) (*procure.Manufacturer, error) {
	for i := range s.store.manufacturers {
		if s.store.manufacturers[i].ID != id {
			continue
		}

		record := &s.store.manufacturers[i]

		setIf(&record.Name, request.Name)
		setIf(&record.Description, request.Description)
		setIf(&record.Industry, request.Industry)
		setIf(&record.Website, request.Website)
		setIf(&record.Address, request.Address)
		setIf(&record.LinkedSupplierIDs, request.LinkedSupplierIDs)
		setIf(&record.Capabilities, request.Capabilities)
		setIf(&record.Certifications, request.Certifications)
		setIf(&record.Status, request.Status)
		setIf(&record.Notes, request.Notes)

		if request.Contacts != nil {
			record.Contacts = assignContactIDs(s.store, *request.Contacts)
		}

		if request.LastContactDate != nil {
			record.LastContactDate = request.LastContactDate
		}

		record.UpdatedAt = s.store.now()

		return cloneManufacturer(*record), nil
	}

	return nil, fmt.Errorf("%w: %s", procure.ErrManufacturerNotFound, id)
}

// Delete implements procure.ManufacturersService.Delete. The deleted id is
// retracted from every supplier that linked to it.
func (s *ManufacturersService) Delete(ctx context.Context, id string) error {
	if err := sleep(ctx, s.latency); err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if !s.deleteLocked(id) {
		return fmt.Errorf("%w: %s", procure.ErrManufacturerNotFound, id)
	}

	return nil
}

func (s *ManufacturersService) deleteLocked(id string) bool {
	for i := range s.store.manufacturers {
		if s.store.manufacturers[i].ID != id {
			continue
		}

		s.store.manufacturers = append(s.store.manufacturers[:i], s.store.manufacturers[i+1:]...)

		for j := range s.store.suppliers {
			s.store.suppliers[j].LinkedManufacturerIDs = removeID(s.store.suppliers[j].LinkedManufacturerIDs, id)
		}

		return true
	}

	return false
}

// BulkDelete implements procure.ManufacturersService.BulkDelete.
func (s *ManufacturersService) BulkDelete(ctx context.Context, ids []string) (*procure.BulkResult, error) {
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

// BulkUpdate implements procure.ManufacturersService.BulkUpdate.
func (s *ManufacturersService) BulkUpdate(ctx context.Context, items []procure.BulkUpdateItem[procure.ManufacturerUpdateRequest]) (*procure.BulkResult, error) {
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

// Search implements procure.ManufacturersService.Search.
func (s *ManufacturersService) Search(ctx context.Context, term string) ([]procure.Manufacturer, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	records := cloneManufacturers(s.store.manufacturers)
	s.store.mu.RUnlock()

	query := procure.NewQueryParams().WithSearch(term).WithLimit(maxLimit(len(records)))

	page, err := procure.Apply(records, procure.ManufacturerSchema(), query)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// Export implements procure.ManufacturersService.Export.
func (s *ManufacturersService) Export(ctx context.Context, format procure.ExportFormat, query *procure.QueryParams) (string, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return "", err
	}

	s.store.mu.RLock()
	records := cloneManufacturers(s.store.manufacturers)
	s.store.mu.RUnlock()

	filtered, err := applyAll(records, procure.ManufacturerSchema(), query)
	if err != nil {
		return "", err
	}

	return procure.ExportManufacturers(format, filtered)
}

// Stats implements procure.ManufacturersService.Stats.
func (s *ManufacturersService) Stats(ctx context.Context) (*procure.DirectoryStats, error) {
	if err := sleep(ctx, s.latency); err != nil {
		return nil, err
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	return directoryStatsLocked(s.store), nil
}
