package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotia-io/procure/internal/mock"
	"github.com/quotia-io/procure/pkg/procure"
)

func TestSuppliersService_List(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	page, err := service.List(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, page.Pagination.Total)
}

func TestSuppliersService_ListFilteredByType(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	query := procure.NewQueryParams().WithFilter("type", string(procure.SupplierTypeBroker))

	page, err := service.List(context.Background(), query)
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Meridian Trade Co", page.Data[0].Name)
}

func TestSuppliersService_GetByID(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	record, err := service.GetByID(context.Background(), "sup-002")
	require.NoError(t, err)
	assert.Equal(t, "EuroStock Components", record.Name)

	_, err = service.GetByID(context.Background(), "sup-404")
	require.ErrorIs(t, err, procure.ErrSupplierNotFound)
}

func TestSuppliersService_Create(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	record, err := service.Create(context.Background(), &procure.SupplierCreateRequest{
		Name: "Pacific Sourcing",
		Type: procure.SupplierTypeDistributor,
	})
	require.NoError(t, err)

	assert.Equal(t, "sup-004", record.ID)
	assert.Equal(t, procure.StatusPending, record.Status)
}

func TestSuppliersService_Update(t *testing.T) {
	t.Parallel()

	store := mock.NewStore()
	service := mock.NewSuppliersService(store, 0)

	updated := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return updated })

	terms := "Net 60"

	record, err := service.Update(context.Background(), "sup-001", &procure.SupplierUpdateRequest{
		PaymentTerms: &terms,
	})
	require.NoError(t, err)

	assert.Equal(t, "Net 60", record.PaymentTerms)
	assert.Equal(t, updated, record.UpdatedAt)
	assert.Equal(t, "Global Parts Link", record.Name)
}

func TestSuppliersService_DeleteRetractsManufacturerLinks(t *testing.T) {
	t.Parallel()

	store := mock.NewStore()
	suppliers := mock.NewSuppliersService(store, 0)
	manufacturers := mock.NewManufacturersService(store, 0)
	ctx := context.Background()

	err := suppliers.Delete(ctx, "sup-001")
	require.NoError(t, err)

	mfg, err := manufacturers.GetByID(ctx, "mfg-001")
	require.NoError(t, err)
	assert.Equal(t, []string{"sup-002"}, mfg.LinkedSupplierIDs)
}

func TestSuppliersService_GetByIDDoesNotAliasLinks(t *testing.T) {
	t.Parallel()

	store := mock.NewStore()
	suppliers := mock.NewSuppliersService(store, 0)
	manufacturers := mock.NewManufacturersService(store, 0)
	ctx := context.Background()

	held, err := suppliers.GetByID(ctx, "sup-002")
	require.NoError(t, err)
	require.Equal(t, []string{"mfg-001", "mfg-002"}, held.LinkedManufacturerIDs)

	err = manufacturers.Delete(ctx, "mfg-001")
	require.NoError(t, err)

	assert.Equal(t, []string{"mfg-001", "mfg-002"}, held.LinkedManufacturerIDs)

	fresh, err := suppliers.GetByID(ctx, "sup-002")
	require.NoError(t, err)
	assert.Equal(t, []string{"mfg-002"}, fresh.LinkedManufacturerIDs)
}

func TestSuppliersService_DeleteNotFound(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	err := service.Delete(context.Background(), "sup-404")
	require.ErrorIs(t, err, procure.ErrSupplierNotFound)
}

func TestSuppliersService_BulkUpdate(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	status := procure.StatusActive
	items := []procure.BulkUpdateItem[procure.SupplierUpdateRequest]{
		{ID: "sup-003", Data: procure.SupplierUpdateRequest{Status: &status}},
	}

	result, err := service.BulkUpdate(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	record, err := service.GetByID(context.Background(), "sup-003")
	require.NoError(t, err)
	assert.Equal(t, procure.StatusActive, record.Status)
}

func TestSuppliersService_SearchReachesContactEmail(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	results, err := service.Search(context.Background(), "m.torres")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Global Parts Link", results[0].Name)
}

func TestSuppliersService_ExportRespectsQuery(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	query := procure.NewQueryParams().WithFilter("status", "inactive")

	uri, err := service.Export(context.Background(), procure.ExportJSON, query)
	require.NoError(t, err)
	assert.Contains(t, uri, "data:application/json;base64,")
}

func TestSuppliersService_Stats(t *testing.T) {
	t.Parallel()

	service := mock.NewSuppliersService(mock.NewStore(), 0)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalSuppliers)
	assert.Equal(t, 2, stats.ActiveSuppliers)
	assert.Equal(t, 3, stats.TotalManufacturers)
}
