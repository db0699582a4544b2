package procure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotia-io/procure/pkg/procure"
)

type vendor struct {
	Name    string
	Status  string
	Tags    []string
	Created time.Time
}

func vendorSchema() *procure.Schema[vendor] {
	return procure.NewSchema[vendor]().
		Text("name", func(v vendor) string { return v.Name }).
		Token("status", func(v vendor) string { return v.Status }).
		Date("createdAt", func(v vendor) time.Time { return v.Created }).
		DateRange("createdAt").
		Searchable(func(v vendor) []string { return []string{v.Name} }).
		Searchable(func(v vendor) []string { return v.Tags })
}

func testVendors() []vendor {
	day := func(d int) time.Time {
		return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC)
	}

	return []vendor{
		{Name: "Alpha Metals", Status: "active", Tags: []string{"steel"}, Created: day(1)},
		{Name: "beta Plastics", Status: "inactive", Tags: []string{"polymer"}, Created: day(5)},
		{Name: "Gamma Alloys", Status: "active", Tags: []string{"steel", "aluminum"}, Created: day(10)},
		{Name: "Delta Chemicals", Status: "pending", Tags: []string{"solvents"}, Created: day(15)},
		{Name: "alpha Composites", Status: "active", Tags: []string{"carbon"}, Created: day(20)},
	}
}

func TestApply_FilterSortPaginate(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().
		WithFilter("status", "active").
		WithSort("name", "asc").
		WithPage(1).
		WithLimit(2)

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)

	// Text sort is caseless
	require.Len(t, page.Data, 2)
	assert.Equal(t, "alpha Composites", page.Data[0].Name)
	assert.Equal(t, "Alpha Metals", page.Data[1].Name)

	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestApply_TextFilterSubstring(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithFilter("name", "ALPHA")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pagination.Total)
}

func TestApply_TokenFilterExact(t *testing.T) {
	t.Parallel()

	// Token fields never substring-match
	query := procure.NewQueryParams().WithFilter("status", "activ")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestApply_AllSentinelDisablesFilter(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithFilter("status", procure.FilterAll)

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Pagination.Total)
}

func TestApply_UnknownFilterKeyIgnored(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithFilter("flavor", "sour")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Pagination.Total)
}

func TestApply_UnknownSortField(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithSort("revenue", "asc")

	_, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.ErrorIs(t, err, procure.ErrUnknownSortField)
}

func TestApply_SortDescendingByDate(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithSort("createdAt", "desc").WithLimit(10)

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	require.Len(t, page.Data, 5)
	assert.Equal(t, "alpha Composites", page.Data[0].Name)
	assert.Equal(t, "Alpha Metals", page.Data[4].Name)
}

func TestApply_Search(t *testing.T) {
	t.Parallel()

	// Search reaches nested values too
	query := procure.NewQueryParams().WithSearch("aluminum")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Gamma Alloys", page.Data[0].Name)
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithSearch("GAMMA")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Total)
}

func TestApply_DateRangeInclusive(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithDateRange("2025-03-05", "2025-03-15")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Total)
}

func TestApply_UnparseableDateBoundDisablesSide(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithDateRange("not-a-date", "2025-03-05")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)

	// Only the upper bound applies
	assert.Equal(t, 2, page.Pagination.Total)
}

func TestApply_PageBeyondEnd(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithPage(9).WithLimit(2)

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.Equal(t, 9, page.Pagination.Page)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestApply_EmptyResultSet(t *testing.T) {
	t.Parallel()

	query := procure.NewQueryParams().WithSearch("nothing matches this")

	page, err := procure.Apply(testVendors(), vendorSchema(), query)
	require.NoError(t, err)

	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Pagination.Total)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.False(t, page.Pagination.HasPrev)
}

func TestApply_NilQueryUsesDefaults(t *testing.T) {
	t.Parallel()

	page, err := procure.Apply(testVendors(), vendorSchema(), nil)
	require.NoError(t, err)

	assert.Len(t, page.Data, 5)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, procure.DefaultPageLimit, page.Pagination.Limit)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	vendors := testVendors()
	query := procure.NewQueryParams().WithSort("name", "desc").WithLimit(10)

	_, err := procure.Apply(vendors, vendorSchema(), query)
	require.NoError(t, err)

	assert.Equal(t, "Alpha Metals", vendors[0].Name)
	assert.Equal(t, "alpha Composites", vendors[4].Name)
}
