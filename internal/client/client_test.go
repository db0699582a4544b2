package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotia-io/procure/internal/client"
	"github.com/quotia-io/procure/pkg/procure"
)

// newTestClient wires an API client against a handler and returns both.
func newTestClient(t *testing.T, handler http.Handler) *client.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(&procure.Config{BaseURL: server.URL})
	require.NoError(t, err)

	return c
}

// envelope writes a success envelope around data.
func envelope(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(map[string]any{"success": true, "data": data})
	require.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := client.New(nil)
	require.ErrorIs(t, err, procure.ErrConfigRequired)

	_, err = client.New(&procure.Config{})
	require.ErrorIs(t, err, procure.ErrBaseURLRequired)
}

func TestNew_AppendsAPIVersion(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/suppliers/sup-001", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.Supplier{ID: "sup-001"})
	}))
	defer server.Close()

	c, err := client.New(&procure.Config{BaseURL: server.URL, APIVersion: "/api"})
	require.NoError(t, err)

	_, err = c.Suppliers().GetByID(context.Background(), "sup-001")
	require.NoError(t, err)
}

func TestSuppliersClient_List(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers", r.URL.Path)
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))

		envelope(t, w, http.StatusOK, procure.Page[procure.Supplier]{
			Data: []procure.Supplier{{ID: "sup-001", Name: "Global Parts Link"}},
			Pagination: procure.PageMeta{
				Page: 2, Limit: 10, Total: 11, TotalPages: 2, HasPrev: true,
			},
		})
	}))

	query := procure.NewQueryParams().WithPage(2).WithFilter("status", "active")

	page, err := c.Suppliers().List(context.Background(), query)
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Global Parts Link", page.Data[0].Name)
	assert.Equal(t, 11, page.Pagination.Total)
}

func TestSuppliersClient_Create(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/suppliers", r.URL.Path)

		var req procure.SupplierCreateRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Pacific Sourcing", req.Name)

		envelope(t, w, http.StatusCreated, procure.Supplier{ID: "sup-010", Name: req.Name})
	}))

	record, err := c.Suppliers().Create(context.Background(), &procure.SupplierCreateRequest{
		Name: "Pacific Sourcing",
	})
	require.NoError(t, err)
	assert.Equal(t, "sup-010", record.ID)
}

func TestSuppliersClient_Update(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Partial updates go over PATCH
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/suppliers/sup-001", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.Supplier{ID: "sup-001", PaymentTerms: "Net 60"})
	}))

	terms := "Net 60"

	record, err := c.Suppliers().Update(context.Background(), "sup-001", &procure.SupplierUpdateRequest{
		PaymentTerms: &terms,
	})
	require.NoError(t, err)
	assert.Equal(t, "Net 60", record.PaymentTerms)
}

func TestSuppliersClient_Delete(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/suppliers/sup-001", r.URL.Path)
		envelope(t, w, http.StatusOK, "deleted")
	}))

	require.NoError(t, c.Suppliers().Delete(context.Background(), "sup-001"))
}

func TestSuppliersClient_NotFound(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"supplier not found"}`))
	}))

	_, err := c.Suppliers().GetByID(context.Background(), "sup-404")
	require.Error(t, err)
	assert.True(t, procure.IsNotFound(err))
	assert.Contains(t, err.Error(), "getting supplier")
}

func TestSuppliersClient_BulkDelete(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/bulk-delete", r.URL.Path)

		var body struct {
			IDs []string `json:"ids"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"sup-001", "sup-002"}, body.IDs)

		envelope(t, w, http.StatusOK, procure.BulkResult{Applied: 2})
	}))

	result, err := c.Suppliers().BulkDelete(context.Background(), []string{"sup-001", "sup-002"})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Applied)
}

func TestSuppliersClient_BulkUpdate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/bulk-update", r.URL.Path)

		var body struct {
			Updates []procure.BulkUpdateItem[procure.SupplierUpdateRequest] `json:"updates"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Updates, 1)
		assert.Equal(t, "sup-001", body.Updates[0].ID)

		envelope(t, w, http.StatusOK, procure.BulkResult{Applied: 1})
	}))

	status := procure.StatusInactive

	result, err := c.Suppliers().BulkUpdate(context.Background(), []procure.BulkUpdateItem[procure.SupplierUpdateRequest]{
		{ID: "sup-001", Data: procure.SupplierUpdateRequest{Status: &status}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
}

func TestSuppliersClient_Search(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/search", r.URL.Path)
		assert.Equal(t, "bearings", r.URL.Query().Get("q"))

		envelope(t, w, http.StatusOK, []procure.Supplier{{ID: "sup-001"}})
	}))

	results, err := c.Suppliers().Search(context.Background(), "bearings")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestSuppliersClient_Export(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "active", r.URL.Query().Get("status"))

		envelope(t, w, http.StatusOK, "data:text/csv;base64,aWQK")
	}))

	query := procure.NewQueryParams().WithFilter("status", "active")

	uri, err := c.Suppliers().Export(context.Background(), procure.ExportCSV, query)
	require.NoError(t, err)
	assert.Equal(t, "data:text/csv;base64,aWQK", uri)
}

func TestSuppliersClient_Stats(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/suppliers/stats", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.DirectoryStats{TotalSuppliers: 3, ActiveSuppliers: 2})
	}))

	stats, err := c.Suppliers().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalSuppliers)
}

func TestManufacturersClient_Stats(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/manufacturers/stats", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.DirectoryStats{TotalManufacturers: 3})
	}))

	stats, err := c.Manufacturers().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalManufacturers)
}

func TestRFQsClient_Stats(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rfqs/stats", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.RFQStats{TotalRFQs: 5, TotalLineItems: 7})
	}))

	stats, err := c.RFQs().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalRFQs)
	assert.Equal(t, 7, stats.TotalLineItems)
}

func TestRFQsClient_CreateLineItem(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rfqs/rfq-001/line-items", r.URL.Path)

		envelope(t, w, http.StatusCreated, procure.RFQRecord{
			ID:        "rfq-001",
			LineItems: []procure.LineItem{{ID: "li-008", ItemID: "KE-2001"}},
		})
	}))

	record, err := c.RFQs().CreateLineItem(context.Background(), "rfq-001", &procure.LineItemCreateRequest{
		ItemID: "KE-2001",
	})
	require.NoError(t, err)
	require.Len(t, record.LineItems, 1)
	assert.Equal(t, "li-008", record.LineItems[0].ID)
}

func TestRFQsClient_UpdateLineItemStatus(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/rfqs/rfq-001/line-items/li-001", r.URL.Path)

		var req procure.LineItemUpdateRequest

		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Status)
		assert.Equal(t, procure.LineItemStatusClosed, *req.Status)

		envelope(t, w, http.StatusOK, procure.RFQRecord{ID: "rfq-001"})
	}))

	_, err := c.RFQs().UpdateLineItemStatus(context.Background(), "rfq-001", "li-001", procure.LineItemStatusClosed)
	require.NoError(t, err)
}

func TestRFQsClient_DeleteLineItem(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rfqs/rfq-001/line-items/li-002", r.URL.Path)
		envelope(t, w, http.StatusOK, procure.RFQRecord{ID: "rfq-001"})
	}))

	record, err := c.RFQs().DeleteLineItem(context.Background(), "rfq-001", "li-002")
	require.NoError(t, err)
	assert.Equal(t, "rfq-001", record.ID)
}

func TestRFQsClient_BulkDeleteLineItems(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rfqs/rfq-003/line-items/bulk-delete", r.URL.Path)

		var body struct {
			IDs []string `json:"ids"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"li-004", "li-005"}, body.IDs)

		envelope(t, w, http.StatusOK, procure.RFQRecord{ID: "rfq-003"})
	}))

	_, err := c.RFQs().BulkDeleteLineItems(context.Background(), "rfq-003", []string{"li-004", "li-005"})
	require.NoError(t, err)
}

func TestClient_EmptyEnvelope(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))

	_, err := c.Suppliers().GetByID(context.Background(), "sup-001")
	require.ErrorIs(t, err, procure.ErrEmptyEnvelope)
}
