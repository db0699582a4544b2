package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quotia-io/procure/internal/server"
	"github.com/quotia-io/procure/pkg/procure"
)

func newTestServer(t *testing.T) *server.Server {
	t.Helper()

	return server.New(server.Config{})
}

// doJSON runs one request against the server and decodes the envelope body.
func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope map[string]any

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return rec, envelope
}

func TestServer_EnvelopeShape(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])
	assert.NotEmpty(t, envelope["timestamp"])
	assert.NotEmpty(t, envelope["requestId"])
	assert.NotNil(t, envelope["data"])
}

func TestServer_EchoesRequestID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/suppliers", nil)
	req.Header.Set("X-Request-ID", "req-caller-1")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "req-caller-1", rec.Header().Get("X-Request-ID"))
}

func TestServer_ListWithQuery(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	_, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers?status=active&sort=name:asc&limit=1", nil)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)

	pagination, ok := data["pagination"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 2, pagination["total"], 0)
	assert.InDelta(t, 2, pagination["totalPages"], 0)

	records, ok := data["data"].([]any)
	require.True(t, ok)
	require.Len(t, records, 1)
}

func TestServer_BadSortIsBadRequest(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers?sort=name:sideways", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, envelope["success"])
	assert.NotEmpty(t, envelope["error"])
}

func TestServer_GetNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/manufacturers/mfg-404", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestServer_CreateAndGet(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodPost, "/api/manufacturers", procure.ManufacturerCreateRequest{
		Name:     "Vertex Tooling",
		Industry: "Automotive",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mfg-004", data["id"])
	assert.Equal(t, "pending", data["status"])

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/manufacturers/mfg-004", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodPatch, "/api/suppliers/sup-001", map[string]any{
		"paymentTerms": "Net 60",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Net 60", data["paymentTerms"])

	rec, envelope = doJSON(t, srv.Handler(), http.MethodDelete, "/api/suppliers/sup-001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "deleted", envelope["message"])

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers/sup-001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_BulkRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodPost, "/api/suppliers/bulk-delete", map[string]any{
		"ids": []string{"sup-001", "sup-404"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1, data["applied"], 0)
	assert.InDelta(t, 1, data["skipped"], 0)

	rec, envelope = doJSON(t, srv.Handler(), http.MethodPost, "/api/suppliers/bulk-update", map[string]any{
		"updates": []map[string]any{
			{"id": "sup-002", "data": map[string]any{"status": "inactive"}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok = envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1, data["applied"], 0)
}

func TestServer_Search(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers/search?q=bearings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	results, ok := envelope["data"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
}

func TestServer_Export(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	uri, ok := envelope["data"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(uri, "data:text/csv;base64,"))

	rec, _ = doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_DirectoryStats(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/manufacturers/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 3, data["totalManufacturers"], 0)
	assert.InDelta(t, 3, data["totalSuppliers"], 0)
}

func TestServer_RFQStats(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/rfqs/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 5, data["totalRFQs"], 0)
	assert.InDelta(t, 7, data["totalLineItems"], 0)
}

func TestServer_LineItemRoutes(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec, envelope := doJSON(t, srv.Handler(), http.MethodPost, "/api/rfqs/rfq-005/line-items", procure.LineItemCreateRequest{
		LineNumber: "1",
		ItemID:     "KE-2001",
		Qty:        25,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)

	items, ok := data["lineItems"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)

	item, ok := items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "li-008", item["id"])
	assert.Equal(t, "open", item["status"])

	rec, _ = doJSON(t, srv.Handler(), http.MethodPatch, "/api/rfqs/rfq-005/line-items/li-008/status", map[string]any{
		"status": "closed",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv.Handler(), http.MethodDelete, "/api/rfqs/rfq-005/line-items/li-008", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, srv.Handler(), http.MethodDelete, "/api/rfqs/rfq-005/line-items/li-008", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_AuthFlow(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	srv := server.New(server.Config{
		AuthSecret: "test-secret",
		Users:      map[string]string{"ops": string(hash)},
	})

	// No token
	rec, envelope := doJSON(t, srv.Handler(), http.MethodGet, "/api/suppliers", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, false, envelope["success"])

	// Bad credentials
	rec, _ = doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ops", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Good credentials
	rec, envelope = doJSON(t, srv.Handler(), http.MethodPost, "/api/auth/login", map[string]string{
		"username": "ops", "password": "hunter2",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)

	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	// Token unlocks the API
	req := httptest.NewRequest(http.MethodGet, "/api/suppliers", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	// Garbage token stays locked out
	req = httptest.NewRequest(http.MethodGet, "/api/suppliers", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	recorder = httptest.NewRecorder()
	srv.Handler().ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
