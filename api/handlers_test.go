/*
handlers_test.go - HTTP-level tests for the ledger API

Tests drive the full router with httptest, backed by the in-memory store,
and check the JSON contract plus the error-to-status mapping.
*/
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toko/stock-engine/ledger"
	"github.com/toko/stock-engine/ledger/store"
)

var testDay = ledger.NewDate(2025, time.June, 16)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := ledger.NewService(store.NewMemory(), ledger.Options{
		Clock: func() ledger.Date { return testDay },
	})
	router := NewRouter(NewHandler(svc), RouterOptions{
		AllowedOrigins: []string{"*"},
	})
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

func addPen(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products",
		`{"code":"P1","name":"Pen","stock":10,"price":5}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPI_ProductLifecycle(t *testing.T) {
	ts := newTestServer(t)
	addPen(t, ts)

	// Duplicate insert conflicts
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products",
		`{"code":"P1","name":"Other","stock":1,"price":1}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Partial update touches only the sent fields
	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/products/P1", `{"stock":42}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p ProductDTO
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, 42, p.Stock)
	assert.Equal(t, "Pen", p.Name)

	// Delete, then a lookup 404s
	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/products/P1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/products/P1", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ValidationFailuresAre400(t *testing.T) {
	ts := newTestServer(t)

	cases := []string{
		`{"name":"no code","stock":1,"price":1}`,
		`{"code":"X","name":"neg stock","stock":-1,"price":1}`,
		`not json`,
	}
	for _, body := range cases {
		resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body: %s", body)
	}
}

func TestAPI_RecordSaleAndUndo(t *testing.T) {
	ts := newTestServer(t)
	addPen(t, ts)

	// Record a sale
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/sales", `{"code":"P1","quantity":3}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale SaleDTO
	require.NoError(t, json.Unmarshal(body, &sale))
	assert.Equal(t, int64(15), sale.Total)
	assert.Equal(t, "2025-06-16", sale.Date)

	// Selling more than stock conflicts without mutating anything
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sales", `{"code":"P1","quantity":99}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Undo restores stock and removes the record
	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/sales/undo", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var undo UndoDTO
	require.NoError(t, json.Unmarshal(body, &undo))
	assert.Equal(t, "ok", undo.Status)
	assert.True(t, undo.StockRestored)
	require.NotNil(t, undo.Removed)
	assert.Equal(t, sale.ID, undo.Removed.ID)

	// A second undo has nothing left
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/sales/undo", "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAPI_UnknownProductSaleIs404(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/sales", `{"code":"nope","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_Reports(t *testing.T) {
	ts := newTestServer(t)
	addPen(t, ts)
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/sales", `{"code":"P1","quantity":2}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/reports/daily?date=2025-06-16", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep ReportDTO
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, "daily", rep.Window)
	require.Len(t, rep.Records, 1)
	assert.Equal(t, "10", rep.Summary.Revenue)
	assert.False(t, rep.JournalEmpty)

	// Weekly window boundaries come back with the payload
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/reports/weekly?date=2025-06-18", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &rep))
	assert.Equal(t, "2025-06-16", rep.From)
	assert.Equal(t, "2025-06-22", rep.To)

	// Bad window and bad date are client errors
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/reports/yearly", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/reports/daily?date=16-06-2025", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_SearchProducts(t *testing.T) {
	ts := newTestServer(t)
	addPen(t, ts)
	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/products",
		`{"code":"N1","name":"Notebook","stock":7,"price":25}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/products/search?q=PEN", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var products []ProductDTO
	require.NoError(t, json.Unmarshal(body, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].Code)

	// Missing keyword is a client error
	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/products/search", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_Save(t *testing.T) {
	ts := newTestServer(t)
	addPen(t, ts)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/save", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
