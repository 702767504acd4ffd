/*
handlers.go - HTTP API handlers for the stock ledger

PURPOSE:
  Exposes the ledger service over REST. Handles HTTP request/response,
  JSON serialization, and delegates every decision to the ledger.

ENDPOINTS:
  Products:
    GET    /api/products           List catalog
    POST   /api/products           Add product
    GET    /api/products/search    Search by keyword (?q=)
    GET    /api/products/{code}    Get product
    PUT    /api/products/{code}    Partial update
    DELETE /api/products/{code}    Delete product

  Sales:
    GET    /api/sales              List journal
    POST   /api/sales              Record a sale
    POST   /api/sales/undo         Undo the most recent sale

  Reports:
    GET    /api/reports/{window}   daily|weekly|monthly (?date=YYYY-MM-DD,
                                   defaults to today)

  Persistence:
    POST   /api/save               Write both snapshots to the store

ERROR HANDLING:
  - 400: Malformed JSON, validation failures, bad window or date
  - 404: Unknown product code
  - 409: Duplicate code, insufficient stock, nothing to undo
  - 500: Store failures

  The original application re-prompted on bad integer input; here a bad
  request is a 400 and retrying is the client's concern.

SEE ALSO:
  - dto.go:    Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toko/stock-engine/ledger"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger *ledger.Service
}

// NewHandler creates a new handler around the ledger service.
func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{Ledger: svc}
}

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

// ListProducts returns the catalog in order.
// GET /api/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toProductDTOs(h.Ledger.ListProducts()))
}

// CreateProduct adds a product to the catalog.
// POST /api/products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	p := ledger.Product{Code: req.Code, Name: req.Name, Stock: req.Stock, Price: req.Price}
	if err := h.Ledger.InsertProduct(p); err != nil {
		writeError(w, errorStatus(err), "Failed to add product", err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(p))
}

// GetProduct returns one product by code.
// GET /api/products/{code}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	p, err := h.Ledger.FindProduct(code)
	if err != nil {
		writeError(w, errorStatus(err), "Product not found", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// UpdateProduct applies a partial update to one product.
// PUT /api/products/{code}
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	upd := ledger.ProductUpdate{Name: req.Name, Stock: req.Stock, Price: req.Price}
	if err := h.Ledger.UpdateProduct(code, upd); err != nil {
		writeError(w, errorStatus(err), "Failed to update product", err)
		return
	}

	p, err := h.Ledger.FindProduct(code)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to update product", err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

// DeleteProduct removes one product from the catalog.
// DELETE /api/products/{code}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := h.Ledger.DeleteProduct(code); err != nil {
		writeError(w, errorStatus(err), "Failed to delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchProducts returns products matching the keyword.
// GET /api/products/search?q=keyword
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Missing search keyword", nil)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTOs(h.Ledger.SearchProducts(q)))
}

// =============================================================================
// SALE HANDLERS
// =============================================================================

// ListSales returns the journal in order.
// GET /api/sales
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toSaleDTOs(h.Ledger.ListSales()))
}

// RecordSale records one sale against stock.
// POST /api/sales
func (h *Handler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	rec, err := h.Ledger.RecordSale(req.Code, req.Quantity)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to record sale", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleDTO(rec))
}

// UndoSale reverses the most recent sale.
// POST /api/sales/undo
func (h *Handler) UndoSale(w http.ResponseWriter, r *http.Request) {
	res, err := h.Ledger.UndoLastSale()
	if err != nil {
		writeError(w, errorStatus(err), "Nothing to undo", err)
		return
	}

	dto := UndoDTO{
		Status:         res.Status.String(),
		Code:           res.Entry.Code,
		Quantity:       res.Entry.Quantity,
		StockRestored:  res.StockRestored,
		JournalRemoved: res.JournalRemoved,
	}
	if res.JournalRemoved {
		removed := toSaleDTO(res.Removed)
		dto.Removed = &removed
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport returns a windowed sales report.
// GET /api/reports/{window}?date=YYYY-MM-DD
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	window, err := ledger.ParseWindow(chi.URLParam(r, "window"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown report window", err)
		return
	}

	ref := ledger.Today()
	if ds := r.URL.Query().Get("date"); ds != "" {
		ref, err = ledger.ParseDate(ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err)
			return
		}
	}

	rep, err := h.Ledger.Report(window, ref)
	if err != nil {
		writeError(w, errorStatus(err), "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, toReportDTO(rep))
}

// =============================================================================
// PERSISTENCE HANDLERS
// =============================================================================

// Save writes both snapshots to the configured store.
// POST /api/save
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.SaveAll(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

// =============================================================================
// HELPERS
// =============================================================================

func errorStatus(err error) int {
	switch {
	case ledger.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidInput):
		return http.StatusBadRequest
	case ledger.IsClientError(err):
		// duplicate code, insufficient stock, nothing to undo
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
