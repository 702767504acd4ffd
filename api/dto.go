/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the ledger's internal model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry validate struct tags and are checked with
  go-playground/validator before reaching the ledger. The ledger still
  rejects bad input defensively; validation here just produces friendlier
  400s.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/go-playground/validator/v10"

	"github.com/toko/stock-engine/ledger"
)

var validate = validator.New()

// =============================================================================
// PRODUCTS
// =============================================================================

// ProductDTO represents a product in API responses.
type ProductDTO struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Price int64  `json:"price"`
}

func toProductDTO(p ledger.Product) ProductDTO {
	return ProductDTO{Code: p.Code, Name: p.Name, Stock: p.Stock, Price: p.Price}
}

func toProductDTOs(products []ledger.Product) []ProductDTO {
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = toProductDTO(p)
	}
	return dtos
}

// CreateProductRequest is the request to add a product to the catalog.
type CreateProductRequest struct {
	Code  string `json:"code" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
	Price int64  `json:"price" validate:"gte=0"`
}

// UpdateProductRequest applies a partial update. Absent fields are left
// unchanged.
type UpdateProductRequest struct {
	Name  *string `json:"name,omitempty"`
	Stock *int    `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Price *int64  `json:"price,omitempty" validate:"omitempty,gte=0"`
}

// =============================================================================
// SALES
// =============================================================================

// SaleDTO represents a journal record in API responses.
type SaleDTO struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    int64  `json:"total"`
	Date     string `json:"date"`
}

func toSaleDTO(rec ledger.SaleRecord) SaleDTO {
	return SaleDTO{
		ID:       rec.ID,
		Code:     rec.Code,
		Name:     rec.Name,
		Quantity: rec.Quantity,
		Total:    rec.Total,
		Date:     rec.Date.String(),
	}
}

func toSaleDTOs(records []ledger.SaleRecord) []SaleDTO {
	dtos := make([]SaleDTO, len(records))
	for i, rec := range records {
		dtos[i] = toSaleDTO(rec)
	}
	return dtos
}

// RecordSaleRequest is the request to record one sale.
type RecordSaleRequest struct {
	Code     string `json:"code" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// UndoDTO reports the outcome of an undo.
type UndoDTO struct {
	Status         string   `json:"status"` // ok | product_missing | no_journal_match
	Code           string   `json:"code"`
	Quantity       int      `json:"quantity"`
	StockRestored  bool     `json:"stock_restored"`
	JournalRemoved bool     `json:"journal_removed"`
	Removed        *SaleDTO `json:"removed,omitempty"`
}

// =============================================================================
// REPORTS
// =============================================================================

// ReportDTO is a windowed report over the sales journal.
type ReportDTO struct {
	Window       string     `json:"window"`
	Reference    string     `json:"reference"`
	From         string     `json:"from"`
	To           string     `json:"to"`
	Records      []SaleDTO  `json:"records"`
	JournalEmpty bool       `json:"journal_empty"`
	Summary      SummaryDTO `json:"summary"`
}

// SummaryDTO aggregates one report's records. Revenue and average are
// decimal strings.
type SummaryDTO struct {
	Sales       int    `json:"sales"`
	UnitsSold   int    `json:"units_sold"`
	Revenue     string `json:"revenue"`
	AverageSale string `json:"average_sale"`
}

func toReportDTO(rep ledger.Report) ReportDTO {
	return ReportDTO{
		Window:       rep.Window.String(),
		Reference:    rep.Reference.String(),
		From:         rep.From.String(),
		To:           rep.To.String(),
		Records:      toSaleDTOs(rep.Records),
		JournalEmpty: rep.JournalEmpty,
		Summary: SummaryDTO{
			Sales:       rep.Summary.Sales,
			UnitsSold:   rep.Summary.UnitsSold,
			Revenue:     rep.Summary.Revenue.String(),
			AverageSale: rep.Summary.AverageSale.String(),
		},
	}
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
