/*
errors.go - Centralized error types for the ledger

PURPOSE:
  All error types in one place. Adapters classify errors with the helper
  predicates instead of matching on concrete types.

ERROR CATEGORIES:
  1. Lookup errors    - Missing products, empty undo stack
  2. Validation errors - Bad input, stock/price constraint violations
  3. Store errors     - Malformed persisted records

USAGE:
  if errors.Is(err, ledger.ErrProductNotFound) { ... }

  var stockErr *ledger.InsufficientStockError
  if errors.As(err, &stockErr) {
      // stockErr.Available, stockErr.Requested
  }
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrProductNotFound is returned when a product code has no match in
	// the registry.
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateCode is returned on insert when the code already exists
	// and the registry is not in permissive mode.
	ErrDuplicateCode = errors.New("duplicate product code")

	// ErrInsufficientStock is returned when a sale asks for more units
	// than are in stock. Wrapped by InsufficientStockError.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidInput is returned for non-positive quantities, negative
	// stock or price, and empty product codes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNothingToUndo is returned when the undo stack is empty.
	ErrNothingToUndo = errors.New("nothing to undo")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InsufficientStockError reports a sale that exceeds available stock.
type InsufficientStockError struct {
	Code      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.Code, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ParseError reports a malformed field in a persisted record. Load never
// skips bad rows; the error names the file, line, and field instead.
type ParseError struct {
	File  string
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: bad %s: %v", e.File, e.Line, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound returns true if the error indicates a missing product.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicateCode) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrNothingToUndo)
}
