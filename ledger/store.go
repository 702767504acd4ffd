/*
store.go - Persistence interface for ledger snapshots

PURPOSE:
  Defines the boundary between the in-memory ledger and durable storage.
  The store deals in whole snapshots: load replaces a collection, save
  overwrites the stored copy. Nothing is appended or merged.

SNAPSHOT CONTRACT:
  - Load of a missing backing file yields an empty collection, not an
    error. A fresh install starts empty.
  - Load of a malformed record fails loudly with a ParseError. Bad rows
    are never skipped or defaulted.
  - Save fully overwrites the target, preserving collection order.
  - Load and save run strictly between core operations; the core never
    observes a partially loaded or partially saved state.

IMPLEMENTATIONS:
  - store/csvfile:  CSV flat files (the canonical format)
  - store/sqlite:   SQLite database
  - ledger/store:   In-memory, for tests and dev

SEE ALSO:
  - service.go: LoadAll / SaveAll, the only callers
*/
package ledger

import "context"

// Store persists ledger snapshots. The undo stack is deliberately absent
// from this interface: it is transient state.
type Store interface {
	// LoadProducts returns the persisted catalog in stored order.
	// A missing backing file yields an empty slice and no error.
	LoadProducts(ctx context.Context) ([]Product, error)

	// SaveProducts overwrites the persisted catalog.
	SaveProducts(ctx context.Context, products []Product) error

	// LoadSales returns the persisted journal in stored order.
	LoadSales(ctx context.Context) ([]SaleRecord, error)

	// SaveSales overwrites the persisted journal.
	SaveSales(ctx context.Context, sales []SaleRecord) error
}
