/*
service.go - The ledger mutation protocol

PURPOSE:
  Service orchestrates the registry, the journal, and the undo stack as
  one consistency domain. Adapters call these methods and never touch the
  collections directly.

PROTOCOL:
  RecordSale:
    1. Look up the product; fail if absent.
    2. Fail if quantity exceeds current stock.
    3. Decrement stock in place.
    4. Append a journal snapshot (name and total captured now).
    5. Push an undo entry.
    All validation happens before any mutation: a failed sale leaves no
    partial state.

  UndoLastSale:
    1. Pop the undo stack; empty stack means nothing to undo.
    2. Restore stock if the product still exists. A product deleted since
       the sale cannot receive its stock back; restoration is skipped and
       the condition is reported, but journal removal is still attempted.
    3. Remove the matching journal record. Value matching takes the FIRST
       (code, quantity) match in insertion order; identity matching takes
       exactly the record the undo entry points at.

CONCURRENCY:
  One mutex around every operation. Operations are short, synchronous,
  and non-blocking, so a single global lock is sufficient even when the
  service is exposed over HTTP.

SEE ALSO:
  - registry.go, journal.go, undo.go: The collections
  - store.go: Snapshot persistence boundary
*/
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Options configures a Service.
type Options struct {
	// AllowDuplicateCodes restores the legacy permissive registry where
	// duplicate codes are accepted and lookups resolve to the first match.
	AllowDuplicateCodes bool

	// UndoByRecordID switches undo from value matching (first record equal
	// on code and quantity) to identity matching (the exact record the
	// sale created).
	UndoByRecordID bool

	// Clock supplies the calendar day stamped on new sales.
	// Defaults to Today.
	Clock func() Date

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Service is the single entry point for ledger mutations and queries.
// Safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	registry *Registry
	journal  *Journal
	undo     *UndoStack
	store    Store
	clock    func() Date
	undoByID bool
	logger   *slog.Logger
}

// NewService creates a service backed by the given snapshot store.
func NewService(store Store, opts Options) *Service {
	registry := NewRegistry()
	if opts.AllowDuplicateCodes {
		registry = NewPermissiveRegistry()
	}
	clock := opts.Clock
	if clock == nil {
		clock = Today
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		journal:  NewJournal(),
		undo:     NewUndoStack(),
		store:    store,
		clock:    clock,
		undoByID: opts.UndoByRecordID,
		logger:   logger,
	}
}

// =============================================================================
// PRODUCT OPERATIONS
// =============================================================================

// InsertProduct adds a product to the end of the catalog.
func (s *Service) InsertProduct(p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Insert(p); err != nil {
		return err
	}
	s.logger.Info("product inserted", slog.String("code", p.Code), slog.Int("stock", p.Stock))
	return nil
}

// FindProduct returns the product with the given code.
func (s *Service) FindProduct(code string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.registry.Find(code)
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	return *p, nil
}

// UpdateProduct applies a partial update to the product with the given code.
func (s *Service) UpdateProduct(code string, upd ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.registry.Update(code, upd); err != nil {
		return err
	}
	s.logger.Info("product updated", slog.String("code", code))
	return nil
}

// DeleteProduct removes the product with the given code. Sales already
// recorded against it stay in the journal; a later undo of such a sale
// reports the missing product instead of restoring stock.
func (s *Service) DeleteProduct(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.registry.Delete(code) {
		return fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	s.logger.Info("product deleted", slog.String("code", code))
	return nil
}

// SearchProducts returns all products whose code or name contains the
// keyword, case-insensitively, in catalog order.
func (s *Service) SearchProducts(keyword string) []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.Search(keyword)
}

// ListProducts returns a snapshot of the catalog in order.
func (s *Service) ListProducts() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.registry.List()
}

// =============================================================================
// SALE PROTOCOL
// =============================================================================

// RecordSale validates and applies one sale. On success the product's
// stock is decremented, a snapshot record is appended to the journal, and
// the sale becomes the next undo target. On failure nothing changes.
func (s *Service) RecordSale(code string, quantity int) (SaleRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		return SaleRecord{}, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidInput, quantity)
	}
	p, ok := s.registry.Find(code)
	if !ok {
		return SaleRecord{}, fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	if quantity > p.Stock {
		return SaleRecord{}, &InsufficientStockError{
			Code:      code,
			Requested: quantity,
			Available: p.Stock,
		}
	}

	p.Stock -= quantity
	rec := SaleRecord{
		ID:       NewRecordID(),
		Code:     p.Code,
		Name:     p.Name,
		Quantity: quantity,
		Total:    int64(quantity) * p.Price,
		Date:     s.clock(),
	}
	s.journal.Append(rec)
	s.undo.Push(UndoEntry{Code: p.Code, Quantity: quantity, RecordID: rec.ID})

	s.logger.Info("sale recorded",
		slog.String("code", p.Code),
		slog.Int("quantity", quantity),
		slog.Int64("total", rec.Total),
		slog.Int("stock_left", p.Stock),
	)
	return rec, nil
}

// UndoStatus classifies the outcome of an undo.
type UndoStatus int

const (
	// UndoOK: stock restored and journal record removed.
	UndoOK UndoStatus = iota

	// UndoProductMissing: the product was deleted after the sale, so stock
	// restoration was skipped. Journal removal was still attempted; check
	// JournalRemoved.
	UndoProductMissing

	// UndoNoJournalMatch: stock was restored but no journal record matched.
	UndoNoJournalMatch
)

func (st UndoStatus) String() string {
	switch st {
	case UndoOK:
		return "ok"
	case UndoProductMissing:
		return "product_missing"
	case UndoNoJournalMatch:
		return "no_journal_match"
	default:
		return fmt.Sprintf("status(%d)", int(st))
	}
}

// UndoResult reports what an undo actually did.
type UndoResult struct {
	Status         UndoStatus
	Entry          UndoEntry
	StockRestored  bool
	JournalRemoved bool
	Removed        SaleRecord // zero value when JournalRemoved is false
}

// UndoLastSale reverses the most recent sale. ErrNothingToUndo is the
// only error; every other outcome is reported through UndoResult.
func (s *Service) UndoLastSale() (UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.undo.Pop()
	if !ok {
		return UndoResult{}, ErrNothingToUndo
	}

	res := UndoResult{Entry: entry}

	p, found := s.registry.Find(entry.Code)
	if found {
		p.Stock += entry.Quantity
		res.StockRestored = true
	}

	if s.undoByID {
		res.Removed, res.JournalRemoved = s.journal.RemoveByID(entry.RecordID)
	} else {
		res.Removed, res.JournalRemoved = s.journal.RemoveFirstMatching(entry.Code, entry.Quantity)
	}

	switch {
	case !found:
		res.Status = UndoProductMissing
	case !res.JournalRemoved:
		res.Status = UndoNoJournalMatch
	default:
		res.Status = UndoOK
	}

	s.logger.Info("sale undone",
		slog.String("code", entry.Code),
		slog.Int("quantity", entry.Quantity),
		slog.String("status", res.Status.String()),
	)
	return res, nil
}

// ListSales returns a snapshot of the journal in order.
func (s *Service) ListSales() []SaleRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.journal.List()
}

// =============================================================================
// REPORTS
// =============================================================================

// Report filters the journal by the given window around the reference
// date. Records come back in journal order. Window values outside the
// three defined constants are rejected, not defaulted.
func (s *Service) Report(w Window, ref Date) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := Report{
		Window:       w,
		Reference:    ref,
		JournalEmpty: s.journal.Len() == 0,
	}

	switch w {
	case WindowDaily:
		rep.From, rep.To = ref, ref
		rep.Records = s.journal.FilterByDate(func(d Date) bool {
			return d.Equal(ref)
		})
	case WindowWeekly:
		start := ref.StartOfWeek()
		end := start.AddDays(6)
		rep.From, rep.To = start, end
		rep.Records = s.journal.FilterByDate(func(d Date) bool {
			return !d.Before(start) && !d.After(end)
		})
	case WindowMonthly:
		rep.From = NewDate(ref.Year(), ref.Month(), 1)
		rep.To = rep.From.AddMonths(1).AddDays(-1)
		rep.Records = s.journal.FilterByDate(func(d Date) bool {
			return d.SameMonth(ref)
		})
	default:
		return Report{}, fmt.Errorf("%w: unknown report window %s", ErrInvalidInput, w)
	}

	rep.Summary = summarize(rep.Records)
	return rep, nil
}

// =============================================================================
// PERSISTENCE BOUNDARY
// =============================================================================

// LoadAll replaces both collections with the stored snapshots. The undo
// stack is reset: its entries refer to state that no longer exists.
func (s *Service) LoadAll(ctx context.Context) error {
	products, err := s.store.LoadProducts(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	sales, err := s.store.LoadSales(ctx)
	if err != nil {
		return fmt.Errorf("load sales: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry.Replace(products)
	s.journal.Replace(sales)
	s.undo.Reset()

	s.logger.Info("snapshot loaded",
		slog.Int("products", len(products)),
		slog.Int("sales", len(sales)),
	)
	return nil
}

// SaveAll writes both collections to the store, fully overwriting the
// previous snapshots.
func (s *Service) SaveAll(ctx context.Context) error {
	s.mu.Lock()
	products := s.registry.List()
	sales := s.journal.List()
	s.mu.Unlock()

	if err := s.store.SaveProducts(ctx, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	if err := s.store.SaveSales(ctx, sales); err != nil {
		return fmt.Errorf("save sales: %w", err)
	}

	s.logger.Info("snapshot saved",
		slog.Int("products", len(products)),
		slog.Int("sales", len(sales)),
	)
	return nil
}
