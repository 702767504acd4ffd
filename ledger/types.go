/*
Package ledger is the core of the stock engine: an in-memory product
registry, an insertion-ordered sales journal, and a single-step undo
stack, orchestrated by Service.

PURPOSE:
  This file defines the data model. Everything else in the package
  operates on these types.

KEY TYPES:
  Product:    Catalog entry keyed by a unique code. Stock is mutated in
              place by sales and undo.
  SaleRecord: Immutable snapshot of one sale (name and total are captured
              at sale time; later product edits do not touch it).
  UndoEntry:  Minimal data needed to reverse one sale's stock effect and
              locate the matching journal record.
  Date:       Calendar day with no time-of-day, always UTC.

DESIGN PRINCIPLES:
  1. Snapshots: SaleRecord copies the product name and computes the total
     at sale time. Price changes never rewrite history.
  2. Integer money: prices and totals are integers in the smallest
     currency unit. No floats in the ledger.
  3. Identity: every SaleRecord carries a unique ID, so undo can be
     switched from value matching to identity matching without changing
     the record shape.

SEE ALSO:
  - registry.go: Product collection
  - journal.go:  SaleRecord collection
  - service.go:  The mutation protocol
*/
package ledger

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// PRODUCT
// =============================================================================

// Product is a catalog entry. Code is unique and immutable once created.
// Invariant: Stock >= 0 at all times.
type Product struct {
	Code  string
	Name  string
	Stock int
	Price int64 // unit price in the smallest currency unit
}

// ProductUpdate carries partial field changes for Registry.Update.
// A nil field means "unchanged".
type ProductUpdate struct {
	Name  *string
	Stock *int
	Price *int64
}

// =============================================================================
// SALE RECORD
// =============================================================================

// SaleRecord is one journal entry. Name and Total are snapshots taken at
// sale time; the referenced product may later be renamed or deleted.
type SaleRecord struct {
	ID       string // unique per sale, not part of the value-matching policy
	Code     string
	Name     string
	Quantity int
	Total    int64
	Date     Date
}

// NewRecordID returns a fresh unique sale record identifier.
func NewRecordID() string {
	return uuid.NewString()
}

// UndoEntry is pushed for every successful sale and consumed by undo.
type UndoEntry struct {
	Code     string
	Quantity int
	RecordID string
}

// =============================================================================
// DATE - Calendar day, no time-of-day
// =============================================================================

// Date is a calendar day in UTC. The zero value is the zero date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar day.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// Comparison
func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) AddMonths(n int) Date { return Date{t: d.t.AddDate(0, n, 0)} }

// StartOfWeek returns the Monday of the week containing d.
func (d Date) StartOfWeek() Date {
	offset := (int(d.t.Weekday()) + 6) % 7 // Monday = 0 .. Sunday = 6
	return d.AddDays(-offset)
}

// SameMonth reports whether d and o share both month and year.
func (d Date) SameMonth(o Date) bool {
	return d.t.Year() == o.t.Year() && d.t.Month() == o.t.Month()
}

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }

func (d Date) String() string {
	return d.t.Format("2006-01-02")
}
