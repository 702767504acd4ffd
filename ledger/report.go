/*
report.go - Time-windowed sales reports

PURPOSE:
  Filters the sales journal by a calendar window relative to a reference
  date and summarizes the result.

WINDOWS:
  Daily:   records dated exactly on the reference date.
  Weekly:  records within the Monday-anchored 7-day window containing
           the reference date.
  Monthly: records sharing month and year with the reference date.

EMPTY RESULTS:
  An empty record list can mean "no sales in this window" or "no sales at
  all". The report carries JournalEmpty so adapters can tell the two
  apart when rendering.
*/
package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Window selects the calendar span of a report.
type Window int

const (
	WindowDaily Window = iota
	WindowWeekly
	WindowMonthly
)

func (w Window) String() string {
	switch w {
	case WindowDaily:
		return "daily"
	case WindowWeekly:
		return "weekly"
	case WindowMonthly:
		return "monthly"
	default:
		return fmt.Sprintf("window(%d)", int(w))
	}
}

// ParseWindow maps "daily", "weekly", "monthly" to a Window.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(s) {
	case "daily":
		return WindowDaily, nil
	case "weekly":
		return WindowWeekly, nil
	case "monthly":
		return WindowMonthly, nil
	default:
		return 0, fmt.Errorf("%w: unknown report window %q", ErrInvalidInput, s)
	}
}

// Report is the result of a windowed journal query. Records are in
// journal order, never re-sorted.
type Report struct {
	Window    Window
	Reference Date
	From      Date
	To        Date
	Records   []SaleRecord

	// JournalEmpty distinguishes "no sales in this window" from
	// "no sales recorded at all".
	JournalEmpty bool

	Summary ReportSummary
}

// ReportSummary aggregates the records of one report.
type ReportSummary struct {
	Sales       int
	UnitsSold   int
	Revenue     decimal.Decimal
	AverageSale decimal.Decimal // revenue / sales, zero when there are no sales
}

// summarize computes the aggregate figures for a record set. Division is
// the one place integer arithmetic does not suffice, hence decimal.
func summarize(records []SaleRecord) ReportSummary {
	sum := ReportSummary{
		Revenue:     decimal.Zero,
		AverageSale: decimal.Zero,
	}
	for _, rec := range records {
		sum.Sales++
		sum.UnitsSold += rec.Quantity
		sum.Revenue = sum.Revenue.Add(decimal.NewFromInt(rec.Total))
	}
	if sum.Sales > 0 {
		sum.AverageSale = sum.Revenue.Div(decimal.NewFromInt(int64(sum.Sales))).Round(2)
	}
	return sum
}
