package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toko/stock-engine/ledger"
)

func saleOn(code string, qty int, date ledger.Date) ledger.SaleRecord {
	return ledger.SaleRecord{
		ID:       ledger.NewRecordID(),
		Code:     code,
		Name:     code,
		Quantity: qty,
		Total:    int64(qty) * 5,
		Date:     date,
	}
}

func TestJournal_RemoveFirstMatching(t *testing.T) {
	// GIVEN: Two records with the same code and quantity
	j := ledger.NewJournal()
	day := ledger.NewDate(2025, time.June, 16)
	first := saleOn("P1", 3, day)
	second := saleOn("P1", 3, day)
	j.Append(first)
	j.Append(second)

	// WHEN: Removing by value
	removed, ok := j.RemoveFirstMatching("P1", 3)

	// THEN: The earlier record goes, the later one stays
	require.True(t, ok)
	assert.Equal(t, first.ID, removed.ID)
	require.Equal(t, 1, j.Len())
	assert.Equal(t, second.ID, j.List()[0].ID)
}

func TestJournal_RemoveFirstMatching_QuantityMustMatchToo(t *testing.T) {
	j := ledger.NewJournal()
	day := ledger.NewDate(2025, time.June, 16)
	j.Append(saleOn("P1", 3, day))

	_, ok := j.RemoveFirstMatching("P1", 4)

	assert.False(t, ok, "same code, different quantity is not a match")
	assert.Equal(t, 1, j.Len())
}

func TestJournal_RemoveByID(t *testing.T) {
	j := ledger.NewJournal()
	day := ledger.NewDate(2025, time.June, 16)
	first := saleOn("P1", 3, day)
	second := saleOn("P1", 3, day)
	j.Append(first)
	j.Append(second)

	removed, ok := j.RemoveByID(second.ID)

	require.True(t, ok)
	assert.Equal(t, second.ID, removed.ID)
	assert.Equal(t, first.ID, j.List()[0].ID)

	_, ok = j.RemoveByID("no-such-id")
	assert.False(t, ok)
}

func TestJournal_FilterByDatePreservesOrder(t *testing.T) {
	j := ledger.NewJournal()
	d1 := ledger.NewDate(2025, time.June, 16)
	d2 := ledger.NewDate(2025, time.June, 17)
	a := saleOn("A", 1, d1)
	b := saleOn("B", 1, d2)
	c := saleOn("C", 1, d1)
	j.Append(a)
	j.Append(b)
	j.Append(c)

	got := j.FilterByDate(func(d ledger.Date) bool { return d.Equal(d1) })

	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}
