package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toko/stock-engine/ledger"
)

func sampleProducts() []ledger.Product {
	return []ledger.Product{
		{Code: "P1", Name: "Pen", Stock: 10, Price: 5},
		{Code: "P2", Name: "Pencil", Stock: 20, Price: 3},
		{Code: "N1", Name: "Notebook", Stock: 7, Price: 25},
	}
}

func newTestRegistry(t *testing.T) *ledger.Registry {
	t.Helper()
	r := ledger.NewRegistry()
	for _, p := range sampleProducts() {
		require.NoError(t, r.Insert(p))
	}
	return r
}

func TestRegistry_InsertValidation(t *testing.T) {
	r := ledger.NewRegistry()

	assert.ErrorIs(t, r.Insert(ledger.Product{Name: "no code"}), ledger.ErrInvalidInput)
	assert.ErrorIs(t, r.Insert(ledger.Product{Code: "X", Stock: -1}), ledger.ErrInvalidInput)
	assert.ErrorIs(t, r.Insert(ledger.Product{Code: "X", Price: -1}), ledger.ErrInvalidInput)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_PreservesInsertionOrder(t *testing.T) {
	r := newTestRegistry(t)

	codes := []string{}
	for _, p := range r.List() {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"P1", "P2", "N1"}, codes)
}

func TestRegistry_UpdatePartialFields(t *testing.T) {
	// GIVEN: An existing product
	r := newTestRegistry(t)

	// WHEN: Updating only the stock
	stock := 42
	require.NoError(t, r.Update("P1", ledger.ProductUpdate{Stock: &stock}))

	// THEN: Other fields are untouched
	p, ok := r.Find("P1")
	require.True(t, ok)
	assert.Equal(t, 42, p.Stock)
	assert.Equal(t, "Pen", p.Name)
	assert.Equal(t, int64(5), p.Price)
}

func TestRegistry_UpdateUnknownCode(t *testing.T) {
	r := newTestRegistry(t)

	name := "Renamed"
	err := r.Update("nope", ledger.ProductUpdate{Name: &name})

	assert.ErrorIs(t, err, ledger.ErrProductNotFound)
}

func TestRegistry_UpdateRejectsNegativeStock(t *testing.T) {
	r := newTestRegistry(t)

	stock := -5
	err := r.Update("P1", ledger.ProductUpdate{Stock: &stock})

	assert.ErrorIs(t, err, ledger.ErrInvalidInput)
	p, _ := r.Find("P1")
	assert.Equal(t, 10, p.Stock)
}

func TestRegistry_Delete(t *testing.T) {
	r := newTestRegistry(t)

	assert.True(t, r.Delete("P2"))
	assert.False(t, r.Delete("P2"), "second delete finds nothing")
	assert.Equal(t, 2, r.Len())

	_, ok := r.Find("P2")
	assert.False(t, ok)
}

func TestRegistry_SearchMatchesCodeOrNameCaseInsensitively(t *testing.T) {
	r := newTestRegistry(t)

	// "pen" hits Pen and Pencil by name
	names := []string{}
	for _, p := range r.Search("PEN") {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Pen", "Pencil"}, names, "matches in registry order")

	// "n1" hits Notebook by code
	byCode := r.Search("n1")
	require.Len(t, byCode, 1)
	assert.Equal(t, "Notebook", byCode[0].Name)

	// No match is an empty list, not nil semantics the caller must guess at
	assert.Empty(t, r.Search("zzz"))
}

func TestRegistry_FindReturnsFirstMatchWithDuplicates(t *testing.T) {
	r := ledger.NewPermissiveRegistry()
	require.NoError(t, r.Insert(ledger.Product{Code: "D", Name: "First", Stock: 1, Price: 1}))
	require.NoError(t, r.Insert(ledger.Product{Code: "D", Name: "Second", Stock: 2, Price: 2}))

	p, ok := r.Find("D")
	require.True(t, ok)
	assert.Equal(t, "First", p.Name)

	// Delete also removes the first match only
	assert.True(t, r.Delete("D"))
	p, ok = r.Find("D")
	require.True(t, ok)
	assert.Equal(t, "Second", p.Name)
}

func TestRegistry_ListIsASnapshot(t *testing.T) {
	// Mutating a listed copy must not leak back into the registry.
	r := newTestRegistry(t)

	list := r.List()
	list[0].Stock = 999

	p, _ := r.Find("P1")
	assert.Equal(t, 10, p.Stock)
}
