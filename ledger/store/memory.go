// Package store provides an in-memory ledger.Store for tests and dev.
package store

import (
	"context"
	"sync"

	"github.com/toko/stock-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	products []ledger.Product
	sales    []ledger.SaleRecord
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadProducts(_ context.Context) ([]ledger.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *Memory) SaveProducts(_ context.Context, products []ledger.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = make([]ledger.Product, len(products))
	copy(m.products, products)
	return nil
}

func (m *Memory) LoadSales(_ context.Context) ([]ledger.SaleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ledger.SaleRecord, len(m.sales))
	copy(out, m.sales)
	return out, nil
}

func (m *Memory) SaveSales(_ context.Context, sales []ledger.SaleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales = make([]ledger.SaleRecord, len(sales))
	copy(m.sales, sales)
	return nil
}
