/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Durable alternative to the CSV flat files. Same snapshot contract:
  save replaces the stored collection wholesale, load returns it in
  stored order.

KEY TABLES:
  products: Catalog snapshot, position column preserves catalog order
  sales:    Journal snapshot, position column preserves journal order

SNAPSHOT WRITES:
  Save runs DELETE + INSERT inside one transaction, so readers never see
  a half-written snapshot.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency
  and crash recovery.

USAGE:
  store, err := sqlite.New("./data/ledger.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := ledger.NewService(store, ledger.Options{})

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.

SEE ALSO:
  - ledger/store.go: Interface definition
  - store/csvfile:   Flat-file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/toko/stock-engine/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS products (
		position INTEGER PRIMARY KEY,
		code     TEXT NOT NULL,
		name     TEXT NOT NULL,
		stock    INTEGER NOT NULL,
		price    INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sales (
		position INTEGER PRIMARY KEY,
		id       TEXT NOT NULL,
		code     TEXT NOT NULL,
		name     TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		total    INTEGER NOT NULL,
		date     TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PRODUCTS
// =============================================================================

func (s *Store) LoadProducts(ctx context.Context) ([]ledger.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT code, name, stock, price FROM products ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []ledger.Product
	for rows.Next() {
		var p ledger.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Stock, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) SaveProducts(ctx context.Context, products []ledger.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return err
	}
	for i, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (position, code, name, stock, price) VALUES (?, ?, ?, ?, ?)`,
			i, p.Code, p.Name, p.Stock, p.Price)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// SALES
// =============================================================================

func (s *Store) LoadSales(ctx context.Context) ([]ledger.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, code, name, quantity, total, date FROM sales ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []ledger.SaleRecord
	for rows.Next() {
		var rec ledger.SaleRecord
		var date string
		if err := rows.Scan(&rec.ID, &rec.Code, &rec.Name, &rec.Quantity, &rec.Total, &date); err != nil {
			return nil, err
		}
		d, err := ledger.ParseDate(date)
		if err != nil {
			return nil, &ledger.ParseError{File: "sales", Line: len(sales) + 1, Field: "date", Err: err}
		}
		rec.Date = d
		sales = append(sales, rec)
	}
	return sales, rows.Err()
}

func (s *Store) SaveSales(ctx context.Context, sales []ledger.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sales`); err != nil {
		return err
	}
	for i, rec := range sales {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sales (position, id, code, name, quantity, total, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, rec.ID, rec.Code, rec.Name, rec.Quantity, rec.Total, rec.Date.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
