/*
Package csvfile persists ledger snapshots as CSV flat files.

PURPOSE:
  The canonical on-disk format: one file for the product catalog, one for
  the sales journal. Each file has a single header row and one row per
  record, in collection order.

FORMAT:
  products: code,name,stock,price        (stock, price: integers)
  sales:    code,name,quantity,total,date (date: YYYY-MM-DD)

LOAD SEMANTICS:
  - Missing file: empty collection, no error. A fresh install starts empty.
  - Malformed integer or date: ParseError naming file, line, and field.
    Rows are never skipped or defaulted.

SAVE SEMANTICS:
  Save truncates and rewrites the whole file. No append, no merge.

RECORD IDS:
  The sales file format predates record IDs and does not carry them.
  Records are assigned fresh IDs on load; the sqlite store persists the
  real ones.

SEE ALSO:
  - ledger/store.go: The interface this package implements
  - store/sqlite:    Database-backed alternative
*/
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/toko/stock-engine/ledger"
)

var productHeader = []string{"code", "name", "stock", "price"}
var salesHeader = []string{"code", "name", "quantity", "total", "date"}

// Store reads and writes ledger snapshots as CSV files.
type Store struct {
	productsPath string
	salesPath    string
}

// New creates a CSV store over the two given file paths. The files need
// not exist yet; they are created on first save.
func New(productsPath, salesPath string) *Store {
	return &Store{productsPath: productsPath, salesPath: salesPath}
}

// =============================================================================
// PRODUCTS
// =============================================================================

func (s *Store) LoadProducts(_ context.Context) ([]ledger.Product, error) {
	rows, err := readRows(s.productsPath, productHeader)
	if err != nil {
		return nil, err
	}

	products := make([]ledger.Product, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // 1-based, after the header row
		stock, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, &ledger.ParseError{File: s.productsPath, Line: line, Field: "stock", Err: err}
		}
		price, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, &ledger.ParseError{File: s.productsPath, Line: line, Field: "price", Err: err}
		}
		products = append(products, ledger.Product{
			Code:  row[0],
			Name:  row[1],
			Stock: stock,
			Price: price,
		})
	}
	return products, nil
}

func (s *Store) SaveProducts(_ context.Context, products []ledger.Product) error {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{
			p.Code,
			p.Name,
			strconv.Itoa(p.Stock),
			strconv.FormatInt(p.Price, 10),
		})
	}
	return writeRows(s.productsPath, productHeader, rows)
}

// =============================================================================
// SALES
// =============================================================================

func (s *Store) LoadSales(_ context.Context) ([]ledger.SaleRecord, error) {
	rows, err := readRows(s.salesPath, salesHeader)
	if err != nil {
		return nil, err
	}

	sales := make([]ledger.SaleRecord, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		quantity, err := strconv.Atoi(row[2])
		if err != nil {
			return nil, &ledger.ParseError{File: s.salesPath, Line: line, Field: "quantity", Err: err}
		}
		total, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, &ledger.ParseError{File: s.salesPath, Line: line, Field: "total", Err: err}
		}
		date, err := ledger.ParseDate(row[4])
		if err != nil {
			return nil, &ledger.ParseError{File: s.salesPath, Line: line, Field: "date", Err: err}
		}
		sales = append(sales, ledger.SaleRecord{
			ID:       ledger.NewRecordID(),
			Code:     row[0],
			Name:     row[1],
			Quantity: quantity,
			Total:    total,
			Date:     date,
		})
	}
	return sales, nil
}

func (s *Store) SaveSales(_ context.Context, sales []ledger.SaleRecord) error {
	rows := make([][]string, 0, len(sales))
	for _, rec := range sales {
		rows = append(rows, []string{
			rec.Code,
			rec.Name,
			strconv.Itoa(rec.Quantity),
			strconv.FormatInt(rec.Total, 10),
			rec.Date.String(),
		})
	}
	return writeRows(s.salesPath, salesHeader, rows)
}

// =============================================================================
// CSV PLUMBING
// =============================================================================

// readRows returns the data rows of a CSV file, header excluded.
// A missing file yields no rows and no error. A present file must open
// with the expected header row; a file whose first row is data would
// otherwise silently lose that record.
func readRows(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)

	all, err := reader.ReadAll()
	if err != nil {
		return nil, &ledger.ParseError{File: path, Line: 0, Field: "row", Err: err}
	}
	if len(all) == 0 {
		return nil, nil
	}
	for i, field := range all[0] {
		if field != header[i] {
			return nil, &ledger.ParseError{
				File:  path,
				Line:  1,
				Field: "header",
				Err:   fmt.Errorf("expected column %q, got %q", header[i], field),
			}
		}
	}
	return all[1:], nil
}

func writeRows(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		f.Close()
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
