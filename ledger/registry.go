/*
registry.go - Insertion-ordered product catalog

PURPOSE:
  Holds the product catalog in insertion order. Order matters: it is the
  display order and the order persisted snapshots are written in.

DUPLICATE CODES:
  By default the registry rejects duplicate codes on insert. A permissive
  mode keeps the legacy behavior where duplicates are allowed and every
  lookup resolves to the first match in insertion order.

SEE ALSO:
  - service.go: Sole mutator during the sale/undo protocol
  - journal.go: The other half of the ledger
*/
package ledger

import (
	"fmt"
	"strings"
)

// Registry is an insertion-ordered collection of products keyed by code.
// Not safe for concurrent use; Service serializes access.
type Registry struct {
	products        []*Product
	allowDuplicates bool
}

// NewRegistry creates a registry that rejects duplicate codes on insert.
func NewRegistry() *Registry {
	return &Registry{}
}

// NewPermissiveRegistry creates a registry that allows duplicate codes.
// Lookups then resolve to the first match in insertion order.
func NewPermissiveRegistry() *Registry {
	return &Registry{allowDuplicates: true}
}

// Insert appends a product at the end of the registry.
func (r *Registry) Insert(p Product) error {
	if p.Code == "" {
		return fmt.Errorf("%w: product code is required", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if !r.allowDuplicates {
		if _, ok := r.Find(p.Code); ok {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, p.Code)
		}
	}
	r.products = append(r.products, &p)
	return nil
}

// Find returns the first product with the given code, in insertion order.
// The returned pointer aliases registry state; mutations through it are
// observed immediately by every caller.
func (r *Registry) Find(code string) (*Product, bool) {
	for _, p := range r.products {
		if p.Code == code {
			return p, true
		}
	}
	return nil, false
}

// Update mutates in place the fields set on upd. Nil fields are unchanged.
func (r *Registry) Update(code string, upd ProductUpdate) error {
	p, ok := r.Find(code)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, code)
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}
	if upd.Price != nil && *upd.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	return nil
}

// Delete removes the first product with the given code. It reports
// whether a removal occurred.
func (r *Registry) Delete(code string) bool {
	for i, p := range r.products {
		if p.Code == code {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return true
		}
	}
	return false
}

// Search returns all products whose code or name contains the keyword,
// case-insensitively, in registry order.
func (r *Registry) Search(keyword string) []Product {
	kw := strings.ToLower(keyword)
	matches := []Product{}
	for _, p := range r.products {
		if strings.Contains(strings.ToLower(p.Code), kw) ||
			strings.Contains(strings.ToLower(p.Name), kw) {
			matches = append(matches, *p)
		}
	}
	return matches
}

// List returns a snapshot of all products in registry order.
func (r *Registry) List() []Product {
	out := make([]Product, len(r.products))
	for i, p := range r.products {
		out[i] = *p
	}
	return out
}

// Len returns the number of products.
func (r *Registry) Len() int {
	return len(r.products)
}

// Replace swaps the registry contents for a loaded snapshot.
func (r *Registry) Replace(products []Product) {
	r.products = make([]*Product, len(products))
	for i := range products {
		p := products[i]
		r.products[i] = &p
	}
}
