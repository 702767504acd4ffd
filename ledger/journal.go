/*
journal.go - Insertion-ordered sales journal

PURPOSE:
  Records every sale in the order it happened. Append-only in normal
  operation; the only removal path is undo, which takes out exactly one
  record per call.

MATCHING POLICY:
  Undo locates its journal record by value: the FIRST record (in
  insertion order) whose code and quantity both match. Two sales of the
  same product and quantity are therefore indistinguishable to value
  matching, and undo removes the earlier one. RemoveByID exists for the
  identity-matching variant that closes this gap.

SEE ALSO:
  - undo.go:    Where the matching key comes from
  - service.go: UndoLastSale, the only caller of the removal methods
*/
package ledger

// Journal is an insertion-ordered collection of sale records.
// Not safe for concurrent use; Service serializes access.
type Journal struct {
	records []SaleRecord
}

func NewJournal() *Journal {
	return &Journal{}
}

// Append adds a record at the end of the journal.
func (j *Journal) Append(rec SaleRecord) {
	j.records = append(j.records, rec)
}

// RemoveFirstMatching removes the first record, in insertion order, whose
// code and quantity both match. It returns the removed record and whether
// a removal occurred.
func (j *Journal) RemoveFirstMatching(code string, quantity int) (SaleRecord, bool) {
	for i, rec := range j.records {
		if rec.Code == code && rec.Quantity == quantity {
			j.records = append(j.records[:i], j.records[i+1:]...)
			return rec, true
		}
	}
	return SaleRecord{}, false
}

// RemoveByID removes the record with the given ID. It returns the removed
// record and whether a removal occurred.
func (j *Journal) RemoveByID(id string) (SaleRecord, bool) {
	for i, rec := range j.records {
		if rec.ID == id {
			j.records = append(j.records[:i], j.records[i+1:]...)
			return rec, true
		}
	}
	return SaleRecord{}, false
}

// FilterByDate returns all records for which keep(date) holds, in
// insertion order. The result is never nil.
func (j *Journal) FilterByDate(keep func(Date) bool) []SaleRecord {
	out := []SaleRecord{}
	for _, rec := range j.records {
		if keep(rec.Date) {
			out = append(out, rec)
		}
	}
	return out
}

// List returns a snapshot of all records in journal order.
func (j *Journal) List() []SaleRecord {
	out := make([]SaleRecord, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the number of records.
func (j *Journal) Len() int {
	return len(j.records)
}

// Replace swaps the journal contents for a loaded snapshot.
func (j *Journal) Replace(records []SaleRecord) {
	j.records = make([]SaleRecord, len(records))
	copy(j.records, records)
}
