package ledger

// UndoStack is a LIFO history of reversible sales. Depth is unbounded,
// limited only by the number of sales recorded since startup: the stack
// is transient and never persisted, so undo history does not survive a
// restart.
type UndoStack struct {
	entries []UndoEntry
}

func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// Push records a reversible sale.
func (s *UndoStack) Push(e UndoEntry) {
	s.entries = append(s.entries, e)
}

// Pop removes and returns the most recent entry. The second return value
// is false when the stack is empty.
func (s *UndoStack) Pop() (UndoEntry, bool) {
	if len(s.entries) == 0 {
		return UndoEntry{}, false
	}
	e := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return e, true
}

// IsEmpty reports whether there is anything to undo.
func (s *UndoStack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of undoable sales.
func (s *UndoStack) Len() int {
	return len(s.entries)
}

// Reset discards all entries. Called when a snapshot load replaces the
// collections the entries refer to.
func (s *UndoStack) Reset() {
	s.entries = nil
}
