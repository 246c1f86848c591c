package records

import "fmt"

// SchemaError reports an expected column missing after renaming: the sheet
// layout drifted and the dataset cannot be trusted.
type SchemaError struct {
	Dataset string
	Column  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset %s: expected column %q is missing", e.Dataset, e.Column)
}

// indexer resolves canonical field names to column positions for one table.
// Required columns are bound eagerly so drift fails the whole load; optional
// columns resolve to -1 and read as empty cells.
type indexer struct {
	dataset string
	lookup  func(label string) int
	idx     map[string]int
	err     error
}

func newIndexer(dataset string, lookup func(label string) int) *indexer {
	return &indexer{dataset: dataset, lookup: lookup, idx: make(map[string]int)}
}

// require binds field to the raw column label, recording a SchemaError when
// the label is absent.
func (ix *indexer) require(field, label string) {
	pos := ix.lookup(label)
	if pos < 0 && ix.err == nil {
		ix.err = &SchemaError{Dataset: ix.dataset, Column: label}
	}
	ix.idx[field] = pos
}

// optional binds field to the raw column label when present; absent optional
// columns read as empty cells, never as an error.
func (ix *indexer) optional(field, label string) {
	ix.idx[field] = ix.lookup(label)
}

func (ix *indexer) pos(field string) int { return ix.idx[field] }
