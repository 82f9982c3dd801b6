// Package data provides tabular numeric data and the row iterator the trainer consumes.
package data

import "errors"

// ErrExhausted is returned by Iterator.Next when no rows are left.
var ErrExhausted = errors.New("data: iterator exhausted")

// Iterator walks the rows of a collection.
type Iterator interface {
	// HasMore reports whether Next will return a row.
	HasMore() bool
	// Next returns the next row, or ErrExhausted.
	Next() ([]float64, error)
	// Reset rewinds to the first row.
	Reset()
	// Len returns the number of rows in the collection.
	Len() int
}

// SliceIterator iterates over an in-memory slice of rows.
// Rows are returned without copying.
type SliceIterator struct {
	rows [][]float64
	pos  int
}

// NewSliceIterator creates an iterator over rows.
func NewSliceIterator(rows [][]float64) *SliceIterator {
	return &SliceIterator{rows: rows}
}

func (it *SliceIterator) HasMore() bool {
	return it.pos < len(it.rows)
}

func (it *SliceIterator) Next() ([]float64, error) {
	if !it.HasMore() {
		return nil, ErrExhausted
	}
	row := it.rows[it.pos]
	it.pos++
	return row, nil
}

func (it *SliceIterator) Reset() {
	it.pos = 0
}

func (it *SliceIterator) Len() int {
	return len(it.rows)
}
