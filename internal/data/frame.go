package data

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Frame is a table of named numeric columns.
type Frame struct {
	columns []string
	rows    [][]float64
}

// NewFrame creates an empty frame with the given column names.
func NewFrame(columns ...string) *Frame {
	return &Frame{columns: slices.Clone(columns)}
}

// SetColumns replaces the column names.
func (f *Frame) SetColumns(columns []string) {
	f.columns = slices.Clone(columns)
}

// AppendRow adds a row. When columns are set, the row width must match.
func (f *Frame) AppendRow(row []float64) error {
	if len(f.columns) > 0 && len(row) != len(f.columns) {
		return fmt.Errorf("row has %d values, frame has %d columns", len(row), len(f.columns))
	}
	f.rows = append(f.rows, slices.Clone(row))
	return nil
}

// Columns returns the column names.
func (f *Frame) Columns() []string {
	return f.columns
}

// Rows returns the underlying rows.
func (f *Frame) Rows() [][]float64 {
	return f.rows
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.rows)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.columns)
}

func (f *Frame) index(name string) (int, error) {
	i := slices.Index(f.columns, name)
	if i < 0 {
		return -1, fmt.Errorf("column %q does not exist", name)
	}
	return i, nil
}

// Column returns a new single-column frame holding the named column.
func (f *Frame) Column(name string) (*Frame, error) {
	idx, err := f.index(name)
	if err != nil {
		return nil, err
	}

	out := NewFrame(name)
	out.rows = make([][]float64, len(f.rows))
	for i, row := range f.rows {
		out.rows[i] = []float64{row[idx]}
	}
	return out, nil
}

// DropColumns removes the named columns in place.
// Nothing is removed if any name is unknown.
func (f *Frame) DropColumns(names ...string) error {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		idx, err := f.index(name)
		if err != nil {
			return err
		}
		drop[idx] = true
	}

	keep := func(i int) bool { return !drop[i] }

	columns := make([]string, 0, len(f.columns)-len(drop))
	for i, c := range f.columns {
		if keep(i) {
			columns = append(columns, c)
		}
	}
	for r, row := range f.rows {
		kept := make([]float64, 0, len(columns))
		for i, v := range row {
			if keep(i) {
				kept = append(kept, v)
			}
		}
		f.rows[r] = kept
	}
	f.columns = columns
	return nil
}

// Iterator returns an iterator over the frame rows.
func (f *Frame) Iterator() Iterator {
	return NewSliceIterator(f.rows)
}

// Matrix copies the frame into a rows x columns matrix.
// It returns nil for an empty frame.
func (f *Frame) Matrix() *mat.Dense {
	if len(f.rows) == 0 || len(f.rows[0]) == 0 {
		return nil
	}
	m := mat.NewDense(len(f.rows), len(f.rows[0]), nil)
	for i, row := range f.rows {
		m.SetRow(i, row)
	}
	return m
}

// Normalize performs min-max normalization on every column.
// Constant columns become 0.
func (f *Frame) Normalize() {
	f.transformColumns(func(col []float64) {
		lo, hi := floats.Min(col), floats.Max(col)
		diff := hi - lo
		for i := range col {
			if diff != 0 {
				col[i] = (col[i] - lo) / diff
			} else {
				col[i] = 0
			}
		}
	})
}

// Standardize rescales every column to zero mean and unit standard deviation.
// Constant and single-row columns become 0.
func (f *Frame) Standardize() {
	f.transformColumns(func(col []float64) {
		mean, std := stat.MeanStdDev(col, nil)
		for i := range col {
			if std != 0 && !math.IsNaN(std) {
				col[i] = (col[i] - mean) / std
			} else {
				col[i] = 0
			}
		}
	})
}

func (f *Frame) transformColumns(fn func(col []float64)) {
	m := f.Matrix()
	if m == nil {
		return
	}
	rows, cols := m.Dims()
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		fn(col)
		m.SetCol(j, col)
	}
	for i := range f.rows {
		mat.Row(f.rows[i], i, m)
	}
}
