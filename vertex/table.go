// SPDX-License-Identifier: MIT

package vertex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dims is the fixed column count of a vertex table.
const Dims = 3

// Table is a read-only row-major N×3 coordinate buffer.
// Row i occupies data[i*3 : i*3+3].
type Table struct {
	n    int
	data []float64
}

// Options configures table construction.
type Options struct {
	AllowNaNInf bool // skip the finite-value sweep
}

// Option mutates Options.
type Option func(*Options)

// WithAllowNaNInf disables the finite-coordinate check.
func WithAllowNaNInf() Option {
	return func(o *Options) {
		o.AllowNaNInf = true
	}
}

// DefaultOptions returns the strict numeric policy.
func DefaultOptions() Options {
	return Options{AllowNaNInf: false}
}

// NewTable copies data into a new Table.
//
// An empty buffer gives an empty table, which Contains no row.
//
// Errors:
//   - ErrBadShape if len(data) is not divisible by 3.
//   - ErrNaNInf (wrapped with the row index) under the strict policy.
func NewTable(data []float64, opts ...Option) (*Table, error) {
	if len(data)%Dims != 0 {
		return nil, fmt.Errorf("NewTable(len=%d): %w", len(data), ErrBadShape)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return build(buf, opts)
}

// FromRows builds a Table from one vector per vertex.
func FromRows(rows []r3.Vec, opts ...Option) (*Table, error) {
	buf := make([]float64, 0, len(rows)*Dims)
	for _, v := range rows {
		buf = append(buf, v.X, v.Y, v.Z)
	}

	return build(buf, opts)
}

// FromMatrix copies an N×3 gonum matrix into a Table. A matrix without rows
// gives an empty table whatever its column count.
func FromMatrix(m mat.Matrix, opts ...Option) (*Table, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	r, c := m.Dims()
	if r > 0 && c != Dims {
		return nil, fmt.Errorf("FromMatrix(%dx%d): %w", r, c, ErrBadShape)
	}
	buf := make([]float64, r*Dims)
	for i := 0; i < r; i++ {
		mat.Row(buf[i*Dims:(i+1)*Dims], i, m)
	}

	return build(buf, opts)
}

// build applies the numeric policy to an owned buffer.
func build(buf []float64, opts []Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.AllowNaNInf {
		for k, x := range buf {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("row %d: %w", k/Dims, ErrNaNInf)
			}
		}
	}

	return &Table{n: len(buf) / Dims, data: buf}, nil
}

// Len returns the number of vertex rows.
func (t *Table) Len() int { return t.n }

// Contains reports whether i is a valid row index.
func (t *Table) Contains(i int) bool { return i >= 0 && i < t.n }

// Row returns the coordinates of row i, or ErrOutOfRange.
func (t *Table) Row(i int) (r3.Vec, error) {
	if !t.Contains(i) {
		return r3.Vec{}, fmt.Errorf("Row(%d) of %d: %w", i, t.n, ErrOutOfRange)
	}

	return t.At(i), nil
}

// At returns row i without a bounds check. Callers must have validated i
// (see Contains); an invalid index panics like any slice access.
func (t *Table) At(i int) r3.Vec {
	off := i * Dims

	return r3.Vec{X: t.data[off], Y: t.data[off+1], Z: t.data[off+2]}
}

// Matrix returns a gonum view of the table. The view shares the buffer and
// must not be mutated. An empty table has no view and returns nil.
func (t *Table) Matrix() *mat.Dense {
	if t.n == 0 {
		return nil
	}

	return mat.NewDense(t.n, Dims, t.data)
}
