// SPDX-License-Identifier: MIT

package region

import (
	"fmt"
	"math"

	"github.com/katalvlaran/vmpt/vertex"
	"gonum.org/v1/gonum/spatial/r3"
)

// Centroid averages the listed vertex rows of t.
//
// MissingVertex entries are skipped but still count towards the divisor, so
// a region with missing vertices gets a centroid pulled towards the origin.
// Compactness never uses such a centroid; the rule is kept for callers that
// want the raw average.
//
// Errors:
//   - ErrEmptyRegion for an empty list.
//   - ErrVertexOutOfRange for a row outside the table.
func Centroid(rows []int, t *vertex.Table) (r3.Vec, error) {
	if t == nil {
		return r3.Vec{}, ErrNilTable
	}
	if len(rows) == 0 {
		return r3.Vec{}, ErrEmptyRegion
	}
	if err := checkRows(rows, t); err != nil {
		return r3.Vec{}, err
	}

	return centroid(rows, t), nil
}

// Compactness returns the mean distance from the listed vertices to their
// centroid. An empty list, a list holding MissingVertex, or a NaN result
// (from NaN coordinates) yields Degenerate().
//
// Complexity: O(len(rows)), two passes.
func Compactness(rows []int, t *vertex.Table) (Score, error) {
	if t == nil {
		return Score{}, ErrNilTable
	}
	if err := checkRows(rows, t); err != nil {
		return Score{}, err
	}

	return compactness(rows, t), nil
}

// checkRows rejects rows that are neither MissingVertex nor in t.
func checkRows(rows []int, t *vertex.Table) error {
	for k, row := range rows {
		if row != MissingVertex && !t.Contains(row) {
			return fmt.Errorf("vertex %d (row %d of %d): %w", k, row, t.Len(), ErrVertexOutOfRange)
		}
	}

	return nil
}

// compactness assumes rows were validated by checkRows.
func compactness(rows []int, t *vertex.Table) Score {
	n := len(rows)
	if n == 0 {
		return Degenerate()
	}
	for _, row := range rows {
		if row == MissingVertex {
			return Degenerate()
		}
	}

	c := centroid(rows, t)
	fn := float64(n)
	var sum float64
	for _, row := range rows {
		sum += r3.Norm(r3.Sub(t.At(row), c)) / fn
	}
	if math.IsNaN(sum) {
		return Degenerate()
	}

	return ValidScore(sum)
}

// centroid divides every term by the nominal count before summing.
func centroid(rows []int, t *vertex.Table) r3.Vec {
	fn := float64(len(rows))
	var c r3.Vec
	for _, row := range rows {
		if row == MissingVertex {
			continue
		}
		v := t.At(row)
		c = r3.Add(c, r3.Vec{X: v.X / fn, Y: v.Y / fn, Z: v.Z / fn})
	}

	return c
}
