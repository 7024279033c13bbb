// SPDX-License-Identifier: MIT

// Package lor models a line of response: the segment between the two
// detector hits of one coincidence event, sampled into evenly spaced seed
// points for tessellation.
package lor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBadSpacing indicates a spacing that is not a positive finite number.
var ErrBadSpacing = errors.New("lor: spacing must be positive and finite")

// Line is one line of response from A to B.
type Line struct {
	A, B r3.Vec
	ID   int
}

// New returns the line from a to b with the given id.
func New(a, b r3.Vec, id int) Line {
	return Line{A: a, B: b, ID: id}
}

// Length returns |B − A|.
func (l Line) Length() float64 {
	return r3.Norm(r3.Sub(l.B, l.A))
}

// NumPoints returns floor(Length/spacing) + 1, the number of seed points
// Discretize emits for spacing.
func (l Line) NumPoints(spacing float64) (int, error) {
	if !(spacing > 0) || math.IsInf(spacing, 0) {
		return 0, fmt.Errorf("line %d: spacing %v: %w", l.ID, spacing, ErrBadSpacing)
	}

	return int(math.Floor(l.Length()/spacing)) + 1, nil
}

// Discretize samples the line into NumPoints(spacing) points
//
//	x_i = A + i/(n−1)·(B − A),  i = 0..n−1
//
// so both endpoints are included. A line shorter than spacing yields A only.
func (l Line) Discretize(spacing float64) ([]r3.Vec, error) {
	n, err := l.NumPoints(spacing)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return []r3.Vec{l.A}, nil
	}

	v := r3.Sub(l.B, l.A)
	r := 1.0 / float64(n-1)
	pts := make([]r3.Vec, n)
	for i := range pts {
		pts[i] = r3.Add(l.A, r3.Scale(r*float64(i), v))
	}

	return pts, nil
}
