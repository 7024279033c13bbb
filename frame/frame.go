// SPDX-License-Identifier: MIT

package frame

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/vmpt/lor"
	"github.com/katalvlaran/vmpt/region"
	"github.com/katalvlaran/vmpt/vertex"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Columns is the minimum number of values in a raw LOR row.
const Columns = 7

// Sentinel errors.
var (
	// ErrBadShape indicates an empty frame or rows with fewer than Columns values.
	ErrBadShape = errors.New("frame: rows must be non-empty with at least 7 columns")

	// ErrNilTessellator indicates that PointsOfInterest got no Tessellator.
	ErrNilTessellator = errors.New("frame: tessellator is nil")

	// ErrTessellation indicates a diagram that does not match the seeds.
	ErrTessellation = errors.New("frame: tessellation does not match seed points")

	// ErrPointOutOfRange indicates a seed index outside the seed set.
	ErrPointOutOfRange = errors.New("frame: point index out of range")
)

// Tessellation is the Voronoi diagram of a seed set.
//
// PointRegion[i] is the region of seed i, Regions[r] lists the vertex rows
// of region r (region.MissingVertex for vertices at infinity) and Vertices
// holds their coordinates.
type Tessellation struct {
	PointRegion []int
	Regions     [][]int
	Vertices    *vertex.Table
}

// Tessellator builds the Voronoi diagram of a set of points.
type Tessellator interface {
	Tessellate(points []r3.Vec) (*Tessellation, error)
}

// TessellatorFunc adapts a function to Tessellator.
type TessellatorFunc func(points []r3.Vec) (*Tessellation, error)

// Tessellate calls f(points).
func (f TessellatorFunc) Tessellate(points []r3.Vec) (*Tessellation, error) { return f(points) }

// Frame is an immutable set of lines of response.
type Frame struct {
	lines []lor.Line
	time  float64
}

// New builds a frame from an r×c matrix of raw rows (c ≥ Columns).
// Extra columns are ignored.
func New(rows mat.Matrix) (*Frame, error) {
	if rows == nil {
		return nil, ErrBadShape
	}
	r, c := rows.Dims()
	if r == 0 || c < Columns {
		return nil, fmt.Errorf("New(%dx%d): %w", r, c, ErrBadShape)
	}

	f := &Frame{lines: make([]lor.Line, r)}
	var total float64
	for i := 0; i < r; i++ {
		a := r3.Vec{X: rows.At(i, 0), Y: rows.At(i, 1), Z: rows.At(i, 2)}
		b := r3.Vec{X: rows.At(i, 3), Y: rows.At(i, 4), Z: rows.At(i, 5)}
		f.lines[i] = lor.New(a, b, i)
		total += rows.At(i, 6)
	}
	f.time = total / float64(r)

	return f, nil
}

// Time returns the mean event time of the frame.
func (f *Frame) Time() float64 { return f.time }

// NumLines returns the number of lines in the frame.
func (f *Frame) NumLines() int { return len(f.lines) }

// Lines returns a copy of the frame's lines.
func (f *Frame) Lines() []lor.Line {
	out := make([]lor.Line, len(f.lines))
	copy(out, f.lines)

	return out
}

// Seeds are the discretised lines of a frame. Points[i] lies on line
// LineIDs[i]; LineIDs is non-decreasing.
type Seeds struct {
	Points  []r3.Vec
	LineIDs []int
}

// Len returns the number of seed points.
func (s *Seeds) Len() int { return len(s.Points) }

// At returns the seed points at the given indices.
func (s *Seeds) At(indices []int) ([]r3.Vec, error) {
	out := make([]r3.Vec, len(indices))
	for k, i := range indices {
		if i < 0 || i >= len(s.Points) {
			return nil, fmt.Errorf("index %d of %d: %w", i, len(s.Points), ErrPointOutOfRange)
		}
		out[k] = s.Points[i]
	}

	return out, nil
}

// SeedPoints discretises every line with the given spacing.
func (f *Frame) SeedPoints(spacing float64) (*Seeds, error) {
	total := 0
	for _, l := range f.lines {
		n, err := l.NumPoints(spacing)
		if err != nil {
			return nil, err
		}
		total += n
	}

	s := &Seeds{
		Points:  make([]r3.Vec, 0, total),
		LineIDs: make([]int, 0, total),
	}
	for _, l := range f.lines {
		pts, err := l.Discretize(spacing)
		if err != nil {
			return nil, err
		}
		s.Points = append(s.Points, pts...)
		for range pts {
			s.LineIDs = append(s.LineIDs, l.ID)
		}
	}

	return s, nil
}

// Interest is the outcome of PointsOfInterest.
type Interest struct {
	Seeds     *Seeds
	Selection *region.Selection
}

// Location is the selected seed of one line.
type Location struct {
	Line  int
	Point r3.Vec
	Score region.Score
}

// Locations returns the selected seed of every line that has one, in line order.
func (in *Interest) Locations() []Location {
	out := make([]Location, 0, in.Selection.Count())
	for l := 0; l < in.Selection.Len(); l++ {
		p, s, ok := in.Selection.Selected(l)
		if !ok {
			continue
		}
		out = append(out, Location{Line: l, Point: in.Seeds.Points[p], Score: s})
	}

	return out
}

// PointsOfInterest seeds the frame, tessellates the seeds and selects the
// seed with the most compact region on every line.
func (f *Frame) PointsOfInterest(spacing float64, t Tessellator, opts ...region.Option) (*Interest, error) {
	if t == nil {
		return nil, ErrNilTessellator
	}
	seeds, err := f.SeedPoints(spacing)
	if err != nil {
		return nil, err
	}
	tess, err := t.Tessellate(seeds.Points)
	if err != nil {
		return nil, fmt.Errorf("tessellate %d seeds: %w", seeds.Len(), err)
	}
	if tess == nil || len(tess.PointRegion) != seeds.Len() {
		return nil, ErrTessellation
	}

	opts = append([]region.Option{region.WithSortedInput()}, opts...)
	sel, err := region.SelectBestPerLine(f.NumLines(), seeds.LineIDs, tess.PointRegion, tess.Regions, tess.Vertices, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTessellation, err)
	}

	return &Interest{Seeds: seeds, Selection: sel}, nil
}
