// SPDX-License-Identifier: MIT

package vmptlib

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/vmpt/region"
	"github.com/katalvlaran/vmpt/vertex"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Arity is the fixed number of positional arguments of GetSmallestRegion.
const Arity = 5

// ErrArgument is the generic argument-error signal of the boundary. Every
// error returned by a Binding matches it with errors.Is.
var ErrArgument = errors.New("vmptlib: bad argument")

// Binding is a configured call boundary.
type Binding struct {
	opts []region.Option
}

// New returns a Binding that forwards opts to region.SelectBestPerLine.
func New(opts ...region.Option) *Binding {
	return &Binding{opts: opts}
}

var defaultBinding = New()

// GetSmallestRegion calls the default Binding.
//
// Arguments, in order:
//
//	int                                        number of lines
//	[]int                                      line id per point
//	[]int                                      region id per point
//	[][]int                                    vertex rows per region
//	*vertex.Table | mat.Matrix | [][3]float64  vertex coordinates
func GetSmallestRegion(args ...any) (points, scores []any, err error) {
	return defaultBinding.GetSmallestRegion(args...)
}

// GetSmallestRegion validates args and runs the selector. On any error both
// result slices are nil.
func (b *Binding) GetSmallestRegion(args ...any) (points, scores []any, err error) {
	if len(args) != Arity {
		return nil, nil, fmt.Errorf("%w: expected %d arguments, got %d", ErrArgument, Arity, len(args))
	}
	numLines, ok := args[0].(int)
	if !ok {
		return nil, nil, typeError(0, "int", args[0])
	}
	lineIDs, ok := args[1].([]int)
	if !ok {
		return nil, nil, typeError(1, "[]int", args[1])
	}
	regionIDs, ok := args[2].([]int)
	if !ok {
		return nil, nil, typeError(2, "[]int", args[2])
	}
	regions, ok := args[3].([][]int)
	if !ok {
		return nil, nil, typeError(3, "[][]int", args[3])
	}
	tbl, err := toTable(args[4])
	if err != nil {
		return nil, nil, err
	}

	sel, err := region.SelectBestPerLine(numLines, lineIDs, regionIDs, regions, tbl, b.opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrArgument, err)
	}

	points = make([]any, sel.Len())
	scores = make([]any, sel.Len())
	for l := range points {
		p, s, ok := sel.Selected(l)
		if !ok {
			continue
		}
		points[l] = p
		scores[l] = s.Legacy()
	}

	return points, scores, nil
}

// toTable accepts the supported vertex representations. Vertices are taken
// as-is, NaN and Inf included, the way a tessellator emits them.
func toTable(arg any) (*vertex.Table, error) {
	var (
		tbl *vertex.Table
		err error
	)
	switch v := arg.(type) {
	case *vertex.Table:
		if v == nil {
			return nil, typeError(4, "non-nil *vertex.Table", arg)
		}

		return v, nil
	case [][3]float64:
		rows := make([]r3.Vec, len(v))
		for i, c := range v {
			rows[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
		}
		tbl, err = vertex.FromRows(rows, vertex.WithAllowNaNInf())
	case mat.Matrix:
		tbl, err = vertex.FromMatrix(v, vertex.WithAllowNaNInf())
	default:
		return nil, typeError(4, "vertex table", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: argument 4: %w", ErrArgument, err)
	}

	return tbl, nil
}

func typeError(pos int, want string, got any) error {
	return fmt.Errorf("%w: argument %d: want %s, got %T", ErrArgument, pos, want, got)
}
