package frame_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/vmpt/frame"
	"github.com/katalvlaran/vmpt/region"
	"github.com/katalvlaran/vmpt/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// focusTessellator gives every seed a two-vertex region whose compactness
// grows with the seed's distance to focus.
func focusTessellator(focus r3.Vec) frame.Tessellator {
	return frame.TessellatorFunc(func(points []r3.Vec) (*frame.Tessellation, error) {
		rows := make([]r3.Vec, 0, 2*len(points))
		tess := &frame.Tessellation{
			PointRegion: make([]int, len(points)),
			Regions:     make([][]int, len(points)),
		}
		for i, p := range points {
			half := r3.Norm(r3.Sub(p, focus)) + 0.1
			rows = append(rows, r3.Add(p, r3.Vec{X: half}), r3.Sub(p, r3.Vec{X: half}))
			tess.PointRegion[i] = i
			tess.Regions[i] = []int{2 * i, 2*i + 1}
		}
		tbl, err := vertex.FromRows(rows)
		if err != nil {
			return nil, err
		}
		tess.Vertices = tbl

		return tess, nil
	})
}

// crossRows is a frame of two lines crossing at the origin.
func crossRows() *mat.Dense {
	return mat.NewDense(2, 7, []float64{
		-2, 0, 0, 2, 0, 0, 1.0,
		0, -2, 0, 0, 2, 0, 3.0,
	})
}

// TestNewFrame checks shape validation and frame time.
func TestNewFrame(t *testing.T) {
	f, err := frame.New(crossRows())
	require.NoError(t, err)
	assert.Equal(t, 2, f.NumLines())
	assert.Equal(t, 2.0, f.Time())
	assert.Equal(t, 1, f.Lines()[1].ID)

	_, err = frame.New(mat.NewDense(1, 6, nil))
	assert.ErrorIs(t, err, frame.ErrBadShape)
	_, err = frame.New(nil)
	assert.ErrorIs(t, err, frame.ErrBadShape)
}

// TestSeedPoints verifies grouping and ordering of seeds.
func TestSeedPoints(t *testing.T) {
	f, err := frame.New(crossRows())
	require.NoError(t, err)

	seeds, err := f.SeedPoints(1)
	require.NoError(t, err)
	require.Equal(t, 10, seeds.Len())
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}, seeds.LineIDs)
	assert.Equal(t, r3.Vec{}, seeds.Points[2])

	pts, err := seeds.At([]int{0, 9})
	require.NoError(t, err)
	assert.Equal(t, []r3.Vec{{X: -2}, {Y: 2}}, pts)

	_, err = seeds.At([]int{10})
	assert.ErrorIs(t, err, frame.ErrPointOutOfRange)

	_, err = f.SeedPoints(0)
	assert.Error(t, err)
}

// TestPointsOfInterest picks the seed closest to the crossing on each line.
func TestPointsOfInterest(t *testing.T) {
	f, err := frame.New(crossRows())
	require.NoError(t, err)

	in, err := f.PointsOfInterest(1, focusTessellator(r3.Vec{}))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 7}, in.Selection.Points)

	locs := in.Locations()
	require.Len(t, locs, 2)
	for l, loc := range locs {
		assert.Equal(t, l, loc.Line)
		assert.Equal(t, r3.Vec{}, loc.Point)
		v, ok := loc.Score.Value()
		require.True(t, ok)
		assert.InDelta(t, 0.1, v, 1e-12)
	}
}

// TestPointsOfInterestErrors covers tessellator failures and mismatches.
func TestPointsOfInterestErrors(t *testing.T) {
	f, err := frame.New(crossRows())
	require.NoError(t, err)

	_, err = f.PointsOfInterest(1, nil)
	assert.ErrorIs(t, err, frame.ErrNilTessellator)

	boom := errors.New("qhull failed")
	_, err = f.PointsOfInterest(1, frame.TessellatorFunc(func([]r3.Vec) (*frame.Tessellation, error) {
		return nil, boom
	}))
	assert.ErrorIs(t, err, boom)

	short := frame.TessellatorFunc(func([]r3.Vec) (*frame.Tessellation, error) {
		return &frame.Tessellation{PointRegion: []int{0}}, nil
	})
	_, err = f.PointsOfInterest(1, short)
	assert.ErrorIs(t, err, frame.ErrTessellation)

	badRegion := frame.TessellatorFunc(func(points []r3.Vec) (*frame.Tessellation, error) {
		tess, err := focusTessellator(r3.Vec{}).Tessellate(points)
		if err != nil {
			return nil, err
		}
		tess.PointRegion[3] = len(tess.Regions)

		return tess, nil
	})
	_, err = f.PointsOfInterest(1, badRegion)
	assert.ErrorIs(t, err, frame.ErrTessellation)
	assert.ErrorIs(t, err, region.ErrRegionOutOfRange)
}
