package region_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/vmpt/region"
	"github.com/katalvlaran/vmpt/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Region ids shared by the selection tests.
const (
	compact = iota // {0,1,2}: small triangle
	sparse         // {3,4,5}: large triangle
	broken         // {0,-1,2}: missing vertex
	empty          // {}
	compact2       // {1,0,2}: mirror image of compact, same score
)

func regionsFixture() [][]int {
	return [][]int{
		compact:  {0, 1, 2},
		sparse:   {3, 4, 5},
		broken:   {0, -1, 2},
		empty:    {},
		compact2: {1, 0, 2},
	}
}

// TestSelectSingleCandidate is the single line, single point case.
func TestSelectSingleCandidate(t *testing.T) {
	tbl := triangle(t)

	sel, err := region.SelectBestPerLine(1, []int{0}, []int{compact}, regionsFixture(), tbl)
	require.NoError(t, err)

	p, s, ok := sel.Selected(0)
	require.True(t, ok)
	assert.Equal(t, 0, p)
	want, err := region.Compactness([]int{0, 1, 2}, tbl)
	require.NoError(t, err)
	assert.Equal(t, want, s)
}

// TestSelectPrefersCompactRegion checks both input orders.
func TestSelectPrefersCompactRegion(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()

	sel, err := region.SelectBestPerLine(1, []int{0, 0}, []int{compact, sparse}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sel.Points)

	sel, err = region.SelectBestPerLine(1, []int{0, 0}, []int{sparse, compact}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel.Points)
}

// TestSelectDegenerateLoses shows a degenerate region only wins alone.
func TestSelectDegenerateLoses(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()

	sel, err := region.SelectBestPerLine(2,
		[]int{0, 0, 0, 1},
		[]int{broken, sparse, empty, broken},
		regions, tbl)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, sel.Points)
	assert.True(t, sel.Scores[0].Valid())
	assert.False(t, sel.Scores[1].Valid())
	assert.Equal(t, region.LegacyMax, sel.Scores[1].Legacy())
}

// TestSelectUnsetLine leaves a line without candidates unset.
func TestSelectUnsetLine(t *testing.T) {
	tbl := triangle(t)

	sel, err := region.SelectBestPerLine(3, []int{0, 2, 2}, []int{compact, sparse, compact2}, regionsFixture(), tbl)
	require.NoError(t, err)

	if diff := cmp.Diff([]int{0, region.NoPoint, 2}, sel.Points); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}
	_, _, ok := sel.Selected(1)
	assert.False(t, ok)
	assert.False(t, sel.Scores[1].Valid())
	assert.Equal(t, 2, sel.Count())

	_, _, ok = sel.Selected(3)
	assert.False(t, ok, "out-of-range line is reported as unset")
}

// TestSelectTieBreak compares the two tie policies on equal scores.
func TestSelectTieBreak(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()
	lines := []int{0, 0, 0}
	ids := []int{compact, compact2, sparse}

	sel, err := region.SelectBestPerLine(1, lines, ids, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Points[0], "earliest tie wins by default")

	sel, err = region.SelectBestPerLine(1, lines, ids, regions, tbl, region.WithTieBreak(region.TieLatest))
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Points[0], "latest tie wins under TieLatest")

	// Degenerate ties follow the same policy.
	sel, err = region.SelectBestPerLine(1, []int{0, 0}, []int{broken, empty}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Points[0])
	sel, err = region.SelectBestPerLine(1, []int{0, 0}, []int{broken, empty}, regions, tbl, region.WithTieBreak(region.TieLatest))
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Points[0])
}

// TestSelectUnsortedInput groups interleaved lines unless sorted input is required.
func TestSelectUnsortedInput(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()
	lines := []int{1, 0, 1, 0}
	ids := []int{sparse, sparse, compact, compact}

	sel, err := region.SelectBestPerLine(2, lines, ids, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, sel.Points)

	_, err = region.SelectBestPerLine(2, lines, ids, regions, tbl, region.WithSortedInput())
	assert.ErrorIs(t, err, region.ErrUnsortedLines)

	sel, err = region.SelectBestPerLine(2, []int{0, 0, 1, 1}, ids, regions, tbl, region.WithSortedInput())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, sel.Points)
}

// TestSelectValidation covers every argument contract violation.
func TestSelectValidation(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()

	cases := []struct {
		name      string
		numLines  int
		lineIDs   []int
		regionIDs []int
		regions   [][]int
		want      error
	}{
		{"zero lines", 0, nil, nil, regions, region.ErrBadLineCount},
		{"length mismatch", 1, []int{0, 0}, []int{0}, regions, region.ErrLengthMismatch},
		{"negative line", 1, []int{-1}, []int{0}, regions, region.ErrLineOutOfRange},
		{"line past end", 2, []int{0, 2}, []int{0, 0}, regions, region.ErrLineOutOfRange},
		{"negative region", 1, []int{0}, []int{-1}, regions, region.ErrRegionOutOfRange},
		{"region past end", 1, []int{0}, []int{len(regions)}, regions, region.ErrRegionOutOfRange},
		{"bad vertex row", 1, []int{0}, []int{0}, [][]int{{0, 99}}, region.ErrVertexOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := region.SelectBestPerLine(tc.numLines, tc.lineIDs, tc.regionIDs, tc.regions, tbl)
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, sel, "no partial output on error")
		})
	}

	_, err := region.SelectBestPerLine(1, []int{0}, []int{0}, regions, nil)
	assert.ErrorIs(t, err, region.ErrNilTable)
}

// TestSelectNoCandidates returns an all-unset selection.
func TestSelectNoCandidates(t *testing.T) {
	sel, err := region.SelectBestPerLine(2, nil, nil, nil, triangle(t))
	require.NoError(t, err)
	assert.Equal(t, []int{region.NoPoint, region.NoPoint}, sel.Points)
	assert.Equal(t, 0, sel.Count())
}

// TestSelectNaNRegionLoses picks the finite region whichever comes first.
func TestSelectNaNRegionLoses(t *testing.T) {
	tbl, err := vertex.NewTable([]float64{
		0, 0, 0,
		2, 0, 0,
		1, 2, 0,
		math.NaN(), 0, 0,
	}, vertex.WithAllowNaNInf())
	require.NoError(t, err)
	regions := [][]int{{3, 1, 2}, {0, 1, 2}}

	sel, err := region.SelectBestPerLine(1, []int{0, 0}, []int{0, 1}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, sel.Points)
	v, ok := sel.Scores[0].Value()
	require.True(t, ok)
	assert.False(t, math.IsNaN(v))

	sel, err = region.SelectBestPerLine(1, []int{0, 0}, []int{1, 0}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sel.Points)
	assert.True(t, sel.Scores[0].Valid())

	// Alone, the NaN region is selected as degenerate.
	sel, err = region.SelectBestPerLine(1, []int{0}, []int{0}, regions, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, sel.Points)
	assert.False(t, sel.Scores[0].Valid())
	assert.Equal(t, region.LegacyMax, sel.Scores[0].Legacy())
}

// TestSelectEmptyTable accepts a table without rows when no region needs one.
func TestSelectEmptyTable(t *testing.T) {
	tbl, err := vertex.NewTable(nil)
	require.NoError(t, err)

	sel, err := region.SelectBestPerLine(2, []int{}, []int{}, [][]int{}, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{region.NoPoint, region.NoPoint}, sel.Points)

	sel, err = region.SelectBestPerLine(2, []int{0, 1}, []int{0, 1}, [][]int{{-1}, {}}, tbl)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, sel.Points)
	assert.False(t, sel.Scores[0].Valid())
	assert.False(t, sel.Scores[1].Valid())

	_, err = region.SelectBestPerLine(1, []int{0}, []int{0}, [][]int{{0}}, tbl)
	assert.ErrorIs(t, err, region.ErrVertexOutOfRange)
}

// TestSelectDeterministic runs the same input twice and leaves inputs untouched.
func TestSelectDeterministic(t *testing.T) {
	tbl := triangle(t)
	regions := regionsFixture()
	lines := []int{0, 0, 1, 1, 2}
	ids := []int{sparse, compact, broken, compact2, empty}
	linesCopy := append([]int(nil), lines...)

	a, err := region.SelectBestPerLine(3, lines, ids, regions, tbl)
	require.NoError(t, err)
	b, err := region.SelectBestPerLine(3, lines, ids, regions, tbl)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, linesCopy, lines)
	assert.Equal(t, regionsFixture(), regions)
}
