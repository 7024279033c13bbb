// SPDX-License-Identifier: MIT

package region

import (
	"fmt"

	"github.com/katalvlaran/vmpt/vertex"
)

// SelectBestPerLine returns, for each of numLines lines, the candidate point
// with the most compact Voronoi region.
//
// Inputs:
//   - numLines:  number of LORs in the frame (> 0).
//   - lineIDs:   line id of every candidate point, each in [0, numLines).
//   - regionIDs: region id of every candidate point, aligned with lineIDs.
//   - regions:   vertex rows of every region; MissingVertex marks a vertex at infinity.
//   - t:         shared vertex table.
//
// The call is all-or-nothing: on error the Selection is nil.
// Inputs are only read; the returned Selection is owned by the caller.
func SelectBestPerLine(
	numLines int,
	lineIDs, regionIDs []int,
	regions [][]int,
	t *vertex.Table,
	opts ...Option,
) (*Selection, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(numLines, lineIDs, regionIDs, regions, t, o); err != nil {
		return nil, err
	}

	offsets, order := groupByLine(numLines, lineIDs)

	sel := &Selection{
		Points: make([]int, numLines),
		Scores: make([]Score, numLines),
	}
	memo := newScoreCache(len(regions))
	for l := 0; l < numLines; l++ {
		sel.Points[l] = NoPoint
		for _, p := range order[offsets[l]:offsets[l+1]] {
			rid := regionIDs[p]
			s := memo.get(rid, regions[rid], t)
			if sel.Points[l] == NoPoint || improves(s, sel.Scores[l], o.TieBreak) {
				sel.Points[l] = p
				sel.Scores[l] = s
			}
		}
	}

	return sel, nil
}

// improves reports whether candidate score s replaces the current best.
func improves(s, best Score, tb TieBreak) bool {
	if tb == TieLatest {
		return !best.Less(s)
	}

	return s.Less(best)
}

// validate checks every argument before any scoring starts.
func validate(numLines int, lineIDs, regionIDs []int, regions [][]int, t *vertex.Table, o Options) error {
	if numLines <= 0 {
		return fmt.Errorf("numLines=%d: %w", numLines, ErrBadLineCount)
	}
	if len(lineIDs) != len(regionIDs) {
		return fmt.Errorf("%d line ids, %d region ids: %w", len(lineIDs), len(regionIDs), ErrLengthMismatch)
	}
	if t == nil {
		return ErrNilTable
	}
	for p, l := range lineIDs {
		if l < 0 || l >= numLines {
			return fmt.Errorf("point %d: line %d of %d: %w", p, l, numLines, ErrLineOutOfRange)
		}
		if o.SortedInput && p > 0 && l < lineIDs[p-1] {
			return fmt.Errorf("point %d: line %d after %d: %w", p, l, lineIDs[p-1], ErrUnsortedLines)
		}
		rid := regionIDs[p]
		if rid < 0 || rid >= len(regions) {
			return fmt.Errorf("point %d: region %d of %d: %w", p, rid, len(regions), ErrRegionOutOfRange)
		}
	}
	// Only regions that some candidate references are checked.
	seen := make([]bool, len(regions))
	for p, rid := range regionIDs {
		if seen[rid] {
			continue
		}
		seen[rid] = true
		if err := checkRows(regions[rid], t); err != nil {
			return fmt.Errorf("point %d: region %d: %w", p, rid, err)
		}
	}

	return nil
}

// groupByLine buckets candidate indices by line with a counting sort.
// Candidates of line l are order[offsets[l]:offsets[l+1]], in input order.
func groupByLine(numLines int, lineIDs []int) (offsets, order []int) {
	offsets = make([]int, numLines+1)
	for _, l := range lineIDs {
		offsets[l+1]++
	}
	for l := 0; l < numLines; l++ {
		offsets[l+1] += offsets[l]
	}
	next := make([]int, numLines)
	copy(next, offsets[:numLines])
	order = make([]int, len(lineIDs))
	for p, l := range lineIDs {
		order[next[l]] = p
		next[l]++
	}

	return offsets, order
}

// scoreCache memoises compactness per region id.
type scoreCache struct {
	scores []Score
	done   []bool
}

func newScoreCache(n int) *scoreCache {
	return &scoreCache{scores: make([]Score, n), done: make([]bool, n)}
}

func (c *scoreCache) get(rid int, rows []int, t *vertex.Table) Score {
	if !c.done[rid] {
		c.scores[rid] = compactness(rows, t)
		c.done[rid] = true
	}

	return c.scores[rid]
}
