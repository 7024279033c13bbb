// SPDX-License-Identifier: MIT

// Package region picks, for every line of response (LOR) of a frame, the
// candidate point whose Voronoi region is the most compact.
//
// Each candidate point lies on exactly one LOR and owns one Voronoi region,
// given as a list of row indices into a shared vertex.Table. The compactness
// score of a region is the mean Euclidean distance from its vertices to their
// centroid; a small score means a tight region, i.e. a point where many LORs
// cross. The winner of a line is the candidate with the smallest score.
//
// Algorithm outline (SelectBestPerLine):
//  1. Validate every argument up front. Any contract violation aborts the
//     call and no Selection is returned.
//  2. Group candidate indices by line id (counting sort, input order kept
//     inside a group). Input does not need to be sorted by line.
//  3. Reduce each group to its minimum score. Region scores are memoised,
//     so a region shared by several candidates is scored once.
//
// Degenerate regions:
//
//	A vertex list containing MissingVertex (-1), or an empty vertex list,
//	has no valid score. Such a region loses against every valid region and
//	is selected only when its line has nothing better.
//
// Ties:
//
//	TieEarliest (default) keeps the first candidate seen with the minimum
//	score. TieLatest lets later equal scores overwrite the current best.
//
// Complexity:
//
//	Time  O(P + Σ|region|) for P candidate points.
//	Space O(P + R + L) for R regions and L lines.
//
// Errors (sentinel):
//
//	ErrBadLineCount, ErrLengthMismatch, ErrNilTable, ErrLineOutOfRange,
//	ErrRegionOutOfRange, ErrVertexOutOfRange, ErrUnsortedLines, ErrEmptyRegion.
//
// Example:
//
//	sel, err := region.SelectBestPerLine(numLines, lineIDs, regionIDs, regions, tbl)
//	if err != nil {
//	    return err
//	}
//	for l := 0; l < sel.Len(); l++ {
//	    if p, s, ok := sel.Selected(l); ok {
//	        fmt.Println(l, p, s)
//	    }
//	}
package region
