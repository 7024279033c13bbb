// SPDX-License-Identifier: MIT

package region

import (
	"errors"
	"strconv"
)

// Sentinel errors returned by the region selector.
var (
	// ErrBadLineCount indicates that numLines was not positive.
	ErrBadLineCount = errors.New("region: number of lines must be positive")

	// ErrLengthMismatch indicates that line ids and region ids differ in length.
	ErrLengthMismatch = errors.New("region: line ids and region ids differ in length")

	// ErrNilTable indicates that no vertex table was supplied.
	ErrNilTable = errors.New("region: vertex table is nil")

	// ErrLineOutOfRange indicates a line id outside [0, numLines).
	ErrLineOutOfRange = errors.New("region: line id out of range")

	// ErrRegionOutOfRange indicates a region id outside [0, len(regions)).
	ErrRegionOutOfRange = errors.New("region: region id out of range")

	// ErrVertexOutOfRange indicates a vertex row that is neither MissingVertex
	// nor a valid row of the vertex table.
	ErrVertexOutOfRange = errors.New("region: vertex row out of range")

	// ErrUnsortedLines is returned under WithSortedInput when line ids decrease.
	ErrUnsortedLines = errors.New("region: line ids are not in ascending order")

	// ErrEmptyRegion is returned by Centroid for a region without vertices.
	ErrEmptyRegion = errors.New("region: region has no vertices")
)

const (
	// MissingVertex marks a vertex at infinity in a region's vertex list.
	MissingVertex = -1

	// NoPoint marks a line that received no candidate.
	NoPoint = -1

	// LegacyMax is the numeric stand-in for "no valid score" used by
	// callers that need a plain float (see Score.Legacy).
	LegacyMax = 100000.0
)

// Score is a compactness score with an explicit validity flag.
// The zero value is the invalid score.
type Score struct {
	value float64
	valid bool
}

// ValidScore wraps a finite compactness value.
func ValidScore(v float64) Score { return Score{value: v, valid: true} }

// Degenerate returns the invalid score given to regions with a missing
// vertex or no vertices at all.
func Degenerate() Score { return Score{} }

// Valid reports whether s carries a real compactness value.
func (s Score) Valid() bool { return s.valid }

// Value returns the compactness value and whether it is valid.
func (s Score) Value() (float64, bool) { return s.value, s.valid }

// Less reports whether s is strictly better (smaller) than o.
// Any valid score is less than an invalid one; two invalid scores are equal.
func (s Score) Less(o Score) bool {
	switch {
	case !s.valid:
		return false
	case !o.valid:
		return true
	default:
		return s.value < o.value
	}
}

// Legacy flattens s to a float64, mapping invalid scores to LegacyMax.
func (s Score) Legacy() float64 {
	if !s.valid {
		return LegacyMax
	}

	return s.value
}

// String implements fmt.Stringer.
func (s Score) String() string {
	if !s.valid {
		return "degenerate"
	}

	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

// TieBreak decides which candidate keeps a line when scores are equal.
type TieBreak int

const (
	// TieEarliest keeps the first candidate reaching the minimum.
	TieEarliest TieBreak = iota

	// TieLatest lets every later candidate with an equal score take over.
	TieLatest
)

// Options configures SelectBestPerLine.
//
// TieBreak     – tie resolution, default TieEarliest.
// SortedInput  – if true, line ids must be non-decreasing (ErrUnsortedLines).
type Options struct {
	TieBreak    TieBreak
	SortedInput bool
}

// Option represents a functional option for SelectBestPerLine.
type Option func(*Options)

// WithTieBreak sets the tie resolution policy.
func WithTieBreak(tb TieBreak) Option {
	return func(o *Options) {
		o.TieBreak = tb
	}
}

// WithSortedInput requires candidate points to arrive grouped by ascending
// line id, as produced by frame seeding.
func WithSortedInput() Option {
	return func(o *Options) {
		o.SortedInput = true
	}
}

// DefaultOptions returns the default selector configuration.
func DefaultOptions() Options {
	return Options{
		TieBreak:    TieEarliest,
		SortedInput: false,
	}
}

// Selection is the per-line result of SelectBestPerLine.
// Points[l] is the winning candidate index of line l or NoPoint;
// Scores[l] is its score (invalid for unset lines).
type Selection struct {
	Points []int
	Scores []Score
}

// Len returns the number of lines.
func (s *Selection) Len() int { return len(s.Points) }

// Selected returns the winner of line l. ok is false for unset lines and
// for l outside [0, Len()).
func (s *Selection) Selected(l int) (point int, score Score, ok bool) {
	if l < 0 || l >= len(s.Points) || s.Points[l] == NoPoint {
		return NoPoint, Score{}, false
	}

	return s.Points[l], s.Scores[l], true
}

// Count returns the number of lines that received a winner.
func (s *Selection) Count() int {
	n := 0
	for _, p := range s.Points {
		if p != NoPoint {
			n++
		}
	}

	return n
}
