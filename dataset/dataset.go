// SPDX-License-Identifier: MIT

// Package dataset loads a tab-separated list-mode file of LOR rows and cuts
// it into fixed-size frames.
//
// Frame n covers rows [n·size, (n+1)·size). When the row count is not a
// multiple of the frame size, the last frame is shifted back so that it ends
// on the last row; it then overlaps its predecessor. A file shorter than one
// frame yields a single, shorter frame.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/vmpt/frame"
	"gonum.org/v1/gonum/mat"
)

// Sentinel errors.
var (
	// ErrBadFrameSize indicates a non-positive frame size.
	ErrBadFrameSize = errors.New("dataset: frame size must be positive")

	// ErrEmpty indicates an input without any rows.
	ErrEmpty = errors.New("dataset: no rows")

	// ErrParse indicates a non-numeric field or a ragged row.
	ErrParse = errors.New("dataset: malformed row")

	// ErrFrameOutOfRange indicates a frame index outside [0, NumFrames()).
	ErrFrameOutOfRange = errors.New("dataset: frame index out of range")
)

// DataSet is the whole file held in memory.
type DataSet struct {
	rows      *mat.Dense
	frameSize int
}

// Load reads the file at path.
func Load(path string, frameSize int) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := Read(f, frameSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// Read parses tab-separated rows from r. Blank lines are skipped; every row
// must have the same number of numeric fields.
func Read(r io.Reader, frameSize int) (*DataSet, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("frame size %d: %w", frameSize, ErrBadFrameSize)
	}

	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var (
		data []float64
		cols int
		line int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if cols == 0 {
			cols = len(rec)
		}
		for k, field := range rec {
			x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: record %d field %d: %w", ErrParse, line, k+1, err)
			}
			data = append(data, x)
		}
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	return &DataSet{
		rows:      mat.NewDense(len(data)/cols, cols, data),
		frameSize: frameSize,
	}, nil
}

// FromMatrix wraps an already loaded r×c matrix of rows.
func FromMatrix(rows *mat.Dense, frameSize int) (*DataSet, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("frame size %d: %w", frameSize, ErrBadFrameSize)
	}
	if rows == nil || rows.IsEmpty() {
		return nil, ErrEmpty
	}

	return &DataSet{rows: rows, frameSize: frameSize}, nil
}

// NumRows returns the number of rows in the file.
func (d *DataSet) NumRows() int {
	r, _ := d.rows.Dims()

	return r
}

// FrameSize returns the configured number of rows per frame.
func (d *DataSet) FrameSize() int { return d.frameSize }

// NumFrames returns ceil(rows / frameSize).
func (d *DataSet) NumFrames() int {
	return (d.NumRows() + d.frameSize - 1) / d.frameSize
}

// Bounds returns the row range [start, end) of frame n.
func (d *DataSet) Bounds(n int) (start, end int, err error) {
	if n < 0 || n >= d.NumFrames() {
		return 0, 0, fmt.Errorf("frame %d of %d: %w", n, d.NumFrames(), ErrFrameOutOfRange)
	}
	rows := d.NumRows()
	start = n * d.frameSize
	end = start + d.frameSize
	if end > rows {
		end = rows
		start = max(end-d.frameSize, 0)
	}

	return start, end, nil
}

// FrameAt builds frame n.
func (d *DataSet) FrameAt(n int) (*frame.Frame, error) {
	start, end, err := d.Bounds(n)
	if err != nil {
		return nil, err
	}
	_, cols := d.rows.Dims()

	return frame.New(d.rows.Slice(start, end, 0, cols))
}

// Split builds every frame in order.
func (d *DataSet) Split() ([]*frame.Frame, error) {
	frames := make([]*frame.Frame, d.NumFrames())
	for n := range frames {
		f, err := d.FrameAt(n)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", n, err)
		}
		frames[n] = f
	}

	return frames, nil
}
