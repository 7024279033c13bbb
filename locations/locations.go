// SPDX-License-Identifier: MIT

// Package locations post-processes selected tracer locations: it keeps the
// most compact fraction of them, appends them to a CSV file and reports
// progress.
package locations

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// FileName is the name of the output file inside the output directory.
const FileName = "locations.csv"

// Sentinel errors.
var (
	// ErrBadFraction indicates a fraction outside [0, 1).
	ErrBadFraction = errors.New("locations: fraction must be in [0, 1)")

	// ErrEmpty indicates LowFraction was called without values.
	ErrEmpty = errors.New("locations: no values")
)

// LowFraction returns, in ascending index order, the indices of all values
// less than or equal to the value found at position ⌊len·fraction⌋ of the
// sorted values. Ties at the cut-off are all kept.
func LowFraction(values []float64, fraction float64) ([]int, error) {
	if len(values) == 0 {
		return nil, ErrEmpty
	}
	if !(fraction >= 0 && fraction < 1) {
		return nil, fmt.Errorf("fraction %v: %w", fraction, ErrBadFraction)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	cut := sorted[int(float64(len(values))*fraction)]

	var out []int
	for i, v := range values {
		if v <= cut {
			out = append(out, i)
		}
	}

	return out, nil
}

// AppendCSV appends rows to dir/FileName, creating the file if needed.
// Rows whose values are all zero are dropped. Values are written in
// exponent form with 18 fractional digits.
func AppendCSV(dir string, rows [][]float64) error {
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	var rec []string
	for _, row := range rows {
		if allZero(row) {
			continue
		}
		rec = rec[:0]
		for _, x := range row {
			rec = append(rec, strconv.FormatFloat(x, 'e', 18, 64))
		}
		if err := w.Write(rec); err != nil {
			f.Close()

			return fmt.Errorf("%s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

func allZero(row []float64) bool {
	for _, x := range row {
		if x != 0 {
			return false
		}
	}

	return true
}

// LogProgress writes a progress block for input file fileNum (0-based).
func LogProgress(l *log.Logger, fileNum int, percent float64, avgTracers float64) {
	l.Printf("File %d progress: %.0f%%", fileNum+1, percent)
	l.Printf("Average number of tracers per frame: %.2f", avgTracers)
}
