// SPDX-License-Identifier: MIT

package vertex

import "errors"

// Sentinel errors. Every message is prefixed with "vertex: " so callers can
// grep logs; match with errors.Is.
var (
	// ErrBadShape is returned when the buffer is not a whole number of
	// 3-column rows.
	ErrBadShape = errors.New("vertex: table must hold whole 3-column rows")

	// ErrOutOfRange indicates that a row index is outside [0, Len()).
	ErrOutOfRange = errors.New("vertex: row index out of range")

	// ErrNaNInf signals a NaN or ±Inf coordinate under the strict numeric policy.
	ErrNaNInf = errors.New("vertex: NaN or Inf coordinate")

	// ErrNilMatrix indicates that a nil mat.Matrix was passed to FromMatrix.
	ErrNilMatrix = errors.New("vertex: nil matrix")
)
