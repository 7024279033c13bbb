// SPDX-License-Identifier: MIT

// Package vertex holds the shared vertex coordinate table of a Voronoi
// tessellation: N rows of (x, y, z) in a single row-major float64 buffer.
//
// A Table is read-only once built. Regions refer to its rows by index, and
// the region selector borrows it for the duration of one call.
//
// Construction:
//
//	NewTable(data)   — flat row-major buffer, len(data) must be a positive multiple of 3
//	FromRows(rows)   — one r3.Vec per vertex
//	FromMatrix(m)    — any gonum mat.Matrix with exactly 3 columns
//
// Numeric policy:
//
//	By default every coordinate must be finite; NaN or ±Inf is rejected with
//	ErrNaNInf. Pass WithAllowNaNInf() to ingest raw tessellator output as-is.
//
// Complexity:
//
//	Construction O(N) (one copy + one validation sweep); Row O(1).
package vertex
