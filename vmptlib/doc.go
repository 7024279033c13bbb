// SPDX-License-Identifier: MIT

// Package vmptlib exposes the region selector through a loosely typed,
// positional call boundary for host runtimes and scripting bridges:
//
//	points, scores, err := vmptlib.GetSmallestRegion(numLines, lineIDs, regionIDs, regions, vertices)
//
// Arity and argument types are checked strictly before any work is done.
// Unset output slots are nil; degenerate scores are flattened to
// region.LegacyMax so the result fits a plain list of floats.
package vmptlib
