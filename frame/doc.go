// SPDX-License-Identifier: MIT

// Package frame groups a fixed number of consecutive LOR rows into one
// reconstruction frame and runs the region selector over it.
//
// A raw row holds seven values:
//
//	x1 y1 z1 x2 y2 z2 t
//
// The two hits become a lor.Line whose id is the row index inside the frame,
// and t contributes to the frame time (the mean over all rows).
//
// Pipeline of one frame:
//  1. SeedPoints discretises every line; seeds arrive grouped by line id.
//  2. A caller-supplied Tessellator builds the Voronoi diagram of the seeds.
//  3. PointsOfInterest feeds the diagram to region.SelectBestPerLine.
//
// Building the Voronoi diagram itself is outside this module.
package frame
