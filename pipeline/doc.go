// SPDX-License-Identifier: MIT

// Package pipeline drives tracer location over whole list-mode files.
//
// For every frame of a dataset.DataSet, Run:
//  1. discretises the frame's lines into seed points,
//  2. tessellates the seeds with the caller's frame.Tessellator,
//  3. selects the most compact seed per line (region.SelectBestPerLine),
//  4. drops degenerate selections and keeps the VolFrac most compact ones,
//  5. optionally drops outliers by local outlier factor,
//  6. emits one row (x, y, z, frame time) per kept location.
//
// Frames are independent and run on a bounded worker pool; rows are emitted
// in frame order regardless of completion order. With an output directory
// they are appended to locations.csv whenever MaxOutput rows are pending,
// while the workers are still running.
package pipeline
