// Package vmpt locates radioactive tracers from list-mode PET-style data by
// Voronoi tessellation of lines of response.
//
// Every line of response (LOR) is sampled into seed points, the seeds of a
// frame are tessellated, and on every line the seed whose Voronoi region is
// most compact is kept: where many lines cross, regions are small.
//
// Packages:
//
//	vertex/    — read-only N×3 vertex coordinate table
//	region/    — compactness score and per-line selection (the core)
//	vmptlib/   — positional GetSmallestRegion boundary for host runtimes
//	lor/       — line of response and its discretisation
//	frame/     — frames of LOR rows, seeding, points of interest
//	dataset/   — tab-separated list-mode files cut into frames
//	locations/ — low-fraction filter, CSV output, progress lines
//	lof/       — local outlier factor on kd-tree neighbours
//	pipeline/  — concurrent frame-by-frame driver
//
// Building the Voronoi diagram is left to the caller through
// frame.Tessellator.
//
//	go get github.com/katalvlaran/vmpt
package vmpt
