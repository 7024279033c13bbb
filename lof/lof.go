// SPDX-License-Identifier: MIT

// Package lof scores tracer locations with the Local Outlier Factor.
//
// For each point p with k nearest neighbours N(p):
//
//	reach(p, o) = max(d(p, o), kdist(o))
//	lrd(p)      = k / Σ_{o∈N(p)} reach(p, o)
//	LOF(p)      = mean_{o∈N(p)} lrd(o) / lrd(p)
//
// Values near 1 mean p is as dense as its neighbourhood; values well above 1
// flag outliers. Neighbours come from a gonum kd-tree; the query point is
// never its own neighbour.
//
// Coincident points give a zero reachability sum and therefore an infinite
// lrd; the factor of such a point is then NaN or 0 and callers filtering by
// threshold should treat NaN as "keep".
package lof

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBadK indicates k outside [1, len(points)).
var ErrBadK = errors.New("lof: k must be in [1, number of points)")

// Factors returns the local outlier factor of every point.
//
// Complexity: O(n·log n) tree build plus n k-NN queries.
func Factors(k int, points []r3.Vec) ([]float64, error) {
	n := len(points)
	if k < 1 || k >= n {
		return nil, fmt.Errorf("k=%d, n=%d: %w", k, n, ErrBadK)
	}

	nbrs, dists := neighbours(k, points)

	kdist := make([]float64, n)
	for i := range kdist {
		kdist[i] = dists[i][k-1]
	}

	lrd := make([]float64, n)
	reach := make([]float64, k)
	for i := range points {
		for j, o := range nbrs[i] {
			reach[j] = math.Max(dists[i][j], kdist[o])
		}
		lrd[i] = float64(k) / floats.Sum(reach)
	}

	out := make([]float64, n)
	ln := make([]float64, k)
	for i := range points {
		for j, o := range nbrs[i] {
			ln[j] = lrd[o]
		}
		out[i] = floats.Sum(ln) / float64(k) / lrd[i]
	}

	return out, nil
}

// neighbours returns the k nearest other points of every point, sorted by
// distance then index, together with their Euclidean distances.
func neighbours(k int, points []r3.Vec) (idx [][]int, dist [][]float64) {
	all := make(sites, len(points))
	for i, p := range points {
		all[i] = site{idx: i, p: p}
	}
	// kdtree.New reorders its input.
	tree := kdtree.New(append(sites(nil), all...), false)

	idx = make([][]int, len(points))
	dist = make([][]float64, len(points))
	for i, q := range all {
		keep := kdtree.NewNKeeper(k + 1)
		tree.NearestSet(keep, q)

		found := make([]kdtree.ComparableDist, 0, len(keep.Heap))
		for _, cd := range keep.Heap {
			if cd.Comparable == nil || cd.Comparable.(site).idx == i {
				continue
			}
			found = append(found, cd)
		}
		sort.Slice(found, func(a, b int) bool {
			if found[a].Dist != found[b].Dist {
				return found[a].Dist < found[b].Dist
			}

			return found[a].Comparable.(site).idx < found[b].Comparable.(site).idx
		})
		found = found[:k]

		idx[i] = make([]int, k)
		dist[i] = make([]float64, k)
		for j, cd := range found {
			idx[i][j] = cd.Comparable.(site).idx
			dist[i][j] = math.Sqrt(cd.Dist)
		}
	}

	return idx, dist
}

// site is a point that remembers its input position.
type site struct {
	idx int
	p   r3.Vec
}

func coord(v r3.Vec, d kdtree.Dim) float64 {
	switch d {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Compare implements kdtree.Comparable.
func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return coord(s.p, d) - coord(c.(site).p, d)
}

// Dims implements kdtree.Comparable.
func (s site) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as kdtree.Point does.
func (s site) Distance(c kdtree.Comparable) float64 {
	d := r3.Sub(s.p, c.(site).p)

	return r3.Dot(d, d)
}

// sites implements kdtree.Interface.
type sites []site

func (s sites) Index(i int) kdtree.Comparable { return s[i] }
func (s sites) Len() int { return len(s) }
func (s sites) Pivot(d kdtree.Dim) int { return plane{s: s, dim: d}.Pivot() }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

// plane sorts sites along one dimension for median partitioning.
type plane struct {
	s   sites
	dim kdtree.Dim
}

func (p plane) Len() int { return len(p.s) }
func (p plane) Less(i, j int) bool { return coord(p.s[i].p, p.dim) < coord(p.s[j].p, p.dim) }
func (p plane) Swap(i, j int) { p.s[i], p.s[j] = p.s[j], p.s[i] }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.s = p.s[start:end]

	return p
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
