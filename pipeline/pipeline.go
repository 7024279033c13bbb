// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"sync"

	"github.com/katalvlaran/vmpt/dataset"
	"github.com/katalvlaran/vmpt/frame"
	"github.com/katalvlaran/vmpt/lof"
	"github.com/katalvlaran/vmpt/locations"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"
)

// Summary is the outcome of one Run.
type Summary struct {
	Frames    int         // frames processed
	Kept      int         // locations kept over all frames
	Locations [][]float64 // x, y, z, t per kept location in frame order; only without OutputDir
	Written   int         // rows handed to locations.AppendCSV
}

// AvgTracers returns the mean number of kept locations per frame.
func (s *Summary) AvgTracers() float64 {
	if s.Frames == 0 {
		return 0
	}

	return float64(s.Kept) / float64(s.Frames)
}

// Run processes every frame of ds.
//
// With an OutputDir, completed frames are released in frame order and
// appended to the output file once MaxOutput rows are buffered; rows are
// not retained in the Summary. Only frames finished ahead of a slower
// predecessor wait in memory.
func Run(ctx context.Context, ds *dataset.DataSet, t frame.Tessellator, opts ...Option) (*Summary, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNilTessellator
	}
	if ds == nil {
		return nil, dataset.ErrEmpty
	}

	n := ds.NumFrames()
	out := newEmitter(o, n)
	prog := newProgress(o, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows, err := processFrame(ds, i, t, o)
			if err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
			if err := out.put(i, rows); err != nil {
				return err
			}
			prog.done(len(rows))

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := out.flush(); err != nil {
		return nil, err
	}

	return out.sum, nil
}

// emitter releases frame results in frame order.
type emitter struct {
	mu      sync.Mutex
	o       Options
	pending [][][]float64
	ready   []bool
	next    int
	buf     [][]float64
	sum     *Summary
}

func newEmitter(o Options, frames int) *emitter {
	return &emitter{
		o:       o,
		pending: make([][][]float64, frames),
		ready:   make([]bool, frames),
		sum:     &Summary{Frames: frames},
	}
}

// put records the rows of frame i and releases every frame that is now
// contiguous with the already released ones.
func (e *emitter) put(i int, rows [][]float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending[i] = rows
	e.ready[i] = true
	for e.next < len(e.ready) && e.ready[e.next] {
		rows := e.pending[e.next]
		e.pending[e.next] = nil
		e.next++

		e.sum.Kept += len(rows)
		if e.o.OutputDir == "" {
			e.sum.Locations = append(e.sum.Locations, rows...)
			continue
		}
		e.buf = append(e.buf, rows...)
		if len(e.buf) >= e.o.MaxOutput {
			if err := e.write(); err != nil {
				return err
			}
		}
	}

	return nil
}

// flush writes whatever is still buffered.
func (e *emitter) flush() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.buf) == 0 {
		return nil
	}

	return e.write()
}

func (e *emitter) write() error {
	if err := locations.AppendCSV(e.o.OutputDir, e.buf); err != nil {
		return err
	}
	e.sum.Written += len(e.buf)
	e.buf = nil

	return nil
}

// RunDir runs every *.dat file of dir, in name order, with frames of
// frameSize rows.
func RunDir(ctx context.Context, dir string, frameSize int, t frame.Tessellator, opts ...Option) ([]*Summary, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.dat"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoInput)
	}
	sort.Strings(files)

	out := make([]*Summary, 0, len(files))
	for i, path := range files {
		o.Logger.Printf("Loading data from file %s", path)
		ds, err := dataset.Load(path, frameSize)
		if err != nil {
			return out, err
		}
		sum, err := Run(ctx, ds, t, append(opts[:len(opts):len(opts)], WithFileIndex(i))...)
		if err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
		o.Logger.Printf("Finished processing file %s", path)
		out = append(out, sum)
	}

	return out, nil
}

// processFrame runs one frame and returns its kept location rows.
func processFrame(ds *dataset.DataSet, n int, t frame.Tessellator, o Options) ([][]float64, error) {
	f, err := ds.FrameAt(n)
	if err != nil {
		return nil, err
	}
	in, err := f.PointsOfInterest(o.Spacing, t, o.Region...)
	if err != nil {
		return nil, err
	}

	var (
		pts    []r3.Vec
		scores []float64
	)
	for _, loc := range in.Locations() {
		v, ok := loc.Score.Value()
		if !ok {
			continue
		}
		pts = append(pts, loc.Point)
		scores = append(scores, v)
	}
	if len(pts) == 0 {
		return nil, nil
	}

	if o.VolFrac < 1 {
		keep, err := locations.LowFraction(scores, o.VolFrac)
		if err != nil {
			return nil, err
		}
		pts = pick(pts, keep)
	}

	if o.LOFK > 0 && o.LOFFrac < 1 && len(pts) > o.LOFK {
		factors, err := lof.Factors(o.LOFK, pts)
		if err != nil {
			return nil, err
		}
		for i, x := range factors {
			if math.IsNaN(x) {
				factors[i] = 1 // coincident points sit in the densest spot
			}
		}
		keep, err := locations.LowFraction(factors, o.LOFFrac)
		if err != nil {
			return nil, err
		}
		pts = pick(pts, keep)
	}

	rows := make([][]float64, len(pts))
	for i, p := range pts {
		rows[i] = []float64{p.X, p.Y, p.Z, f.Time()}
	}

	return rows, nil
}

func pick(pts []r3.Vec, idx []int) []r3.Vec {
	out := make([]r3.Vec, len(idx))
	for k, i := range idx {
		out[k] = pts[i]
	}

	return out
}

// progress logs every PercentInc percent of completed frames.
type progress struct {
	mu       sync.Mutex
	o        Options
	total    int
	finished int
	tracers  int
	next     float64
}

func newProgress(o Options, total int) *progress {
	return &progress{o: o, total: total, next: o.PercentInc}
}

func (p *progress) done(tracers int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.finished++
	p.tracers += tracers
	pct := 100 * float64(p.finished) / float64(p.total)
	if pct+1e-9 < p.next {
		return
	}
	for p.next <= pct+1e-9 {
		p.next += p.o.PercentInc
	}
	locations.LogProgress(p.o.Logger, p.o.FileIndex, pct, float64(p.tracers)/float64(p.finished))
}
