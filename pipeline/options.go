// SPDX-License-Identifier: MIT

package pipeline

import (
	"errors"
	"io"
	"log"
	"runtime"

	"github.com/katalvlaran/vmpt/region"
)

// Sentinel errors for option validation.
var (
	// ErrBadSpacing indicates a non-positive seed spacing.
	ErrBadSpacing = errors.New("pipeline: spacing must be positive")

	// ErrBadFraction indicates a filter fraction outside (0, 1].
	ErrBadFraction = errors.New("pipeline: fraction must be in (0, 1]")

	// ErrBadWorkers indicates a worker count below 1.
	ErrBadWorkers = errors.New("pipeline: workers must be at least 1")

	// ErrBadMaxOutput indicates an output buffer below one row.
	ErrBadMaxOutput = errors.New("pipeline: max output must be at least 1")

	// ErrBadPercentInc indicates a non-positive progress increment.
	ErrBadPercentInc = errors.New("pipeline: percent increment must be positive")

	// ErrNilTessellator indicates that Run got no Tessellator.
	ErrNilTessellator = errors.New("pipeline: tessellator is nil")

	// ErrNoInput indicates that RunDir found no input files.
	ErrNoInput = errors.New("pipeline: no input files")
)

// Defaults.
const (
	DefaultSpacing    = 1.0
	DefaultVolFrac    = 1.0
	DefaultMaxOutput  = 10000
	DefaultPercentInc = 10.0
)

// Options configures Run.
//
// Spacing     – distance between seed points along a line.
// VolFrac     – keep the most compact VolFrac of each frame's valid locations (1 keeps all).
// LOFK        – neighbours for the local outlier factor filter (0 disables it).
// LOFFrac     – keep the LOFFrac of locations with the lowest outlier factor.
// Workers     – frames processed concurrently.
// MaxOutput   – pending rows that trigger an append to the output file.
// OutputDir   – directory of locations.csv; empty keeps rows in memory only.
// PercentInc  – progress is logged each time this many percent of frames complete.
// FileIndex   – index of the input file, used in progress lines.
// Logger      – destination of progress lines.
// Region      – options forwarded to the region selector.
type Options struct {
	Spacing    float64
	VolFrac    float64
	LOFK       int
	LOFFrac    float64
	Workers    int
	MaxOutput  int
	OutputDir  string
	PercentInc float64
	FileIndex  int
	Logger     *log.Logger
	Region     []region.Option
}

// Option represents a functional option for Run.
type Option func(*Options)

// WithSpacing sets the seed spacing.
func WithSpacing(s float64) Option { return func(o *Options) { o.Spacing = s } }

// WithVolFrac sets the compactness filter fraction.
func WithVolFrac(f float64) Option { return func(o *Options) { o.VolFrac = f } }

// WithLOF enables the outlier filter with k neighbours, keeping frac of the locations.
func WithLOF(k int, frac float64) Option {
	return func(o *Options) {
		o.LOFK = k
		o.LOFFrac = frac
	}
}

// WithWorkers sets the number of concurrent frame workers. A value of -1
// selects runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n == -1 {
			n = runtime.NumCPU()
		}
		o.Workers = n
	}
}

// WithMaxOutput sets the output buffer size in rows.
func WithMaxOutput(n int) Option { return func(o *Options) { o.MaxOutput = n } }

// WithOutputDir sets the directory receiving locations.csv.
func WithOutputDir(dir string) Option { return func(o *Options) { o.OutputDir = dir } }

// WithPercentInc sets the progress logging increment.
func WithPercentInc(p float64) Option { return func(o *Options) { o.PercentInc = p } }

// WithFileIndex sets the file number shown in progress lines.
func WithFileIndex(i int) Option { return func(o *Options) { o.FileIndex = i } }

// WithLogger sets the progress logger.
func WithLogger(l *log.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithRegionOptions forwards options to region.SelectBestPerLine.
func WithRegionOptions(opts ...region.Option) Option {
	return func(o *Options) { o.Region = append(o.Region, opts...) }
}

// DefaultOptions returns the default pipeline configuration: unit spacing,
// no filtering, one worker per CPU, silent logger, no output file.
func DefaultOptions() Options {
	return Options{
		Spacing:    DefaultSpacing,
		VolFrac:    DefaultVolFrac,
		LOFFrac:    1,
		Workers:    runtime.NumCPU(),
		MaxOutput:  DefaultMaxOutput,
		PercentInc: DefaultPercentInc,
		Logger:     log.New(io.Discard, "", 0),
	}
}

func (o Options) validate() error {
	switch {
	case !(o.Spacing > 0):
		return ErrBadSpacing
	case !(o.VolFrac > 0 && o.VolFrac <= 1):
		return ErrBadFraction
	case o.LOFK > 0 && !(o.LOFFrac > 0 && o.LOFFrac <= 1):
		return ErrBadFraction
	case o.Workers < 1:
		return ErrBadWorkers
	case o.MaxOutput < 1:
		return ErrBadMaxOutput
	case !(o.PercentInc > 0):
		return ErrBadPercentInc
	}

	return nil
}
