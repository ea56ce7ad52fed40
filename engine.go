// Package imgfilter applies one of a fixed set of image filters (channel
// removal, grayscale, binarization, blur, Laplacian edge detection and
// histogram contrast stretching) to a decoded raster, producing a new image.
//
// Every call is an independent pass over the source: the engine keeps no
// state between calls and never modifies its input.
package imgfilter

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wbrown/imgfilter/imageutil"
)

// DefaultThreshold is the binarization threshold used when none is given.
const DefaultThreshold = 128

// DegeneratePolicy decides what HistogramEqualize does when the source has
// a single luma level and there is no range to stretch.
type DegeneratePolicy int

const (
	// DegenerateUniform outputs the single luma level unchanged.
	DegenerateUniform DegeneratePolicy = iota
	// DegenerateReject fails with ErrDegenerateHistogramRange.
	DegenerateReject
)

// Options configures an Engine.
type Options struct {
	// Workers is the number of row bands processed concurrently.
	// 1 runs single-threaded; 0 or less uses GOMAXPROCS.
	Workers int

	// StrictThreshold rejects Binarize thresholds outside [0, 255]
	// instead of clamping them.
	StrictThreshold bool

	Degenerate DegeneratePolicy
	Logger     zerolog.Logger
}

// Option modifies Options.
type Option func(*Options)

// WithWorkers sets the number of concurrent row bands.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithStrictThreshold enables rejection of out-of-range thresholds.
func WithStrictThreshold(strict bool) Option {
	return func(o *Options) { o.StrictThreshold = strict }
}

// WithDegeneratePolicy sets how uniform images are equalized.
func WithDegeneratePolicy(p DegeneratePolicy) Option {
	return func(o *Options) { o.Degenerate = p }
}

// WithLogger sets the logger used for per-operation debug output.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// ClampThreshold clamps t to [0, 255].
func ClampThreshold(t int) uint8 {
	if t < 0 {
		return 0
	}
	if t > 255 {
		return 255
	}
	return uint8(t)
}

func (o *Options) threshold(t int) (uint8, error) {
	if o.StrictThreshold && (t < 0 || t > 255) {
		return 0, fmt.Errorf("%w: %d", ErrThresholdOutOfRange, t)
	}
	return ClampThreshold(t), nil
}

// Engine runs operations against source images.
type Engine struct {
	opts Options
}

// New returns an Engine. Without options it runs single-threaded, clamps
// thresholds, treats uniform images as DegenerateUniform and does not log.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

func defaultOptions() Options {
	return Options{
		Workers: 1,
		Logger:  zerolog.Nop(),
	}
}

// checkSource rejects nil and empty rasters.
func checkSource(src imageutil.Raster) error {
	if src == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidDimensions)
	}
	if w, h := src.Width(), src.Height(); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return nil
}

// prepare validates src for an operation's Run and substitutes the New()
// defaults for nil opts.
func prepare(src imageutil.Raster, opts *Options) (*Options, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}
	if opts == nil {
		o := defaultOptions()
		opts = &o
	}
	return opts, nil
}

// Apply validates src and runs op on it. On error no result is returned.
func (e *Engine) Apply(ctx context.Context, src imageutil.Raster, op Operation) (*Result, error) {
	if op == nil {
		return nil, fmt.Errorf("%w: nil operation", ErrUnknownMode)
	}
	if err := checkSource(src); err != nil {
		return nil, err
	}
	width, height := src.Width(), src.Height()

	// Each call gets its own copy so operations cannot leak changes.
	opts := e.opts
	begin := time.Now()
	res, err := op.Run(ctx, src, &opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Mode(), err)
	}

	opts.Logger.Debug().
		Str("mode", op.Mode().String()).
		Int("width", width).
		Int("height", height).
		Int("workers", imageutil.Workers(opts.Workers)).
		Dur("elapsed", time.Since(begin)).
		Msg("operation complete")
	return res, nil
}

// ApplyMode builds the operation for mode and threshold and applies it.
func (e *Engine) ApplyMode(ctx context.Context, src imageutil.Raster, mode Mode, threshold int) (*Result, error) {
	op, err := NewOperation(mode, threshold)
	if err != nil {
		return nil, err
	}
	return e.Apply(ctx, src, op)
}
