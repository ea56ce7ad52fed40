package imgfilter

import (
	"context"
	"fmt"

	"github.com/wbrown/imgfilter/imageutil"
)

// Result is the output of one operation. Histogram is only set by
// HistogramEqualize and holds the luma distribution of the source image,
// not of the stretched output.
type Result struct {
	Image     *imageutil.RGBAImage
	Histogram *imageutil.Histogram
}

// Operation is one of the transforms the engine can run. Operations carry
// their own parameters and no state, so a value may be reused and run
// concurrently. Run rejects empty sources with ErrInvalidDimensions and
// treats nil opts as the defaults of New.
type Operation interface {
	Mode() Mode
	Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error)
}

// NewOperation returns the operation for mode. threshold is only used by
// ModeBinarize.
func NewOperation(mode Mode, threshold int) (Operation, error) {
	switch mode {
	case ModeIdentity:
		return Identity{}, nil
	case ModeChannelZero:
		return ChannelZero{}, nil
	case ModeGrayscale:
		return Grayscale{}, nil
	case ModeBinarize:
		return Binarize{Threshold: threshold}, nil
	case ModeBlur:
		return Blur{}, nil
	case ModeEdgeDetect:
		return EdgeDetect{}, nil
	case ModeHistogramEqualize:
		return HistogramEqualize{}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
}

// mapped runs a per-pixel transform.
func mapped(ctx context.Context, src imageutil.Raster, opts *Options, fn imageutil.PixelFunc) (*Result, error) {
	opts, err := prepare(src, opts)
	if err != nil {
		return nil, err
	}
	img, err := imageutil.MapPixels(ctx, src, opts.Workers, fn)
	if err != nil {
		return nil, err
	}
	return &Result{Image: img}, nil
}

// convolved runs a 3x3 kernel transform.
func convolved(ctx context.Context, src imageutil.Raster, opts *Options, k imageutil.Kernel3x3) (*Result, error) {
	opts, err := prepare(src, opts)
	if err != nil {
		return nil, err
	}
	img, err := imageutil.Convolve3x3(ctx, src, k, opts.Workers)
	if err != nil {
		return nil, err
	}
	return &Result{Image: img}, nil
}

// Identity copies the source.
type Identity struct{}

func (Identity) Mode() Mode { return ModeIdentity }

func (Identity) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	return mapped(ctx, src, opts, imageutil.IdentityPixel)
}

// ChannelZero sets the blue channel to 0.
type ChannelZero struct{}

func (ChannelZero) Mode() Mode { return ModeChannelZero }

func (ChannelZero) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	return mapped(ctx, src, opts, imageutil.ZeroBluePixel)
}

// Grayscale replaces every pixel by its luma.
type Grayscale struct{}

func (Grayscale) Mode() Mode { return ModeGrayscale }

func (Grayscale) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	return mapped(ctx, src, opts, imageutil.GrayscalePixel)
}

// Binarize maps pixels whose luma is strictly greater than Threshold to
// white and the rest to black.
type Binarize struct {
	Threshold int
}

func (Binarize) Mode() Mode { return ModeBinarize }

func (b Binarize) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	opts, err := prepare(src, opts)
	if err != nil {
		return nil, err
	}
	threshold, err := opts.threshold(b.Threshold)
	if err != nil {
		return nil, err
	}
	return mapped(ctx, src, opts, imageutil.BinarizePixel(threshold))
}

// Blur applies the 3x3 Gaussian kernel.
type Blur struct{}

func (Blur) Mode() Mode { return ModeBlur }

func (Blur) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	return convolved(ctx, src, opts, imageutil.BlurKernel())
}

// EdgeDetect applies the discrete Laplacian per color channel.
type EdgeDetect struct{}

func (EdgeDetect) Mode() Mode { return ModeEdgeDetect }

func (EdgeDetect) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	return convolved(ctx, src, opts, imageutil.LaplacianKernel())
}

// HistogramEqualize builds the luma histogram of the source and stretches
// the observed [min, max] luma range onto [0, 255].
type HistogramEqualize struct{}

func (HistogramEqualize) Mode() Mode { return ModeHistogramEqualize }

func (HistogramEqualize) Run(ctx context.Context, src imageutil.Raster, opts *Options) (*Result, error) {
	opts, err := prepare(src, opts)
	if err != nil {
		return nil, err
	}
	hist, err := imageutil.AccumulateHistogram(ctx, src, opts.Workers)
	if err != nil {
		return nil, err
	}

	lo, hi, ok := hist.Range()
	if !ok {
		return nil, fmt.Errorf("%w: empty histogram", ErrInvalidDimensions)
	}
	if lo == hi {
		if opts.Degenerate == DegenerateReject {
			return nil, fmt.Errorf("%w: every pixel has luma %d", ErrDegenerateHistogramRange, lo)
		}
		opts.Logger.Debug().Uint8("luma", lo).Msg("uniform intensity, skipping stretch")
	}

	img, err := imageutil.StretchContrast(ctx, src, lo, hi, opts.Workers)
	if err != nil {
		return nil, err
	}
	return &Result{Image: img, Histogram: hist}, nil
}
