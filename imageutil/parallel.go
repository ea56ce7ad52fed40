package imageutil

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowFunc processes the rows [y0, y1) of an image.
type RowFunc func(y0, y1 int)

// Workers normalizes a requested worker count: n <= 0 means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// ParallelRows splits [0, height) into contiguous row bands and calls fn
// once per band. Bands never overlap, so fn may write its rows of a shared
// output image without locking. With a single worker fn runs inline on the
// calling goroutine.
//
// The context is checked before each band starts; if it is cancelled the
// remaining bands are skipped and the context error is returned.
func ParallelRows(ctx context.Context, height, workers int, fn RowFunc) error {
	if height <= 0 {
		return ctx.Err()
	}

	bands := min(Workers(workers), height)
	if bands == 1 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(0, height)
		return nil
	}

	bandSize := (height + bands - 1) / bands

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bands)
	for y0 := 0; y0 < height; y0 += bandSize {
		y0 := y0
		y1 := min(y0+bandSize, height)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// bandCount returns how many bands ParallelRows will use for height rows,
// so callers can preallocate per-band state.
func bandCount(height, workers int) (bands, bandSize int) {
	if height <= 0 {
		return 0, 0
	}
	bands = min(Workers(workers), height)
	bandSize = (height + bands - 1) / bands
	// Rounding up the band size can leave trailing bands empty.
	bands = (height + bandSize - 1) / bandSize
	return bands, bandSize
}
