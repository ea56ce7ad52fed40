package imageutil

import "context"

// Histogram counts pixels per luma level.
type Histogram [256]int

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Max returns the tallest bin count.
func (h *Histogram) Max() int {
	peak := 0
	for _, n := range h {
		if n > peak {
			peak = n
		}
	}
	return peak
}

// Range returns the darkest and brightest luma levels with a non-zero
// count. ok is false for an empty histogram.
func (h *Histogram) Range() (lo, hi uint8, ok bool) {
	first, last := -1, -1
	for i, n := range h {
		if n == 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return 0, 0, false
	}
	return uint8(first), uint8(last), true
}

// merge adds the counts of other into h.
func (h *Histogram) merge(other *Histogram) {
	for i, n := range other {
		h[i] += n
	}
}

// AccumulateHistogram counts the luma of every pixel of src. Each row band
// fills its own histogram and the bands are summed once all have finished,
// so the total always equals width*height.
func AccumulateHistogram(ctx context.Context, src Raster, workers int) (*Histogram, error) {
	width, height := src.Width(), src.Height()
	bands, bandSize := bandCount(height, workers)
	partial := make([]Histogram, bands)

	err := ParallelRows(ctx, height, workers, func(y0, y1 int) {
		h := &partial[y0/bandSize]
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				h[Luma(src.GetRGB(x, y))]++
			}
		}
	})
	if err != nil {
		return nil, err
	}

	hist := new(Histogram)
	for i := range partial {
		hist.merge(&partial[i])
	}
	return hist, nil
}

// StretchLevel linearly maps gray from [lo, hi] onto [0, 255] using integer
// arithmetic. When lo == hi there is no range to stretch and gray is
// returned unchanged.
func StretchLevel(gray, lo, hi uint8) uint8 {
	if hi <= lo {
		return gray
	}
	g := clampInt(int(gray), int(lo), int(hi))
	return uint8(255 * (g - int(lo)) / (int(hi) - int(lo)))
}

// StretchContrast recomputes the luma of every source pixel and stretches
// it from [lo, hi] to the full [0, 255] range, producing a gray image.
func StretchContrast(ctx context.Context, src Raster, lo, hi uint8, workers int) (*RGBAImage, error) {
	return MapPixels(ctx, src, workers, func(c RGB) RGB {
		return GrayRGB(StretchLevel(Luma(c), lo, hi))
	})
}
