package imageutil

import "context"

// PixelFunc maps one source pixel to one output pixel. Implementations
// must be pure: MapPixels may call them from several goroutines.
type PixelFunc func(RGB) RGB

// IdentityPixel returns c unchanged.
func IdentityPixel(c RGB) RGB {
	return c
}

// ZeroBluePixel drops the blue channel.
func ZeroBluePixel(c RGB) RGB {
	c.B = 0
	return c
}

// GrayscalePixel replaces c by its luma on all channels.
func GrayscalePixel(c RGB) RGB {
	return GrayRGB(Luma(c))
}

// BinarizePixel returns a PixelFunc mapping pixels whose luma is strictly
// greater than threshold to white and all others to black.
func BinarizePixel(threshold uint8) PixelFunc {
	return func(c RGB) RGB {
		if Luma(c) > threshold {
			return White
		}
		return Black
	}
}

// MapPixels applies fn to every pixel of src and returns the result as a
// new image of the same size.
func MapPixels(ctx context.Context, src Raster, workers int, fn PixelFunc) (*RGBAImage, error) {
	width, height := src.Width(), src.Height()
	dst := NewRGBAImage(width, height)

	err := ParallelRows(ctx, height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				dst.SetRGB(x, y, fn(src.GetRGB(x, y)))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}
