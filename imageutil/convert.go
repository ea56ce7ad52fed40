package imageutil

import "context"

// Luma returns the BT.601 luminance of c: Y = 0.299*R + 0.587*G + 0.114*B,
// computed in integer thousandths and rounded to the nearest value.
// This matches OpenCV's COLOR_BGR2GRAY to within one level.
func Luma(c RGB) uint8 {
	lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// GrayRGB returns the gray color with all channels set to v.
func GrayRGB(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// ToGrayscale converts an image to grayscale, replicating the luma into
// all three channels.
func ToGrayscale(ctx context.Context, src Raster, workers int) (*RGBAImage, error) {
	return MapPixels(ctx, src, workers, GrayscalePixel)
}
