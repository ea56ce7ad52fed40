package imageutil

import "context"

// Kernel3x3 is an integer 3x3 convolution kernel. Each channel sum is
// divided by Divisor (integer division); when Clamp is set the result is
// clamped to [0, 255], which kernels with negative weights need.
type Kernel3x3 struct {
	Weights [3][3]int
	Divisor int
	Clamp   bool
}

// BlurKernel returns the 3x3 Gaussian blur kernel, normalized by the sum of
// its weights.
func BlurKernel() Kernel3x3 {
	return Kernel3x3{
		Weights: [3][3]int{
			{1, 2, 1},
			{2, 4, 2},
			{1, 2, 1},
		},
		Divisor: 16,
	}
}

// LaplacianKernel returns the 4-neighbour discrete Laplacian. Its weights
// sum to zero, so flat regions map to black.
func LaplacianKernel() Kernel3x3 {
	return Kernel3x3{
		Weights: [3][3]int{
			{0, 1, 0},
			{1, -4, 1},
			{0, 1, 0},
		},
		Divisor: 1,
		Clamp:   true,
	}
}

// ApplyKernel computes the kernel response at (x, y). Neighbours outside
// the image are replaced by the nearest edge pixel (border replication),
// so every pixel, including those of a 1x1 image, sees a full 3x3
// neighbourhood.
func ApplyKernel(src Raster, k Kernel3x3, x, y int) RGB {
	width, height := src.Width(), src.Height()
	divisor := k.Divisor
	if divisor == 0 {
		divisor = 1
	}

	var sumR, sumG, sumB int
	for ky := 0; ky < 3; ky++ {
		sy := clampInt(y+ky-1, 0, height-1)
		for kx := 0; kx < 3; kx++ {
			w := k.Weights[ky][kx]
			if w == 0 {
				continue
			}
			sx := clampInt(x+kx-1, 0, width-1)
			c := src.GetRGB(sx, sy)
			sumR += int(c.R) * w
			sumG += int(c.G) * w
			sumB += int(c.B) * w
		}
	}

	sumR /= divisor
	sumG /= divisor
	sumB /= divisor
	if k.Clamp {
		return RGB{R: clampUint8(sumR), G: clampUint8(sumG), B: clampUint8(sumB)}
	}
	return RGB{R: uint8(sumR), G: uint8(sumG), B: uint8(sumB)}
}

// Convolve3x3 applies k to every pixel of src, per RGB channel.
func Convolve3x3(ctx context.Context, src Raster, k Kernel3x3, workers int) (*RGBAImage, error) {
	width, height := src.Width(), src.Height()
	dst := NewRGBAImage(width, height)

	err := ParallelRows(ctx, height, workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				dst.SetRGB(x, y, ApplyKernel(src, k, x, y))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// clampInt clamps an integer to the given range.
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampUint8 clamps an integer to [0, 255] and converts to uint8.
func clampUint8(v int) uint8 {
	return uint8(clampInt(v, 0, 255))
}
