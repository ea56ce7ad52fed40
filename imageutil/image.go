// Package imageutil provides the pure Go pixel, convolution and histogram
// passes behind imgfilter, together with the image I/O, preview and chart
// helpers its command-line front end needs.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Black and White are the two outputs of binarization.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// ToColor converts RGB to an opaque color.RGBA.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBFromColor converts a color.Color to RGB, discarding alpha.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Raster is a read-only view of a decoded image. Coordinates passed to
// GetRGB satisfy 0 <= x < Width() and 0 <= y < Height().
type Raster interface {
	Width() int
	Height() int
	GetRGB(x, y int) RGB
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
// Alpha is always written as 255.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to an RGBAImage anchored at
// the origin.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.SetRGB(x-bounds.Min.X, y-bounds.Min.Y, RGBFromColor(img.At(x, y)))
		}
	}
	return rgba
}

// Width returns the image width, or 0 for a nil image.
func (img *RGBAImage) Width() int {
	if img == nil || img.RGBA == nil {
		return 0
	}
	return img.Bounds().Dx()
}

// Height returns the image height, or 0 for a nil image.
func (img *RGBAImage) Height() int {
	if img == nil || img.RGBA == nil {
		return 0
	}
	return img.Bounds().Dy()
}

// GetRGB returns the RGB value at (x, y), relative to the bounds origin.
func (img *RGBAImage) GetRGB(x, y int) RGB {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return RGB{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2]}
}

// SetRGB sets the RGB value at (x, y), relative to the bounds origin.
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	img.Pix[i] = c.R
	img.Pix[i+1] = c.G
	img.Pix[i+2] = c.B
	img.Pix[i+3] = 255
}

// Clone creates a deep copy of the image anchored at the origin.
func (img *RGBAImage) Clone() *RGBAImage {
	w, h := img.Width(), img.Height()
	clone := NewRGBAImage(w, h)
	for y := 0; y < h; y++ {
		src := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
		copy(clone.Pix[y*clone.Stride:y*clone.Stride+4*w], img.Pix[src:src+4*w])
	}
	return clone
}
