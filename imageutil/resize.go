package imageutil

import (
	"image"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationSmooth uses Catmull-Rom for high-quality scaling in
	// both directions.
	InterpolationSmooth Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality; keeps binarized images strictly two-tone.
	InterpolationNearest
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// FitSquare scales img so that its shorter edge equals side, keeping the
// aspect ratio. The longer edge therefore overflows a side x side viewport,
// which is how the filtered result is previewed.
func FitSquare(img *RGBAImage, side int, interp Interpolation) *RGBAImage {
	w, h := img.Width(), img.Height()
	if side <= 0 || w == 0 || h == 0 {
		return img.Clone()
	}
	if w <= h {
		return Resize(img, side, max(1, h*side/w), interp)
	}
	return Resize(img, max(1, w*side/h), side, interp)
}
