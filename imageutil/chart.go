package imageutil

import (
	"fmt"
	"image"
	"strconv"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// ChartOptions controls RenderHistogram output.
type ChartOptions struct {
	Width    int     // Output width in pixels; at least 256 + margins
	Height   int     // Output height in pixels
	FontSize float64 // Label size in points at 72 DPI; 0 disables labels
	Bar      RGB
	Axis     RGB
}

// DefaultChartOptions returns a 320x200 chart with gray bars and labels.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:    320,
		Height:   200,
		FontSize: 10,
		Bar:      RGB{128, 128, 128},
		Axis:     RGB{0, 0, 0},
	}
}

var (
	labelFontOnce sync.Once
	labelFont     *truetype.Font
	labelFontErr  error
)

// chartFont parses the embedded Go Regular face once.
func chartFont() (*truetype.Font, error) {
	labelFontOnce.Do(func() {
		labelFont, labelFontErr = freetype.ParseFont(goregular.TTF)
	})
	return labelFont, labelFontErr
}

// RenderHistogram draws h as a bar chart on a white background: one bar per
// luma level, scaled to the tallest bin, with the 0/128/255 levels and the
// peak count labelled along the axes.
func RenderHistogram(h *Histogram, opts ChartOptions) (*RGBAImage, error) {
	const plotW = 256

	left, bottom, top := 8, 8, 8
	if opts.FontSize > 0 {
		left = int(opts.FontSize * 4)
		bottom = int(opts.FontSize * 2)
		top = int(opts.FontSize)
	}
	minW, minH := left+plotW+8, top+bottom+16
	if opts.Width < minW || opts.Height < minH {
		return nil, fmt.Errorf("chart size %dx%d too small, need at least %dx%d",
			opts.Width, opts.Height, minW, minH)
	}

	img := NewRGBAImage(opts.Width, opts.Height)
	for i := range img.Pix {
		img.Pix[i] = 255
	}

	baseY := opts.Height - bottom
	plotH := baseY - top
	peak := h.Max()

	for level, n := range h {
		if n == 0 || peak == 0 {
			continue
		}
		barH := max(1, n*plotH/peak)
		for y := baseY - barH; y < baseY; y++ {
			img.SetRGB(left+level, y, opts.Bar)
		}
	}

	for x := left - 1; x < left+plotW; x++ {
		img.SetRGB(x, baseY, opts.Axis)
	}
	for y := top; y <= baseY; y++ {
		img.SetRGB(left-1, y, opts.Axis)
	}

	if opts.FontSize <= 0 {
		return img, nil
	}

	ttf, err := chartFont()
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(opts.FontSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.RGBA)
	ctx.SetSrc(image.NewUniform(opts.Axis.ToColor()))
	ctx.SetHinting(font.HintingFull)

	labelY := baseY + int(opts.FontSize) + 2
	for _, level := range []int{0, 128, 255} {
		if _, err := ctx.DrawString(strconv.Itoa(level), freetype.Pt(left+level-3, labelY)); err != nil {
			return nil, fmt.Errorf("failed to draw label: %w", err)
		}
	}
	if _, err := ctx.DrawString(strconv.Itoa(peak), freetype.Pt(1, top+int(opts.FontSize))); err != nil {
		return nil, fmt.Errorf("failed to draw label: %w", err)
	}

	return img, nil
}
