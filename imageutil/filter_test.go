package imageutil

import (
	"context"
	"testing"
)

func TestMapPixelsIdentity(t *testing.T) {
	img := CreateNoiseImage(17, 9, 1)
	out, err := MapPixels(context.Background(), img, 1, IdentityPixel)
	if err != nil {
		t.Fatalf("MapPixels failed: %v", err)
	}
	if diff := CalculateMaxDiff(img, out); diff != 0 {
		t.Errorf("Identity should preserve every pixel, max diff %d", diff)
	}
	if out == img {
		t.Error("MapPixels should allocate a new image")
	}
}

func TestZeroBluePixel(t *testing.T) {
	c := ZeroBluePixel(RGB{R: 12, G: 34, B: 56})
	if c != (RGB{R: 12, G: 34, B: 0}) {
		t.Errorf("Expected {12 34 0}, got %v", c)
	}
}

func TestBinarizePixelStrictlyGreater(t *testing.T) {
	binarize := BinarizePixel(100)
	if got := binarize(GrayRGB(100)); got != Black {
		t.Errorf("Luma equal to threshold should be black, got %v", got)
	}
	if got := binarize(GrayRGB(101)); got != White {
		t.Errorf("Luma above threshold should be white, got %v", got)
	}
	if got := BinarizePixel(255)(White); got != Black {
		t.Errorf("Nothing exceeds threshold 255, got %v", got)
	}
	if got := BinarizePixel(0)(GrayRGB(1)); got != White {
		t.Errorf("Luma 1 exceeds threshold 0, got %v", got)
	}
}

func TestToGrayscale(t *testing.T) {
	img := CreateColorBarsImage(64, 8)
	gray, err := ToGrayscale(context.Background(), img, 1)
	if err != nil {
		t.Fatalf("ToGrayscale failed: %v", err)
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			want := GrayRGB(Luma(img.GetRGB(x, y)))
			if got := gray.GetRGB(x, y); got != want {
				t.Fatalf("At (%d,%d): expected %v, got %v", x, y, want, got)
			}
		}
	}
}

func TestApplyKernelSinglePixel(t *testing.T) {
	c := RGB{R: 90, G: 180, B: 45}
	img := CreatePixelImage(1, 1, c)

	if got := ApplyKernel(img, BlurKernel(), 0, 0); got != c {
		t.Errorf("Blur of 1x1 image should be unchanged, got %v", got)
	}
	if got := ApplyKernel(img, LaplacianKernel(), 0, 0); got != Black {
		t.Errorf("Laplacian of 1x1 image should be black, got %v", got)
	}
}

func TestApplyKernelBorderReplication(t *testing.T) {
	// 3x1 row: 0, 100, 200. At x=0 the left neighbour replicates 0.
	img := CreatePixelImage(3, 1, GrayRGB(0), GrayRGB(100), GrayRGB(200))

	// Blur at x=0: rows above/below replicate the row itself.
	// Column weights 4,8,4 over values 0,0,100 -> 400/16 = 25.
	if got := ApplyKernel(img, BlurKernel(), 0, 0); got != GrayRGB(25) {
		t.Errorf("Expected blur 25 at left border, got %v", got)
	}

	// Laplacian at x=2: up+down replicate 200 each, left 100, right 200.
	// 200+200+100+200-4*200 = -100 -> clamped to 0.
	if got := ApplyKernel(img, LaplacianKernel(), 2, 0); got != Black {
		t.Errorf("Expected clamped 0 at right border, got %v", got)
	}

	// Laplacian at x=0: 0+0+0+100-0 = 100.
	if got := ApplyKernel(img, LaplacianKernel(), 0, 0); got != GrayRGB(100) {
		t.Errorf("Expected 100 at left border, got %v", got)
	}
}

func TestLaplacianClampsHigh(t *testing.T) {
	// Bright centre surrounded by black yields -4*255, dark centre
	// surrounded by white yields 4*255 which must clamp to 255.
	img := CreateSolidImage(3, 3, White)
	img.SetRGB(1, 1, Black)
	if got := ApplyKernel(img, LaplacianKernel(), 1, 1); got != White {
		t.Errorf("Expected clamped 255, got %v", got)
	}
}

func TestConvolveUniformImage(t *testing.T) {
	c := RGB{R: 33, G: 66, B: 99}
	img := CreateSolidImage(12, 7, c)

	blurred, err := Convolve3x3(context.Background(), img, BlurKernel(), 1)
	if err != nil {
		t.Fatalf("Blur failed: %v", err)
	}
	edges, err := Convolve3x3(context.Background(), img, LaplacianKernel(), 1)
	if err != nil {
		t.Fatalf("Edge detection failed: %v", err)
	}

	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			if got := blurred.GetRGB(x, y); got != c {
				t.Fatalf("Blur of uniform image changed (%d,%d): %v", x, y, got)
			}
			if got := edges.GetRGB(x, y); got != Black {
				t.Fatalf("Laplacian of uniform image not black at (%d,%d): %v", x, y, got)
			}
		}
	}
}

func TestConvolveChannelsIndependent(t *testing.T) {
	// Only the red channel varies; green and blue must stay flat.
	img := CreateSolidImage(5, 5, RGB{R: 0, G: 50, B: 200})
	img.SetRGB(2, 2, RGB{R: 160, G: 50, B: 200})

	out, err := Convolve3x3(context.Background(), img, BlurKernel(), 1)
	if err != nil {
		t.Fatalf("Blur failed: %v", err)
	}
	if got := out.GetRGB(2, 2); got != (RGB{R: 40, G: 50, B: 200}) {
		t.Errorf("Expected {40 50 200} at centre, got %v", got)
	}
	if got := out.GetRGB(1, 2); got != (RGB{R: 20, G: 50, B: 200}) {
		t.Errorf("Expected {20 50 200} next to centre, got %v", got)
	}
}

func TestHistogramTotals(t *testing.T) {
	img := CreateNoiseImage(31, 23, 7)
	for _, workers := range []int{1, 2, 3, 8, 64} {
		hist, err := AccumulateHistogram(context.Background(), img, workers)
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		if total := hist.Total(); total != 31*23 {
			t.Errorf("workers=%d: expected total %d, got %d", workers, 31*23, total)
		}
	}
}

func TestHistogramRange(t *testing.T) {
	img := CreatePixelImage(2, 2, GrayRGB(40), GrayRGB(40), GrayRGB(90), GrayRGB(200))
	hist, err := AccumulateHistogram(context.Background(), img, 1)
	if err != nil {
		t.Fatalf("AccumulateHistogram failed: %v", err)
	}
	if hist[40] != 2 || hist[90] != 1 || hist[200] != 1 {
		t.Errorf("Unexpected bins: 40=%d 90=%d 200=%d", hist[40], hist[90], hist[200])
	}
	lo, hi, ok := hist.Range()
	if !ok || lo != 40 || hi != 200 {
		t.Errorf("Expected range [40,200], got [%d,%d] ok=%v", lo, hi, ok)
	}
	if hist.Max() != 2 {
		t.Errorf("Expected peak 2, got %d", hist.Max())
	}

	var empty Histogram
	if _, _, ok := empty.Range(); ok {
		t.Error("Empty histogram should have no range")
	}
}

func TestStretchLevel(t *testing.T) {
	testCases := []struct {
		gray, lo, hi, want uint8
	}{
		{40, 40, 200, 0},
		{200, 40, 200, 255},
		{120, 40, 200, 127}, // 255*80/160
		{77, 0, 255, 77},
		{90, 90, 90, 90}, // no range: unchanged
	}
	for _, tc := range testCases {
		if got := StretchLevel(tc.gray, tc.lo, tc.hi); got != tc.want {
			t.Errorf("StretchLevel(%d, %d, %d): expected %d, got %d",
				tc.gray, tc.lo, tc.hi, tc.want, got)
		}
	}
}

func TestStretchContrastFullRangeIsGrayscale(t *testing.T) {
	img := CreateGradientImage(256, 4)
	stretched, err := StretchContrast(context.Background(), img, 0, 255, 1)
	if err != nil {
		t.Fatalf("StretchContrast failed: %v", err)
	}
	gray, err := ToGrayscale(context.Background(), img, 1)
	if err != nil {
		t.Fatalf("ToGrayscale failed: %v", err)
	}
	if diff := CalculateMaxDiff(stretched, gray); diff != 0 {
		t.Errorf("Full-range stretch should equal grayscale, max diff %d", diff)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	img := CreateNoiseImage(37, 29, 42)

	seqBlur, _ := Convolve3x3(ctx, img, BlurKernel(), 1)
	parBlur, err := Convolve3x3(ctx, img, BlurKernel(), 5)
	if err != nil {
		t.Fatalf("parallel blur failed: %v", err)
	}
	if diff := CalculateMaxDiff(seqBlur, parBlur); diff != 0 {
		t.Errorf("Parallel blur differs from sequential, max diff %d", diff)
	}

	seqHist, _ := AccumulateHistogram(ctx, img, 1)
	parHist, err := AccumulateHistogram(ctx, img, 6)
	if err != nil {
		t.Fatalf("parallel histogram failed: %v", err)
	}
	if *seqHist != *parHist {
		t.Error("Parallel histogram differs from sequential")
	}
}

func TestParallelRowsCoversEveryRowOnce(t *testing.T) {
	for _, tc := range []struct{ height, workers int }{
		{1, 4}, {7, 3}, {10, 4}, {100, 7}, {5, 0},
	} {
		seen := make([]int, tc.height)
		err := ParallelRows(context.Background(), tc.height, tc.workers, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				seen[y]++
			}
		})
		if err != nil {
			t.Fatalf("height=%d workers=%d: %v", tc.height, tc.workers, err)
		}
		for y, n := range seen {
			if n != 1 {
				t.Errorf("height=%d workers=%d: row %d visited %d times", tc.height, tc.workers, y, n)
			}
		}
	}
}

func TestParallelRowsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := ParallelRows(ctx, 10, 1, func(y0, y1 int) { called = true })
	if err == nil {
		t.Error("Expected error from cancelled context")
	}
	if called {
		t.Error("No rows should run after cancellation")
	}

	if _, err := MapPixels(ctx, CreateSolidImage(4, 4, White), 4, IdentityPixel); err == nil {
		t.Error("Expected MapPixels to fail on cancelled context")
	}
}

func TestRenderHistogram(t *testing.T) {
	img := CreateGradientImage(256, 2)
	hist, err := AccumulateHistogram(context.Background(), img, 1)
	if err != nil {
		t.Fatalf("AccumulateHistogram failed: %v", err)
	}

	opts := DefaultChartOptions()
	chart, err := RenderHistogram(hist, opts)
	if err != nil {
		t.Fatalf("RenderHistogram failed: %v", err)
	}
	if chart.Width() != opts.Width || chart.Height() != opts.Height {
		t.Errorf("Expected %dx%d chart, got %dx%d", opts.Width, opts.Height, chart.Width(), chart.Height())
	}

	bars := 0
	for y := 0; y < chart.Height(); y++ {
		for x := 0; x < chart.Width(); x++ {
			if chart.GetRGB(x, y) == opts.Bar {
				bars++
			}
		}
	}
	if bars == 0 {
		t.Error("Expected bar pixels in chart")
	}
}

func TestRenderHistogramEmptyAndTooSmall(t *testing.T) {
	opts := DefaultChartOptions()
	opts.FontSize = 0
	if _, err := RenderHistogram(new(Histogram), opts); err != nil {
		t.Errorf("Empty histogram should render, got %v", err)
	}

	opts.Width = 100
	if _, err := RenderHistogram(new(Histogram), opts); err == nil {
		t.Error("Expected error for chart narrower than 256 levels")
	}
}
