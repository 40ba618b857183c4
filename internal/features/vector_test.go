package features

import (
	"image"
	"image/color"
	"math"
	"reflect"
	"testing"
)

// grayImage returns a single-channel image filled with one gray level
func grayImage(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// blackRectOnWhite draws a filled black rectangle spanning (x1,y1)-(x2,y2)
// on a white background
func blackRectOnWhite(width, height, x1, y1, x2, y2 int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= x1 && x < x2 && y >= y1 && y < y2 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	return img
}

func TestExtract_NilImage(t *testing.T) {
	v, err := Extract(nil)
	if err == nil {
		t.Fatal("expected error for nil image")
	}
	if v != nil {
		t.Errorf("expected nil vector, got %+v", v)
	}
}

func TestExtract_EmptyBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := Extract(img); err == nil {
		t.Fatal("expected error for image without pixels")
	}
}

func TestExtract_TinyImage(t *testing.T) {
	// Below the minimum feature area every ratio stays zero; only the
	// pixel statistics survive
	sizes := []struct {
		width, height int
	}{
		{1, 1},
		{3, 3},
		{2, 4},
	}

	for _, size := range sizes {
		img := stripeImage(size.width, size.height, size.width, []color.Color{color.White})
		v, err := Extract(img)
		if err != nil {
			t.Fatalf("%dx%d: unexpected error: %v", size.width, size.height, err)
		}

		wantAspect := float64(size.width) / float64(size.height)
		if v.AspectRatio != wantAspect {
			t.Errorf("%dx%d aspect ratio: got %v, want %v", size.width, size.height, v.AspectRatio, wantAspect)
		}
		if math.Abs(v.Brightness-255) > 1e-6 {
			t.Errorf("%dx%d brightness: got %v, want 255", size.width, size.height, v.Brightness)
		}
		if v.DominantColorCount != 1 {
			t.Errorf("%dx%d dominant color count: got %v, want 1", size.width, size.height, v.DominantColorCount)
		}

		zeros := map[string]float64{
			"edge density":        v.EdgeDensity,
			"color diversity":     v.ColorDiversity,
			"text ratio":          v.TextRatio,
			"line density":        v.LineDensity,
			"circle ratio":        v.CircleRatio,
			"rectangle ratio":     v.RectangleRatio,
			"symmetry horizontal": v.SymmetryHorizontal,
			"symmetry vertical":   v.SymmetryVertical,
			"saturation mean":     v.SaturationMean,
			"hue variance":        v.HueVariance,
		}
		for name, got := range zeros {
			if got != 0 {
				t.Errorf("%dx%d %s: got %v, want 0", size.width, size.height, name, got)
			}
		}
	}
}

func TestExtract_UniformWhite(t *testing.T) {
	img := stripeImage(100, 100, 100, []color.Color{color.White})

	v, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.AspectRatio != 1.0 {
		t.Errorf("aspect ratio: got %v, want 1.0", v.AspectRatio)
	}
	if math.Abs(v.Brightness-255) > 1e-6 {
		t.Errorf("brightness: got %v, want 255", v.Brightness)
	}
	if math.Abs(v.Contrast) > 1e-6 {
		t.Errorf("contrast: got %v, want 0", v.Contrast)
	}
	if v.EdgeDensity != 0 {
		t.Errorf("edge density: got %v, want 0", v.EdgeDensity)
	}
	if math.Abs(v.ColorDiversity-0.0001) > 1e-12 {
		t.Errorf("color diversity: got %v, want 0.0001", v.ColorDiversity)
	}
	if v.TextRatio != 0 {
		t.Errorf("text ratio: got %v, want 0", v.TextRatio)
	}
	if v.LineDensity != 0 {
		t.Errorf("line density: got %v, want 0", v.LineDensity)
	}
	if v.CircleRatio != 0 {
		t.Errorf("circle ratio: got %v, want 0", v.CircleRatio)
	}
	if v.RectangleRatio != 0 {
		t.Errorf("rectangle ratio: got %v, want 0", v.RectangleRatio)
	}
	if v.SymmetryHorizontal != 0 || v.SymmetryVertical != 0 {
		t.Errorf("symmetry: got %v/%v, want 0/0 for uniform input", v.SymmetryHorizontal, v.SymmetryVertical)
	}
	if v.DominantColorCount != 1 {
		t.Errorf("dominant color count: got %v, want 1", v.DominantColorCount)
	}
	if math.Abs(v.SaturationMean) > 1e-9 || math.Abs(v.HueVariance) > 1e-9 {
		t.Errorf("saturation/hue: got %v/%v, want 0/0 for white", v.SaturationMean, v.HueVariance)
	}
}

func TestExtract_GrayscaleInput(t *testing.T) {
	img := grayImage(80, 40, 128)

	v, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.AspectRatio != 2.0 {
		t.Errorf("aspect ratio: got %v, want 2.0", v.AspectRatio)
	}
	if math.Abs(v.Brightness-128) > 0.5 {
		t.Errorf("brightness: got %v, want about 128", v.Brightness)
	}

	// Single-channel storage skips the color measures
	if v.ColorDiversity != 0 {
		t.Errorf("color diversity: got %v, want 0", v.ColorDiversity)
	}
	if v.SaturationMean != 0 {
		t.Errorf("saturation mean: got %v, want 0", v.SaturationMean)
	}
	if v.HueVariance != 0 {
		t.Errorf("hue variance: got %v, want 0", v.HueVariance)
	}
	if v.DominantColorCount != 1 {
		t.Errorf("dominant color count: got %v, want 1", v.DominantColorCount)
	}
}

func TestExtract_RectangleFigure(t *testing.T) {
	img := blackRectOnWhite(100, 100, 30, 40, 70, 60)

	v, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.EdgeDensity <= 0 {
		t.Errorf("edge density: got %v, want > 0 for a black rectangle on white", v.EdgeDensity)
	}
	if v.RectangleRatio <= 0 {
		t.Errorf("rectangle ratio: got %v, want > 0", v.RectangleRatio)
	}
	if v.Contrast <= 0 {
		t.Errorf("contrast: got %v, want > 0", v.Contrast)
	}

	t.Logf("rectangle figure: edge=%.4f rect=%.4f circle=%.4f text=%.4f",
		v.EdgeDensity, v.RectangleRatio, v.CircleRatio, v.TextRatio)
}

func TestExtract_Deterministic(t *testing.T) {
	img := blackRectOnWhite(120, 80, 20, 20, 90, 60)

	first, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
