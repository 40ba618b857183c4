package features

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestExtractCoarse_White(t *testing.T) {
	img := stripeImage(100, 100, 100, []color.Color{color.White})

	c := ExtractCoarse(img)

	if c.Width != 100 || c.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", c.Width, c.Height)
	}
	if c.AspectRatio != 1.0 {
		t.Errorf("aspect ratio: got %v, want 1.0", c.AspectRatio)
	}
	if !c.Color {
		t.Error("RGBA input should report color")
	}
	if c.Brightness != 255 {
		t.Errorf("brightness: got %v, want 255", c.Brightness)
	}
	if math.Abs(c.ColorDiversity-0.0001) > 1e-12 {
		t.Errorf("color diversity: got %v, want 0.0001", c.ColorDiversity)
	}
	if c.EdgeDensity != 0 {
		t.Errorf("edge density: got %v, want 0", c.EdgeDensity)
	}
}

func TestExtractCoarse_Grayscale(t *testing.T) {
	img := grayImage(50, 100, 200)

	c := ExtractCoarse(img)

	if c.Color {
		t.Error("single-channel input should not report color")
	}
	if c.AspectRatio != 0.5 {
		t.Errorf("aspect ratio: got %v, want 0.5", c.AspectRatio)
	}
	if math.Abs(c.Brightness-200) > 0.5 {
		t.Errorf("brightness: got %v, want about 200", c.Brightness)
	}

	// The coarse path skips color diversity and edge detection for
	// grayscale storage
	if c.ColorDiversity != 0 {
		t.Errorf("color diversity: got %v, want 0", c.ColorDiversity)
	}
	if c.EdgeDensity != 0 {
		t.Errorf("edge density: got %v, want 0", c.EdgeDensity)
	}
}

func TestExtractCoarse_EmptyBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	c := ExtractCoarse(img)

	if c.Width != 0 || c.Height != 0 {
		t.Errorf("dimensions: got %dx%d, want 0x0", c.Width, c.Height)
	}
	if c.AspectRatio != 0 || c.Brightness != 0 || c.Color {
		t.Errorf("empty image should yield zero measures, got %+v", c)
	}
}

func TestExtractCoarse_EdgesOnFigure(t *testing.T) {
	img := blackRectOnWhite(100, 100, 30, 30, 70, 70)

	c := ExtractCoarse(img)

	if c.EdgeDensity <= 0 {
		t.Errorf("edge density: got %v, want > 0 for a black rectangle on white", c.EdgeDensity)
	}
	if c.ColorDiversity <= 0 {
		t.Errorf("color diversity: got %v, want > 0", c.ColorDiversity)
	}
}

func TestChannelMean_PureRed(t *testing.T) {
	img := stripeImage(10, 10, 10, []color.Color{color.RGBA{255, 0, 0, 255}})

	// One full channel out of three
	if got := channelMean(img); got != 85 {
		t.Errorf("channel mean: got %v, want 85", got)
	}
}

func TestChannelMean_DiffersFromLuminance(t *testing.T) {
	img := stripeImage(10, 10, 10, []color.Color{color.RGBA{0, 255, 0, 255}})

	c := ExtractCoarse(img)
	if c.Brightness != 85 {
		t.Errorf("green channel mean: got %v, want 85", c.Brightness)
	}

	v, err := Extract(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Luminance weights green far above one third
	if v.Brightness <= c.Brightness {
		t.Errorf("luminance brightness %v should exceed channel mean %v for pure green", v.Brightness, c.Brightness)
	}
}
