package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestGridOverlay(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{128, 128, 128, 255})

	result, err := GridOverlay(img, 25, false, "#FF0000")
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
	if result.GridSpacing != 25 {
		t.Errorf("GridSpacing: got %d, want 25", result.GridSpacing)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(result.ImageBase64); err != nil {
		t.Errorf("decode base64: %v", err)
	}
}

func TestGridOverlay_BadSpacing(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{128, 128, 128, 255})

	for _, spacing := range []int{0, -10} {
		if _, err := GridOverlay(img, spacing, false, "#FF0000"); err == nil {
			t.Errorf("GridOverlay should reject spacing %d", spacing)
		}
	}
}

func TestGridOverlay_DrawsLines(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{0, 0, 0, 255})

	result, err := GridOverlay(img, 25, false, "#FF0000FF")
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	gridImg, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	r, g, b, _ := gridImg.At(25, 50).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("grid line at (25,50): got (%d,%d,%d), want (255,0,0)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}

	r, g, b, _ = gridImg.At(15, 15).RGBA()
	if uint8(r>>8) != 0 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("background at (15,15): got (%d,%d,%d), want (0,0,0)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestGridOverlay_WithCoordinates(t *testing.T) {
	img := solidImage(200, 200, color.RGBA{128, 128, 128, 255})

	result, err := GridOverlay(img, 50, true, "#FF0000")
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}

	// Labels sit just inside each intersection over a dark box;
	// check that the area past the (50,50) gridlines is no longer
	// uniform gray. The scan starts at 52 to stay off the lines.
	raw, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	gridImg, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	touched := false
	for y := 52; y < 66 && !touched; y++ {
		for x := 52; x < 100 && !touched; x++ {
			r, g, b, _ := gridImg.At(x, y).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)
			if r8 != 128 || g8 != 128 || b8 != 128 {
				touched = true
			}
		}
	}
	if !touched {
		t.Error("coordinate labels left no mark near the (50,50) intersection")
	}
}

func TestGridOverlay_SubImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 200, 200))
	sub := base.SubImage(image.Rect(50, 50, 150, 150))

	result, err := GridOverlay(sub, 25, false, "#FF0000FF")
	if err != nil {
		t.Fatalf("GridOverlay failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}

	raw, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	gridImg, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}

	r, g, b, _ := gridImg.At(25, 50).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("grid line at (25,50): got (%d,%d,%d), want (255,0,0)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestGridOverlay_Spacings(t *testing.T) {
	img := solidImage(200, 200, color.RGBA{128, 128, 128, 255})

	for _, spacing := range []int{10, 25, 50, 100} {
		t.Run(fmt.Sprintf("spacing%d", spacing), func(t *testing.T) {
			result, err := GridOverlay(img, spacing, false, "#FF0000")
			if err != nil {
				t.Fatalf("GridOverlay failed: %v", err)
			}
			if result.GridSpacing != spacing {
				t.Errorf("GridSpacing: got %d, want %d", result.GridSpacing, spacing)
			}
		})
	}
}

func TestGridOverlay_UnparseableColorFallsBack(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{128, 128, 128, 255})

	for _, bad := range []string{"invalid", ""} {
		result, err := GridOverlay(img, 50, false, bad)
		if err != nil {
			t.Fatalf("GridOverlay with color %q failed: %v", bad, err)
		}
		if result.ImageBase64 == "" {
			t.Errorf("GridOverlay with color %q produced no image", bad)
		}
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		wantR   uint8
		wantG   uint8
		wantB   uint8
		wantA   uint8
		wantErr bool
	}{
		{"#FF0000", 255, 0, 0, 255, false},
		{"#00FF00", 0, 255, 0, 255, false},
		{"#0000FF", 0, 0, 255, 255, false},
		{"#FFFFFF", 255, 255, 255, 255, false},
		{"#000000", 0, 0, 0, 255, false},
		{"FF0000", 255, 0, 0, 255, false},
		{"#FF000080", 255, 0, 0, 128, false},
		{"FF000080", 255, 0, 0, 128, false},
		{"", 0, 0, 0, 0, true},
		{"#FFF", 0, 0, 0, 0, true},
		{"#GGGGGG", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := parseHexColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.R != tt.wantR || c.G != tt.wantG || c.B != tt.wantB || c.A != tt.wantA {
				t.Errorf("got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					c.R, c.G, c.B, c.A, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestDrawLabel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))

	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 255}
	drawLabel(img, 10, 10, "50,50", fg, bg)

	hasText := false
	hasBox := false
	for y := 9; y < 24; y++ {
		for x := 9; x < 46; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r > 200<<8 {
				hasText = true
			}
			if uint8(r>>8) < 50 {
				hasBox = true
			}
		}
	}

	if !hasText {
		t.Error("label should contain light text pixels")
	}
	if !hasBox {
		t.Error("label should contain dark background pixels")
	}
}

func TestDrawLabel_ClipsAtEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))

	fg := color.RGBA{255, 255, 255, 255}
	bg := color.RGBA{0, 0, 0, 180}

	// Labels that overrun or precede the canvas must not panic.
	drawLabel(img, 15, 15, "100,100", fg, bg)
	drawLabel(img, 0, 0, "0,0", fg, bg)
	drawLabel(img, -5, -5, "x", fg, bg)
}

func TestDrawLabel_EmptyString(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))

	drawLabel(img, 10, 10, "", color.RGBA{255, 255, 255, 255}, color.RGBA{0, 0, 0, 180})
}
