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

// decodeCropPNG decodes a CropResult payload back into an image.
func decodeCropPNG(t *testing.T, result *CropResult) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode PNG: %v", err)
	}
	return img
}

func TestCrop(t *testing.T) {
	img := quadrantImage(100, 100)

	result, err := Crop(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	decodeCropPNG(t, result)
}

func TestCrop_Scale(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name         string
		scale        float64
		wantW, wantH int
	}{
		{"magnify 2x", 2.0, 100, 100},
		{"shrink to half", 0.5, 25, 25},
		{"identity", 1.0, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, 0, 0, 50, 50, tt.scale)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCrop_BadScale(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	for _, scale := range []float64{0, -1, -0.5, 8.5, 100} {
		if _, err := Crop(img, 0, 0, 50, 50, scale); err == nil {
			t.Errorf("Crop should reject scale %g", scale)
		}
	}

	// A scale that would leave less than one pixel.
	if _, err := Crop(img, 0, 0, 10, 10, 0.01); err == nil {
		t.Error("Crop should reject a scale that shrinks the region below one pixel")
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 negative", -1, 0, 50, 50},
		{"y1 negative", 0, -1, 50, 50},
		{"x2 past width", 0, 0, 101, 50},
		{"y2 past height", 0, 0, 50, 101},
		{"everything outside", -1, -1, 200, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Error("Crop should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCrop_DegenerateRegion(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 equals x2", 50, 0, 50, 50},
		{"x1 past x2", 60, 0, 50, 50},
		{"y1 equals y2", 0, 50, 50, 50},
		{"y1 past y2", 0, 60, 50, 50},
		{"zero area", 50, 50, 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Error("Crop should fail for a degenerate region")
			}
		})
	}
}

func TestCrop_FullImage(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := Crop(img, 0, 0, 100, 100, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestCrop_PreservesContent(t *testing.T) {
	img := quadrantImage(100, 100)

	result, err := Crop(img, 0, 0, 50, 50, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	cropped := decodeCropPNG(t, result)
	r, g, b, _ := cropped.At(25, 25).RGBA()
	if uint8(r>>8) != 255 || uint8(g>>8) != 0 || uint8(b>>8) != 0 {
		t.Errorf("top-left crop center: got (%d,%d,%d), want (255,0,0)",
			uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestCropQuadrant(t *testing.T) {
	img := quadrantImage(100, 100)

	tests := []struct {
		region       string
		wantW, wantH int
	}{
		{"top-left", 50, 50},
		{"top-right", 50, 50},
		{"bottom-left", 50, 50},
		{"bottom-right", 50, 50},
		{"top-half", 100, 50},
		{"bottom-half", 100, 50},
		{"left-half", 50, 100},
		{"right-half", 50, 100},
		{"center", 50, 50},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := CropQuadrant(img, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropQuadrant(%s) failed: %v", tt.region, err)
			}
			if result.Width != tt.wantW || result.Height != tt.wantH {
				t.Errorf("dimensions: got %dx%d, want %dx%d",
					result.Width, result.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCropQuadrant_UnknownRegion(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	for _, region := range []string{"invalid", "TOP-LEFT", "middle", "", "center-left"} {
		t.Run(region, func(t *testing.T) {
			if _, err := CropQuadrant(img, region, 1.0); err == nil {
				t.Errorf("CropQuadrant should fail for region %q", region)
			}
		})
	}
}

func TestCropQuadrant_Scale(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := CropQuadrant(img, "top-left", 2.0)
	if err != nil {
		t.Fatalf("CropQuadrant failed: %v", err)
	}
	if result.Width != 100 || result.Height != 100 {
		t.Errorf("scaled dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestCropQuadrant_PicksTheRightQuadrant(t *testing.T) {
	img := quadrantImage(100, 100)

	tests := []struct {
		region  string
		wantHex string
	}{
		{"top-left", "#FF0000"},
		{"top-right", "#00FF00"},
		{"bottom-left", "#0000FF"},
		{"bottom-right", "#FFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			result, err := CropQuadrant(img, tt.region, 1.0)
			if err != nil {
				t.Fatalf("CropQuadrant(%s) failed: %v", tt.region, err)
			}

			cropped := decodeCropPNG(t, result)
			r, g, b, _ := cropped.At(result.Width/2, result.Height/2).RGBA()
			gotHex := fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
			if gotHex != tt.wantHex {
				t.Errorf("center of %s: got %s, want %s", tt.region, gotHex, tt.wantHex)
			}
		})
	}
}

func TestCropQuadrant_OddDimensions(t *testing.T) {
	img := solidImage(101, 101, color.RGBA{255, 0, 0, 255})

	result, err := CropQuadrant(img, "top-left", 1.0)
	if err != nil {
		t.Fatalf("CropQuadrant failed: %v", err)
	}
	// 101/2 truncates to 50.
	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
}
