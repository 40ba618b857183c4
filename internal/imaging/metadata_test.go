package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestCaptureInfo_Empty(t *testing.T) {
	var nilInfo *CaptureInfo
	if !nilInfo.Empty() {
		t.Error("nil CaptureInfo should be empty")
	}
	if !(&CaptureInfo{}).Empty() {
		t.Error("zero CaptureInfo should be empty")
	}
	if (&CaptureInfo{Model: "TestCam 3000"}).Empty() {
		t.Error("CaptureInfo with a model should not be empty")
	}
	if (&CaptureInfo{Created: "2024:01:01 00:00:00"}).Empty() {
		t.Error("CaptureInfo with a timestamp should not be empty")
	}
}

func TestReadCaptureInfo_UnsupportedFormat(t *testing.T) {
	// Formats without EXIF support return empty without touching the
	// file, so a bogus path must not error.
	capture, err := ReadCaptureInfo("/nonexistent/figure.gif", "gif")
	if err != nil {
		t.Fatalf("ReadCaptureInfo failed: %v", err)
	}
	if !capture.Empty() {
		t.Errorf("expected empty capture info, got %+v", capture)
	}
}

func TestReadCaptureInfo_PlainPNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	path := writePNG(t, "plain.png", img)

	capture, err := ReadCaptureInfo(path, "png")
	if err == nil && !capture.Empty() {
		t.Errorf("plain PNG should carry no capture metadata, got %+v", capture)
	}
}

func TestReadCaptureInfo_MissingFile(t *testing.T) {
	if _, err := ReadCaptureInfo("/nonexistent/figure.png", "png"); err == nil {
		t.Error("ReadCaptureInfo should fail when an EXIF-capable file is missing")
	}
}
