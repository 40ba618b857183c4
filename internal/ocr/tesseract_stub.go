//go:build !cgo

package ocr

import (
	"fmt"
	"image"
)

// The Tesseract backend needs cgo for its native bindings. Builds
// without it get these stubs so callers can probe Info and degrade
// instead of failing to compile.

// ExtractText reports ErrUnavailable: this binary was built without
// an OCR engine.
func ExtractText(imagePath string, language string) (*Result, error) {
	return nil, fmt.Errorf("extract text from %s: %w", imagePath, ErrUnavailable)
}

// ExtractTextFromRegion reports ErrUnavailable: this binary was built
// without an OCR engine.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*Result, error) {
	return nil, fmt.Errorf("extract region text: %w", ErrUnavailable)
}

// DetectBlocks reports ErrUnavailable: this binary was built without
// an OCR engine.
func DetectBlocks(imagePath string, minConfidence float64) (*BlocksResult, error) {
	return nil, fmt.Errorf("locate text blocks in %s: %w", imagePath, ErrUnavailable)
}

// Info reports that no OCR backend is compiled in.
func Info() EngineInfo {
	return EngineInfo{
		Available: false,
		Backend:   "none",
		Error:     "built without cgo; OCR needs the native Tesseract library",
	}
}
