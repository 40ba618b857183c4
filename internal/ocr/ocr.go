package ocr

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
)

// ErrUnavailable reports that no OCR engine is compiled into this
// binary. Builds without cgo carry a stub backend that returns this
// error from every recognition function.
var ErrUnavailable = errors.New("ocr engine not available")

// Bounds is a rectangular pixel region in image coordinates.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Word is a single recognized word with its location and the engine's
// confidence in the recognition (0.0 to 1.0).
type Word struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Bounds     Bounds  `json:"bounds"`
}

// Result holds the text recognized in a figure. FullText preserves
// the engine's line layout. Words lists individual word boxes when
// the engine could produce them, and stays empty otherwise.
type Result struct {
	FullText string `json:"full_text"`
	Words    []Word `json:"words"`
}

// Block is a text block located without recognizing its content.
type Block struct {
	Bounds     Bounds  `json:"bounds"`
	Confidence float64 `json:"confidence"`
}

// BlocksResult lists located text blocks.
type BlocksResult struct {
	Blocks []Block `json:"blocks"`
	Count  int     `json:"count"`
}

// EngineInfo describes the OCR backend compiled into this binary.
type EngineInfo struct {
	Available bool     `json:"available"`
	Backend   string   `json:"backend"`
	Version   string   `json:"version,omitempty"`
	Languages []string `json:"languages,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// clampRegion intersects a requested region with the image bounds.
// The result is empty when the region lies entirely outside the
// image. Coordinates may arrive in any order; image.Rect swaps them
// into canonical form.
func clampRegion(bounds image.Rectangle, x1, y1, x2, y2 int) image.Rectangle {
	return image.Rect(x1, y1, x2, y2).Intersect(bounds)
}

// SaveImageToTemp writes an image to a uniquely named PNG in the
// system temp directory and returns its path. The caller removes the
// file after use.
func SaveImageToTemp(img image.Image, prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("encode temp image: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}
