package detection

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/effect"
)

// Text-line component filter. A region only counts as a text line when
// its bounding box is shorter than maxTextHeight, wider than
// minTextWidth, and its outline encloses more than minTextArea square
// pixels. Tall regions are figures, narrow ones are specks.
const (
	maxTextHeight = 50
	minTextWidth  = 20
	minTextArea   = 100
)

// TextRegion represents a detected text-shaped region.
type TextRegion struct {
	// Bounds is the bounding box of the region.
	Bounds Bounds `json:"bounds"`

	// Confidence reflects how text-like the region's proportions are
	// (0.0 to 1.0). Wide, short regions score high.
	Confidence float64 `json:"confidence"`

	// Area is the bounding-box area in square pixels.
	Area int `json:"area"`

	// ShapeArea is the area enclosed by the region's traced outline.
	ShapeArea float64 `json:"shape_area"`
}

// TextRegionsResult contains detected text regions.
type TextRegionsResult struct {
	Regions []TextRegion `json:"regions"`
	Count   int          `json:"count"`

	// Coverage is the fraction of the image area covered by text-shaped
	// regions. It counts every region that passes the size filter,
	// including those below the caller's confidence cutoff.
	Coverage float64 `json:"coverage"`
}

// DetectTextRegions finds regions likely to contain text, without
// running OCR.
//
// The approach is morphological: binarize the image with Otsu's method
// (minority side as ink), close small gaps with a 3×3 dilate-then-erode
// so the letters of a word fuse into one blob, then keep connected
// components proportioned like text lines: shorter than 50 pixels,
// wider than 20, enclosing more than 100 square pixels.
//
// Regions whose confidence falls below minConfidence are omitted from
// the result list but still counted in Coverage.
func DetectTextRegions(img image.Image, minConfidence float64) (*TextRegionsResult, error) {
	return DetectTextRegionsFrom(Binarize(img), minConfidence), nil
}

// DetectTextRegionsFrom is DetectTextRegions operating on a precomputed
// binary map, so callers that already binarized the image avoid doing
// it twice.
func DetectTextRegionsFrom(bin *BinaryMap, minConfidence float64) *TextRegionsResult {
	closed := closeInk(bin)

	components := findComponents(closed.Fore, closed.Width, closed.Height)

	regions := make([]TextRegion, 0)
	textArea := 0.0

	for _, component := range components {
		minX, minY, maxX, maxY := componentBounds(component)
		w := maxX - minX + 1
		h := maxY - minY + 1

		ring := traceBoundary(closed.Fore, closed.Width, closed.Height, component[0])
		shapeArea := polygonArea(ring)

		if h >= maxTextHeight || w <= minTextWidth || shapeArea <= minTextArea {
			continue
		}

		textArea += shapeArea

		// Text lines are wide and short; squarish blobs are suspect
		confidence := math.Round(float64(w)/float64(w+h)*1000) / 1000
		if confidence < minConfidence {
			continue
		}

		regions = append(regions, TextRegion{
			Bounds: Bounds{
				X1: minX,
				Y1: minY,
				X2: maxX + 1,
				Y2: maxY + 1,
			},
			Confidence: confidence,
			Area:       w * h,
			ShapeArea:  shapeArea,
		})
	}

	// Sort by confidence
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Confidence > regions[j].Confidence
	})

	coverage := 0.0
	if bin.Width > 0 && bin.Height > 0 {
		coverage = textArea / float64(bin.Width*bin.Height)
	}

	return &TextRegionsResult{
		Regions:  regions,
		Count:    len(regions),
		Coverage: coverage,
	}
}

// closeInk applies a morphological closing (dilate then erode over a
// 3×3 window) to the ink mask. Closing fuses the small gaps between
// characters so each word or text line becomes one connected region.
func closeInk(bin *BinaryMap) *BinaryMap {
	mask := image.NewGray(image.Rect(0, 0, bin.Width, bin.Height))
	for y := 0; y < bin.Height; y++ {
		for x := 0; x < bin.Width; x++ {
			if bin.Fore[y][x] {
				mask.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}

	closed := effect.Erode(effect.Dilate(mask, 1), 1)

	out := &BinaryMap{
		Width:  bin.Width,
		Height: bin.Height,
		Fore:   make([][]bool, bin.Height),
	}
	for y := 0; y < bin.Height; y++ {
		out.Fore[y] = make([]bool, bin.Width)
		for x := 0; x < bin.Width; x++ {
			out.Fore[y][x] = closed.RGBAAt(x, y).R >= 128
		}
	}
	return out
}
