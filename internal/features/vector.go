package features

import (
	"errors"
	"image"
	"math"

	"github.com/Avika2211/pdf-image-classifier/internal/detection"
	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
)

// Extraction constants. The Canny thresholds feed edge_density, the
// minimum segment length feeds line_density. Images under
// minFeatureArea pixels keep brightness and contrast but zero ratios.
const (
	edgeThresholdLow  = 50
	edgeThresholdHigh = 150
	minSegmentLength  = 30
	minFeatureArea    = 10
)

// Vector is the fixed set of quantitative measures extracted from a
// figure image. All fields derive purely from the pixel buffer:
// extracting twice from identical pixels yields identical vectors,
// including the clustered DominantColorCount, whose clustering seed is
// fixed.
//
// Ratios are nonnegative and nominally at most 1 but are not clamped;
// a figure packed with overlapping circles can push CircleRatio past 1.
type Vector struct {
	// AspectRatio is width divided by height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Brightness is the mean grayscale intensity (0-255).
	Brightness float64 `json:"brightness"`

	// Contrast is the standard deviation of grayscale intensity (0-255).
	Contrast float64 `json:"contrast"`

	// EdgeDensity is the fraction of pixels the Canny detector marks
	// as edges.
	EdgeDensity float64 `json:"edge_density"`

	// ColorDiversity is the count of distinct 8-bit RGB triples divided
	// by the pixel count. 0 for grayscale input.
	ColorDiversity float64 `json:"color_diversity"`

	// TextRatio is the fraction of the image covered by text-shaped
	// components (see detection.DetectTextRegions).
	TextRatio float64 `json:"text_ratio"`

	// LineDensity is the count of detected straight segments per
	// 10,000 square pixels.
	LineDensity float64 `json:"line_density"`

	// CircleRatio is the summed area of detected circles divided by
	// the image area.
	CircleRatio float64 `json:"circle_ratio"`

	// RectangleRatio is the summed area of rectangle-shaped regions
	// divided by the image area.
	RectangleRatio float64 `json:"rectangle_ratio"`

	// SymmetryHorizontal correlates the top half with the mirrored
	// bottom half (0-1).
	SymmetryHorizontal float64 `json:"symmetry_horizontal"`

	// SymmetryVertical correlates the left half with the mirrored
	// right half (0-1).
	SymmetryVertical float64 `json:"symmetry_vertical"`

	// DominantColorCount is the number of color clusters found by
	// seeded k-means, at most 8. 1 for grayscale input.
	DominantColorCount float64 `json:"dominant_color_count"`

	// SaturationMean is the mean HSV saturation on the 0-255 scale.
	// 0 for grayscale input.
	SaturationMean float64 `json:"saturation_mean"`

	// HueVariance is the variance of HSV hue on the 0-180 scale.
	// 0 for grayscale input.
	HueVariance float64 `json:"hue_variance"`
}

// Extract computes the full feature vector for an image.
//
// Extract is total for any decoded image: degenerate inputs such as a
// 1×1 image yield zero ratios rather than errors. Only a nil image or
// one with empty bounds fails.
//
// Grayscale storage (image.Gray, image.Gray16) short-circuits the color
// measures: ColorDiversity, SaturationMean, and HueVariance become 0
// and DominantColorCount becomes 1, matching the single-channel input.
func Extract(img image.Image) (*Vector, error) {
	if img == nil {
		return nil, errors.New("extract features: nil image")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, errors.New("extract features: image has no pixels")
	}
	area := float64(width * height)

	gray := imaging.Grayscale(img)
	brightness, contrast := imaging.GrayStats(gray)

	v := &Vector{
		AspectRatio:        float64(width) / float64(height),
		Brightness:         brightness,
		Contrast:           contrast,
		DominantColorCount: 1,
	}

	// Too few pixels for any ratio to mean anything: a handful of
	// distinct pixels would dominate every per-area measure. The zero
	// ratios send degenerate images to the decision list's catch-all.
	if width*height < minFeatureArea {
		return v, nil
	}

	edges := imaging.CannyEdges(img, edgeThresholdLow, edgeThresholdHigh)
	bin := detection.Binarize(img)

	v.EdgeDensity = edges.Density()
	v.SymmetryHorizontal = SymmetryHorizontal(gray)
	v.SymmetryVertical = SymmetryVertical(gray)

	if !imaging.IsGrayscale(img) {
		v.ColorDiversity = float64(DistinctColors(img)) / area
		v.SaturationMean, v.HueVariance = HSVStats(img)
		v.DominantColorCount = float64(DominantColorCount(img))
	}

	v.TextRatio = detection.DetectTextRegionsFrom(bin, 0).Coverage
	v.LineDensity = detection.DetectLinesFrom(img, edges, minSegmentLength, false).Density

	circles := detection.DetectCirclesFrom(img, edges, detection.DefaultCircleParams())
	circleArea := 0.0
	for _, c := range circles.Circles {
		circleArea += math.Pi * float64(c.Radius) * float64(c.Radius)
	}
	v.CircleRatio = circleArea / area

	rects := detection.DetectRectanglesFrom(img, bin, 0, 0)
	rectArea := 0.0
	for _, r := range rects.Rectangles {
		rectArea += r.ShapeArea
	}
	v.RectangleRatio = rectArea / area

	return v, nil
}
