package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/corona10/goimagehash"
	"github.com/disintegration/imaging"
)

// pixelDiffThreshold is the mean per-channel delta (0-255) above
// which two pixels count as different in CompareRegions.
const pixelDiffThreshold = 10

// Point is a pixel coordinate in figure space.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistanceResult describes the separation between two points, both in
// pixels and relative to the figure dimensions.
type DistanceResult struct {
	DistancePixels        float64 `json:"distance_pixels"`
	DeltaX                int     `json:"delta_x"`
	DeltaY                int     `json:"delta_y"`
	AngleDegrees          float64 `json:"angle_degrees"`
	DistancePercentWidth  float64 `json:"distance_percent_width"`
	DistancePercentHeight float64 `json:"distance_percent_height"`
}

// MeasureDistance measures between two points. The angle is in
// degrees with 0 pointing right and 90 pointing down, matching image
// coordinates.
func MeasureDistance(img image.Image, x1, y1, x2, y2 int) (*DistanceResult, error) {
	bounds := img.Bounds()
	width := float64(bounds.Dx())
	height := float64(bounds.Dy())
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("cannot measure on an empty image")
	}

	deltaX := x2 - x1
	deltaY := y2 - y1

	distance := math.Sqrt(float64(deltaX*deltaX + deltaY*deltaY))
	angle := math.Atan2(float64(deltaY), float64(deltaX)) * 180 / math.Pi

	return &DistanceResult{
		DistancePixels:        math.Round(distance*100) / 100,
		DeltaX:                deltaX,
		DeltaY:                deltaY,
		AngleDegrees:          math.Round(angle*10) / 10,
		DistancePercentWidth:  math.Round(distance/width*1000) / 10,
		DistancePercentHeight: math.Round(distance/height*1000) / 10,
	}, nil
}

// AlignmentResult reports whether a set of points shares a row or a
// column. Deviations are the standard deviation of the coordinates in
// each axis, in pixels.
type AlignmentResult struct {
	HorizontallyAligned bool    `json:"horizontally_aligned"`
	VerticallyAligned   bool    `json:"vertically_aligned"`
	HorizontalDeviation float64 `json:"horizontal_deviation"`
	VerticalDeviation   float64 `json:"vertical_deviation"`
	AverageY            float64 `json:"average_y"`
	AverageX            float64 `json:"average_x"`
}

// CheckAlignment tests whether points line up horizontally (shared Y)
// or vertically (shared X) within tolerance pixels. Useful for
// verifying that chart markers sit on the same gridline. Fewer than
// two points are trivially aligned both ways.
func CheckAlignment(points []Point, tolerance int) (*AlignmentResult, error) {
	if len(points) < 2 {
		return &AlignmentResult{
			HorizontallyAligned: true,
			VerticallyAligned:   true,
		}, nil
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += float64(p.X)
		sumY += float64(p.Y)
	}
	avgX := sumX / float64(len(points))
	avgY := sumY / float64(len(points))

	var devX, devY float64
	for _, p := range points {
		dx := float64(p.X) - avgX
		dy := float64(p.Y) - avgY
		devX += dx * dx
		devY += dy * dy
	}
	devX = math.Sqrt(devX / float64(len(points)))
	devY = math.Sqrt(devY / float64(len(points)))

	return &AlignmentResult{
		HorizontallyAligned: devY <= float64(tolerance),
		VerticallyAligned:   devX <= float64(tolerance),
		HorizontalDeviation: math.Round(devY*100) / 100,
		VerticalDeviation:   math.Round(devX*100) / 100,
		AverageY:            math.Round(avgY*100) / 100,
		AverageX:            math.Round(avgX*100) / 100,
	}, nil
}

// CompareRegionsResult reports how closely two regions of a figure
// match. HashDistance is the Hamming distance between difference
// hashes of the regions (0 means perceptually identical, 64 is the
// maximum); it tolerates small shifts that the pixel counts do not.
type CompareRegionsResult struct {
	SimilarityScore  float64 `json:"similarity_score"`
	PixelsDifferent  int     `json:"pixels_different"`
	TotalPixels      int     `json:"total_pixels"`
	SameSize         bool    `json:"same_size"`
	Region1Size      Point   `json:"region1_size"`
	Region2Size      Point   `json:"region2_size"`
	AverageColorDiff float64 `json:"average_color_diff"`
	HashDistance     int     `json:"hash_distance"`
}

// CompareRegions compares two regions of the same figure pixel by
// pixel and perceptually. Repeated panels in multi-panel figures and
// duplicated legend boxes show up as high similarity plus a low hash
// distance. Regions of unequal size are compared over the overlap of
// their dimensions.
func CompareRegions(img image.Image, r1, r2 Region) (*CompareRegionsResult, error) {
	if err := validateRegion(img.Bounds(), r1, "region1"); err != nil {
		return nil, err
	}
	if err := validateRegion(img.Bounds(), r2, "region2"); err != nil {
		return nil, err
	}

	w1 := r1.X2 - r1.X1
	h1 := r1.Y2 - r1.Y1
	w2 := r2.X2 - r2.X1
	h2 := r2.Y2 - r2.Y1

	sameSize := w1 == w2 && h1 == h2

	minW := w1
	if w2 < minW {
		minW = w2
	}
	minH := h1
	if h2 < minH {
		minH = h2
	}

	totalPixels := minW * minH
	pixelsDifferent := 0
	var totalColorDiff float64

	for dy := 0; dy < minH; dy++ {
		for dx := 0; dx < minW; dx++ {
			r1c, g1c, b1c, _ := img.At(r1.X1+dx, r1.Y1+dy).RGBA()
			r2c, g2c, b2c, _ := img.At(r2.X1+dx, r2.Y1+dy).RGBA()

			r1v, g1v, b1v := uint8(r1c>>8), uint8(g1c>>8), uint8(b1c>>8)
			r2v, g2v, b2v := uint8(r2c>>8), uint8(g2c>>8), uint8(b2c>>8)

			dr := absDiff(r1v, r2v)
			dg := absDiff(g1v, g2v)
			db := absDiff(b1v, b2v)
			diff := float64(dr+dg+db) / 3.0

			totalColorDiff += diff
			if diff > pixelDiffThreshold {
				pixelsDifferent++
			}
		}
	}

	hashDist, err := hashDistance(img, r1, r2)
	if err != nil {
		return nil, fmt.Errorf("perceptual hash: %w", err)
	}

	similarity := 1.0 - float64(pixelsDifferent)/float64(totalPixels)
	avgColorDiff := totalColorDiff / float64(totalPixels)

	return &CompareRegionsResult{
		SimilarityScore:  math.Round(similarity*1000) / 1000,
		PixelsDifferent:  pixelsDifferent,
		TotalPixels:      totalPixels,
		SameSize:         sameSize,
		Region1Size:      Point{X: w1, Y: h1},
		Region2Size:      Point{X: w2, Y: h2},
		AverageColorDiff: math.Round(avgColorDiff*100) / 100,
		HashDistance:     hashDist,
	}, nil
}

// hashDistance computes the Hamming distance between difference
// hashes of the two regions. The hash downsamples each region to 9x8,
// so it is insensitive to the regions having unequal sizes.
func hashDistance(img image.Image, r1, r2 Region) (int, error) {
	crop1 := imaging.Crop(img, image.Rect(r1.X1, r1.Y1, r1.X2, r1.Y2))
	crop2 := imaging.Crop(img, image.Rect(r2.X1, r2.Y1, r2.X2, r2.Y2))

	h1, err := goimagehash.DifferenceHash(crop1)
	if err != nil {
		return 0, err
	}
	h2, err := goimagehash.DifferenceHash(crop2)
	if err != nil {
		return 0, err
	}
	return h1.Distance(h2)
}

func validateRegion(bounds image.Rectangle, r Region, name string) error {
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return fmt.Errorf("%s (%d,%d)-(%d,%d) is empty", name, r.X1, r.Y1, r.X2, r.Y2)
	}
	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return fmt.Errorf("%s (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			name, r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	return nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
