package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner (exclusive for iteration, inclusive for bounds)
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Rectangle represents a detected rectangular shape with metadata.
//
// Rectangles are detected by tracing the boundary of each foreground
// region and simplifying it to a polygon; regions whose simplified
// outline has exactly four vertices are rectangles.
type Rectangle struct {
	// Bounds is the bounding box enclosing the rectangle.
	Bounds Bounds `json:"bounds"`

	// Center is the center point of the rectangle.
	Center Point `json:"center"`

	// Width is the horizontal extent in pixels (X2 - X1).
	Width int `json:"width"`

	// Height is the vertical extent in pixels (Y2 - Y1).
	Height int `json:"height"`

	// Area is the bounding-box area in square pixels (Width × Height).
	Area int `json:"area"`

	// ShapeArea is the area enclosed by the traced outline in square
	// pixels. For a clean rectangle this approaches Area; for shapes
	// with notches or holes it is smaller.
	ShapeArea float64 `json:"shape_area"`

	// FillColor is the hex color sampled at the center of the rectangle.
	// May be empty if sampling fails.
	FillColor string `json:"fill_color,omitempty"`

	// BorderColor is the hex color sampled at the top-left corner.
	// May be empty if sampling fails.
	BorderColor string `json:"border_color,omitempty"`

	// Confidence indicates how rectangular the shape is (0.0 to 1.0).
	// Based on comparing outline length to the expected rectangle perimeter.
	Confidence float64 `json:"confidence"`
}

// RectanglesResult contains all rectangles detected in an image.
type RectanglesResult struct {
	// Rectangles is the list of detected rectangles, sorted by area (largest first).
	Rectangles []Rectangle `json:"rectangles"`

	// Count is the number of rectangles detected.
	Count int `json:"count"`
}

// DetectRectangles finds rectangular shapes in an image.
//
// This function is useful for detecting boxes, frames, table cells, and
// other rectangular elements in figures and diagrams.
//
// Parameters:
//   - img: Source image to analyze.
//   - minArea: Minimum bounding-box area in square pixels for a rectangle
//     to be included. Use higher values to filter out small noise.
//     Typical: 100-1000.
//   - tolerance: Rectangularity threshold (0.0 to 1.0). Higher values require
//     shapes to be more perfectly rectangular. Typical: 0.8-0.95.
//
// Returns:
//   - *RectanglesResult: Detected rectangles sorted by area (largest first).
//   - error: Currently always nil.
//
// # Algorithm
//
//  1. Binarization: Threshold the image with Otsu's method, taking the
//     minority side as foreground ink
//  2. Component Finding: Use flood-fill to group connected foreground pixels
//  3. Boundary Tracing: Walk the outer boundary of each component
//     (Moore-neighbor tracing)
//  4. Polygon Approximation: Simplify the boundary with Douglas-Peucker
//     using a tolerance of 2% of the boundary perimeter
//  5. Vertex Test: Keep only shapes whose simplified outline has exactly
//     four vertices
//  6. Filtering: Remove shapes below minArea or with rectangularity
//     below tolerance
//  7. Color Sampling: Sample fill color at center, border color at corner
//
// # Rectangularity Score
//
// A perfect rectangle has a boundary length exactly equal to 2*(width + height).
// The rectangularity score measures deviation from this:
//   - 1.0 = Perfect rectangle (boundary matches perimeter exactly)
//   - Lower values indicate ragged or partially occluded rectangles
//
// # Limitations
//
//   - Only axis-aligned rectangles score well (rotated ones fail the
//     rectangularity test even when they pass the vertex test)
//   - Nested rectangles are detected separately
//   - Rounded corners reduce the vertex test's reliability
func DetectRectangles(img image.Image, minArea int, tolerance float64) (*RectanglesResult, error) {
	return DetectRectanglesFrom(img, Binarize(img), minArea, tolerance), nil
}

// DetectRectanglesFrom is DetectRectangles operating on a precomputed
// binary map, so callers that already binarized the image avoid doing
// it twice. The image is only used for color sampling.
func DetectRectanglesFrom(img image.Image, bin *BinaryMap, minArea int, tolerance float64) *RectanglesResult {
	bounds := img.Bounds()

	components := findComponents(bin.Fore, bin.Width, bin.Height)

	rectangles := make([]Rectangle, 0)

	for _, component := range components {
		minX, minY, maxX, maxY := componentBounds(component)

		rectWidth := maxX - minX
		rectHeight := maxY - minY
		area := rectWidth * rectHeight

		if area < minArea || rectWidth == 0 || rectHeight == 0 {
			continue
		}

		// Boundary starts at the topmost-leftmost pixel, which is the
		// first pixel flood-fill visited
		ring := traceBoundary(bin.Fore, bin.Width, bin.Height, component[0])
		perimeter := ringPerimeter(ring)
		poly := approxPolygon(ring, 0.02*perimeter)
		if len(poly) != 4 {
			continue
		}

		// Calculate how rectangular the shape is
		expectedPerimeter := 2 * (rectWidth + rectHeight)
		rectangularity := 1.0 - math.Abs(perimeter-float64(expectedPerimeter))/float64(expectedPerimeter)
		if rectangularity < 0 {
			rectangularity = 0
		}

		if rectangularity < tolerance {
			continue
		}

		// Sample colors
		centerX := (minX + maxX) / 2
		centerY := (minY + maxY) / 2

		fillColor := sampleColorHex(img, centerX+bounds.Min.X, centerY+bounds.Min.Y)
		borderColor := sampleColorHex(img, minX+bounds.Min.X, minY+bounds.Min.Y)

		rectangles = append(rectangles, Rectangle{
			Bounds: Bounds{
				X1: minX + bounds.Min.X,
				Y1: minY + bounds.Min.Y,
				X2: maxX + bounds.Min.X,
				Y2: maxY + bounds.Min.Y,
			},
			Center: Point{
				X: centerX + bounds.Min.X,
				Y: centerY + bounds.Min.Y,
			},
			Width:       rectWidth,
			Height:      rectHeight,
			Area:        area,
			ShapeArea:   polygonArea(ring),
			FillColor:   fillColor,
			BorderColor: borderColor,
			Confidence:  rectangularity,
		})
	}

	// Sort by area descending
	sort.Slice(rectangles, func(i, j int) bool {
		return rectangles[i].Area > rectangles[j].Area
	})

	return &RectanglesResult{
		Rectangles: rectangles,
		Count:      len(rectangles),
	}
}

// Circle represents a detected circular shape with metadata.
//
// Circles are detected using the Hough circle transform, which votes for
// potential circle centers at each edge pixel.
type Circle struct {
	// Center is the detected center point of the circle.
	Center Point `json:"center"`

	// Radius is the detected radius in pixels.
	Radius int `json:"radius"`

	// Diameter is 2 × Radius for convenience.
	Diameter int `json:"diameter"`

	// FillColor is the hex color sampled at the center of the circle.
	FillColor string `json:"fill_color,omitempty"`

	// Confidence indicates detection quality (0.0 to 1.0).
	// Based on the ratio of edge votes to expected circumference.
	Confidence float64 `json:"confidence"`
}

// CirclesResult contains all circles detected in an image.
type CirclesResult struct {
	// Circles is the list of detected circles, sorted by confidence (highest first).
	Circles []Circle `json:"circles"`

	// Count is the number of circles detected.
	Count int `json:"count"`
}

// CircleParams controls the Hough circle transform.
type CircleParams struct {
	// MinRadius is the smallest circle radius to detect, in pixels.
	MinRadius int

	// MaxRadius is the largest circle radius to detect, in pixels.
	MaxRadius int

	// MinCenterDistance is the minimum distance between the centers of
	// two distinct circles. Detections closer than this are merged.
	MinCenterDistance int

	// VoteRatio is the fraction of the expected circumference that must
	// vote for a center before it counts as a circle (0.0 to 1.0).
	VoteRatio float64
}

// DefaultCircleParams returns the parameters used for figure analysis:
// radii from 10 to 100 pixels, centers at least 20 pixels apart, and a
// 60% circumference vote requirement.
func DefaultCircleParams() CircleParams {
	return CircleParams{
		MinRadius:         10,
		MaxRadius:         100,
		MinCenterDistance: 20,
		VoteRatio:         0.6,
	}
}

// DetectCircles finds circular shapes in an image using the Hough circle transform.
//
// This function is useful for detecting pie charts, nodes, bullets, and
// other circular elements in figures.
//
// Parameters:
//   - img: Source image to analyze.
//   - minRadius: Minimum circle radius to detect in pixels. Use higher values
//     to filter out small dots. Typical: 5-20.
//   - maxRadius: Maximum circle radius to detect in pixels. Limits search space
//     for performance. Typical: 50-500.
//
// Returns:
//   - *CirclesResult: Detected circles sorted by confidence (highest first).
//   - error: Currently always nil.
//
// # Algorithm (Hough Circle Transform)
//
//  1. Edge Detection: Find edge pixels using the Canny detector
//     (thresholds 50/150)
//  2. Accumulator Voting: For each radius from minRadius to maxRadius:
//     - For each edge pixel, vote for potential centers by drawing a
//     voting circle around the pixel
//     - Votes are cast every 10° around the edge pixel
//  3. Peak Detection: Find local maxima in the accumulator that exceed
//     threshold (VoteRatio × expected circumference points)
//  4. Duplicate Removal: Merge circles with overlapping or nearby centers
//  5. Color Sampling: Sample fill color at detected center
//
// # Confidence Score
//
// Confidence is calculated as: votes / (2 × radius)
//
// This represents the fraction of the circumference where edge pixels voted
// for this center. Capped at 1.0.
//   - 1.0 = Every expected edge point voted for this center
//   - 0.6 = Default threshold for detection (sparse but detectable circle)
//
// # Performance
//
// Time complexity is O(width × height × (maxRadius - minRadius) × 36), where 36
// comes from voting every 10°. Large radius ranges significantly increase time.
//
// # Limitations
//
//   - Only detects filled or outlined circles, not arcs
//   - Overlapping circles may be detected as single circles
//   - Ellipses are not detected (only true circles)
//   - Large maxRadius values slow detection significantly
func DetectCircles(img image.Image, minRadius, maxRadius int) (*CirclesResult, error) {
	params := DefaultCircleParams()
	params.MinRadius = minRadius
	params.MaxRadius = maxRadius

	edges := imaging.CannyEdges(img, 50, 150)
	return DetectCirclesFrom(img, edges, params), nil
}

// DetectCirclesFrom is DetectCircles operating on a precomputed edge
// map, so callers that already ran edge detection avoid running it
// twice. The image is only used for color sampling.
func DetectCirclesFrom(img image.Image, edges *imaging.EdgeMap, params CircleParams) *CirclesResult {
	bounds := img.Bounds()
	width := edges.Width
	height := edges.Height

	circles := make([]Circle, 0)

	// For each radius, accumulate votes
	for radius := params.MinRadius; radius <= params.MaxRadius; radius++ {
		accumulator := make([][]int, height)
		for y := 0; y < height; y++ {
			accumulator[y] = make([]int, width)
		}

		// Vote for circle centers
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if edges.Edges[y][x] {
					// Vote in a circle around this edge point
					for angle := 0; angle < 360; angle += 10 {
						rad := float64(angle) * math.Pi / 180
						cx := x - int(float64(radius)*math.Cos(rad))
						cy := y - int(float64(radius)*math.Sin(rad))
						if cx >= 0 && cx < width && cy >= 0 && cy < height {
							accumulator[cy][cx]++
						}
					}
				}
			}
		}

		// Find local maxima in accumulator
		threshold := int(float64(2*radius) * params.VoteRatio)
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				if accumulator[y][x] >= threshold {
					// Check if local maximum
					isMax := true
					for dy := -5; dy <= 5 && isMax; dy++ {
						for dx := -5; dx <= 5 && isMax; dx++ {
							if dy == 0 && dx == 0 {
								continue
							}
							ny, nx := y+dy, x+dx
							if ny >= 0 && ny < height && nx >= 0 && nx < width {
								if accumulator[ny][nx] > accumulator[y][x] {
									isMax = false
								}
							}
						}
					}

					if isMax {
						confidence := float64(accumulator[y][x]) / float64(2*radius)
						fillColor := sampleColorHex(img, x+bounds.Min.X, y+bounds.Min.Y)

						circles = append(circles, Circle{
							Center: Point{
								X: x + bounds.Min.X,
								Y: y + bounds.Min.Y,
							},
							Radius:     radius,
							Diameter:   radius * 2,
							FillColor:  fillColor,
							Confidence: math.Min(confidence, 1.0),
						})
					}
				}
			}
		}
	}

	// Remove duplicate detections (circles with very close centers)
	filtered := filterDuplicateCircles(circles, params.MinCenterDistance)

	// Sort by confidence descending
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Confidence > filtered[j].Confidence
	})

	return &CirclesResult{
		Circles: filtered,
		Count:   len(filtered),
	}
}

// CountSmallBlobs counts compact foreground specks, the kind a scatter
// plot leaves behind.
//
// Unlike the Hough transform, which degenerates at very small radii,
// this counts connected components whose bounding box fits a dot of the
// given radius range: both sides between 2 and 2×maxRadius+1 pixels, an
// aspect ratio of at least 0.5, and at least 3 pixels of area. Long
// strokes, text lines, and large filled regions all fail the test.
func CountSmallBlobs(bin *BinaryMap, maxRadius int) int {
	maxSide := 2*maxRadius + 1

	components := findComponentsMin(bin.Fore, bin.Width, bin.Height, 3)

	count := 0
	for _, component := range components {
		minX, minY, maxX, maxY := componentBounds(component)
		w := maxX - minX + 1
		h := maxY - minY + 1

		if w < 2 || h < 2 || w > maxSide || h > maxSide {
			continue
		}

		aspect := float64(min(w, h)) / float64(max(w, h))
		if aspect < 0.5 {
			continue
		}

		count++
	}

	return count
}

// sampleColorHex returns the hex color (#RRGGBB) of a pixel.
// No bounds checking is performed; caller must ensure coordinates are valid.
func sampleColorHex(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	return fmt.Sprintf("#%02X%02X%02X", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// filterDuplicateCircles removes circles with overlapping centers.
//
// Two circles are considered duplicates if the distance between their centers
// is less than minDist or less than the average of their radii. In such cases,
// only the first circle kept (typically higher confidence) survives.
func filterDuplicateCircles(circles []Circle, minDist int) []Circle {
	if len(circles) == 0 {
		return circles
	}

	filtered := make([]Circle, 0)
	for _, c := range circles {
		isDuplicate := false
		for _, f := range filtered {
			dx := c.Center.X - f.Center.X
			dy := c.Center.Y - f.Center.Y
			dist := math.Sqrt(float64(dx*dx + dy*dy))
			if dist < float64(minDist) || dist < float64(c.Radius+f.Radius)/2 {
				isDuplicate = true
				break
			}
		}
		if !isDuplicate {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
