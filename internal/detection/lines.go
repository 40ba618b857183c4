package detection

import (
	"image"
	"math"
	"sort"

	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
)

// Hough transform tuning. Votes below houghVoteThreshold never become
// lines; collinear runs separated by more than maxLineGap pixels split
// into separate segments.
const (
	houghVoteThreshold = 50
	maxLineGap         = 10.0
	lineTolerance      = 2.0
)

// Line represents a detected line segment
type Line struct {
	Start           Point   `json:"start"`
	End             Point   `json:"end"`
	Length          float64 `json:"length"`
	AngleDegrees    float64 `json:"angle_degrees"`
	Color           string  `json:"color"`
	ThicknessApprox int     `json:"thickness_approx"`
	HasArrowStart   bool    `json:"has_arrow_start"`
	HasArrowEnd     bool    `json:"has_arrow_end"`
}

// LinesResult contains detected line segments along with aggregate
// measures of how line-heavy the image is.
type LinesResult struct {
	Lines []Line `json:"lines"`
	Count int    `json:"count"`

	// TotalLength is the summed length of all detected segments in pixels.
	TotalLength float64 `json:"total_length"`

	// Density is the number of segments per 10,000 square pixels of
	// image area. Axis-and-grid figures score high, photographs low.
	Density float64 `json:"density"`
}

// DetectLines finds line segments in an image using the Hough transform.
//
// Edges come from the Canny detector (thresholds 50/150). Each
// accumulator peak with at least houghVoteThreshold votes is walked
// along its direction; runs of edge pixels separated by more than
// maxLineGap split into separate segments, and segments shorter than
// minLength are dropped. Edge pixels claimed by one segment do not
// count toward later ones, so parallel duplicate peaks do not inflate
// the totals.
//
// When detectArrows is true, each segment's endpoints are checked for
// arrow-head wings, which is useful for telling flowcharts apart from
// plain grids.
func DetectLines(img image.Image, minLength int, detectArrows bool) (*LinesResult, error) {
	edges := imaging.CannyEdges(img, 50, 150)
	return DetectLinesFrom(img, edges, minLength, detectArrows), nil
}

// DetectLinesFrom is DetectLines operating on a precomputed edge map,
// so callers that already ran edge detection avoid running it twice.
// The image is only used for color sampling.
func DetectLinesFrom(img image.Image, edges *imaging.EdgeMap, minLength int, detectArrows bool) *LinesResult {
	bounds := img.Bounds()
	width := edges.Width
	height := edges.Height

	// Hough transform parameters
	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.Edges[y][x] {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find peaks in accumulator
	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] >= houghVoteThreshold {
				// Check if local maximum
				isMax := true
				for dr := -2; dr <= 2 && isMax; dr++ {
					for dt := -2; dt <= 2 && isMax; dt++ {
						if dr == 0 && dt == 0 {
							continue
						}
						nr := rhoIdx + dr
						nt := (theta + dt + numAngles) % numAngles
						if nr >= 0 && nr < maxDist*2 {
							if accumulator[nr][nt] > accumulator[rhoIdx][theta] {
								isMax = false
							}
						}
					}
				}
				if isMax {
					peaks = append(peaks, peak{
						rho:   rhoIdx - maxDist,
						theta: theta,
						votes: accumulator[rhoIdx][theta],
					})
				}
			}
		}
	}

	// Strongest peaks claim their edge pixels first
	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	claimed := make([][]bool, height)
	for y := range claimed {
		claimed[y] = make([]bool, width)
	}

	lines := make([]Line, 0)
	totalLength := 0.0

	for _, pk := range peaks {
		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)

		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Collect unclaimed edge pixels within tolerance of the line
		type linePoint struct {
			p Point
			t float64 // position along the line direction
		}
		linePoints := make([]linePoint, 0)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.Edges[y][x] || claimed[y][x] {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < lineTolerance {
					t := -float64(x)*sinA + float64(y)*cosA
					linePoints = append(linePoints, linePoint{p: Point{X: x, Y: y}, t: t})
				}
			}
		}

		if len(linePoints) < minLength {
			continue
		}

		sort.Slice(linePoints, func(i, j int) bool {
			return linePoints[i].t < linePoints[j].t
		})

		// Split into runs wherever the along-line gap exceeds maxLineGap
		runStart := 0
		for i := 1; i <= len(linePoints); i++ {
			if i < len(linePoints) && linePoints[i].t-linePoints[i-1].t <= maxLineGap {
				continue
			}

			run := linePoints[runStart:i]
			runStart = i

			start := run[0].p
			end := run[len(run)-1].p
			dx := float64(end.X - start.X)
			dy := float64(end.Y - start.Y)
			length := math.Sqrt(dx*dx + dy*dy)

			if length < float64(minLength) {
				continue
			}

			for _, lp := range run {
				claimed[lp.p.Y][lp.p.X] = true
			}

			// Calculate angle in degrees
			angleDeg := math.Atan2(dy, dx) * 180 / math.Pi

			// Sample color at midpoint
			midX := (start.X + end.X) / 2
			midY := (start.Y + end.Y) / 2
			color := sampleColorHex(img, midX+bounds.Min.X, midY+bounds.Min.Y)

			// Estimate thickness
			thickness := estimateLineThickness(edges.Edges, start.X, start.Y, end.X, end.Y, width, height)

			// Detect arrows if requested
			hasArrowStart := false
			hasArrowEnd := false
			if detectArrows {
				hasArrowStart = detectArrowHead(edges.Edges, start.X, start.Y, end.X, end.Y, width, height)
				hasArrowEnd = detectArrowHead(edges.Edges, end.X, end.Y, start.X, start.Y, width, height)
			}

			totalLength += length

			lines = append(lines, Line{
				Start:           Point{X: start.X + bounds.Min.X, Y: start.Y + bounds.Min.Y},
				End:             Point{X: end.X + bounds.Min.X, Y: end.Y + bounds.Min.Y},
				Length:          math.Round(length*10) / 10,
				AngleDegrees:    math.Round(angleDeg*10) / 10,
				Color:           color,
				ThicknessApprox: thickness,
				HasArrowStart:   hasArrowStart,
				HasArrowEnd:     hasArrowEnd,
			})
		}
	}

	density := 0.0
	if width > 0 && height > 0 {
		density = float64(len(lines)) / (float64(width*height) / 10000.0)
	}

	return &LinesResult{
		Lines:       lines,
		Count:       len(lines),
		TotalLength: totalLength,
		Density:     density,
	}
}

// estimateLineThickness estimates line thickness by sampling perpendicular to line
func estimateLineThickness(edges [][]bool, x1, y1, x2, y2, width, height int) int {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return 1
	}

	// Perpendicular direction
	perpX := -dy / length
	perpY := dx / length

	// Sample at midpoint
	midX := float64(x1+x2) / 2
	midY := float64(y1+y2) / 2

	// Count edge pixels along perpendicular
	thickness := 0
	for d := -10; d <= 10; d++ {
		px := int(midX + float64(d)*perpX)
		py := int(midY + float64(d)*perpY)
		if px >= 0 && px < width && py >= 0 && py < height && edges[py][px] {
			thickness++
		}
	}

	if thickness < 1 {
		thickness = 1
	}
	return thickness
}

// detectArrowHead checks if there's an arrow head at the given end of a line
func detectArrowHead(edges [][]bool, endX, endY, otherX, otherY, width, height int) bool {
	// Direction from other end to this end
	dx := float64(endX - otherX)
	dy := float64(endY - otherY)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return false
	}
	dx /= length
	dy /= length

	// Check for edge pixels in arrow head pattern
	// Look for pixels at ~45 degrees from line direction
	checkDist := 10
	arrowAngle := math.Pi / 4 // 45 degrees

	// Rotate direction by +/- 45 degrees for arrow wings
	cos45 := math.Cos(arrowAngle)
	sin45 := math.Sin(arrowAngle)

	// Left wing direction
	leftX := dx*cos45 - dy*sin45
	leftY := dx*sin45 + dy*cos45

	// Right wing direction
	rightX := dx*cos45 + dy*sin45
	rightY := -dx*sin45 + dy*cos45

	// Count edge pixels along potential arrow wings
	leftCount := 0
	rightCount := 0

	for d := 1; d <= checkDist; d++ {
		px := endX - int(float64(d)*leftX)
		py := endY - int(float64(d)*leftY)
		if px >= 0 && px < width && py >= 0 && py < height && edges[py][px] {
			leftCount++
		}

		px = endX - int(float64(d)*rightX)
		py = endY - int(float64(d)*rightY)
		if px >= 0 && px < width && py >= 0 && py < height && edges[py][px] {
			rightCount++
		}
	}

	// Arrow head if both wings have sufficient edge pixels
	return leftCount >= 3 && rightCount >= 3
}
