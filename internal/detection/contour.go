package detection

import "math"

// minComponentSize is the smallest connected component kept by
// findComponents; anything smaller is treated as noise.
const minComponentSize = 10

// findComponents finds connected components in a binary mask.
//
// Uses flood-fill to group connected foreground pixels.
// Connectivity is 8-connected (includes diagonals).
//
// Components smaller than minComponentSize pixels are discarded as noise.
// Returns a slice of components, where each component is a slice of Points.
func findComponents(mask [][]bool, width, height int) [][]Point {
	return findComponentsMin(mask, width, height, minComponentSize)
}

// findComponentsMin is findComponents with a caller-chosen minimum size.
func findComponentsMin(mask [][]bool, width, height, minSize int) [][]Point {
	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	components := make([][]Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] && !visited[y][x] {
				component := make([]Point, 0)
				floodFill(mask, visited, x, y, width, height, &component)
				if len(component) >= minSize {
					components = append(components, component)
				}
			}
		}
	}

	return components
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large components. Marks visited pixels and appends them to the
// component. Uses 8-connectivity (includes diagonal neighbors).
func floodFill(mask, visited [][]bool, startX, startY, width, height int, component *[]Point) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !mask[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		*component = append(*component, p)

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// mooreNeighbors is the 8-neighborhood in clockwise order starting east.
var mooreNeighbors = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// traceBoundary walks the outer boundary of a connected component and
// returns it as an ordered ring of pixel coordinates.
//
// Implements Moore-neighbor tracing: starting from the component's
// topmost-leftmost pixel, the walk probes the 8-neighborhood clockwise
// from the direction it entered and stops when the start pixel is
// reached again. Single-pixel components yield a ring of length 1.
func traceBoundary(mask [][]bool, width, height int, start Point) []Point {
	inside := func(p Point) bool {
		return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height && mask[p.Y][p.X]
	}

	ring := []Point{start}
	current := start

	// The start pixel is topmost-leftmost, so its west and northwest
	// neighbors are background; begin probing just after west.
	dir := 5

	// Bounded walk; a boundary walk never exceeds the pixel count of
	// the enclosing rectangle times the 8 probe directions.
	maxSteps := 8 * (width*height + 1)

	for step := 0; step < maxSteps; step++ {
		found := false
		for i := 0; i < 8; i++ {
			d := (dir + i) % 8
			next := Point{X: current.X + mooreNeighbors[d][0], Y: current.Y + mooreNeighbors[d][1]}
			if inside(next) {
				if next == start {
					return ring
				}
				ring = append(ring, next)
				current = next
				// Back up two probe positions so the scan re-covers
				// the pixel we came from
				dir = (d + 6) % 8
				found = true
				break
			}
		}
		if !found {
			// Isolated pixel
			return ring
		}
	}

	return ring
}

// approxPolygon simplifies a closed ring to a polygon using the
// Douglas-Peucker algorithm with the given distance tolerance.
//
// The ring is split at its two mutually farthest anchor points and each
// arc is simplified independently, which keeps the result stable for
// closed curves. Returns the simplified vertices in ring order.
func approxPolygon(ring []Point, epsilon float64) []Point {
	if len(ring) < 3 {
		return append([]Point(nil), ring...)
	}

	// Anchor 1: first point. Anchor 2: farthest point from it.
	far := 0
	maxDist := -1.0
	for i, p := range ring {
		d := pointDistance(ring[0], p)
		if d > maxDist {
			maxDist = d
			far = i
		}
	}
	if far == 0 {
		return []Point{ring[0]}
	}

	back := make([]Point, 0, len(ring)-far+1)
	back = append(back, ring[far:]...)
	back = append(back, ring[0])

	first := douglasPeucker(ring[:far+1], epsilon)
	second := douglasPeucker(back, epsilon)

	// Join, dropping the duplicated anchors.
	poly := append([]Point(nil), first...)
	if len(second) > 2 {
		poly = append(poly, second[1:len(second)-1]...)
	}
	return poly
}

// douglasPeucker recursively simplifies an open polyline.
func douglasPeucker(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		return append([]Point(nil), points...)
	}

	// Find the point farthest from the chord
	maxDist := 0.0
	index := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistance(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			index = i
		}
	}

	if maxDist <= epsilon {
		return []Point{points[0], points[len(points)-1]}
	}

	left := douglasPeucker(points[:index+1], epsilon)
	right := douglasPeucker(points[index:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a and b.
func perpendicularDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return pointDistance(a, p)
	}
	return math.Abs(dy*float64(p.X)-dx*float64(p.Y)+float64(b.X)*float64(a.Y)-float64(b.Y)*float64(a.X)) / length
}

// pointDistance returns the Euclidean distance between two points.
func pointDistance(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ringPerimeter returns the length of the closed polyline through the
// ring's points, including the closing segment back to the start.
// Diagonal steps count as √2.
func ringPerimeter(ring []Point) float64 {
	if len(ring) < 2 {
		return 0
	}
	length := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		length += pointDistance(ring[i], ring[j])
	}
	return length
}

// polygonArea returns the area enclosed by a closed ring of points
// using the shoelace formula.
func polygonArea(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}
	area := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		area += float64(ring[i].X)*float64(ring[j].Y) - float64(ring[j].X)*float64(ring[i].Y)
	}
	return math.Abs(area) / 2
}

// componentBounds returns the bounding box of a component.
func componentBounds(component []Point) (minX, minY, maxX, maxY int) {
	minX, minY = component[0].X, component[0].Y
	maxX, maxY = minX, minY
	for _, p := range component {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return minX, minY, maxX, maxY
}
