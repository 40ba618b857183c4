package detection

import (
	"image"

	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
)

// BinaryMap is a foreground mask produced by Binarize.
//
// Fore[y][x] is true where a pixel belongs to the figure's "ink":
// the minority side of an Otsu threshold split. Document figures are
// usually dark strokes on a light background, but inverted figures
// (light on dark) binarize to the same mask.
type BinaryMap struct {
	Width  int
	Height int
	Fore   [][]bool
}

// Count returns the number of foreground pixels.
func (b *BinaryMap) Count() int {
	n := 0
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Fore[y][x] {
				n++
			}
		}
	}
	return n
}

// Binarize splits an image into foreground and background using Otsu's
// method on the grayscale histogram.
//
// The threshold maximizes between-class variance; whichever side of the
// split holds fewer pixels becomes the foreground. For a uniform image
// (single gray level) the mask is empty.
func Binarize(img image.Image) *BinaryMap {
	gray := imaging.Grayscale(img)
	height := len(gray)
	width := 0
	if height > 0 {
		width = len(gray[0])
	}

	fore := make([][]bool, height)
	for y := range fore {
		fore[y] = make([]bool, width)
	}
	result := &BinaryMap{Width: width, Height: height, Fore: fore}

	total := width * height
	if total == 0 {
		return result
	}

	var hist [256]int
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := int(gray[y][x])
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			hist[v]++
		}
	}

	threshold := otsuThreshold(hist, total)

	// Dark side of the split
	darkCount := 0
	for v := 0; v <= threshold; v++ {
		darkCount += hist[v]
	}
	inkIsDark := darkCount <= total-darkCount

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dark := int(gray[y][x]) <= threshold
			fore[y][x] = dark == inkIsDark
		}
	}

	return result
}

// otsuThreshold finds the histogram split maximizing between-class variance.
//
// Returns a gray level t in [0,255]; pixels <= t form the dark class.
// A single-level histogram yields that level, producing an empty or full
// dark class that Binarize resolves to an empty mask.
func otsuThreshold(hist [256]int, total int) int {
	var sum float64
	for v := 0; v < 256; v++ {
		sum += float64(v) * float64(hist[v])
	}

	var sumBack, weightBack float64
	best := 0
	bestVariance := -1.0

	for t := 0; t < 256; t++ {
		weightBack += float64(hist[t])
		if weightBack == 0 {
			continue
		}
		weightFore := float64(total) - weightBack
		if weightFore == 0 {
			break
		}

		sumBack += float64(t) * float64(hist[t])
		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore

		diff := meanBack - meanFore
		variance := weightBack * weightFore * diff * diff
		if variance > bestVariance {
			bestVariance = variance
			best = t
		}
	}

	return best
}
