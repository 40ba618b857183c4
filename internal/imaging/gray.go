package imaging

import (
	"image"
	"math"
)

// Grayscale converts an image to a luminance matrix with values in [0,255].
//
// Uses ITU-R BT.601 weights (0.299*R + 0.587*G + 0.114*B), matching the
// conversion applied elsewhere in this package. The matrix is indexed
// [y][x] relative to the image's top-left corner.
func Grayscale(img image.Image) [][]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			gray[y][x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}
	return gray
}

// GrayStats returns the mean and population standard deviation of a
// luminance matrix. Both are 0 for an empty matrix.
func GrayStats(gray [][]float64) (mean, stddev float64) {
	var sum float64
	n := 0
	for y := range gray {
		for x := range gray[y] {
			sum += gray[y][x]
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	mean = sum / float64(n)

	var sqDiff float64
	for y := range gray {
		for x := range gray[y] {
			d := gray[y][x] - mean
			sqDiff += d * d
		}
	}
	return mean, math.Sqrt(sqDiff / float64(n))
}

// IsGrayscale reports whether the image carries a single luminance channel.
//
// Only the concrete storage type is inspected; a color image whose pixels
// happen to all be gray still counts as color input.
func IsGrayscale(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	}
	return false
}
