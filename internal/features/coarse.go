package features

import (
	"image"

	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
)

// Coarse holds the handful of cheap measures the caption-keyword
// classifier uses for score bonuses and caption synthesis. It skips
// the expensive shape detection of the full Vector: extracting Coarse
// costs one pass over the pixels plus one edge detection.
type Coarse struct {
	// Width and Height are the pixel dimensions.
	Width  int `json:"width"`
	Height int `json:"height"`

	// AspectRatio is width divided by height.
	AspectRatio float64 `json:"aspect_ratio"`

	// Brightness is the mean over all channel values (0-255). Unlike
	// Vector.Brightness this is not luminance weighted.
	Brightness float64 `json:"brightness"`

	// ColorDiversity is the distinct-color count divided by the pixel
	// count. 0 for grayscale input.
	ColorDiversity float64 `json:"color_diversity"`

	// EdgeDensity is the fraction of edge pixels. 0 for grayscale
	// input, where the coarse path skips edge detection entirely.
	EdgeDensity float64 `json:"edge_density"`

	// Color reports whether the image carries color channels.
	Color bool `json:"color"`
}

// ExtractCoarse computes the coarse measures for an image.
func ExtractCoarse(img image.Image) *Coarse {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	c := &Coarse{Width: width, Height: height}
	if width <= 0 || height <= 0 {
		return c
	}
	area := float64(width * height)

	c.AspectRatio = float64(width) / float64(height)

	if imaging.IsGrayscale(img) {
		gray := imaging.Grayscale(img)
		mean, _ := imaging.GrayStats(gray)
		c.Brightness = mean
		return c
	}

	c.Color = true
	c.ColorDiversity = float64(DistinctColors(img)) / area
	c.Brightness = channelMean(img)
	c.EdgeDensity = imaging.CannyEdges(img, edgeThresholdLow, edgeThresholdHigh).Density()

	return c
}

// channelMean averages every channel value of every pixel, the
// all-channels mean rather than a luminance-weighted one.
func channelMean(img image.Image) float64 {
	bounds := img.Bounds()
	sum := 0.0
	count := 0.0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sum += float64(r>>8) + float64(g>>8) + float64(b>>8)
			count += 3
		}
	}

	if count == 0 {
		return 0
	}
	return sum / count
}
