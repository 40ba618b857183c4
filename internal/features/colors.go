package features

import (
	"image"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Color clustering constants. The seed keeps DominantColorCount
// reproducible across calls; the sample cap bounds clustering cost on
// large images.
const (
	clusterSeed   = 42
	maxClusters   = 8
	maxSamples    = 10000
	clusterRounds = 10
)

// DistinctColors counts the distinct 8-bit RGB triples in an image.
func DistinctColors(img image.Image) int {
	bounds := img.Bounds()
	seen := make(map[uint32]struct{})

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := (r>>8)<<16 | (g>>8)<<8 | (b >> 8)
			seen[key] = struct{}{}
		}
	}

	return len(seen)
}

// HSVStats returns the mean saturation and the hue variance over all
// pixels. The scales follow the 8-bit HSV convention: saturation spans
// 0-255 and hue spans 0-180 (half degrees), so thresholds tuned against
// 8-bit pipelines carry over directly.
func HSVStats(img image.Image) (saturationMean, hueVariance float64) {
	bounds := img.Bounds()
	count := 0.0
	satSum := 0.0
	hueSum := 0.0
	hueSqSum := 0.0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			c := colorful.Color{
				R: float64(r>>8) / 255.0,
				G: float64(g>>8) / 255.0,
				B: float64(b>>8) / 255.0,
			}
			h, s, _ := c.Hsv()

			hue := h / 2.0 // 0-360° mapped onto the 0-180 byte scale
			sat := s * 255.0

			satSum += sat
			hueSum += hue
			hueSqSum += hue * hue
			count++
		}
	}

	if count == 0 {
		return 0, 0
	}

	saturationMean = satSum / count
	hueMean := hueSum / count
	hueVariance = hueSqSum/count - hueMean*hueMean
	if hueVariance < 0 {
		hueVariance = 0
	}
	return saturationMean, hueVariance
}

// DominantColorCount clusters sampled pixel colors with k-means and
// returns the cluster count.
//
// k is the distinct-color count capped at 8, so flat-colored charts
// report few clusters and photographs max out. The random initial
// centers come from a fixed seed, keeping repeated extractions of the
// same image identical. Degenerate input (no pixels) reports 1.
func DominantColorCount(img image.Image) int {
	pixels := samplePixels(img, maxSamples)
	if len(pixels) == 0 {
		return 1
	}

	distinct := make(map[[3]float64]struct{})
	for _, p := range pixels {
		distinct[p] = struct{}{}
	}

	k := len(distinct)
	if k > maxClusters {
		k = maxClusters
	}
	if k <= 1 {
		return 1
	}

	centers := clusterColors(pixels, k, clusterSeed)
	return len(centers)
}

// samplePixels collects up to limit pixels as RGB triples on the 0-255
// scale, using a fixed stride so the sample is deterministic.
func samplePixels(img image.Image, limit int) [][3]float64 {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	total := width * height
	if total <= 0 {
		return nil
	}

	stride := 1
	if total > limit {
		stride = (total + limit - 1) / limit
	}

	pixels := make([][3]float64, 0, total/stride+1)
	for i := 0; i < total; i += stride {
		x := bounds.Min.X + i%width
		y := bounds.Min.Y + i/width
		r, g, b, _ := img.At(x, y).RGBA()
		pixels = append(pixels, [3]float64{
			float64(r >> 8),
			float64(g >> 8),
			float64(b >> 8),
		})
	}
	return pixels
}

// clusterColors runs Lloyd's k-means over the pixel triples and returns
// the final centers. Clusters that empty out keep their previous center
// rather than being dropped, so the result always has k entries.
func clusterColors(pixels [][3]float64, k int, seed int64) [][3]float64 {
	rng := rand.New(rand.NewSource(seed))

	// Initial centers: k samples drawn without replacement
	perm := rng.Perm(len(pixels))
	centers := make([][3]float64, k)
	for i := 0; i < k; i++ {
		centers[i] = pixels[perm[i]]
	}

	assign := make([]int, len(pixels))

	for round := 0; round < clusterRounds; round++ {
		changed := false

		for i, p := range pixels {
			best := 0
			bestDist := math.MaxFloat64
			for j, c := range centers {
				d := colorDist2(p, c)
				if d < bestDist {
					bestDist = d
					best = j
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}

		if round > 0 && !changed {
			break
		}

		sums := make([][3]float64, k)
		counts := make([]int, k)
		for i, p := range pixels {
			j := assign[i]
			sums[j][0] += p[0]
			sums[j][1] += p[1]
			sums[j][2] += p[2]
			counts[j]++
		}
		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				n := float64(counts[j])
				centers[j] = [3]float64{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
			}
		}
	}

	return centers
}

// colorDist2 returns the squared Euclidean distance between two RGB triples.
func colorDist2(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}
