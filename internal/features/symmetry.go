package features

import "math"

// SymmetryHorizontal measures mirror symmetry across the image's
// horizontal midline: the top half against the vertically flipped
// bottom half. Returns the Pearson correlation clamped to [0, 1];
// flat halves (zero variance) score 0.
func SymmetryHorizontal(gray [][]float64) float64 {
	h := len(gray)
	if h < 2 {
		return 0
	}
	mid := h / 2

	a := make([]float64, 0, mid*len(gray[0]))
	b := make([]float64, 0, mid*len(gray[0]))
	for i := 0; i < mid; i++ {
		a = append(a, gray[i]...)
		b = append(b, gray[h-1-i]...)
	}

	return clampCorrelation(pearson(a, b))
}

// SymmetryVertical measures mirror symmetry across the image's vertical
// midline: the left half against the horizontally flipped right half.
// Returns the Pearson correlation clamped to [0, 1].
func SymmetryVertical(gray [][]float64) float64 {
	h := len(gray)
	if h == 0 {
		return 0
	}
	w := len(gray[0])
	if w < 2 {
		return 0
	}
	mid := w / 2

	a := make([]float64, 0, mid*h)
	b := make([]float64, 0, mid*h)
	for y := 0; y < h; y++ {
		for x := 0; x < mid; x++ {
			a = append(a, gray[y][x])
			b = append(b, gray[y][w-1-x])
		}
	}

	return clampCorrelation(pearson(a, b))
}

// pearson returns the Pearson correlation coefficient of two
// equal-length samples, or NaN when either side has zero variance.
func pearson(a, b []float64) float64 {
	n := float64(len(a))
	if n == 0 {
		return math.NaN()
	}

	meanA, meanB := 0.0, 0.0
	for i := range a {
		meanA += a[i]
		meanB += b[i]
	}
	meanA /= n
	meanB /= n

	cov, varA, varB := 0.0, 0.0, 0.0
	for i := range a {
		da := a[i] - meanA
		db := b[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	if varA == 0 || varB == 0 {
		return math.NaN()
	}
	return cov / math.Sqrt(varA*varB)
}

// clampCorrelation maps a correlation to [0, 1]: negative correlation
// and NaN both mean "not symmetric".
func clampCorrelation(corr float64) float64 {
	if math.IsNaN(corr) || corr < 0 {
		return 0
	}
	if corr > 1 {
		return 1
	}
	return corr
}
