package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestMeasureDistance(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		wantDistance   float64
		wantDeltaX     int
		wantDeltaY     int
		wantAngle      float64
	}{
		{"horizontal right", 0, 50, 100, 50, 100, 100, 0, 0},
		{"horizontal left", 100, 50, 0, 50, 100, -100, 0, 180},
		{"vertical down", 50, 0, 50, 100, 100, 0, 100, 90},
		{"vertical up", 50, 100, 50, 0, 100, 0, -100, -90},
		{"diagonal", 0, 0, 100, 100, 141.42, 100, 100, 45},
		{"same point", 50, 50, 50, 50, 0, 0, 0, 0},
		{"3-4-5 triangle", 0, 0, 3, 4, 5, 3, 4, 53.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MeasureDistance(img, tt.x1, tt.y1, tt.x2, tt.y2)
			if err != nil {
				t.Fatalf("MeasureDistance failed: %v", err)
			}

			if result.DeltaX != tt.wantDeltaX {
				t.Errorf("DeltaX: got %d, want %d", result.DeltaX, tt.wantDeltaX)
			}
			if result.DeltaY != tt.wantDeltaY {
				t.Errorf("DeltaY: got %d, want %d", result.DeltaY, tt.wantDeltaY)
			}
			if math.Abs(result.DistancePixels-tt.wantDistance) > 0.1 {
				t.Errorf("DistancePixels: got %.2f, want %.2f", result.DistancePixels, tt.wantDistance)
			}
			if math.Abs(result.AngleDegrees-tt.wantAngle) > 0.5 {
				t.Errorf("AngleDegrees: got %.1f, want %.1f", result.AngleDegrees, tt.wantAngle)
			}
		})
	}
}

func TestMeasureDistance_Percentages(t *testing.T) {
	img := solidImage(200, 100, color.RGBA{255, 0, 0, 255})

	result, err := MeasureDistance(img, 0, 0, 100, 50)
	if err != nil {
		t.Fatalf("MeasureDistance failed: %v", err)
	}

	// Distance ~111.8px: ~56% of the 200px width, ~112% of the
	// 100px height.
	if result.DistancePercentWidth < 50 || result.DistancePercentWidth > 60 {
		t.Errorf("DistancePercentWidth: got %.1f, want ~56", result.DistancePercentWidth)
	}
	if result.DistancePercentHeight < 100 || result.DistancePercentHeight > 120 {
		t.Errorf("DistancePercentHeight: got %.1f, want ~112", result.DistancePercentHeight)
	}
}

func TestCheckAlignment(t *testing.T) {
	tests := []struct {
		name      string
		points    []Point
		tolerance int
		wantHoriz bool
		wantVert  bool
	}{
		{"horizontal row", []Point{{10, 50}, {50, 50}, {90, 50}}, 1, true, false},
		{"vertical column", []Point{{50, 10}, {50, 50}, {50, 90}}, 1, false, true},
		{"single point", []Point{{50, 50}}, 1, true, true},
		{"no points", nil, 1, true, true},
		{"diagonal", []Point{{10, 10}, {50, 50}, {90, 90}}, 1, false, false},
		{"nearly horizontal within tolerance", []Point{{10, 50}, {50, 51}, {90, 49}}, 5, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CheckAlignment(tt.points, tt.tolerance)
			if err != nil {
				t.Fatalf("CheckAlignment failed: %v", err)
			}

			if result.HorizontallyAligned != tt.wantHoriz {
				t.Errorf("HorizontallyAligned: got %v, want %v", result.HorizontallyAligned, tt.wantHoriz)
			}
			if result.VerticallyAligned != tt.wantVert {
				t.Errorf("VerticallyAligned: got %v, want %v", result.VerticallyAligned, tt.wantVert)
			}
		})
	}
}

func TestCheckAlignment_Statistics(t *testing.T) {
	points := []Point{{10, 20}, {30, 40}, {50, 60}}

	result, err := CheckAlignment(points, 1)
	if err != nil {
		t.Fatalf("CheckAlignment failed: %v", err)
	}

	if result.AverageX != 30 {
		t.Errorf("AverageX: got %.2f, want 30", result.AverageX)
	}
	if result.AverageY != 40 {
		t.Errorf("AverageY: got %.2f, want 40", result.AverageY)
	}

	// X values 10,30,50 have a population standard deviation of
	// sqrt(800/3) = 16.33; same for Y.
	if math.Abs(result.VerticalDeviation-16.33) > 0.01 {
		t.Errorf("VerticalDeviation: got %.2f, want 16.33", result.VerticalDeviation)
	}
	if math.Abs(result.HorizontalDeviation-16.33) > 0.01 {
		t.Errorf("HorizontalDeviation: got %.2f, want 16.33", result.HorizontalDeviation)
	}
}

func TestCheckAlignment_ExactRowHasZeroDeviation(t *testing.T) {
	points := []Point{{10, 50}, {90, 50}}

	result, err := CheckAlignment(points, 0)
	if err != nil {
		t.Fatalf("CheckAlignment failed: %v", err)
	}
	if result.HorizontalDeviation != 0 {
		t.Errorf("HorizontalDeviation: got %.2f, want 0", result.HorizontalDeviation)
	}
	if !result.HorizontallyAligned {
		t.Error("points on the same row should be horizontally aligned at tolerance 0")
	}
}

func TestCompareRegions(t *testing.T) {
	img := quadrantImage(100, 100)

	tests := []struct {
		name         string
		r1, r2       Region
		wantSimilar  bool // similarity > 0.9
		wantSameSize bool
	}{
		{
			"identical regions",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			true,
			true,
		},
		{
			"red quadrant vs green quadrant",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 50, Y1: 0, X2: 100, Y2: 50},
			false,
			true,
		},
		{
			"nested regions of the same color",
			Region{X1: 0, Y1: 0, X2: 50, Y2: 50},
			Region{X1: 0, Y1: 0, X2: 30, Y2: 30},
			true,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareRegions(img, tt.r1, tt.r2)
			if err != nil {
				t.Fatalf("CompareRegions failed: %v", err)
			}

			if result.SameSize != tt.wantSameSize {
				t.Errorf("SameSize: got %v, want %v", result.SameSize, tt.wantSameSize)
			}
			similar := result.SimilarityScore > 0.9
			if similar != tt.wantSimilar {
				t.Errorf("SimilarityScore: got %.3f, wantSimilar=%v", result.SimilarityScore, tt.wantSimilar)
			}
			if result.HashDistance < 0 || result.HashDistance > 64 {
				t.Errorf("HashDistance out of range: %d", result.HashDistance)
			}
		})
	}
}

func TestCompareRegions_UniformRegionsMatch(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{128, 128, 128, 255})

	result, err := CompareRegions(img,
		Region{X1: 10, Y1: 10, X2: 40, Y2: 40},
		Region{X1: 50, Y1: 50, X2: 80, Y2: 80},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}

	if result.SimilarityScore != 1.0 {
		t.Errorf("SimilarityScore: got %.3f, want 1.0", result.SimilarityScore)
	}
	if result.PixelsDifferent != 0 {
		t.Errorf("PixelsDifferent: got %d, want 0", result.PixelsDifferent)
	}
	if result.AverageColorDiff != 0 {
		t.Errorf("AverageColorDiff: got %.2f, want 0", result.AverageColorDiff)
	}
	if result.HashDistance != 0 {
		t.Errorf("HashDistance: got %d, want 0", result.HashDistance)
	}
}

func TestCompareRegions_HashSeparatesStructure(t *testing.T) {
	// Left half striped, right half flat gray. The stripes survive
	// the hash's downsampling, so the distance must be nonzero.
	img := image.NewRGBA(image.Rect(0, 0, 160, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 160; x++ {
			switch {
			case x < 80 && (x/10)%2 == 0:
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			case x < 80:
				img.Set(x, y, color.RGBA{255, 255, 255, 255})
			default:
				img.Set(x, y, color.RGBA{128, 128, 128, 255})
			}
		}
	}

	result, err := CompareRegions(img,
		Region{X1: 0, Y1: 0, X2: 80, Y2: 80},
		Region{X1: 80, Y1: 0, X2: 160, Y2: 80},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}
	if result.HashDistance == 0 {
		t.Error("HashDistance should be nonzero for striped vs flat regions")
	}
}

func TestCompareRegions_OverlapDimensions(t *testing.T) {
	img := solidImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := CompareRegions(img,
		Region{X1: 0, Y1: 0, X2: 30, Y2: 40},
		Region{X1: 50, Y1: 50, X2: 70, Y2: 80},
	)
	if err != nil {
		t.Fatalf("CompareRegions failed: %v", err)
	}

	if result.Region1Size.X != 30 || result.Region1Size.Y != 40 {
		t.Errorf("Region1Size: got %dx%d, want 30x40", result.Region1Size.X, result.Region1Size.Y)
	}
	if result.Region2Size.X != 20 || result.Region2Size.Y != 30 {
		t.Errorf("Region2Size: got %dx%d, want 20x30", result.Region2Size.X, result.Region2Size.Y)
	}
	// min(30,20) * min(40,30)
	if result.TotalPixels != 600 {
		t.Errorf("TotalPixels: got %d, want 600", result.TotalPixels)
	}
}

func TestCompareRegions_RejectsBadRegions(t *testing.T) {
	img := solidImage(50, 50, color.RGBA{255, 0, 0, 255})
	valid := Region{X1: 0, Y1: 0, X2: 20, Y2: 20}

	tests := []struct {
		name string
		bad  Region
	}{
		{"empty", Region{X1: 10, Y1: 10, X2: 10, Y2: 20}},
		{"inverted", Region{X1: 30, Y1: 30, X2: 10, Y2: 10}},
		{"outside", Region{X1: 40, Y1: 40, X2: 60, Y2: 60}},
		{"negative origin", Region{X1: -5, Y1: 0, X2: 20, Y2: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CompareRegions(img, valid, tt.bad); err == nil {
				t.Error("CompareRegions should reject the second region")
			}
			if _, err := CompareRegions(img, tt.bad, valid); err == nil {
				t.Error("CompareRegions should reject the first region")
			}
		})
	}
}

func TestAbsDiff(t *testing.T) {
	tests := []struct {
		a, b uint8
		want int
	}{
		{100, 50, 50},
		{50, 100, 50},
		{0, 255, 255},
		{255, 0, 255},
		{128, 128, 0},
	}

	for _, tt := range tests {
		if got := absDiff(tt.a, tt.b); got != tt.want {
			t.Errorf("absDiff(%d, %d): got %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
