package classify

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/Avika2211/pdf-image-classifier/internal/features"
)

// solidImage creates a solid color test image
func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// stubCaptioner returns a fixed caption or error
type stubCaptioner struct {
	text string
	err  error
}

func (s *stubCaptioner) Caption(ctx context.Context, img image.Image) (string, error) {
	return s.text, s.err
}

func TestScoreKeywords(t *testing.T) {
	scores := scoreKeywords("A Bar Chart showing sales")

	// "bar chart" (9 chars) for bar_chart, "chart" (5 chars) for chart_other
	if got := scores[BarChart]; got != 9 {
		t.Errorf("bar_chart score: got %v, want 9", got)
	}
	if got := scores[ChartOther]; got != 5 {
		t.Errorf("chart_other score: got %v, want 5", got)
	}
	if len(scores) != 2 {
		t.Errorf("expected 2 scored categories, got %d: %v", len(scores), scores)
	}
}

func TestScoreKeywords_NoMatch(t *testing.T) {
	scores := scoreKeywords("zzz qqq")

	if len(scores) != 0 {
		t.Errorf("expected no scores, got %v", scores)
	}
}

func TestScoreKeywords_MultipleKeywords(t *testing.T) {
	// "table" (5) and "rows" (4) and "columns" (7) all hit table
	scores := scoreKeywords("a table with rows and columns")

	if got := scores[Table]; got != 16 {
		t.Errorf("table score: got %v, want 16", got)
	}
}

func TestBestScore_TieBreak(t *testing.T) {
	// network_diagram and chart_other both at 5: the earlier table
	// entry must win
	scores := map[Category]float64{
		NetworkDiagram: 5,
		ChartOther:     5,
	}

	category, score, ok := bestScore(scores)
	if !ok {
		t.Fatal("expected a winner")
	}
	if category != NetworkDiagram {
		t.Errorf("tie winner: got %s, want network_diagram", category)
	}
	if score != 5 {
		t.Errorf("winning score: got %v, want 5", score)
	}
}

func TestBestScore_Empty(t *testing.T) {
	_, _, ok := bestScore(map[Category]float64{})
	if ok {
		t.Error("empty scores should report no winner")
	}
}

func TestApplyVisualBonuses_Squarish(t *testing.T) {
	scores := map[Category]float64{BarChart: 9, Timeline: 8}
	applyVisualBonuses(scores, &features.Coarse{AspectRatio: 1.0})

	if scores[BarChart] != 14 {
		t.Errorf("bar_chart after squarish bonus: got %v, want 14", scores[BarChart])
	}
	if scores[Timeline] != 8 {
		t.Errorf("timeline should be unchanged: got %v", scores[Timeline])
	}
}

func TestApplyVisualBonuses_Elongated(t *testing.T) {
	scores := map[Category]float64{BarChart: 9, Timeline: 8}
	applyVisualBonuses(scores, &features.Coarse{AspectRatio: 2.5})

	if scores[Timeline] != 16 {
		t.Errorf("timeline after elongated bonus: got %v, want 16", scores[Timeline])
	}
	if scores[BarChart] != 9 {
		t.Errorf("bar_chart should be unchanged: got %v", scores[BarChart])
	}
}

func TestApplyVisualBonuses_FlatColor(t *testing.T) {
	scores := map[Category]float64{BarChart: 9}
	applyVisualBonuses(scores, &features.Coarse{AspectRatio: 1.7, Color: true, ColorDiversity: 0.005})

	if scores[BarChart] != 13 {
		t.Errorf("bar_chart after flat-color bonus: got %v, want 13", scores[BarChart])
	}
}

func TestApplyVisualBonuses_ColorBonusNeedsColor(t *testing.T) {
	// Grayscale input: color diversity bands must not fire
	scores := map[Category]float64{Photograph: 5}
	applyVisualBonuses(scores, &features.Coarse{AspectRatio: 1.7, Color: false, ColorDiversity: 0.5})

	if scores[Photograph] != 5 {
		t.Errorf("photograph should be unchanged for grayscale: got %v", scores[Photograph])
	}
}

func TestApplyVisualBonuses_NeverCreatesEntries(t *testing.T) {
	scores := map[Category]float64{}
	applyVisualBonuses(scores, &features.Coarse{AspectRatio: 1.0, Color: true, ColorDiversity: 0.5})

	if len(scores) != 0 {
		t.Errorf("bonuses must not introduce categories, got %v", scores)
	}
}

func TestSynthesizeCaption(t *testing.T) {
	tests := []struct {
		name   string
		coarse features.Coarse
		want   string
	}{
		{
			name:   "wide colorful busy bright",
			coarse: features.Coarse{AspectRatio: 2.0, ColorDiversity: 0.2, EdgeDensity: 0.25, Brightness: 220},
			want:   "wide colorful detailed diagram bright",
		},
		{
			name:   "middle bands collapse to chart",
			coarse: features.Coarse{AspectRatio: 1.0, ColorDiversity: 0.05, EdgeDensity: 0.15, Brightness: 150},
			want:   "chart",
		},
		{
			name:   "tall simple flat dark",
			coarse: features.Coarse{AspectRatio: 0.5, ColorDiversity: 0.005, EdgeDensity: 0.05, Brightness: 50},
			want:   "tall simple image dark",
		},
		{
			name:   "no edges still yields a noun",
			coarse: features.Coarse{AspectRatio: 1.0, ColorDiversity: 0.05, EdgeDensity: 0, Brightness: 128},
			want:   "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SynthesizeCaption(&tt.coarse); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyCaption_BarChart(t *testing.T) {
	c := NewCaptionClassifier(nil)
	img := solidImage(100, 100, color.White)

	result := c.ClassifyCaption(img, "a bar chart showing quarterly sales")

	if result.Category != BarChart {
		t.Fatalf("category: got %s, want bar_chart", result.Category)
	}
	if result.Confidence != 95.0 {
		t.Errorf("confidence: got %v, want 95.0", result.Confidence)
	}
	if result.Type != "📊 Bar Chart" {
		t.Errorf("type: got %q", result.Type)
	}
	if result.Description != "Bar Chart. a bar chart showing quarterly sales" {
		t.Errorf("description: got %q", result.Description)
	}
	if result.Details == nil || result.Details.AnalysisMethod != methodKeyword {
		t.Errorf("analysis method: got %+v", result.Details)
	}
}

func TestClassifyCaption_TieBreakFollowsTableOrder(t *testing.T) {
	// "histogram" scores 9 for both bar_chart and histogram; the
	// elongated gray image keeps bonuses out of the picture, so the
	// earlier table entry must win
	c := NewCaptionClassifier(nil)
	img := image.NewGray(image.Rect(0, 0, 300, 100))

	result := c.ClassifyCaption(img, "a histogram")

	if result.Category != BarChart {
		t.Errorf("tie winner: got %s, want bar_chart", result.Category)
	}
}

func TestClassifyCaption_VisualFallback_Squarish(t *testing.T) {
	c := NewCaptionClassifier(nil)
	img := solidImage(100, 100, color.White)

	result := c.ClassifyCaption(img, "zzz qqq")

	if result.Category != ChartOther {
		t.Fatalf("category: got %s, want chart_other", result.Category)
	}
	if result.Confidence != 50.0 {
		t.Errorf("confidence: got %v, want 50.0", result.Confidence)
	}
	if result.Details == nil || result.Details.AnalysisMethod != methodVisualFallback {
		t.Errorf("analysis method: got %+v", result.Details)
	}
	if result.Reasoning != "No matching description, classified by aspect ratio 1.00" {
		t.Errorf("reasoning: got %q", result.Reasoning)
	}
}

func TestClassifyCaption_VisualFallback_Grayscale(t *testing.T) {
	c := NewCaptionClassifier(nil)
	img := image.NewGray(image.Rect(0, 0, 100, 50))

	result := c.ClassifyCaption(img, "zzz")

	if result.Category != DiagramOther {
		t.Fatalf("category: got %s, want diagram_other", result.Category)
	}
	if result.Confidence != 40.0 {
		t.Errorf("confidence: got %v, want 40.0", result.Confidence)
	}
}

func TestClassifyCaption_EmptyCaptionSynthesizes(t *testing.T) {
	// White square synthesizes "simple image bright"; "image" then
	// matches the photograph keywords
	c := NewCaptionClassifier(nil)
	img := solidImage(100, 100, color.White)

	result := c.ClassifyCaption(img, "")

	if result.Category != Photograph {
		t.Fatalf("category: got %s, want photograph", result.Category)
	}
	if result.Confidence != 75.0 {
		t.Errorf("confidence: got %v, want 75.0", result.Confidence)
	}
}

func TestClassifyCaption_TextExtractorFeedsScoring(t *testing.T) {
	c := NewCaptionClassifier(nil)
	c.TextExtractor = func(image.Image) string { return "Revenue bar chart Q1 Q2 Q3" }
	img := solidImage(100, 100, color.White)

	result := c.ClassifyCaption(img, "zzz")

	if result.Category != BarChart {
		t.Fatalf("category: got %s, want bar_chart", result.Category)
	}
	if result.Confidence != 95.0 {
		t.Errorf("confidence: got %v, want 95.0", result.Confidence)
	}
	// Extracted text influences scoring only; the reader still sees the
	// plain caption.
	if result.Description != "Bar Chart. zzz" {
		t.Errorf("description: got %q", result.Description)
	}
}

func TestClassifyCaption_TextExtractorEmptyIsIgnored(t *testing.T) {
	c := NewCaptionClassifier(nil)
	c.TextExtractor = func(image.Image) string { return "   " }
	img := solidImage(100, 100, color.White)

	result := c.ClassifyCaption(img, "zzz qqq")

	if result.Category != ChartOther {
		t.Errorf("category: got %s, want chart_other", result.Category)
	}
	if result.Confidence != 50.0 {
		t.Errorf("confidence: got %v, want 50.0", result.Confidence)
	}
}

func TestClassifyCaption_NilImage(t *testing.T) {
	c := NewCaptionClassifier(nil)

	result := c.ClassifyCaption(nil, "a bar chart")

	if result.Category != Unknown {
		t.Errorf("category: got %s, want unknown", result.Category)
	}
	if result.Confidence != 30.0 {
		t.Errorf("confidence: got %v, want 30.0", result.Confidence)
	}
}

func TestCaptionClassifier_Classify_UsesCaptioner(t *testing.T) {
	c := NewCaptionClassifier(&stubCaptioner{text: "a pie chart of the budget"})
	img := solidImage(100, 100, color.White)

	result, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if result.Category != PieChart {
		t.Errorf("category: got %s, want pie_chart", result.Category)
	}
	if result.Confidence != 95.0 {
		t.Errorf("confidence: got %v, want 95.0", result.Confidence)
	}
	if result.Type != "🟢 Pie Chart" {
		t.Errorf("type: got %q", result.Type)
	}
}

func TestCaptionClassifier_Classify_CaptionerError(t *testing.T) {
	c := NewCaptionClassifier(&stubCaptioner{err: errors.New("connection refused")})
	img := solidImage(100, 100, color.White)

	result, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	// Falls back to the synthesized "simple image bright" description
	if result.Category != Photograph {
		t.Errorf("category: got %s, want photograph", result.Category)
	}
	if result.Details == nil || result.Details.AnalysisMethod != methodKeyword {
		t.Errorf("analysis method: got %+v", result.Details)
	}
}

func TestCaptionClassifier_Classify_CaptionerEmpty(t *testing.T) {
	c := NewCaptionClassifier(&stubCaptioner{text: "   "})
	img := solidImage(100, 100, color.White)

	result, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	// Blank caption counts as unavailable, never reaches scoring
	if result.Category != Photograph {
		t.Errorf("category: got %s, want photograph", result.Category)
	}
}

func TestCaptionClassifier_Classify_NilCaptioner(t *testing.T) {
	c := NewCaptionClassifier(nil)
	img := solidImage(100, 100, color.White)

	result, err := c.Classify(context.Background(), img)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a result")
	}
}

func TestCaptionClassifier_Classify_NilImage(t *testing.T) {
	c := NewCaptionClassifier(nil)

	_, err := c.Classify(context.Background(), nil)
	if err == nil {
		t.Error("expected error for nil image")
	}
}

func TestComposeDescription(t *testing.T) {
	tests := []struct {
		category Category
		caption  string
		want     string
	}{
		{BarChart, "a bar chart", "Bar Chart. a bar chart"},
		{ScatterPlot, "visual content", "Scatter Plot"},
		{DiagramOther, "image with visual elements", "Diagram Other"},
		{Map, "", "Map"},
	}

	for _, tt := range tests {
		if got := composeDescription(tt.category, tt.caption); got != tt.want {
			t.Errorf("composeDescription(%s, %q): got %q, want %q", tt.category, tt.caption, got, tt.want)
		}
	}
}

func TestVisualElements(t *testing.T) {
	tests := []struct {
		name     string
		caption  string
		category Category
		want     []string
	}{
		{
			name:     "chart category with caption hints capped at five",
			caption:  "contains text and color lines",
			category: BarChart,
			want:     []string{"data visualization", "axes", "labels", "text content", "varied colors"},
		},
		{
			name:     "diagram category",
			caption:  "plain",
			category: DiagramOther,
			want:     []string{"shapes", "connectors"},
		},
		{
			name:     "photograph category",
			caption:  "a scene",
			category: Photograph,
			want:     []string{"real objects", "natural lighting"},
		},
		{
			name:     "nothing recognized",
			caption:  "qqq",
			category: Unknown,
			want:     []string{"visual content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := visualElements(tt.caption, tt.category)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("element %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
