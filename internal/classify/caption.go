package classify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Avika2211/pdf-image-classifier/internal/features"
)

// DefaultCaptionTimeout bounds the captioning call when the classifier
// is not configured with its own timeout.
const DefaultCaptionTimeout = 10 * time.Second

// Captioner produces a one-line textual description of an image. The
// caption classifier treats any error as "service unavailable" and
// synthesizes a description locally instead.
type Captioner interface {
	Caption(ctx context.Context, img image.Image) (string, error)
}

// CaptionClassifier classifies figures by scoring caption text against
// weighted keyword lists, then nudging the scores with coarse visual
// measures. When no keyword matches it falls back to a purely visual
// guess, and when the captioning service is unreachable it synthesizes
// a caption locally, so the keyword stage never sees an empty string.
type CaptionClassifier struct {
	// Captioner supplies image descriptions. Nil means captions are
	// always synthesized locally.
	Captioner Captioner

	// Timeout bounds each captioning call. Zero means
	// DefaultCaptionTimeout.
	Timeout time.Duration

	// TextExtractor, when set, supplies text read off the figure itself
	// (axis labels, titles). The text joins the caption for keyword
	// scoring only; descriptions and reasoning keep the plain caption.
	TextExtractor func(img image.Image) string
}

// NewCaptionClassifier returns the caption-keyword classification
// strategy backed by the given captioner, which may be nil for fully
// offline operation.
func NewCaptionClassifier(captioner Captioner) *CaptionClassifier {
	return &CaptionClassifier{Captioner: captioner}
}

// Classify obtains a caption for the image and classifies from it.
// A captioner failure degrades to local synthesis, an unmatched caption
// degrades to visual analysis, and any internal failure degrades to the
// unknown category at confidence 30. Only a nil image returns an error.
func (c *CaptionClassifier) Classify(ctx context.Context, img image.Image) (result *Result, err error) {
	if img == nil {
		return nil, errors.New("classify: nil image")
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("caption classification panicked", "panic", r)
			result = fallbackResult()
			err = nil
		}
	}()

	caption := c.caption(ctx, img)
	return c.classifyCaption(img, caption), nil
}

// ClassifyCaption classifies using a caller-supplied caption, skipping
// the captioning service. Useful when the surrounding document already
// provides figure captions. An empty caption is replaced by a locally
// synthesized one.
func (c *CaptionClassifier) ClassifyCaption(img image.Image, caption string) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("caption classification panicked", "panic", r)
			result = fallbackResult()
		}
	}()

	if strings.TrimSpace(caption) == "" {
		caption = SynthesizeCaption(features.ExtractCoarse(img))
	}
	return c.classifyCaption(img, caption)
}

// caption returns a description of the image: the captioning service's
// answer when one arrives in time, a locally synthesized phrase
// otherwise.
func (c *CaptionClassifier) caption(ctx context.Context, img image.Image) string {
	if c.Captioner != nil {
		timeout := c.Timeout
		if timeout <= 0 {
			timeout = DefaultCaptionTimeout
		}
		cctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		text, err := c.Captioner.Caption(cctx, img)
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		slog.Debug("captioner unavailable, synthesizing description", "error", err)
	}

	return SynthesizeCaption(features.ExtractCoarse(img))
}

// classifyCaption runs the keyword scoring pipeline over a nonempty
// caption.
func (c *CaptionClassifier) classifyCaption(img image.Image, caption string) *Result {
	coarse := features.ExtractCoarse(img)

	scored := caption
	if c.TextExtractor != nil {
		if text := strings.TrimSpace(c.TextExtractor(img)); text != "" {
			scored = caption + " " + text
		}
	}

	scores := scoreKeywords(scored)
	applyVisualBonuses(scores, coarse)

	category, score, matched := bestScore(scores)
	if !matched {
		return visualFallback(coarse)
	}

	confidence := math.Min(0.95, 0.5+score/20)

	return &Result{
		Type:        Display(category),
		Category:    category,
		Confidence:  normalizeConfidence(confidence),
		Description: composeDescription(category, caption),
		Reasoning:   fmt.Sprintf("Classified as %s using description '%s'", category, caption),
		Details: &Details{
			VisualElements: visualElements(caption, category),
			AnalysisMethod: methodKeyword,
		},
	}
}

// scoreKeywords sums matched keyword lengths per category. Categories
// with no match are absent from the map.
func scoreKeywords(caption string) map[Category]float64 {
	lowered := strings.ToLower(caption)
	scores := make(map[Category]float64)

	for _, entry := range keywordTable {
		total := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				total += len(kw)
			}
		}
		if total > 0 {
			scores[entry.category] = float64(total)
		}
	}

	return scores
}

// applyVisualBonuses adjusts keyword scores with the coarse visual
// measures. Bonuses only strengthen categories that already matched a
// keyword; they never introduce a category on their own.
func applyVisualBonuses(scores map[Category]float64, coarse *features.Coarse) {
	addBonus := func(categories []Category, bonus float64) {
		for _, cat := range categories {
			if _, ok := scores[cat]; ok {
				scores[cat] += bonus
			}
		}
	}

	if coarse.AspectRatio >= 0.8 && coarse.AspectRatio <= 1.5 {
		addBonus(squarishBonusCategories, 5)
	}
	if coarse.AspectRatio > 2 {
		addBonus(elongatedBonusCategories, 8)
	}
	if coarse.Color {
		if coarse.ColorDiversity > 0.1 {
			addBonus(colorfulBonusCategories, 6)
		} else if coarse.ColorDiversity < 0.01 {
			addBonus(flatColorBonusCategories, 4)
		}
	}
}

// bestScore picks the highest-scoring category. Ties resolve to the
// entry listed first in keywordTable, keeping the outcome deterministic.
func bestScore(scores map[Category]float64) (Category, float64, bool) {
	var best Category
	bestVal := 0.0
	found := false

	for _, entry := range keywordTable {
		v, ok := scores[entry.category]
		if !ok {
			continue
		}
		if !found || v > bestVal {
			found = true
			best = entry.category
			bestVal = v
		}
	}

	return best, bestVal, found
}

// SynthesizeCaption builds a qualitative description from coarse visual
// measures, used when no captioning service is reachable. The wording
// bands are fixed: shape (wide/tall), color richness (colorful/simple),
// edge business (detailed diagram/chart/image), brightness (bright/dark).
func SynthesizeCaption(coarse *features.Coarse) string {
	words := make([]string, 0, 4)

	if coarse.AspectRatio > 1.5 {
		words = append(words, "wide")
	} else if coarse.AspectRatio < 0.7 {
		words = append(words, "tall")
	}

	if coarse.ColorDiversity > 0.1 {
		words = append(words, "colorful")
	} else if coarse.ColorDiversity < 0.01 {
		words = append(words, "simple")
	}

	if coarse.EdgeDensity > 0.2 {
		words = append(words, "detailed diagram")
	} else if coarse.EdgeDensity > 0.1 {
		words = append(words, "chart")
	} else {
		words = append(words, "image")
	}

	if coarse.Brightness > 200 {
		words = append(words, "bright")
	} else if coarse.Brightness < 100 {
		words = append(words, "dark")
	}

	if len(words) == 0 {
		return "visual content"
	}
	return strings.Join(words, " ")
}

// visualFallback classifies from aspect ratio and color diversity alone,
// for captions that matched no keyword at all.
func visualFallback(coarse *features.Coarse) *Result {
	category := DiagramOther
	confidence := 0.4

	if coarse.Color {
		switch {
		case coarse.ColorDiversity > 0.1:
			category = Photograph
			confidence = 0.6
		case coarse.AspectRatio > 2:
			category = Timeline
			confidence = 0.5
		case coarse.AspectRatio >= 0.8 && coarse.AspectRatio <= 1.2:
			category = ChartOther
			confidence = 0.5
		}
	}

	return &Result{
		Type:        Display(category),
		Category:    category,
		Confidence:  normalizeConfidence(confidence),
		Description: fmt.Sprintf("Visual analysis suggests a %s", strings.ReplaceAll(string(category), "_", " ")),
		Reasoning:   fmt.Sprintf("No matching description, classified by aspect ratio %.2f", coarse.AspectRatio),
		Details: &Details{
			VisualElements: []string{"visual content"},
			AnalysisMethod: methodVisualFallback,
		},
	}
}

// fallbackResult is the terminal degraded result: unknown category at
// the confidence floor.
func fallbackResult() *Result {
	return &Result{
		Type:        Display(Unknown),
		Category:    Unknown,
		Confidence:  30.0,
		Description: "Could not classify figure reliably",
		Reasoning:   "No meaningful description or features available",
		Details: &Details{
			VisualElements: []string{"visual content"},
			AnalysisMethod: methodFallback,
		},
	}
}

// composeDescription renders the final description: the category name
// in title case, followed by the caption when it carries real content.
func composeDescription(category Category, caption string) string {
	readable := titleCase(strings.ReplaceAll(string(category), "_", " "))
	if caption != "" && caption != "visual content" && caption != "image with visual elements" {
		return readable + ". " + caption
	}
	return readable
}

// visualElements names the content kinds suggested by the category and
// caption, capped at five entries.
func visualElements(caption string, category Category) []string {
	elements := make([]string, 0, 5)
	key := string(category)

	switch {
	case strings.Contains(key, "chart") || strings.Contains(key, "graph"):
		elements = append(elements, "data visualization", "axes", "labels")
	case strings.Contains(key, "diagram"):
		elements = append(elements, "shapes", "connectors")
	case category == Photograph:
		elements = append(elements, "real objects", "natural lighting")
	}

	lowered := strings.ToLower(caption)
	if strings.Contains(lowered, "text") {
		elements = append(elements, "text content")
	}
	if strings.Contains(lowered, "color") {
		elements = append(elements, "varied colors")
	}
	if strings.Contains(lowered, "line") {
		elements = append(elements, "linear elements")
	}

	if len(elements) > 5 {
		elements = elements[:5]
	}
	if len(elements) == 0 {
		return []string{"visual content"}
	}
	return elements
}
