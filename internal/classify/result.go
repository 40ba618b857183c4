package classify

import (
	"context"
	"image"
	"math"
)

// Analysis method markers reported in Details.
const (
	methodKeyword        = "Caption keyword analysis"
	methodVisualFallback = "Fallback visual analysis"
	methodFallback       = "Fallback classification"
)

// Details carries the optional extra information some strategies
// attach to a result.
type Details struct {
	// VisualElements names the kinds of content the figure appears to
	// contain, such as "axes" or "text content". At most five entries.
	VisualElements []string `json:"visual_elements"`

	// AnalysisMethod records which analysis path produced the result.
	AnalysisMethod string `json:"analysis_method"`
}

// Result is the outcome of classifying one figure. Every strategy
// returns this shape, so downstream consumers never care which one ran.
type Result struct {
	// Type is the display string, "<glyph> <label>", rendered from the
	// category catalog.
	Type string `json:"type"`

	// Category is the machine-readable category key.
	Category Category `json:"classification"`

	// Confidence is the self-assessed certainty on a 0-100 scale,
	// rounded to one decimal. It is a heuristic, not a calibrated
	// probability. Values at or below the degraded floors (30, 40)
	// signal a best-effort fallback result.
	Confidence float64 `json:"confidence"`

	// Description is a one-line account of the figure.
	Description string `json:"description"`

	// Reasoning explains how the strategy reached its answer.
	Reasoning string `json:"reasoning"`

	// Details is extra strategy-specific information, when available.
	Details *Details `json:"details,omitempty"`
}

// Classifier is the contract shared by all classification strategies.
//
// Classify always returns a well-formed Result for a decodable image:
// internal failures degrade to a low-confidence catch-all category
// rather than surfacing as errors. The error return is reserved for
// contract violations such as a nil image.
type Classifier interface {
	Classify(ctx context.Context, img image.Image) (*Result, error)
}

// normalizeConfidence scales a 0-1 confidence onto the 0-100 scale,
// rounded to one decimal.
func normalizeConfidence(c float64) float64 {
	return math.Round(c*1000) / 10
}
