package classify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/Avika2211/pdf-image-classifier/internal/features"
)

// RuleClassifier classifies figures from visual measurements alone: it
// extracts the full feature vector and walks the ordered decision list.
// No network, no randomness beyond the seeded clustering, so identical
// pixels always classify identically.
type RuleClassifier struct{}

// NewRuleClassifier returns the rule-based classification strategy.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify extracts features from the image and applies the decision
// list. Extraction failures and panics inside the detection code are
// caught here and become a degraded Diagram result with confidence 30;
// they never reach the caller. Only a nil image returns an error.
func (c *RuleClassifier) Classify(ctx context.Context, img image.Image) (result *Result, err error) {
	if img == nil {
		return nil, errors.New("classify: nil image")
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("classification panicked", "panic", r)
			result = degradedResult(fmt.Errorf("%v", r))
			err = nil
		}
	}()

	vec, extractErr := features.Extract(img)
	if extractErr != nil {
		slog.Error("feature extraction failed", "error", extractErr)
		return degradedResult(extractErr), nil
	}

	category, confidence := evaluateRules(vec, img)

	return &Result{
		Type:        Display(category),
		Category:    category,
		Confidence:  normalizeConfidence(confidence),
		Description: Describe(category),
		Reasoning:   "Rule-based decision based on visual features: " + string(category),
	}, nil
}

// degradedResult is the never-fail fallback for the rule-based path:
// the generic diagram category at the degraded-confidence floor, with
// the failure recorded in the reasoning.
func degradedResult(cause error) *Result {
	return &Result{
		Type:        Display(Diagram),
		Category:    Diagram,
		Confidence:  30.0,
		Description: fallbackDescription,
		Reasoning:   fmt.Sprintf("Error during classification: %v", cause),
	}
}
