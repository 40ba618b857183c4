package classify

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
)

// recognitionPrompt asks the vision service for a category name plus a
// one-line layout description, so both can be parsed from the answer.
const recognitionPrompt = "Classify the given figure into one of the following types: " +
	"Bar Chart, Line Graph, Pie Chart, Timeline, Photograph, Table, Other Chart, Other Diagram. " +
	"Also describe the layout and visual structure in one line."

// degradedMarker prefixes answers the vision layer produced while
// degraded (quota exhausted, transport failure). The literal must match
// the one the vision package emits.
const degradedMarker = "⚠️"

// Recognizer answers a free-form prompt about an image. Implementations
// report degradation by returning a marker-prefixed answer with a nil
// error rather than failing the call.
type Recognizer interface {
	Recognize(ctx context.Context, prompt string, img image.Image) (string, error)
}

// GenerativeClassifier classifies figures by asking a vision service to
// name the figure type, then matching known category phrases in the
// answer. Degraded answers yield the generic diagram category at
// confidence 30, with the raw answer preserved as reasoning.
type GenerativeClassifier struct {
	// Recognizer supplies the vision answers. Nil degrades every
	// classification.
	Recognizer Recognizer
}

// NewGenerativeClassifier returns the vision-service classification
// strategy.
func NewGenerativeClassifier(recognizer Recognizer) *GenerativeClassifier {
	return &GenerativeClassifier{Recognizer: recognizer}
}

// recognitionTable maps category phrases to classifications, checked in
// order against the lowercased vision answer. Specific phrases come
// before generic ones: "bar chart" must win over the bare "chart".
var recognitionTable = []struct {
	phrase     string
	category   Category
	confidence float64
}{
	{"bar chart", BarChart, 0.9},
	{"line graph", LineGraph, 0.9},
	{"pie chart", PieChart, 0.9},
	{"timeline", Timeline, 0.6},
	{"photograph", Photograph, 0.4},
	{"photo", Photograph, 0.4},
	{"table", Table, 0.7},
	{"chart", ChartOther, 0.5},
}

// Classify sends the image to the vision service and parses the answer.
// Service failures and degraded answers map to the generic diagram
// category; only a nil image returns an error.
func (g *GenerativeClassifier) Classify(ctx context.Context, img image.Image) (result *Result, err error) {
	if img == nil {
		return nil, errors.New("classify: nil image")
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("vision classification panicked", "panic", r)
			result = degradedVisionResult(fmt.Sprintf("%s vision API error: %v", degradedMarker, r))
			err = nil
		}
	}()

	if g.Recognizer == nil {
		return degradedVisionResult(degradedMarker + " vision service not configured"), nil
	}

	response, err := g.Recognizer.Recognize(ctx, recognitionPrompt, img)
	if err != nil {
		slog.Error("vision recognition failed", "error", err)
		return degradedVisionResult(fmt.Sprintf("%s vision API error: %v", degradedMarker, err)), nil
	}
	if isDegraded(response) {
		return degradedVisionResult(response), nil
	}

	return parseRecognition(response), nil
}

// parseRecognition extracts category and description from a healthy
// vision answer. The description is the answer's first sentence, the
// reasoning the full answer.
func parseRecognition(response string) *Result {
	lowered := strings.ToLower(response)

	category := Diagram
	confidence := 0.4
	for _, entry := range recognitionTable {
		if strings.Contains(lowered, entry.phrase) {
			category = entry.category
			confidence = entry.confidence
			break
		}
	}

	description := response
	if i := strings.Index(response, "."); i >= 0 {
		description = response[:i]
	}

	return &Result{
		Type:        Display(category),
		Category:    category,
		Confidence:  normalizeConfidence(confidence),
		Description: description,
		Reasoning:   response,
	}
}

// degradedVisionResult wraps a degraded vision answer in the generic
// diagram classification, keeping the answer visible as reasoning.
func degradedVisionResult(response string) *Result {
	return &Result{
		Type:        Display(Diagram),
		Category:    Diagram,
		Confidence:  30.0,
		Description: fallbackDescription,
		Reasoning:   response,
	}
}

// isDegraded reports whether a vision answer carries the degradation
// marker.
func isDegraded(response string) bool {
	return strings.HasPrefix(response, degradedMarker)
}
