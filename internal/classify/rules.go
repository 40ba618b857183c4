package classify

import (
	"image"

	"github.com/Avika2211/pdf-image-classifier/internal/detection"
	"github.com/Avika2211/pdf-image-classifier/internal/features"
)

// Scatter probe tuning: a figure counts as a scatter plot when more
// than scatterBlobCount dot-sized blobs (radius up to scatterMaxRadius)
// are found in a separate detection pass.
const (
	scatterMaxRadius = 10
	scatterBlobCount = 20
)

// ruleInput is what a decision rule may look at: the extracted feature
// vector, plus the image itself for rules that run their own detection
// pass.
type ruleInput struct {
	vec *features.Vector
	img image.Image
}

// decisionRule is one entry in the ordered decision list.
type decisionRule struct {
	category   Category
	confidence float64
	match      func(in ruleInput) bool
}

// decisionList is the rule policy, evaluated top to bottom with the
// first match winning. Order encodes priority: a figure that is both
// circular enough for a pie chart and rectangular enough for a bar
// chart is a pie chart. The thresholds are empirically fixed; change
// them and the decisions change.
var decisionList = []decisionRule{
	{PieChart, 0.8, func(in ruleInput) bool {
		return in.vec.CircleRatio > 0.3
	}},
	{BarChart, 0.7, func(in ruleInput) bool {
		return in.vec.RectangleRatio > 0.4 && in.vec.TextRatio < 0.3
	}},
	{LineGraph, 0.7, func(in ruleInput) bool {
		return in.vec.LineDensity > 0.3 && in.vec.RectangleRatio < 0.2
	}},
	{Table, 0.6, func(in ruleInput) bool {
		return in.vec.TextRatio > 0.4
	}},
	{Flowchart, 0.6, func(in ruleInput) bool {
		return in.vec.EdgeDensity > 0.2 && in.vec.RectangleRatio > 0.2
	}},
	{Photograph, 0.6, func(in ruleInput) bool {
		return in.vec.EdgeDensity < 0.1 && in.vec.ColorDiversity > 0.1
	}},
	{ScientificDiagram, 0.6, func(in ruleInput) bool {
		return in.vec.SymmetryHorizontal > 0.7 || in.vec.SymmetryVertical > 0.7
	}},
	{ScatterPlot, 0.7, isScatterPlot},
	{Map, 0.6, isMapLike},
	{Diagram, 0.4, func(in ruleInput) bool {
		return true
	}},
}

// evaluateRules walks the decision list and returns the first matching
// category with its confidence. The final catch-all always matches, so
// every input resolves.
func evaluateRules(vec *features.Vector, img image.Image) (Category, float64) {
	in := ruleInput{vec: vec, img: img}
	for _, rule := range decisionList {
		if rule.match(in) {
			return rule.category, rule.confidence
		}
	}
	return Diagram, 0.4
}

// isScatterPlot probes for the many small round blobs a scatter plot
// leaves after binarization. It runs its own pass over the image
// because the feature vector's circle measure ignores dot-sized radii.
func isScatterPlot(in ruleInput) bool {
	bin := detection.Binarize(in.img)
	return detection.CountSmallBlobs(bin, scatterMaxRadius) > scatterBlobCount
}

// isMapLike flags the loose signature of a map: varied color, moderate
// edge density, and no mirror symmetry on either axis.
func isMapLike(in ruleInput) bool {
	return in.vec.ColorDiversity > 0.05 &&
		in.vec.EdgeDensity > 0.1 && in.vec.EdgeDensity < 0.3 &&
		in.vec.SymmetryHorizontal < 0.3 &&
		in.vec.SymmetryVertical < 0.3
}
