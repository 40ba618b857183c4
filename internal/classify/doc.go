// Package classify assigns document figures to chart and diagram
// categories.
//
// Three strategies implement the Classifier interface:
//
//   - RuleClassifier inspects measured visual features and walks an
//     ordered decision list; the first matching rule wins. Fully
//     offline and deterministic.
//   - CaptionClassifier scores a textual description of the figure
//     against weighted keyword lists, nudged by coarse visual measures.
//     The description comes from a captioning service when one is
//     configured, and is synthesized locally otherwise.
//   - GenerativeClassifier asks a vision service to name the figure
//     type and parses category phrases out of the answer.
//
// # Degradation
//
// Classification never fails outright. Each strategy converts internal
// problems into progressively weaker results instead of errors: an
// unmatched caption falls back to aspect-ratio analysis, an unreachable
// captioner falls back to a synthesized description, a degraded vision
// answer falls back to the generic diagram category, and an outright
// panic falls back to the unknown category. The Classify methods return
// an error only for a nil image, which is a caller bug rather than a
// classification failure.
//
// # Confidence
//
// All results carry confidence on a single 0-100 scale with one decimal
// place. Rule and keyword confidences are derived from match strength;
// degraded results sit at fixed floors (30 or 40) so callers can
// distinguish a weak real classification from a fallback.
//
// # Categories
//
// The category catalog pairs each category with a display glyph, a
// human label and a stock description. Strategies cover overlapping but
// not identical category subsets: the rule list targets the ten core
// categories, while keyword scoring can also produce the extended set
// (histogram, heatmap, floor plan and so on).
package classify
