package classify

import "strings"

// Category identifies one figure class. The set is closed: every
// classification resolves to a member, with Diagram and Unknown as the
// explicit catch-alls. Ambiguity never produces an empty category.
type Category string

// Core categories, producible by the rule-based policy.
const (
	BarChart          Category = "bar_chart"
	PieChart          Category = "pie_chart"
	LineGraph         Category = "line_graph"
	Table             Category = "table"
	Flowchart         Category = "flowchart"
	Photograph        Category = "photograph"
	ScientificDiagram Category = "scientific_diagram"
	ScatterPlot       Category = "scatter_plot"
	Map               Category = "map"
	Diagram           Category = "diagram"
)

// Extended categories, producible only by the caption-keyword and
// generative strategies.
const (
	Histogram           Category = "histogram"
	BoxPlot             Category = "box_plot"
	Heatmap             Category = "heatmap"
	OrganizationalChart Category = "organizational_chart"
	NetworkDiagram      Category = "network_diagram"
	MedicalDiagram      Category = "medical_diagram"
	EngineeringDiagram  Category = "engineering_diagram"
	FloorPlan           Category = "floor_plan"
	Timeline            Category = "timeline"
	Infographic         Category = "infographic"
	Screenshot          Category = "screenshot"
	Logo                Category = "logo"
	ChartOther          Category = "chart_other"
	DiagramOther        Category = "diagram_other"
	Unknown             Category = "unknown"
)

// CategoryInfo is the display metadata for one category.
type CategoryInfo struct {
	// Glyph is the pictographic prefix shown before the label.
	Glyph string `json:"glyph"`

	// Label is the human-readable name.
	Label string `json:"label"`

	// Description is a one-line summary of what figures in this
	// category look like.
	Description string `json:"description"`
}

// catalog is the static category registry. Built once, read-only for
// the process lifetime, safe for concurrent reads.
var catalog = map[Category]CategoryInfo{
	BarChart:          {"📊", "Bar Chart", "Vertical or horizontal bars used to compare values."},
	LineGraph:         {"📈", "Line Graph", "Continuous line to show trends over time or data."},
	PieChart:          {"🟢", "Pie Chart", "Circular chart divided into slices."},
	Timeline:          {"⏰", "Timeline", "Horizontal layout showing chronological events."},
	Photograph:        {"📷", "Photograph", "High color and texture variation, likely image capture."},
	Table:             {"📋", "Table", "Grid of cells with rows and columns of text."},
	ScatterPlot:       {"🔵", "Scatter Plot", "Many small dots or shapes scattered across axes."},
	Flowchart:         {"📐", "Flowchart", "Connected shapes representing steps or decisions."},
	ScientificDiagram: {"📐", "Scientific Diagram", "Symmetric, structured layout with labeled parts."},
	Map:               {"🗺️", "Map", "Irregular shapes and colors suggest geographic layout."},
	Diagram:           {"📐", "Other Diagram", "Generic illustration, often grayscale or text-heavy."},

	Histogram:           {"📊", "Histogram", "Bars showing the distribution of a variable."},
	BoxPlot:             {"📦", "Box Plot", "Boxes and whiskers summarizing distributions."},
	Heatmap:             {"🌡️", "Heatmap", "Grid of color intensities encoding values."},
	OrganizationalChart: {"🗂️", "Organizational Chart", "Hierarchy of roles connected by reporting lines."},
	NetworkDiagram:      {"🔗", "Network Diagram", "Nodes joined by edges or connections."},
	MedicalDiagram:      {"🫀", "Medical Diagram", "Anatomical or medical illustration."},
	EngineeringDiagram:  {"📐", "Engineering Diagram", "Technical schematic or blueprint."},
	FloorPlan:           {"🏠", "Floor Plan", "Room and wall layout of a building."},
	Infographic:         {"📌", "Infographic", "Mixed text and graphics presenting statistics."},
	Screenshot:          {"🖥️", "Screenshot", "Captured software interface."},
	Logo:                {"🚩", "Logo", "Brand mark or emblem."},
	ChartOther:          {"🔢", "Other Chart", "Chart of an unrecognized kind."},
	DiagramOther:        {"📝", "Other Diagram", "Illustration or drawing of an unrecognized kind."},
	Unknown:             {"❓", "Unknown", "Could not classify figure reliably."},
}

// fallbackDescription covers categories missing from the catalog and
// the degraded error path.
const fallbackDescription = "Grayscale content, likely diagram or text"

// Info returns the display metadata for a category. Categories outside
// the catalog get a question-mark glyph and a mechanical label.
func Info(c Category) CategoryInfo {
	if info, ok := catalog[c]; ok {
		return info
	}
	return CategoryInfo{
		Glyph:       "❓",
		Label:       titleCase(strings.ReplaceAll(string(c), "_", " ")),
		Description: fallbackDescription,
	}
}

// Display renders the category's display string: glyph, space, label.
// Both classification strategies share this, so identical categories
// render identically no matter which strategy produced them.
func Display(c Category) string {
	info := Info(c)
	return info.Glyph + " " + info.Label
}

// Describe returns the category's one-line description.
func Describe(c Category) string {
	return Info(c).Description
}

// Categories returns every catalog member in a stable order: core
// categories first, then the extended set.
func Categories() []Category {
	return []Category{
		BarChart, PieChart, LineGraph, Table, Flowchart, Photograph,
		ScientificDiagram, ScatterPlot, Map, Diagram,
		Histogram, BoxPlot, Heatmap, OrganizationalChart, NetworkDiagram,
		MedicalDiagram, EngineeringDiagram, FloorPlan, Timeline,
		Infographic, Screenshot, Logo, ChartOther, DiagramOther, Unknown,
	}
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
