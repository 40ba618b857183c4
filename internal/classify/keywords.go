package classify

// keywordEntry pairs a category with its weighted keywords. A keyword
// matched as a case-insensitive substring of the caption contributes
// its character length to the category's score, so longer, more
// specific phrases outweigh short generic ones.
type keywordEntry struct {
	category Category
	keywords []string
}

// keywordTable drives the caption-keyword strategy. The entry order is
// the tie-break: when two categories score equally, the earlier entry
// wins, so specific chart types are listed before the catch-alls.
var keywordTable = []keywordEntry{
	{BarChart, []string{"bar chart", "bar graph", "column chart", "histogram", "bars"}},
	{PieChart, []string{"pie chart", "pie graph", "circular chart", "donut chart"}},
	{LineGraph, []string{"line chart", "line graph", "trend", "curve", "time series"}},
	{ScatterPlot, []string{"scatter plot", "scatter chart", "dots", "points", "correlation"}},
	{Histogram, []string{"histogram", "distribution", "frequency", "bins"}},
	{BoxPlot, []string{"box plot", "boxplot", "whisker", "quartile"}},
	{Heatmap, []string{"heatmap", "heat map", "intensity", "color map", "gradient"}},
	{Flowchart, []string{"flowchart", "flow chart", "process", "workflow", "diagram"}},
	{OrganizationalChart, []string{"organizational chart", "org chart", "hierarchy", "structure"}},
	{NetworkDiagram, []string{"network", "graph", "nodes", "connections", "tree"}},
	{ScientificDiagram, []string{"molecule", "chemical", "formula", "scientific", "laboratory"}},
	{MedicalDiagram, []string{"anatomy", "medical", "body", "organ", "health"}},
	{EngineeringDiagram, []string{"circuit", "schematic", "technical", "blueprint", "engineering"}},
	{Map, []string{"map", "geographic", "location", "street", "geography", "satellite"}},
	{FloorPlan, []string{"floor plan", "blueprint", "layout", "room", "building"}},
	{Timeline, []string{"timeline", "chronology", "sequence", "history", "events"}},
	{Table, []string{"table", "grid", "rows", "columns", "data", "spreadsheet"}},
	{Infographic, []string{"infographic", "information", "visual", "statistics"}},
	{Photograph, []string{"photo", "picture", "image", "real", "camera", "scene"}},
	{Screenshot, []string{"screenshot", "screen", "interface", "software", "application"}},
	{Logo, []string{"logo", "brand", "symbol", "emblem", "company"}},
	{ChartOther, []string{"chart", "graph", "visualization", "data"}},
	{DiagramOther, []string{"diagram", "illustration", "drawing", "figure"}},
	{Unknown, []string{"unclear", "unknown", "indeterminate"}},
}

// Visual bonus groups. Aspect-ratio bands and color-diversity levels
// push weight toward categories they typically co-occur with; a bonus
// only applies when the category already matched at least one keyword.
var (
	// Near-square figures favor the classic chart types (+5).
	squarishBonusCategories = []Category{BarChart, LineGraph, ScatterPlot}

	// Very wide figures favor left-to-right layouts (+8).
	elongatedBonusCategories = []Category{Timeline, Flowchart}

	// Color-rich figures favor photographic content (+6).
	colorfulBonusCategories = []Category{Photograph, Infographic, Map}

	// Flat, few-color figures favor plain charts (+4).
	flatColorBonusCategories = []Category{BarChart, LineGraph}
)
