package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Figure Information
		{
			Name:        "figure_load",
			Description: "Load a figure image and return its metadata: dimensions, format, channels, color depth, alpha, grayscale flag, file size, and any EXIF capture info. Also primes the cache for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_dimensions",
			Description: "Get just the width and height of a figure image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Classification
		{
			Name:        "figure_classify",
			Description: "Classify a figure into a category (bar chart, pie chart, table, photograph, ...) using rule-based visual analysis. Fully offline; always returns a result with a confidence score.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_classify_by_caption",
			Description: "Classify a figure by scoring its caption text against weighted keyword lists, with visual bonuses. Supply the caption from the surrounding document; when omitted, one is fetched from the configured captioning endpoint or synthesized locally.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"caption": map[string]interface{}{
						"type":        "string",
						"description": "Caption text for the figure. Optional.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_features",
			Description: "Extract the 14-metric feature vector used by the rule-based classifier: aspect ratio, brightness, contrast, edge density, color diversity, text ratio, line density, circle/rectangle ratios, symmetry, dominant colors, saturation, hue variance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_caption",
			Description: "Produce a one-line description of the figure. Uses the configured captioning endpoint when available, otherwise synthesizes a description from coarse visual features.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_categories",
			Description: "List every category the classifier can assign, with its glyph, display label, and one-line description.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Region Operations
		{
			Name:        "figure_crop",
			Description: "Crop part of a figure and return it as base64-encoded PNG. Give either a named region (top-left, center, left-half, ...) or explicit x1/y1/x2/y2 coordinates. Use this to zoom into axis labels or legend areas.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
						"description": "Named region to extract. Overrides the coordinate fields.",
					},
					"x1": map[string]interface{}{
						"type":        "integer",
						"description": "Left edge X coordinate (0-based)",
					},
					"y1": map[string]interface{}{
						"type":        "integer",
						"description": "Top edge Y coordinate (0-based)",
					},
					"x2": map[string]interface{}{
						"type":        "integer",
						"description": "Right edge X coordinate (exclusive)",
					},
					"y2": map[string]interface{}{
						"type":        "integer",
						"description": "Bottom edge Y coordinate (exclusive)",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0, maximum 8.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "figure_sample_colors",
			Description: "Get exact color values (hex, RGB, RGBA, HSL) at one or more pixel coordinates.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string", "description": "Optional label for this point"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to sample",
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "figure_dominant_colors",
			Description: "Extract the N most dominant colors of a figure or a region of it (palette extraction, useful for telling charts from photographs).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of dominant colors to return (default 5)",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to analyze. If omitted, analyzes the entire figure.",
					},
				},
				"required": []string{"path"},
			},
		},

		// Structure Detection
		{
			Name:        "figure_edge_map",
			Description: "Return an edge-detected rendering of the figure, showing only structural lines. Useful for understanding diagram structure without color fills.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"threshold_low": map[string]interface{}{
						"type":        "integer",
						"description": "Low threshold for Canny edge detection (default 50)",
						"default":     50,
					},
					"threshold_high": map[string]interface{}{
						"type":        "integer",
						"description": "High threshold for Canny edge detection (default 150)",
						"default":     150,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_detect_rectangles",
			Description: "Detect rectangular shapes. Useful for finding bars, table cells, and boxes in diagrams.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"min_area": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum area in pixels to consider (default 100)",
						"default":     100,
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "How close to rectangular a shape must be (0-1, default 0.9)",
						"default":     0.9,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_detect_lines",
			Description: "Detect line segments. Useful for finding axes, gridlines, and connections between elements.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"min_length": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum line length in pixels (default 20)",
						"default":     20,
					},
					"detect_arrows": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to detect arrow heads at line endpoints",
						"default":     true,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_detect_circles",
			Description: "Detect circular shapes. Useful for finding pie charts, scatter points, and flowchart nodes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"min_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Minimum radius in pixels (default 5)",
						"default":     5,
					},
					"max_radius": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum radius in pixels (default 500)",
						"default":     500,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_text_regions",
			Description: "Detect regions that look like text, without running OCR. Returns bounding boxes with confidence scores.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum confidence threshold (0-1, default 0.5)",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},

		// OCR
		{
			Name:        "figure_ocr",
			Description: "Extract text from the figure (or a region of it) using the Tesseract engine. Returns words with bounding boxes. Fails with a clear message when the binary was built without OCR support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language string, e.g. 'eng' or 'eng+deu'. Defaults to the configured languages.",
					},
					"region": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"description": "Optional region to read. If omitted, reads the entire figure.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "figure_text_blocks",
			Description: "Locate text blocks in the figure with the OCR engine without recognizing their content. Faster than full OCR when only the layout matters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"min_confidence": map[string]interface{}{
						"type":        "number",
						"description": "Minimum detection confidence from 0.0 to 1.0 (default: 0.5)",
						"default":     0.5,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ocr_info",
			Description: "Report whether OCR support is compiled in and which engine version backs it.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Measurement Helpers
		{
			Name:        "figure_measure",
			Description: "Measure the distance in pixels between two points, with the horizontal/vertical deltas and the angle.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "First point X"},
					"y1": map[string]interface{}{"type": "integer", "description": "First point Y"},
					"x2": map[string]interface{}{"type": "integer", "description": "Second point X"},
					"y2": map[string]interface{}{"type": "integer", "description": "Second point Y"},
				},
				"required": []string{"path", "x1", "y1", "x2", "y2"},
			},
		},
		{
			Name:        "figure_alignment",
			Description: "Check whether multiple points are horizontally or vertically aligned, e.g. bar tops or axis ticks.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"points": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": map[string]interface{}{"type": "integer"},
								"y": map[string]interface{}{"type": "integer"},
							},
							"required": []string{"x", "y"},
						},
						"description": "Points to check for alignment",
					},
					"tolerance": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel tolerance for alignment (default 5)",
						"default":     5,
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "figure_compare_regions",
			Description: "Compare two regions of a figure for similar content: per-pixel similarity plus a perceptual hash distance. Useful for detecting repeated legend entries or chart panels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"region1": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
					"region2": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"x1", "y1", "x2", "y2"},
					},
				},
				"required": []string{"path", "region1", "region2"},
			},
		},
		{
			Name:        "figure_grid",
			Description: "Return the figure with a coordinate grid overlay, for reading off positions precisely.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the figure image file",
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels between grid lines (default 50)",
						"default":     50,
					},
					"show_coordinates": map[string]interface{}{
						"type":        "boolean",
						"description": "Whether to label grid intersections with coordinates",
						"default":     true,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid line color as hex (default #FF000080 - semi-transparent red)",
						"default":     "#FF000080",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
