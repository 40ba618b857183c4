package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Avika2211/pdf-image-classifier/internal/classify"
	"github.com/Avika2211/pdf-image-classifier/internal/detection"
	"github.com/Avika2211/pdf-image-classifier/internal/features"
	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
	"github.com/Avika2211/pdf-image-classifier/internal/ocr"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "figure_load", "figure_classify").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate classify/imaging/detection/ocr function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Figure Information
	case "figure_load":
		return s.handleFigureLoad(args)
	case "figure_dimensions":
		return s.handleFigureDimensions(args)

	// Classification
	case "figure_classify":
		return s.handleFigureClassify(args)
	case "figure_classify_by_caption":
		return s.handleFigureClassifyByCaption(args)
	case "figure_features":
		return s.handleFigureFeatures(args)
	case "figure_caption":
		return s.handleFigureCaption(args)
	case "figure_categories":
		return s.handleFigureCategories(args)

	// Region Operations
	case "figure_crop":
		return s.handleFigureCrop(args)

	// Color Operations
	case "figure_sample_colors":
		return s.handleFigureSampleColors(args)
	case "figure_dominant_colors":
		return s.handleFigureDominantColors(args)

	// Structure Detection
	case "figure_edge_map":
		return s.handleFigureEdgeMap(args)
	case "figure_detect_rectangles":
		return s.handleFigureDetectRectangles(args)
	case "figure_detect_lines":
		return s.handleFigureDetectLines(args)
	case "figure_detect_circles":
		return s.handleFigureDetectCircles(args)
	case "figure_text_regions":
		return s.handleFigureTextRegions(args)

	// OCR
	case "figure_ocr":
		return s.handleFigureOCR(args)
	case "figure_text_blocks":
		return s.handleFigureTextBlocks(args)
	case "ocr_info":
		return s.handleOCRInfo(args)

	// Measurement Helpers
	case "figure_measure":
		return s.handleFigureMeasure(args)
	case "figure_alignment":
		return s.handleFigureAlignment(args)
	case "figure_compare_regions":
		return s.handleFigureCompareRegions(args)
	case "figure_grid":
		return s.handleFigureGrid(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Figure Information Handlers ===

type figurePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleFigureLoad(args json.RawMessage) (interface{}, error) {
	var a figurePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleFigureDimensions(args json.RawMessage) (interface{}, error) {
	var a figurePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Classification Handlers ===

func (s *Server) handleFigureClassify(args json.RawMessage) (interface{}, error) {
	var a figurePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.rule.Classify(context.Background(), img)
}

type figureClassifyByCaptionArgs struct {
	Path    string `json:"path"`
	Caption string `json:"caption"`
}

func (s *Server) handleFigureClassifyByCaption(args json.RawMessage) (interface{}, error) {
	var a figureClassifyByCaptionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(a.Caption) != "" {
		return s.byCaption.ClassifyCaption(img, a.Caption), nil
	}
	return s.byCaption.Classify(context.Background(), img)
}

func (s *Server) handleFigureFeatures(args json.RawMessage) (interface{}, error) {
	var a figurePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return features.Extract(img)
}

type captionResult struct {
	Caption string `json:"caption"`

	// Source is "endpoint" for remote captions, "synthesized" for
	// locally generated ones.
	Source string `json:"source"`
}

func (s *Server) handleFigureCaption(args json.RawMessage) (interface{}, error) {
	var a figurePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	if s.captioner != nil {
		timeout := time.Duration(s.cfg.Caption.TimeoutSeconds) * time.Second
		if timeout <= 0 {
			timeout = classify.DefaultCaptionTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		text, err := s.captioner.Caption(ctx, img)
		if err == nil && strings.TrimSpace(text) != "" {
			return captionResult{Caption: text, Source: "endpoint"}, nil
		}
		slog.Debug("caption endpoint unavailable, synthesizing", "path", a.Path, "error", err)
	}

	caption := classify.SynthesizeCaption(features.ExtractCoarse(img))
	return captionResult{Caption: caption, Source: "synthesized"}, nil
}

type categoryEntry struct {
	ID          string `json:"id"`
	Display     string `json:"display"`
	Description string `json:"description"`
}

func (s *Server) handleFigureCategories(args json.RawMessage) (interface{}, error) {
	cats := classify.Categories()
	entries := make([]categoryEntry, len(cats))
	for i, c := range cats {
		entries[i] = categoryEntry{
			ID:          string(c),
			Display:     classify.Display(c),
			Description: classify.Describe(c),
		}
	}
	return map[string]interface{}{"categories": entries}, nil
}

// === Region Operation Handlers ===

type figureCropArgs struct {
	Path   string  `json:"path"`
	Region string  `json:"region"`
	X1     int     `json:"x1"`
	Y1     int     `json:"y1"`
	X2     int     `json:"x2"`
	Y2     int     `json:"y2"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleFigureCrop(args json.RawMessage) (interface{}, error) {
	var a figureCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Region != "" {
		return imaging.CropQuadrant(img, a.Region, a.Scale)
	}
	if a.X1 == 0 && a.Y1 == 0 && a.X2 == 0 && a.Y2 == 0 {
		return nil, errors.New("either region or x1/y1/x2/y2 must be provided")
	}
	return imaging.Crop(img, a.X1, a.Y1, a.X2, a.Y2, a.Scale)
}

// === Color Operation Handlers ===

type figureSampleColorsArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleFigureSampleColors(args json.RawMessage) (interface{}, error) {
	var a figureSampleColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]imaging.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return imaging.SampleColorsMulti(img, points)
}

type figureDominantColorsArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleFigureDominantColors(args json.RawMessage) (interface{}, error) {
	var a figureDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *imaging.Region
	if a.Region != nil {
		region = &imaging.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return imaging.DominantColors(img, a.Count, region)
}

// === Structure Detection Handlers ===

type figureEdgeMapArgs struct {
	Path          string `json:"path"`
	ThresholdLow  int    `json:"threshold_low"`
	ThresholdHigh int    `json:"threshold_high"`
}

func (s *Server) handleFigureEdgeMap(args json.RawMessage) (interface{}, error) {
	var a figureEdgeMapArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ThresholdLow == 0 {
		a.ThresholdLow = 50
	}
	if a.ThresholdHigh == 0 {
		a.ThresholdHigh = 150
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EdgeDetect(img, a.ThresholdLow, a.ThresholdHigh)
}

type figureDetectRectanglesArgs struct {
	Path      string  `json:"path"`
	MinArea   int     `json:"min_area"`
	Tolerance float64 `json:"tolerance"`
}

func (s *Server) handleFigureDetectRectangles(args json.RawMessage) (interface{}, error) {
	var a figureDetectRectanglesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinArea == 0 {
		a.MinArea = 100
	}
	if a.Tolerance == 0 {
		a.Tolerance = 0.9
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectRectangles(img, a.MinArea, a.Tolerance)
}

type figureDetectLinesArgs struct {
	Path         string `json:"path"`
	MinLength    int    `json:"min_length"`
	DetectArrows bool   `json:"detect_arrows"`
}

func (s *Server) handleFigureDetectLines(args json.RawMessage) (interface{}, error) {
	var a figureDetectLinesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinLength == 0 {
		a.MinLength = 20
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectLines(img, a.MinLength, a.DetectArrows)
}

type figureDetectCirclesArgs struct {
	Path      string `json:"path"`
	MinRadius int    `json:"min_radius"`
	MaxRadius int    `json:"max_radius"`
}

func (s *Server) handleFigureDetectCircles(args json.RawMessage) (interface{}, error) {
	var a figureDetectCirclesArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinRadius == 0 {
		a.MinRadius = 5
	}
	if a.MaxRadius == 0 {
		a.MaxRadius = 500
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectCircles(img, a.MinRadius, a.MaxRadius)
}

type figureTextRegionsArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

func (s *Server) handleFigureTextRegions(args json.RawMessage) (interface{}, error) {
	var a figureTextRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinConfidence == 0 {
		a.MinConfidence = 0.5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return detection.DetectTextRegions(img, a.MinConfidence)
}

// === OCR Handlers ===

type figureOCRArgs struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Region   *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleFigureOCR(args json.RawMessage) (interface{}, error) {
	var a figureOCRArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = strings.Join(s.cfg.OCR.Languages, "+")
	}
	if a.Language == "" {
		a.Language = "eng"
	}

	if a.Region == nil {
		return ocr.ExtractText(a.Path, a.Language)
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return ocr.ExtractTextFromRegion(img, a.Region.X1, a.Region.Y1, a.Region.X2, a.Region.Y2, a.Language)
}

type figureTextBlocksArgs struct {
	Path          string  `json:"path"`
	MinConfidence float64 `json:"min_confidence"`
}

func (s *Server) handleFigureTextBlocks(args json.RawMessage) (interface{}, error) {
	var a figureTextBlocksArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinConfidence == 0 {
		a.MinConfidence = 0.5
	}
	return ocr.DetectBlocks(a.Path, a.MinConfidence)
}

func (s *Server) handleOCRInfo(args json.RawMessage) (interface{}, error) {
	return ocr.Info(), nil
}

// === Measurement Helper Handlers ===

type figureMeasureArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

func (s *Server) handleFigureMeasure(args json.RawMessage) (interface{}, error) {
	var a figureMeasureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.MeasureDistance(img, a.X1, a.Y1, a.X2, a.Y2)
}

type figureAlignmentArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"points"`
	Tolerance int `json:"tolerance"`
}

func (s *Server) handleFigureAlignment(args json.RawMessage) (interface{}, error) {
	var a figureAlignmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Tolerance == 0 {
		a.Tolerance = 5
	}

	points := make([]imaging.Point, len(a.Points))
	for i, p := range a.Points {
		points[i] = imaging.Point{X: p.X, Y: p.Y}
	}
	return imaging.CheckAlignment(points, a.Tolerance)
}

type figureCompareRegionsArgs struct {
	Path    string `json:"path"`
	Region1 struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region1"`
	Region2 struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region2"`
}

func (s *Server) handleFigureCompareRegions(args json.RawMessage) (interface{}, error) {
	var a figureCompareRegionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	r1 := imaging.Region{X1: a.Region1.X1, Y1: a.Region1.Y1, X2: a.Region1.X2, Y2: a.Region1.Y2}
	r2 := imaging.Region{X1: a.Region2.X1, Y1: a.Region2.Y1, X2: a.Region2.X2, Y2: a.Region2.Y2}
	return imaging.CompareRegions(img, r1, r2)
}

type figureGridArgs struct {
	Path            string `json:"path"`
	GridSpacing     int    `json:"grid_spacing"`
	ShowCoordinates bool   `json:"show_coordinates"`
	GridColor       string `json:"grid_color"`
}

func (s *Server) handleFigureGrid(args json.RawMessage) (interface{}, error) {
	var a figureGridArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.GridSpacing == 0 {
		a.GridSpacing = 50
	}
	if a.GridColor == "" {
		a.GridColor = "#FF000080"
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.GridOverlay(img, a.GridSpacing, a.ShowCoordinates, a.GridColor)
}
