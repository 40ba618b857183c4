// Package server implements the MCP (Model Context Protocol) server for
// document-figure classification and inspection tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the
// classifier and its supporting image analysis over the MCP protocol,
// so MCP-compatible clients can categorize extracted PDF figures and
// drill into the evidence behind a classification.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: structured records on stderr, never stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Figure Information:
//   - figure_load: Load a figure and get metadata (incl. EXIF capture info)
//   - figure_dimensions: Get width and height
//
// Classification:
//   - figure_classify: Rule-based visual classification
//   - figure_classify_by_caption: Caption keyword classification
//   - figure_features: The 14-metric feature vector
//   - figure_caption: Remote or synthesized figure description
//   - figure_categories: The category catalog
//
// Region and Color Operations:
//   - figure_crop: Extract a named region or coordinate rectangle
//   - figure_sample_colors: Sample colors at points
//   - figure_dominant_colors: Extract color palette
//
// Structure Detection:
//   - figure_edge_map: Canny edge rendering
//   - figure_detect_rectangles: Find rectangular shapes
//   - figure_detect_lines: Find line segments
//   - figure_detect_circles: Find circular shapes
//   - figure_text_regions: Find text-like regions without OCR
//
// OCR:
//   - figure_ocr: Extract text (full figure or region)
//   - figure_text_blocks: Locate text blocks without reading them
//   - ocr_info: Report engine availability
//
// Measurement Helpers:
//   - figure_measure: Distance between points
//   - figure_alignment: Check point alignment
//   - figure_compare_regions: Compare two regions
//   - figure_grid: Add coordinate grid overlay
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded figures. Images are
// cached by path and reused across multiple tool calls, avoiding
// redundant disk I/O. The cache persists for the lifetime of the server
// process.
//
// # Classification Collaborators
//
// New wires the classification strategies from configuration: a caption
// endpoint (when configured) behind a perceptual-hash caption cache, and
// a vision provider chain that tries each configured credential in turn
// before falling back to a local Ollama server. With an empty
// configuration the server still answers every classification tool,
// fully offline.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Classification tools reserve errors for contract violations such as
// an unreadable path; service outages and unmatched figures degrade to
// low-confidence results instead.
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
