package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Avika2211/pdf-image-classifier/internal/classify"
	"github.com/Avika2211/pdf-image-classifier/internal/config"
	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
	"github.com/Avika2211/pdf-image-classifier/internal/ocr"
	"github.com/Avika2211/pdf-image-classifier/internal/vision"
)

// Server handles MCP protocol communication. It owns the image cache
// and the three classification strategies, wired from configuration at
// construction time.
type Server struct {
	cfg   *config.Config
	cache *imaging.ImageCache

	// captioner is nil when no caption endpoint is configured;
	// captions are then synthesized from coarse visual features.
	captioner classify.Captioner

	// chain is nil when no vision providers are configured.
	chain *vision.CredentialChain

	rule       *classify.RuleClassifier
	byCaption  *classify.CaptionClassifier
	generative *classify.GenerativeClassifier
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// MCPNotification represents an outgoing notification (no ID)
type MCPNotification struct {
	JSONRPC string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// New creates an MCP server instance wired from cfg. A nil cfg uses
// defaults, which yields a fully offline server: no caption endpoint,
// no vision providers, captions synthesized locally.
func New(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Server{
		cfg:   cfg,
		cache: imaging.NewImageCache(),
		rule:  classify.NewRuleClassifier(),
	}

	if cfg.Caption.Endpoint != "" {
		hc, err := vision.NewHTTPCaptioner(cfg.Caption.Endpoint, cfg.Caption.Token)
		if err != nil {
			slog.Warn("caption endpoint rejected, captions will be synthesized",
				"endpoint", cfg.Caption.Endpoint, "error", err)
		} else {
			s.captioner = vision.NewCachingCaptioner(hc, vision.NewCaptionCache())
		}
	}

	s.byCaption = classify.NewCaptionClassifier(s.captioner)
	if cfg.Caption.TimeoutSeconds > 0 {
		s.byCaption.Timeout = time.Duration(cfg.Caption.TimeoutSeconds) * time.Second
	}
	if cfg.OCR.AugmentCaptions {
		s.byCaption.TextExtractor = figureTextExtractor(cfg.OCR.Languages)
	}

	var providers []vision.Provider
	for i, key := range cfg.Vision.Keys {
		name := fmt.Sprintf("key-%d", i+1)
		providers = append(providers, vision.NewOpenAIProvider(name, cfg.Vision.Endpoint, key, cfg.Vision.Model))
	}
	if cfg.Vision.OllamaURL != "" {
		p, err := vision.NewOllamaProvider(cfg.Vision.OllamaURL, cfg.Vision.OllamaModel)
		if err != nil {
			slog.Warn("ollama provider rejected", "url", cfg.Vision.OllamaURL, "error", err)
		} else {
			providers = append(providers, p)
		}
	}

	var recognizer classify.Recognizer
	if len(providers) > 0 {
		s.chain = vision.NewCredentialChain(providers...)
		recognizer = s.chain
	}
	s.generative = classify.NewGenerativeClassifier(recognizer)

	return s
}

// figureTextExtractor reads text off a whole figure for caption
// augmentation. Extraction failures, including a missing OCR engine,
// yield an empty string so scoring proceeds on the caption alone.
func figureTextExtractor(languages []string) func(image.Image) string {
	lang := strings.Join(languages, "+")
	return func(img image.Image) string {
		b := img.Bounds()
		res, err := ocr.ExtractTextFromRegion(img, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, lang)
		if err != nil {
			slog.Debug("caption augmentation skipped", "error", err)
			return ""
		}
		return res.FullText
	}
}

// Run starts the MCP server, reading from stdin and writing to stdout.
// Logging goes to stderr; stdout carries only protocol frames.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	// Increase buffer size for large requests
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	encoder := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			slog.Warn("failed to parse request", "error", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				slog.Error("failed to encode response", "method", req.Method, "error", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "pdf-image-classifier",
				"version": "0.1.0",
			},
		},
	}
}
