package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration. Every field has a
// working default, so a missing config file and an empty environment
// still yield a runnable, fully offline classifier.
type Config struct {
	Log     LogConfig     `json:"log"`
	Caption CaptionConfig `json:"caption"`
	Vision  VisionConfig  `json:"vision"`
	OCR     OCRConfig     `json:"ocr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level"`

	// JSON switches the stderr log stream to JSON records.
	JSON bool `json:"json"`
}

// CaptionConfig points at the captioning inference endpoint. An empty
// endpoint disables remote captioning; descriptions are then
// synthesized locally.
type CaptionConfig struct {
	Endpoint       string `json:"endpoint"`
	Token          string `json:"token"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// VisionConfig configures the generative-vision providers. Each key in
// Keys becomes one credential against Endpoint, tried in order; the
// optional Ollama server is appended as the quota-free fallback.
type VisionConfig struct {
	Endpoint    string   `json:"endpoint"`
	Keys        []string `json:"keys"`
	Model       string   `json:"model"`
	OllamaURL   string   `json:"ollama_url"`
	OllamaModel string   `json:"ollama_model"`
}

// OCRConfig holds text extraction settings.
type OCRConfig struct {
	Languages []string `json:"languages"`

	// AugmentCaptions appends text extracted from the figure to its
	// caption before keyword scoring. Axis labels and titles often carry
	// the exact keywords the scoring table looks for. Has no effect when
	// the OCR engine is unavailable.
	AugmentCaptions bool `json:"augment_captions"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Caption: CaptionConfig{
			TimeoutSeconds: 10,
		},
		Vision: VisionConfig{
			Model:       "llava",
			OllamaModel: "llava",
		},
		OCR: OCRConfig{
			Languages: []string{"eng"},
		},
	}
}

// Load builds the effective configuration: defaults, overlaid with the
// JSON file at path when path is nonempty, overlaid with environment
// variables. Environment wins so an MCP host can tweak a deployment
// without touching files.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays FIGURE_MCP_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Log.Level, "FIGURE_MCP_LOG_LEVEL")
	setBool(&c.Log.JSON, "FIGURE_MCP_LOG_JSON")

	setString(&c.Caption.Endpoint, "FIGURE_MCP_CAPTION_ENDPOINT")
	setString(&c.Caption.Token, "FIGURE_MCP_CAPTION_TOKEN")
	setInt(&c.Caption.TimeoutSeconds, "FIGURE_MCP_CAPTION_TIMEOUT")

	setString(&c.Vision.Endpoint, "FIGURE_MCP_VISION_ENDPOINT")
	setString(&c.Vision.Model, "FIGURE_MCP_VISION_MODEL")
	setString(&c.Vision.OllamaURL, "FIGURE_MCP_OLLAMA_URL")
	setString(&c.Vision.OllamaModel, "FIGURE_MCP_OLLAMA_MODEL")
	if v := os.Getenv("FIGURE_MCP_VISION_KEYS"); v != "" {
		c.Vision.Keys = splitList(v)
	}

	if v := os.Getenv("FIGURE_MCP_OCR_LANGUAGES"); v != "" {
		c.OCR.Languages = splitList(v)
	}
	setBool(&c.OCR.AugmentCaptions, "FIGURE_MCP_OCR_AUGMENT")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Caption.TimeoutSeconds <= 0 {
		return fmt.Errorf("caption.timeout_seconds must be positive")
	}
	if len(c.OCR.Languages) == 0 {
		return fmt.Errorf("ocr.languages cannot be empty")
	}
	if len(c.Vision.Keys) > 0 && c.Vision.Endpoint == "" {
		return fmt.Errorf("vision.keys set but vision.endpoint is empty")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = n
}

func setBool(dst *bool, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return
	}
	*dst = b
}

// splitList splits a comma-separated value, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
