package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Avika2211/pdf-image-classifier/internal/config"
	"github.com/Avika2211/pdf-image-classifier/internal/logging"
	"github.com/Avika2211/pdf-image-classifier/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version before flag parsing so it works without a
	// readable config.
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("figure-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	configPath := flag.String("config", "", "path to JSON config file")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, error")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "figure-mcp: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	// Logging goes to stderr; stdout carries the MCP protocol.
	logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)

	slog.Debug("starting figure MCP server",
		"version", Version, "build_time", BuildTime, "commit", GitCommit)

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		slog.Error("server terminated", "error", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "figure-mcp - MCP server for classifying document figures")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage: figure-mcp [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "  -config path     JSON config file (defaults apply when omitted)")
	fmt.Fprintln(os.Stderr, "  -log-level lvl   Override the configured log level")
	fmt.Fprintln(os.Stderr, "  --version, -v    Print version information")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment variables (override file settings):")
	fmt.Fprintln(os.Stderr, "  FIGURE_MCP_LOG_LEVEL, FIGURE_MCP_LOG_JSON")
	fmt.Fprintln(os.Stderr, "  FIGURE_MCP_CAPTION_ENDPOINT, FIGURE_MCP_CAPTION_TOKEN, FIGURE_MCP_CAPTION_TIMEOUT")
	fmt.Fprintln(os.Stderr, "  FIGURE_MCP_VISION_ENDPOINT, FIGURE_MCP_VISION_MODEL, FIGURE_MCP_VISION_KEYS")
	fmt.Fprintln(os.Stderr, "  FIGURE_MCP_OLLAMA_URL, FIGURE_MCP_OLLAMA_MODEL")
	fmt.Fprintln(os.Stderr, "  FIGURE_MCP_OCR_LANGUAGES, FIGURE_MCP_OCR_AUGMENT")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "The server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(os.Stderr, "Configure it in your MCP client.")
}
