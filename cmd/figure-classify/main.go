package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Avika2211/pdf-image-classifier/internal/classify"
	"github.com/Avika2211/pdf-image-classifier/internal/config"
	"github.com/Avika2211/pdf-image-classifier/internal/imaging"
	"github.com/Avika2211/pdf-image-classifier/internal/logging"
	"github.com/Avika2211/pdf-image-classifier/internal/ocr"
	"github.com/Avika2211/pdf-image-classifier/internal/vision"
)

// Version is set by ldflags during build
var Version = "dev"

func main() {
	imagePath := flag.String("image", "", "path to the figure image (required)")
	strategy := flag.String("strategy", "rule", "classification strategy: rule, caption, generative")
	caption := flag.String("caption", "", "caption text for the caption strategy; fetched or synthesized when empty")
	configPath := flag.String("config", "", "path to JSON config file")
	jsonOut := flag.Bool("json", false, "print the result as JSON")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn, error")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("figure-classify %s\n", Version)
		return
	}
	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "figure-classify: -image is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	logging.Init(logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)

	img, err := imaging.NewImageCache().Load(*imagePath)
	if err != nil {
		fatal(err)
	}

	result, err := run(cfg, *strategy, *caption, img)
	if err != nil {
		fatal(err)
	}

	if *jsonOut {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(out))
		return
	}
	printResult(result)
}

// run classifies img with the selected strategy. Classification
// failures degrade to low-confidence results inside the classifiers;
// an error here means bad input, never a service outage.
func run(cfg *config.Config, strategy, caption string, img image.Image) (*classify.Result, error) {
	ctx := context.Background()

	switch strategy {
	case "rule":
		return classify.NewRuleClassifier().Classify(ctx, img)

	case "caption":
		c := classify.NewCaptionClassifier(captionerFrom(cfg))
		if cfg.Caption.TimeoutSeconds > 0 {
			c.Timeout = time.Duration(cfg.Caption.TimeoutSeconds) * time.Second
		}
		if cfg.OCR.AugmentCaptions {
			c.TextExtractor = textExtractorFrom(cfg)
		}
		if strings.TrimSpace(caption) != "" {
			return c.ClassifyCaption(img, caption), nil
		}
		return c.Classify(ctx, img)

	case "generative":
		return classify.NewGenerativeClassifier(recognizerFrom(cfg)).Classify(ctx, img)

	default:
		return nil, fmt.Errorf("unknown strategy %q (want rule, caption, or generative)", strategy)
	}
}

// textExtractorFrom builds the OCR hook that feeds figure text into
// keyword scoring. Extraction failures fall back to the caption alone.
func textExtractorFrom(cfg *config.Config) func(image.Image) string {
	lang := strings.Join(cfg.OCR.Languages, "+")
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

// captionerFrom wires the remote captioner, or nil for local synthesis.
func captionerFrom(cfg *config.Config) classify.Captioner {
	if cfg.Caption.Endpoint == "" {
		return nil
	}
	hc, err := vision.NewHTTPCaptioner(cfg.Caption.Endpoint, cfg.Caption.Token)
	if err != nil {
		slog.Warn("caption endpoint rejected, synthesizing locally", "error", err)
		return nil
	}
	return vision.NewCachingCaptioner(hc, vision.NewCaptionCache())
}

// recognizerFrom wires the generative vision chain, or nil when no
// provider is configured (the classifier then degrades to a
// low-confidence result instead of failing).
func recognizerFrom(cfg *config.Config) classify.Recognizer {
	var providers []vision.Provider
	for i, key := range cfg.Vision.Keys {
		name := fmt.Sprintf("key-%d", i+1)
		providers = append(providers, vision.NewOpenAIProvider(name, cfg.Vision.Endpoint, key, cfg.Vision.Model))
	}
	if cfg.Vision.OllamaURL != "" {
		p, err := vision.NewOllamaProvider(cfg.Vision.OllamaURL, cfg.Vision.OllamaModel)
		if err != nil {
			slog.Warn("ollama provider rejected", "error", err)
		} else {
			providers = append(providers, p)
		}
	}
	if len(providers) == 0 {
		return nil
	}
	return vision.NewCredentialChain(providers...)
}

func printResult(res *classify.Result) {
	fmt.Printf("%s  (%.1f%% confidence)\n", classify.Display(res.Category), res.Confidence)
	if res.Description != "" {
		fmt.Println(res.Description)
	}
	if res.Reasoning != "" {
		fmt.Printf("Reasoning: %s\n", res.Reasoning)
	}
	if res.Details != nil {
		if len(res.Details.VisualElements) > 0 {
			fmt.Printf("Visual elements: %s\n", strings.Join(res.Details.VisualElements, ", "))
		}
		if res.Details.AnalysisMethod != "" {
			fmt.Printf("Method: %s\n", res.Details.AnalysisMethod)
		}
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "figure-classify: %v\n", err)
	os.Exit(1)
}
