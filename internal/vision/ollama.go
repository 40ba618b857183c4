package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// ollamaTimeout bounds a single local model call when the caller's
// context has no deadline of its own. Vision models on CPU are slow.
const ollamaTimeout = 120 * time.Second

// OllamaProvider answers vision prompts with a locally served model.
// It has no quota, so it naturally sits last in a credential chain as
// the always-available fallback.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider returns a provider backed by the Ollama server at
// ollamaURL, e.g. "http://localhost:11434".
func NewOllamaProvider(ollamaURL, model string) (*OllamaProvider, error) {
	parsed, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL: %w", err)
	}

	base := &url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
	}

	return &OllamaProvider{
		client: api.NewClient(base, http.DefaultClient),
		model:  model,
	}, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama/" + p.model
}

// Recognize sends a single-turn chat with the image attached and
// collects the model's answer.
func (p *OllamaProvider) Recognize(ctx context.Context, prompt string, img image.Image) (string, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ollamaTimeout)
		defer cancel()
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	stream := false
	req := &api.ChatRequest{
		Model: p.model,
		Messages: []api.Message{
			{
				Role:    "user",
				Content: prompt,
				Images:  []api.ImageData{api.ImageData(data)},
			},
		},
		Stream: &stream,
	}

	var content string
	err = p.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content = resp.Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	if content == "" {
		return "", errors.New("empty response from ollama")
	}

	return content, nil
}
