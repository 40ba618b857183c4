package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
)

// OpenAI-compatible message format
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // string or []contentPart
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIProvider speaks the OpenAI-compatible chat completions protocol
// with the image embedded as a data URL. One provider instance carries
// one credential; stacking several instances with different tokens in a
// CredentialChain gives per-key quota cycling.
type OpenAIProvider struct {
	name    string
	baseURL string
	token   string
	model   string
	client  *http.Client
}

// NewOpenAIProvider returns a provider for an OpenAI-compatible server.
// The name only appears in logs; the token may be empty for
// unauthenticated local servers.
func NewOpenAIProvider(name, serverURL, token, model string) *OpenAIProvider {
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}
	return &OpenAIProvider{
		name:    name,
		baseURL: strings.TrimSuffix(serverURL, "/"),
		token:   token,
		model:   model,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

func (p *OpenAIProvider) Name() string {
	return p.name
}

// Recognize sends the prompt and image and returns the model's text
// answer. A 429 status maps to ErrQuotaExhausted so the credential
// chain can advance.
func (p *OpenAIProvider) Recognize(ctx context.Context, prompt string, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	req := chatCompletionRequest{
		Model: p.model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{
						URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
					}},
				},
			},
		},
		Stream: false,
	}

	body, err := p.send(ctx, "/v1/chat/completions", req)
	if err != nil {
		return "", err
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	// The content comes back as a plain string or as content parts
	switch content := resp.Choices[0].Message.Content.(type) {
	case string:
		if content != "" {
			return content, nil
		}
	case []interface{}:
		for _, item := range content {
			if part, ok := item.(map[string]interface{}); ok {
				if text, ok := part["text"].(string); ok && text != "" {
					return text, nil
				}
			}
		}
	}

	return "", fmt.Errorf("no text content in response")
}

func (p *OpenAIProvider) send(ctx context.Context, endpoint string, payload interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("server returned status %d: %w", resp.StatusCode, ErrQuotaExhausted)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
