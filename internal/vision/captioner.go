package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// httpTimeout is the transport-level backstop for captioning calls.
// Callers normally bound the call with a much shorter context deadline.
const httpTimeout = 30 * time.Second

// maxPayloadSide bounds uploaded rasters: anything larger on its
// longest edge is scaled down before leaving the process. Captioning
// models downsample internally anyway, so shipping full-resolution
// figures only costs bandwidth.
const maxPayloadSide = 768

// HTTPCaptioner asks a hosted captioning model to describe an image.
// The wire format is the common inference-endpoint shape: POST the raw
// image bytes, receive a JSON array of {"generated_text": ...} objects.
type HTTPCaptioner struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPCaptioner returns a captioner for the given inference endpoint.
// The token is optional; when set it is sent as a bearer credential.
func NewHTTPCaptioner(endpoint, token string) (*HTTPCaptioner, error) {
	if endpoint == "" {
		return nil, errors.New("vision: captioning endpoint not configured")
	}
	return &HTTPCaptioner{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		token:    token,
		client:   &http.Client{Timeout: httpTimeout},
	}, nil
}

// Caption uploads the image and returns the generated description. Any
// transport failure, non-success status, or empty answer is an error;
// the classification layer treats them all as "service unavailable".
func (c *HTTPCaptioner) Caption(ctx context.Context, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captioning service returned status %d: %s", resp.StatusCode, string(body))
	}

	var result []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if len(result) == 0 || strings.TrimSpace(result[0].GeneratedText) == "" {
		return "", errors.New("empty caption in response")
	}

	return result[0].GeneratedText, nil
}

// encodePNG renders the image into PNG bytes for upload, scaling it
// down to maxPayloadSide on the longest edge first when needed.
func encodePNG(img image.Image) ([]byte, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxPayloadSide || h > maxPayloadSide {
		if w >= h {
			img = imaging.Resize(img, maxPayloadSide, 0, imaging.Lanczos)
		} else {
			img = imaging.Resize(img, 0, maxPayloadSide, imaging.Lanczos)
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
