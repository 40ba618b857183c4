package vision

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"sync"
)

// DegradedPrefix marks every answer the vision layer produced while
// degraded. Degradation travels inside the answer string with a nil
// error so that callers holding only the collaborator interface can
// recognize it without depending on this package's error types.
const DegradedPrefix = "⚠️"

// ErrQuotaExhausted is returned by a Provider whose backend rejected
// the call for quota reasons. The credential chain reacts by advancing
// to the next provider; any other error stops the chain.
var ErrQuotaExhausted = errors.New("vision: quota exhausted")

// Provider performs one vision call against one backend or credential.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Recognize answers a free-form prompt about the image.
	Recognize(ctx context.Context, prompt string, img image.Image) (string, error)
}

// CredentialChain cycles through an ordered provider list, advancing
// past providers whose quota is exhausted. The position is sticky: once
// a provider's quota runs out it is skipped for the rest of the process
// lifetime rather than retried on every call.
//
// Recognize never returns an error. Exhaustion and provider failures
// become marker-prefixed answers with a nil error, so a degraded answer
// still satisfies the collaborator contract.
type CredentialChain struct {
	mu        sync.Mutex
	providers []Provider
	current   int
}

// NewCredentialChain builds a chain over the given providers, tried in
// argument order.
func NewCredentialChain(providers ...Provider) *CredentialChain {
	return &CredentialChain{providers: providers}
}

// Recognize asks the current provider, advancing on quota exhaustion.
// The lock covers the whole call so concurrent callers observe a
// consistent chain position.
func (c *CredentialChain) Recognize(ctx context.Context, prompt string, img image.Image) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.providers) == 0 {
		return DegradedPrefix + " vision service not configured", nil
	}

	for c.current < len(c.providers) {
		p := c.providers[c.current]

		answer, err := p.Recognize(ctx, prompt, img)
		if err == nil {
			return answer, nil
		}
		if errors.Is(err, ErrQuotaExhausted) {
			slog.Warn("vision provider quota exhausted, advancing", "provider", p.Name())
			c.current++
			continue
		}

		slog.Error("vision provider failed", "provider", p.Name(), "error", err)
		return fmt.Sprintf("%s vision API error: %v", DegradedPrefix, err), nil
	}

	return DegradedPrefix + " vision quota exceeded. Used local analysis.", nil
}

// Remaining reports how many providers have not yet exhausted their
// quota.
func (c *CredentialChain) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.providers) - c.current
}

// IsDegraded reports whether an answer carries the degradation marker.
func IsDegraded(answer string) bool {
	return strings.HasPrefix(answer, DegradedPrefix)
}
