package vision

import (
	"context"
	"crypto/sha256"
	"image"
	"sync"

	"github.com/corona10/goimagehash"
)

// nearThreshold is the maximum Hamming distance between two dHash
// values below which images are considered perceptually identical.
const nearThreshold = 10

// Captioner matches the captioning collaborator shape consumed by the
// classification layer, so cache wrappers can stack over any captioner.
type Captioner interface {
	Caption(ctx context.Context, img image.Image) (string, error)
}

// CaptionCache remembers captions per figure. Exact lookups hash the
// encoded bytes; a perceptual difference-hash pass additionally catches
// re-encoded or lightly rescaled copies of the same figure. Safe for
// concurrent use.
type CaptionCache struct {
	mu      sync.Mutex
	exact   map[[sha256.Size]byte]string
	entries []cacheEntry
}

type cacheEntry struct {
	hash    *goimagehash.ImageHash
	caption string
}

// NewCaptionCache returns an empty cache.
func NewCaptionCache() *CaptionCache {
	return &CaptionCache{exact: make(map[[sha256.Size]byte]string)}
}

// Lookup returns a cached caption for the figure. data carries the
// original encoded bytes and may be nil, in which case only the
// perceptual pass runs.
func (c *CaptionCache) Lookup(data []byte, img image.Image) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data != nil {
		if caption, ok := c.exact[sha256.Sum256(data)]; ok {
			return caption, true
		}
	}
	if img == nil {
		return "", false
	}

	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return "", false
	}
	for _, e := range c.entries {
		dist, err := hash.Distance(e.hash)
		if err == nil && dist < nearThreshold {
			return e.caption, true
		}
	}

	return "", false
}

// Store records a caption under the byte hash and the perceptual hash.
// An image that cannot be hashed is simply not recorded.
func (c *CaptionCache) Store(data []byte, img image.Image, caption string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data != nil {
		c.exact[sha256.Sum256(data)] = caption
	}
	if img == nil {
		return
	}
	if hash, err := goimagehash.DifferenceHash(img); err == nil {
		c.entries = append(c.entries, cacheEntry{hash: hash, caption: caption})
	}
}

// CachingCaptioner wraps a captioner with a CaptionCache, so repeated
// figures cost one service call instead of one per request.
type CachingCaptioner struct {
	inner Captioner
	cache *CaptionCache
}

// NewCachingCaptioner wraps inner with the given cache. A nil cache
// gets a fresh private one.
func NewCachingCaptioner(inner Captioner, cache *CaptionCache) *CachingCaptioner {
	if cache == nil {
		cache = NewCaptionCache()
	}
	return &CachingCaptioner{inner: inner, cache: cache}
}

// Caption returns the cached caption when the figure was seen before,
// and consults the wrapped captioner otherwise. Failed calls are not
// cached, so a transient outage does not poison future lookups.
func (c *CachingCaptioner) Caption(ctx context.Context, img image.Image) (string, error) {
	if caption, ok := c.cache.Lookup(nil, img); ok {
		return caption, nil
	}

	caption, err := c.inner.Caption(ctx, img)
	if err != nil {
		return "", err
	}

	c.cache.Store(nil, img, caption)
	return caption, nil
}
