package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cdp-assist/support-engine/internal/cache"
	"github.com/cdp-assist/support-engine/internal/observability"
)

// ResponseCache provides caching for resolved chat answers.
type ResponseCache struct {
	client cache.Client
	logger *observability.Logger
	config ResponseCacheConfig
}

// ResponseCacheConfig configures the response cache.
type ResponseCacheConfig struct {
	// DefaultTTL is the default cache TTL
	DefaultTTL time.Duration
	// MatchedTTL for answers backed by a knowledge entry (stable)
	MatchedTTL time.Duration
	// NoMatchTTL for fallback answers (may improve after a refresh)
	NoMatchTTL time.Duration
	// KeyPrefix is the cache key prefix
	KeyPrefix string
	// Enabled controls whether caching is active
	Enabled bool
}

// DefaultResponseCacheConfig returns default cache configuration.
func DefaultResponseCacheConfig() ResponseCacheConfig {
	return ResponseCacheConfig{
		DefaultTTL: 5 * time.Minute,
		MatchedTTL: 15 * time.Minute,
		NoMatchTTL: 5 * time.Minute,
		KeyPrefix:  "resolve:response:",
		Enabled:    true,
	}
}

// NewResponseCache creates a new response cache.
func NewResponseCache(client cache.Client, logger *observability.Logger, config ResponseCacheConfig) *ResponseCache {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "resolve:response:"
	}
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 5 * time.Minute
	}

	return &ResponseCache{
		client: client,
		logger: logger,
		config: config,
	}
}

// CacheKey generates a cache key for a platform/message pair.
func (c *ResponseCache) CacheKey(platformID, message string) string {
	parts := []string{
		platformID,
		strings.ToLower(strings.TrimSpace(message)),
	}

	combined := ""
	for _, p := range parts {
		combined += p + "|"
	}
	hash := sha256.Sum256([]byte(combined))
	hashStr := hex.EncodeToString(hash[:16]) // Use first 16 bytes

	return c.config.KeyPrefix + hashStr
}

// CachedAnswer is the cacheable form of a resolved chat answer.
type CachedAnswer struct {
	Answer  string `json:"answer"`
	Source  string `json:"source,omitempty"`
	URL     string `json:"url,omitempty"`
	Matched bool   `json:"matched"`
}

type cachedEnvelope struct {
	Answer    *CachedAnswer `json:"answer"`
	CachedAt  time.Time     `json:"cached_at"`
	ExpiresAt time.Time     `json:"expires_at"`
	Version   int64         `json:"version"`
}

// Get retrieves a cached answer if available.
func (c *ResponseCache) Get(ctx context.Context, platformID, message string) (*CachedAnswer, bool) {
	if !c.config.Enabled || c.client == nil {
		return nil, false
	}

	key := c.CacheKey(platformID, message)
	data, err := c.client.Get(ctx, key)
	if err != nil {
		if err != cache.ErrCacheMiss {
			c.logger.Debug().Err(err).Str("key", key).Msg("Cache get error")
		}
		return nil, false
	}

	var cached cachedEnvelope
	if err := json.Unmarshal(data, &cached); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached answer")
		return nil, false
	}

	// Check if expired
	if time.Now().After(cached.ExpiresAt) {
		return nil, false
	}

	c.logger.Debug().Str("key", key).Msg("Cache hit")
	return cached.Answer, true
}

// Set caches a resolved answer.
func (c *ResponseCache) Set(ctx context.Context, platformID, message string, ans *CachedAnswer) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	key := c.CacheKey(platformID, message)
	ttl := c.getTTLForAnswer(ans)

	cached := cachedEnvelope{
		Answer:    ans,
		CachedAt:  time.Now(),
		ExpiresAt: time.Now().Add(ttl),
		Version:   time.Now().UnixNano(),
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache answer")
		return err
	}

	c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("Cached answer")
	return nil
}

// Invalidate removes all cached answers.
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if !c.config.Enabled || c.client == nil {
		return nil
	}

	return c.client.DeleteByPrefix(ctx, c.config.KeyPrefix)
}

// getTTLForAnswer determines TTL based on answer content.
func (c *ResponseCache) getTTLForAnswer(ans *CachedAnswer) time.Duration {
	if ans.Matched {
		// Knowledge entries are static, cache longer
		if c.config.MatchedTTL > 0 {
			return c.config.MatchedTTL
		}
		return c.config.DefaultTTL
	}
	// Fallback answers may change once fresh documentation lands
	if c.config.NoMatchTTL > 0 {
		return c.config.NoMatchTTL
	}
	return c.config.DefaultTTL
}

// InvalidationTrigger handles cache invalidation on data changes.
type InvalidationTrigger struct {
	cache  *ResponseCache
	logger *observability.Logger
}

// NewInvalidationTrigger creates a new invalidation trigger.
func NewInvalidationTrigger(cache *ResponseCache, logger *observability.Logger) *InvalidationTrigger {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &InvalidationTrigger{
		cache:  cache,
		logger: logger,
	}
}

// OnDocumentationRefreshed invalidates cached answers after a platform's
// documentation is re-ingested.
func (t *InvalidationTrigger) OnDocumentationRefreshed(ctx context.Context, platformID string) {
	t.logger.Info().
		Str("platform", platformID).
		Msg("Invalidating response cache after documentation refresh")

	if err := t.cache.Invalidate(ctx); err != nil {
		t.logger.Error().Err(err).Msg("Failed to invalidate cache on documentation refresh")
	}
}
