// Package fetch retrieves documentation pages over HTTP and converts them
// to plain text for indexing.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cdp-assist/support-engine/internal/observability"
)

// Config holds fetcher settings.
type Config struct {
	Timeout      time.Duration
	MaxRetries   int
	RetryDelay   time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// DefaultConfig returns fetcher defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   1,
		RetryDelay:   2 * time.Second,
		UserAgent:    "support-engine/1.0",
		MaxBodyBytes: 10 << 20,
	}
}

// Page is a fetched documentation page converted to plain text.
type Page struct {
	URL       string
	Title     string
	Text      string
	FetchedAt time.Time
}

// Fetcher downloads documentation pages.
type Fetcher struct {
	client *http.Client
	config Config
	logger *observability.Logger
}

// NewFetcher creates a fetcher with a tuned HTTP client.
func NewFetcher(cfg Config, logger *observability.Logger) *Fetcher {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "support-engine/1.0"
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 10 << 20
	}

	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:       100,
			MaxConnsPerHost:    10,
			IdleConnTimeout:    90 * time.Second,
			DisableCompression: false,
		},
	}

	return &Fetcher{
		client: client,
		config: cfg,
		logger: logger.WithOperation("fetch"),
	}
}

// Fetch downloads a documentation page and converts it to plain text.
// Failed attempts are retried up to MaxRetries times.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Page, error) {
	var lastErr error

	attempts := f.config.MaxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			f.logger.Debug().
				Str("url", url).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("Retrying fetch")

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.config.RetryDelay):
			}
		}

		page, err := f.fetchOnce(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}

	raw := string(body)
	text := HTMLToText(raw)
	if text == "" {
		return nil, fmt.Errorf("fetch %s: no textual content", url)
	}

	f.logger.Debug().
		Str("url", url).
		Int("chars", len(text)).
		Dur("duration", time.Since(start)).
		Msg("Fetched documentation page")

	return &Page{
		URL:       url,
		Title:     ExtractTitle(raw),
		Text:      text,
		FetchedAt: time.Now(),
	}, nil
}
