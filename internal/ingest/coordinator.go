// Package ingest coordinates documentation ingestion for the support engine.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cdp-assist/support-engine/internal/docstore"
	"github.com/cdp-assist/support-engine/internal/fetch"
	"github.com/cdp-assist/support-engine/internal/observability"
	"github.com/cdp-assist/support-engine/internal/platform"
)

// Fetcher retrieves a documentation page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Page, error)
}

// DocumentStore is the subset of the document store the coordinator uses.
type DocumentStore interface {
	Add(ctx context.Context, doc docstore.Document) error
	Query(ctx context.Context, platformID, query string, k int) ([]docstore.QueryResult, error)
}

// RefreshHook is notified after a platform's documentation refresh succeeds.
type RefreshHook func(ctx context.Context, platformID string)

// SearchResult is one documentation search hit.
type SearchResult struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Config holds coordinator settings.
type Config struct {
	SearchLimit int
	CacheSize   int
}

// Coordinator refreshes per-platform documentation and serves searches
// over the ingested content. A nil store puts the coordinator into a
// degraded mode where refreshes report failure and searches return
// nothing, leaving the rest of the engine functional.
type Coordinator struct {
	logger  *observability.Logger
	config  Config
	fetcher Fetcher
	store   DocumentStore

	pageCache   *lru.Cache[string, *fetch.Page]
	searchCache *lru.Cache[string, []SearchResult]

	hooksMu sync.Mutex
	hooks   []RefreshHook
}

// NewCoordinator creates a coordinator over the given fetcher and store.
func NewCoordinator(logger *observability.Logger, cfg Config, fetcher Fetcher, store DocumentStore) (*Coordinator, error) {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 5
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 100
	}

	pageCache, err := lru.New[string, *fetch.Page](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create page cache: %w", err)
	}
	searchCache, err := lru.New[string, []SearchResult](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create search cache: %w", err)
	}

	if store == nil {
		logger.Warn().Msg("Document store unavailable, ingestion runs degraded")
	}

	return &Coordinator{
		logger:      logger.WithOperation("ingest"),
		config:      cfg,
		fetcher:     fetcher,
		store:       store,
		pageCache:   pageCache,
		searchCache: searchCache,
	}, nil
}

// OnRefresh registers a hook fired for each platform whose documentation
// was refreshed successfully.
func (c *Coordinator) OnRefresh(hook RefreshHook) {
	c.hooksMu.Lock()
	defer c.hooksMu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// RefreshAll re-ingests documentation for every platform in registry
// order. One platform's failure never aborts the run; the returned map
// records the outcome per platform.
func (c *Coordinator) RefreshAll(ctx context.Context) map[string]bool {
	runID := uuid.New()
	startTime := time.Now()
	platforms := platform.All()

	results := make(map[string]bool, len(platforms))

	if c.store == nil {
		for _, p := range platforms {
			results[p.ID] = false
		}
		c.logger.Error().
			Str("run_id", runID.String()).
			Msg("Document store unavailable, refresh skipped")
		return results
	}

	c.logger.Info().
		Str("run_id", runID.String()).
		Int("platforms", len(platforms)).
		Msg("Starting documentation refresh")

	cancelled := false
	for _, p := range platforms {
		if cancelled || ctx.Err() != nil {
			cancelled = true
			results[p.ID] = false
			continue
		}

		if err := c.refreshPlatform(ctx, p); err != nil {
			c.logger.Warn().
				Str("run_id", runID.String()).
				Str("platform", p.ID).
				Err(err).
				Msg("Platform refresh failed")
			results[p.ID] = false
			continue
		}
		results[p.ID] = true
	}

	succeeded := 0
	for _, ok := range results {
		if ok {
			succeeded++
		}
	}

	// Fresh content supersedes anything memoized from earlier runs.
	if succeeded > 0 {
		c.pageCache.Purge()
		c.searchCache.Purge()
		c.fireHooks(ctx, platforms, results)
	}

	c.logger.Info().
		Str("run_id", runID.String()).
		Int("succeeded", succeeded).
		Int("failed", len(platforms)-succeeded).
		Dur("duration", time.Since(startTime)).
		Msg("Documentation refresh completed")

	return results
}

// RefreshPlatform re-ingests documentation for a single platform. On
// success the memo caches are purged and refresh hooks fire, just as
// after a successful full run.
func (c *Coordinator) RefreshPlatform(ctx context.Context, platformID string) error {
	p, ok := platform.Lookup(platformID)
	if !ok {
		return fmt.Errorf("refresh platform %q: %w", platformID, docstore.ErrUnknownPlatform)
	}
	if c.store == nil {
		return errors.New("document store unavailable")
	}

	if err := c.refreshPlatform(ctx, p); err != nil {
		return err
	}

	c.pageCache.Purge()
	c.searchCache.Purge()
	c.fireHooks(ctx, []platform.Platform{p}, map[string]bool{p.ID: true})
	return nil
}

// Search finds documentation content relevant to the query within one
// platform's collection. Results are memoized per argument tuple.
func (c *Coordinator) Search(ctx context.Context, platformID, query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = c.config.SearchLimit
	}

	if c.store == nil {
		c.logger.Warn().
			Str("platform", platformID).
			Msg("Document store unavailable, returning no results")
		return []SearchResult{}, nil
	}

	key := fmt.Sprintf("%s\x1f%s\x1f%d", platformID, query, limit)
	if cached, ok := c.searchCache.Get(key); ok {
		return cached, nil
	}

	hits, err := c.store.Query(ctx, platformID, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search documentation: %w", err)
	}

	results := make([]SearchResult, len(hits))
	for i, h := range hits {
		results[i] = SearchResult{Content: h.Content, Source: h.Source}
	}

	c.searchCache.Add(key, results)
	return results, nil
}

// refreshPlatform fetches one platform's documentation and stores it
// under the platform's well-known document ID.
func (c *Coordinator) refreshPlatform(ctx context.Context, p platform.Platform) error {
	// Step 1: Fetch the documentation page (memoized)
	page, err := c.fetchPage(ctx, p.DocsURL)
	if err != nil {
		return fmt.Errorf("fetch documentation: %w", err)
	}

	// Step 2: Store it, replacing the previous revision
	doc := docstore.Document{
		ID:        p.ID + "_main",
		Platform:  p.ID,
		Content:   page.Text,
		Source:    p.DocsURL,
		Title:     page.Title,
		FetchedAt: page.FetchedAt,
	}
	if err := c.store.Add(ctx, doc); err != nil {
		return fmt.Errorf("store documentation: %w", err)
	}

	c.logger.Debug().
		Str("platform", p.ID).
		Str("source", p.DocsURL).
		Int("chars", len(page.Text)).
		Msg("Refreshed platform documentation")

	return nil
}

// fetchPage returns the page for a URL, consulting the memo cache first.
func (c *Coordinator) fetchPage(ctx context.Context, url string) (*fetch.Page, error) {
	if page, ok := c.pageCache.Get(url); ok {
		return page, nil
	}

	page, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	c.pageCache.Add(url, page)
	return page, nil
}

func (c *Coordinator) fireHooks(ctx context.Context, platforms []platform.Platform, results map[string]bool) {
	c.hooksMu.Lock()
	hooks := make([]RefreshHook, len(c.hooks))
	copy(hooks, c.hooks)
	c.hooksMu.Unlock()

	if len(hooks) == 0 {
		return
	}

	for _, p := range platforms {
		if !results[p.ID] {
			continue
		}
		for _, hook := range hooks {
			hook(ctx, p.ID)
		}
	}
}
