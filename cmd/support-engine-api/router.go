// Package main provides the API router setup.
package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cdp-assist/support-engine/cmd/support-engine-api/handlers"
	"github.com/cdp-assist/support-engine/cmd/support-engine-api/middleware"
	"github.com/cdp-assist/support-engine/internal/cache"
	"github.com/cdp-assist/support-engine/internal/config"
	"github.com/cdp-assist/support-engine/internal/docstore"
	"github.com/cdp-assist/support-engine/internal/embedding"
	"github.com/cdp-assist/support-engine/internal/fetch"
	"github.com/cdp-assist/support-engine/internal/ingest"
	"github.com/cdp-assist/support-engine/internal/knowledge"
	"github.com/cdp-assist/support-engine/internal/observability"
	"github.com/cdp-assist/support-engine/internal/platform"
	"github.com/cdp-assist/support-engine/internal/resolver"
)

// NewRouter creates the main API router with all routes configured. The
// returned coordinator carries the ingestion side so the caller can
// schedule the optional startup refresh; it is nil when the coordinator
// itself could not be constructed.
func NewRouter(logger *observability.Logger, cfg *config.Config) (http.Handler, *ingest.Coordinator) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"CDP Support Bot API"}`))
	})

	// Create service dependencies
	base := knowledge.NewBase()
	res := resolver.NewResolver(base, logger)

	var cacheClient cache.Client
	switch cfg.Cache.Driver {
	case "redis":
		rc, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to connect to Redis, response caching disabled")
		} else {
			cacheClient = rc
		}
	default:
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	cacheCfg := resolver.DefaultResponseCacheConfig()
	if cfg.Cache.TTL > 0 {
		cacheCfg.DefaultTTL = cfg.Cache.TTL
	}
	responseCache := resolver.NewResponseCache(cacheClient, logger, cacheCfg)

	// Document store and ingestion coordinator. A store failure degrades
	// ingestion to no-op; the chat path does not depend on it.
	embedder := embedding.NewLocal(embedding.Config{
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
	})

	var store ingest.DocumentStore
	if s, err := docstore.Open(docstore.Config{
		DataDir:   cfg.Ingestion.DataDir,
		Platforms: platform.IDs(),
	}, embedder, logger); err != nil {
		logger.Error().Err(err).Msg("Failed to open document store, ingestion degraded")
	} else {
		store = s
	}

	fetcher := fetch.NewFetcher(fetch.Config{
		Timeout:    cfg.Ingestion.FetchTimeout,
		MaxRetries: cfg.Ingestion.MaxRetries,
		RetryDelay: cfg.Ingestion.RetryDelay,
	}, logger)

	coordinator, err := ingest.NewCoordinator(logger, ingest.Config{
		SearchLimit: cfg.Ingestion.SearchLimit,
	}, fetcher, store)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create ingestion coordinator")
		coordinator = nil
	} else {
		trigger := resolver.NewInvalidationTrigger(responseCache, logger)
		coordinator.OnRefresh(trigger.OnDocumentationRefreshed)
	}

	// Initialize handlers
	chatHandler := handlers.NewChatHandler(logger, res, responseCache)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"healthy"}`))
		})

		r.Post("/chat", chatHandler.Chat)
	})

	return r, coordinator
}
