package commands

import (
	"encoding/json"
	"fmt"

	"github.com/cdp-assist/support-engine/internal/config"
	"github.com/cdp-assist/support-engine/internal/docstore"
	"github.com/cdp-assist/support-engine/internal/embedding"
	"github.com/cdp-assist/support-engine/internal/fetch"
	"github.com/cdp-assist/support-engine/internal/ingest"
	"github.com/cdp-assist/support-engine/internal/observability"
	"github.com/cdp-assist/support-engine/internal/platform"
)

// loadConfig loads the configuration, honoring the persistent --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the CLI logger. Errors only unless --verbose is set, and
// console format so log lines read well next to the UI output.
func newLogger() *observability.Logger {
	level := "error"
	if verbose {
		level = "debug"
	}
	return observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      "console",
		ServiceName: "support-engine-cli",
	})
}

// buildCoordinator wires a fetcher, an embedder and the document store into
// an ingestion coordinator.
func buildCoordinator(cfg *config.Config, logger *observability.Logger) (*ingest.Coordinator, error) {
	embedder := embedding.NewLocal(embedding.Config{
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
	})

	store, err := docstore.Open(docstore.Config{
		DataDir:   cfg.Ingestion.DataDir,
		Platforms: platform.IDs(),
	}, embedder, logger)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}

	fetcher := fetch.NewFetcher(fetch.Config{
		Timeout:    cfg.Ingestion.FetchTimeout,
		MaxRetries: cfg.Ingestion.MaxRetries,
		RetryDelay: cfg.Ingestion.RetryDelay,
	}, logger)

	return ingest.NewCoordinator(logger, ingest.Config{
		SearchLimit: cfg.Ingestion.SearchLimit,
	}, fetcher, store)
}

// printJSON renders v as indented JSON on stdout for --json consumers.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
