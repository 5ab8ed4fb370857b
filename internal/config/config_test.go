package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 256, cfg.Embedding.Dimension)
	assert.Equal(t, "./doc_db", cfg.Ingestion.DataDir)
	assert.True(t, cfg.Ingestion.RefreshOnStart)
	assert.Equal(t, 5, cfg.Ingestion.SearchLimit)
	assert.Contains(t, cfg.Server.AllowedOrigins, "http://localhost:5173")

	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: 9000
cache:
  driver: redis
  redis:
    addr: redis.internal:6379
ingestion:
  data_dir: /var/lib/support-engine/doc_db
  fetch_timeout: 10s
  refresh_on_start: false
observability:
  log_level: debug
  log_format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, "/var/lib/support-engine/doc_db", cfg.Ingestion.DataDir)
	assert.Equal(t, 10*time.Second, cfg.Ingestion.FetchTimeout)
	assert.False(t, cfg.Ingestion.RefreshOnStart)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)

	// Untouched sections keep their defaults.
	assert.Equal(t, 256, cfg.Embedding.Dimension)
	assert.Equal(t, 1, cfg.Ingestion.MaxRetries)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("REDIS_URL", "redis://cache.internal:6380")
	t.Setenv("DATA_DIR", "/tmp/docs")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("REFRESH_ON_START", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6380", cfg.Cache.Redis.Addr)
	assert.Equal(t, "/tmp/docs", cfg.Ingestion.DataDir)
	assert.Equal(t, "warn", cfg.Observability.LogLevel)
	assert.False(t, cfg.Ingestion.RefreshOnStart)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))

	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
}

func TestValidate_BadPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg.Server.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadCacheDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Driver = "memcached"
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadEmbeddingDimension(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Embedding.Dimension = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadIngestion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Ingestion.DataDir = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Ingestion.FetchTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Ingestion.SearchLimit = 0
	assert.Error(t, cfg.Validate())
}
