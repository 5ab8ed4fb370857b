package docstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdp-assist/support-engine/internal/embedding"
	"github.com/cdp-assist/support-engine/internal/observability"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.LogConfig{
		Level:       "error",
		Format:      "json",
		Output:      io.Discard,
		ServiceName: "test",
	})
}

func openTestStore(t *testing.T, platforms ...string) *Store {
	t.Helper()
	if len(platforms) == 0 {
		platforms = []string{"segment", "mparticle", "lytics", "zeotap"}
	}

	s, err := Open(Config{
		DataDir:   filepath.Join(t.TempDir(), "doc_db"),
		Platforms: platforms,
	}, embedding.NewLocal(embedding.Config{}), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_WipesPreviousState(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "doc_db")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	stale := filepath.Join(dataDir, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old run"), 0o644))

	s, err := Open(Config{DataDir: dataDir, Platforms: []string{"segment"}},
		embedding.NewLocal(embedding.Config{}), testLogger())
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))

	_, err = os.Stat(filepath.Join(dataDir, "docs.db"))
	assert.NoError(t, err)
}

func TestOpen_RequiresEmbedder(t *testing.T) {
	_, err := Open(Config{DataDir: t.TempDir()}, nil, testLogger())
	assert.Error(t, err)
}

func TestStore_AddAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Document{
		ID:        "segment_main",
		Platform:  "segment",
		Content:   "create a new source connection for your workspace",
		Source:    "https://segment.com/docs/",
		Title:     "Segment Documentation",
		FetchedAt: time.Now(),
	}))

	results, err := s.Query(ctx, "segment", "how to create a source", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "create a new source connection for your workspace", results[0].Content)
	assert.Equal(t, "https://segment.com/docs/", results[0].Source)
	assert.Greater(t, results[0].Score, float32(0))
}

func TestStore_AddOverwritesSameID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Document{
		ID: "segment_main", Platform: "segment",
		Content: "first version", Source: "https://segment.com/docs/",
	}))
	require.NoError(t, s.Add(ctx, Document{
		ID: "segment_main", Platform: "segment",
		Content: "second version", Source: "https://segment.com/docs/",
	}))

	count, err := s.Count("segment")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	results, err := s.Query(ctx, "segment", "version", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second version", results[0].Content)
}

func TestStore_AddUnknownPlatform(t *testing.T) {
	s := openTestStore(t)

	err := s.Add(context.Background(), Document{
		ID: "acme_main", Platform: "acme", Content: "text", Source: "https://acme.test/",
	})
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestStore_QueryUnknownPlatform(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Query(context.Background(), "acme", "anything", 5)
	assert.ErrorIs(t, err, ErrUnknownPlatform)
}

func TestStore_QueryEmptyCollection(t *testing.T) {
	s := openTestStore(t)

	results, err := s.Query(context.Background(), "lytics", "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_QueryOrdersByDistance(t *testing.T) {
	s := openTestStore(t, "segment")
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Document{
		ID: "segment_sources", Platform: "segment",
		Content: "create a new source connection for your workspace",
		Source:  "https://segment.com/docs/sources/",
	}))
	require.NoError(t, s.Add(ctx, Document{
		ID: "segment_billing", Platform: "segment",
		Content: "billing invoices payment plans pricing tiers",
		Source:  "https://segment.com/docs/billing/",
	}))

	results, err := s.Query(ctx, "segment", "how to create a source", 5)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "https://segment.com/docs/sources/", results[0].Source)
	assert.Less(t, results[0].Distance, results[1].Distance)
}

func TestStore_QueryLimit(t *testing.T) {
	s := openTestStore(t, "segment")
	ctx := context.Background()

	for _, doc := range []Document{
		{ID: "a", Platform: "segment", Content: "sources and connections", Source: "u1"},
		{ID: "b", Platform: "segment", Content: "destinations and warehouses", Source: "u2"},
		{ID: "c", Platform: "segment", Content: "profiles and audiences", Source: "u3"},
	} {
		require.NoError(t, s.Add(ctx, doc))
	}

	results, err := s.Query(ctx, "segment", "sources", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Non-positive limit falls back to the default of five.
	results, err = s.Query(ctx, "segment", "sources", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestStore_CollectionsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Document{
		ID: "segment_main", Platform: "segment",
		Content: "segment specific setup guide", Source: "https://segment.com/docs/",
	}))

	results, err := s.Query(ctx, "mparticle", "setup guide", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestStore_Platforms(t *testing.T) {
	s := openTestStore(t)
	assert.Equal(t, []string{"segment", "mparticle", "lytics", "zeotap"}, s.Platforms())
}
