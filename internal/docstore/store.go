// Package docstore persists fetched documentation and serves similarity
// queries over it.
package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cdp-assist/support-engine/internal/embedding"
	"github.com/cdp-assist/support-engine/internal/observability"
)

// ErrUnknownPlatform indicates an operation on a platform without a collection.
var ErrUnknownPlatform = errors.New("unknown platform")

// Document is one documentation page stored for a platform.
type Document struct {
	ID        string
	Platform  string
	Content   string
	Source    string
	Title     string
	FetchedAt time.Time
}

// QueryResult is a similarity search hit.
type QueryResult struct {
	Content  string
	Source   string
	Distance float32
	Score    float32 // 1 - distance for cosine
}

// Config holds store settings.
type Config struct {
	DataDir   string
	Platforms []string
}

// Store keeps one document collection per platform, mirrored to a local
// SQLite database. The on-disk state is discarded and recreated on every
// Open, so the index always reflects the current process.
type Store struct {
	mu          sync.RWMutex
	db          *sql.DB
	embedder    embedding.Embedder
	logger      *observability.Logger
	order       []string
	collections map[string]map[string]storedDoc
}

type storedDoc struct {
	doc    Document
	vector []float32
}

const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
	id         TEXT PRIMARY KEY,
	platform   TEXT NOT NULL,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL,
	title      TEXT NOT NULL DEFAULT '',
	fetched_at TIMESTAMP,
	vector     BLOB NOT NULL
)`

// Open creates a store rooted at cfg.DataDir with one collection per
// platform. Any previous on-disk state is removed first.
func Open(cfg Config, embedder embedding.Embedder, logger *observability.Logger) (*Store, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if cfg.DataDir == "" {
		return nil, errors.New("data dir is required")
	}
	if logger == nil {
		logger = observability.DefaultLogger()
	}

	if err := os.RemoveAll(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("clear data dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(cfg.DataDir, "docs.db"))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(documentsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	collections := make(map[string]map[string]storedDoc, len(cfg.Platforms))
	order := make([]string, 0, len(cfg.Platforms))
	for _, p := range cfg.Platforms {
		if _, ok := collections[p]; ok {
			continue
		}
		collections[p] = make(map[string]storedDoc)
		order = append(order, p)
	}

	logger.Debug().
		Str("data_dir", cfg.DataDir).
		Int("collections", len(order)).
		Msg("Opened document store")

	return &Store{
		db:          db,
		embedder:    embedder,
		logger:      logger.WithOperation("docstore"),
		order:       order,
		collections: collections,
	}, nil
}

// Add stores a document in its platform collection, replacing any
// existing document with the same ID.
func (s *Store) Add(ctx context.Context, doc Document) error {
	if doc.ID == "" || doc.Platform == "" {
		return errors.New("document id and platform are required")
	}

	vec, err := s.embedder.EmbedSingle(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embed document: %w", err)
	}
	vec = normalizeVector(vec)

	encoded, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encode vector: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[doc.Platform]
	if !ok {
		return ErrUnknownPlatform
	}

	const upsert = `
INSERT INTO documents (id, platform, content, source, title, fetched_at, vector)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	platform   = excluded.platform,
	content    = excluded.content,
	source     = excluded.source,
	title      = excluded.title,
	fetched_at = excluded.fetched_at,
	vector     = excluded.vector`

	if _, err := s.db.ExecContext(ctx, upsert,
		doc.ID, doc.Platform, doc.Content, doc.Source, doc.Title, doc.FetchedAt, encoded); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}

	coll[doc.ID] = storedDoc{doc: doc, vector: vec}
	return nil
}

// Query finds the k documents in a platform's collection nearest to the
// query text, ordered by ascending cosine distance.
func (s *Store) Query(ctx context.Context, platformID, query string, k int) ([]QueryResult, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := s.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	queryVec = normalizeVector(queryVec)

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[platformID]
	if !ok {
		return nil, ErrUnknownPlatform
	}

	type scored struct {
		doc      Document
		distance float32
	}

	results := make([]scored, 0, len(coll))
	for _, sd := range coll {
		results = append(results, scored{
			doc:      sd.doc,
			distance: cosineDistance(queryVec, sd.vector),
		})
	}

	// Sort by distance (ascending), document ID breaks ties
	sort.Slice(results, func(i, j int) bool {
		if results[i].distance != results[j].distance {
			return results[i].distance < results[j].distance
		}
		return results[i].doc.ID < results[j].doc.ID
	})

	if k > len(results) {
		k = len(results)
	}

	output := make([]QueryResult, k)
	for i := 0; i < k; i++ {
		output[i] = QueryResult{
			Content:  results[i].doc.Content,
			Source:   results[i].doc.Source,
			Distance: results[i].distance,
			Score:    1 - results[i].distance,
		}
	}

	return output, nil
}

// Count returns the number of documents in a platform's collection.
func (s *Store) Count(platformID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[platformID]
	if !ok {
		return 0, ErrUnknownPlatform
	}
	return len(coll), nil
}

// Platforms returns the collection names in creation order.
func (s *Store) Platforms() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// cosineDistance computes cosine distance between two normalized vectors.
// For normalized vectors: distance = 1 - dot(a, b)
func cosineDistance(a, b []float32) float32 {
	if len(a) != len(b) {
		return 1.0
	}

	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}

	// Clamp to [-1, 1] range due to floating point errors
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}

	return 1 - dot
}

// normalizeVector returns a unit vector.
func normalizeVector(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)

	if norm == 0 {
		return v
	}

	normalized := make([]float32, len(v))
	for i, x := range v {
		normalized[i] = float32(float64(x) / norm)
	}

	return normalized
}
