// Package embedding provides embedding generation services.
package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

// Local generates deterministic embeddings from hashed bag-of-words
// features. No model service is involved, so vectors are stable across
// processes and restarts.
type Local struct {
	model        string
	dimension    int
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

// Config holds embedder configuration.
type Config struct {
	Model     string
	Dimension int
}

// NewLocal creates a local embedder.
func NewLocal(cfg Config) *Local {
	if cfg.Model == "" {
		cfg.Model = "hashed-bow"
	}
	if cfg.Dimension <= 0 {
		cfg.Dimension = 256
	}

	return &Local{
		model:        cfg.Model,
		dimension:    cfg.Dimension,
		tokenPattern: regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`),
		stopwords:    defaultStopwords(),
	}
}

// Embed generates embeddings for the given texts.
func (l *Local) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings := make([][]float32, len(texts))
	for i, text := range texts {
		embeddings[i] = l.embedOne(text)
	}
	return embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (l *Local) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return l.embedOne(text), nil
}

// Model returns the model identifier.
func (l *Local) Model() string {
	return l.model
}

// Dimension returns the embedding dimension.
func (l *Local) Dimension() int {
	return l.dimension
}

func (l *Local) embedOne(text string) []float32 {
	vec := make([]float32, l.dimension)

	tokens := l.tokenize(text)
	if len(tokens) == 0 {
		return vec
	}

	for _, tok := range tokens {
		vec[l.bucket(tok)]++
	}

	// Term frequency weighting, then L2 normalize
	total := float32(len(tokens))
	for i := range vec {
		vec[i] /= total
	}
	return normalize(vec)
}

func (l *Local) tokenize(text string) []string {
	lower := strings.ToLower(text)
	raw := l.tokenPattern.FindAllString(lower, -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := l.stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (l *Local) bucket(token string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return int(h.Sum32() % uint32(l.dimension))
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= norm
	}
	return v
}

func defaultStopwords() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// Embedder defines the interface for embedding generation.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimension() int
}

// Ensure implementations satisfy interface.
var _ Embedder = (*Local)(nil)
