// Package resolver implements the query-resolution engine: an ordered
// pipeline of matching strategies over the knowledge base, combining
// structural pattern matches with fuzzy similarity fallback across
// platforms.
package resolver

import (
	"strings"

	"github.com/cdp-assist/support-engine/internal/knowledge"
	"github.com/cdp-assist/support-engine/internal/observability"
)

const (
	// fallbackThreshold gates the cross-platform scan: it only runs while
	// the requested platform's best score stays below this value.
	fallbackThreshold = 0.6
	// matchThreshold is the minimum score a fuzzy candidate needs to be
	// returned to the caller.
	matchThreshold = 0.4
)

// Resolver resolves free-text queries to knowledge base entries. It is
// stateless per call and safe for concurrent use: it only reads the shared
// immutable base.
type Resolver struct {
	base     *knowledge.Base
	logger   *observability.Logger
	pipeline []strategy
}

// NewResolver builds a resolver over the given base. One resolver per
// process is the expected lifecycle; construct it at startup and share it.
func NewResolver(base *knowledge.Base, logger *observability.Logger) *Resolver {
	if logger == nil {
		logger = observability.DefaultLogger()
	}
	return &Resolver{
		base:   base,
		logger: logger.WithOperation("resolve"),
		pipeline: []strategy{
			&structuralStrategy{base: base},
			&platformScoreStrategy{base: base},
			&crossPlatformStrategy{base: base},
		},
	}
}

// Resolve returns the best knowledge entry for the query, or nil when
// nothing matches. Nil is a normal outcome, not an error: callers present
// a generic help message in that case.
//
// Matching precedence: a structural pattern match inside the requested
// platform wins immediately; otherwise the highest fuzzy score wins, with
// other platforms consulted only while the requested platform's best stays
// below the fallback threshold. Candidates below the match threshold are
// discarded.
func (r *Resolver) Resolve(query, platformID string) *knowledge.Entry {
	normalized := strings.ToLower(strings.TrimSpace(query))

	best := Candidate{}
	for _, s := range r.pipeline {
		res := s.match(normalized, platformID, best)
		switch res.Outcome {
		case OutcomeMatched:
			r.logger.Debug().
				Str("platform", platformID).
				Str("strategy", s.name()).
				Str("source", res.Entry.Source).
				Msg("structural match")
			return res.Entry
		case OutcomeScored:
			best = res.Candidate
		}
	}

	if best.Entry != nil && best.Score >= matchThreshold {
		r.logger.Debug().
			Str("platform", platformID).
			Float64("score", best.Score).
			Str("source", best.Entry.Source).
			Msg("scored match")
		return best.Entry
	}

	r.logger.Debug().
		Str("platform", platformID).
		Float64("score", best.Score).
		Msg("no match")
	return nil
}
