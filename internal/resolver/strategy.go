package resolver

import (
	"github.com/cdp-assist/support-engine/internal/knowledge"
	"github.com/cdp-assist/support-engine/internal/similarity"
)

// strategy is one step of the matching pipeline. The query arrives already
// normalized; best is the running fuzzy candidate accumulated so far.
type strategy interface {
	name() string
	match(query, platformID string, best Candidate) Result
}

// structuralStrategy scans the requested platform's entries in stored
// order and returns the first entry whose pattern matches the query.
// A structural hit outranks any fuzzy score anywhere in the base.
type structuralStrategy struct {
	base *knowledge.Base
}

func (s *structuralStrategy) name() string { return "structural" }

func (s *structuralStrategy) match(query, platformID string, _ Candidate) Result {
	if !s.base.Has(platformID) {
		return noMatch()
	}
	entries := s.base.Entries(platformID)
	for i := range entries {
		for _, p := range entries[i].Patterns {
			if p.Matches(query) {
				return matched(&entries[i])
			}
		}
	}
	return noMatch()
}

// platformScoreStrategy scores the query against every pattern of the
// requested platform, keeping the highest-scoring entry. Ties keep the
// earliest pattern scanned.
type platformScoreStrategy struct {
	base *knowledge.Base
}

func (s *platformScoreStrategy) name() string { return "platform-scored" }

func (s *platformScoreStrategy) match(query, platformID string, best Candidate) Result {
	if !s.base.Has(platformID) {
		return noMatch()
	}
	best = scanEntries(query, s.base.Entries(platformID), best)
	if best.Entry == nil {
		return noMatch()
	}
	return scored(best)
}

// crossPlatformStrategy widens the fuzzy scan to every other platform when
// the requested platform produced only a weak candidate. A candidate at or
// above the fallback threshold suppresses the scan entirely.
type crossPlatformStrategy struct {
	base *knowledge.Base
}

func (s *crossPlatformStrategy) name() string { return "cross-platform" }

func (s *crossPlatformStrategy) match(query, platformID string, best Candidate) Result {
	if best.Score >= fallbackThreshold {
		return scored(best)
	}
	for _, pid := range s.base.Platforms() {
		if pid == platformID {
			continue
		}
		best = scanEntries(query, s.base.Entries(pid), best)
	}
	if best.Entry == nil {
		return noMatch()
	}
	return scored(best)
}

// scanEntries folds the similarity score of every pattern into the running
// candidate. Strictly-greater updates keep the earliest candidate on ties.
func scanEntries(query string, entries []knowledge.Entry, best Candidate) Candidate {
	for i := range entries {
		for _, p := range entries[i].Patterns {
			score := similarity.Ratio(query, p.String())
			if score > best.Score {
				best = Candidate{Entry: &entries[i], Score: score}
			}
		}
	}
	return best
}
