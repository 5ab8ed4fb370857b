package resolver

import "github.com/cdp-assist/support-engine/internal/knowledge"

// Outcome tags what a matching strategy produced.
type Outcome int

const (
	// OutcomeNoMatch means the strategy found nothing and left the running
	// candidate untouched.
	OutcomeNoMatch Outcome = iota
	// OutcomeMatched means a pattern matched structurally; the entry is
	// returned to the caller immediately and no further strategy runs.
	OutcomeMatched
	// OutcomeScored means the strategy produced (or carried through) a
	// fuzzy candidate with its running best score.
	OutcomeScored
)

// Candidate is the running best fuzzy match while the pipeline executes.
// The zero value (no entry, score 0) is the starting state; updates use a
// strictly-greater comparison so the earliest candidate wins ties.
type Candidate struct {
	Entry *knowledge.Entry
	Score float64
}

// Result is the tagged outcome of one strategy.
type Result struct {
	Outcome   Outcome
	Entry     *knowledge.Entry // set when Outcome is OutcomeMatched
	Candidate Candidate        // set when Outcome is OutcomeScored
}

func noMatch() Result {
	return Result{Outcome: OutcomeNoMatch}
}

func matched(e *knowledge.Entry) Result {
	return Result{Outcome: OutcomeMatched, Entry: e}
}

func scored(c Candidate) Result {
	return Result{Outcome: OutcomeScored, Candidate: c}
}
