// Package knowledge holds the curated knowledge base the query resolver
// matches against: per-platform ordered entries pairing trigger patterns
// with a canned answer and citation.
package knowledge

import (
	"regexp"

	"github.com/cdp-assist/support-engine/internal/platform"
)

// Pattern is one trigger pattern of an entry. The raw pattern text is kept
// alongside the compiled expression because the fuzzy fallback scores the
// query against the pattern text itself.
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

// NewPattern compiles a case-insensitive, unanchored pattern.
func NewPattern(raw string) Pattern {
	return Pattern{raw: raw, re: regexp.MustCompile("(?i)" + raw)}
}

// String returns the raw pattern text.
func (p Pattern) String() string { return p.raw }

// Matches reports whether the pattern matches anywhere in the query.
func (p Pattern) Matches(query string) bool {
	return p.re.MatchString(query)
}

// Entry is one knowledge base rule. Entries are immutable after
// construction; pattern order decides structural-match precedence.
type Entry struct {
	Patterns []Pattern
	Answer   string
	Source   string
	URL      string
}

// NewEntry builds an entry from raw pattern strings.
func NewEntry(patterns []string, answer, source, url string) Entry {
	ps := make([]Pattern, len(patterns))
	for i, raw := range patterns {
		ps[i] = NewPattern(raw)
	}
	return Entry{Patterns: ps, Answer: answer, Source: source, URL: url}
}

// Base maps platform ids to their ordered entries. It is built once at
// process start and shared read-only; concurrent readers need no locking.
type Base struct {
	order   []string
	entries map[string][]Entry
}

// NewBase returns the built-in knowledge base covering every supported
// platform, in platform table order.
func NewBase() *Base {
	return NewBaseFromEntries(platform.IDs(), builtinEntries())
}

// NewBaseFromEntries builds a base with explicit platform order and
// entries. Platforms without entries are kept as empty keys so they still
// participate in scans.
func NewBaseFromEntries(order []string, entries map[string][]Entry) *Base {
	m := make(map[string][]Entry, len(order))
	for _, id := range order {
		m[id] = entries[id]
	}
	return &Base{order: order, entries: m}
}

// Platforms returns the platform ids in scan order.
func (b *Base) Platforms() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Entries returns the ordered entries for a platform, or nil if the
// platform is not a key.
func (b *Base) Entries(id string) []Entry {
	return b.entries[id]
}

// Has reports whether the platform is a key in the base.
func (b *Base) Has(id string) bool {
	_, ok := b.entries[id]
	return ok
}
