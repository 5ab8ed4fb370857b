package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_IdenticalStrings(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("segment", "segment"))
	assert.Equal(t, 1.0, Ratio("how do i set up a new source", "how do i set up a new source"))
}

func TestRatio_DisjointStrings(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("abc", "xyz"))
}

func TestRatio_BothEmpty(t *testing.T) {
	// Defined, no division by zero.
	assert.Equal(t, 1.0, Ratio("", ""))
}

func TestRatio_OneEmpty(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("a", ""))
	assert.Equal(t, 0.0, Ratio("", "pattern"))
}

func TestRatio_SingleBlock(t *testing.T) {
	// Longest block "bcd" (3 of 8 total characters).
	assert.InDelta(t, 0.75, Ratio("abcd", "bcde"), 1e-12)
}

func TestRatio_MultipleBlocks(t *testing.T) {
	// Blocks "abc" and "def" around the differing middle character.
	assert.InDelta(t, 12.0/14.0, Ratio("abcXdef", "abcYdef"), 1e-12)
}

func TestRatio_QueryAgainstPatternString(t *testing.T) {
	// Blocks "segment" and "overview" across the two strings.
	assert.InDelta(t, 30.0/33.0, Ratio("segment overview", "segment.*overview"), 1e-12)
}

func TestRatio_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"abcd", "bcde"},
		{"ab", "ba"},
		{"segment overview", "segment.*overview"},
		{"how do i set up a new source", "source.*setup"},
		{"xyzzy plugh", "new source"},
	}
	for _, p := range pairs {
		assert.Equal(t, Ratio(p[0], p[1]), Ratio(p[1], p[0]), "pair %q / %q", p[0], p[1])
	}
}

func TestRatio_NormalizesCaseAndSpace(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("  New Source ", "new source"))
	assert.Equal(t, 1.0, Ratio("SEGMENT", "segment"))
}

func TestRatio_TransposedHalves(t *testing.T) {
	assert.InDelta(t, 0.5, Ratio("ab", "ba"), 1e-12)
}

func TestRatio_RangeBounds(t *testing.T) {
	samples := [][2]string{
		{"what is segment", "what.*segment"},
		{"mparticle setup steps", "mparticle.*setup"},
		{"", "start.*source"},
		{"zzzz", "source.*configuration"},
	}
	for _, s := range samples {
		got := Ratio(s[0], s[1])
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 1.0)
	}
}
