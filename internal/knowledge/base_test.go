package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBase_CoversEveryPlatform(t *testing.T) {
	base := NewBase()
	assert.Equal(t, []string{"segment", "mparticle", "lytics", "zeotap"}, base.Platforms())
	for _, id := range base.Platforms() {
		assert.True(t, base.Has(id))
		assert.NotEmpty(t, base.Entries(id), "platform %s has no entries", id)
	}
}

func TestNewBase_EntryShape(t *testing.T) {
	base := NewBase()
	for _, id := range base.Platforms() {
		for _, e := range base.Entries(id) {
			assert.NotEmpty(t, e.Patterns)
			assert.NotEmpty(t, e.Answer)
			assert.NotEmpty(t, e.Source)
		}
	}
}

func TestNewBase_SegmentEntryOrder(t *testing.T) {
	base := NewBase()
	entries := base.Entries("segment")
	require.Len(t, entries, 2)
	assert.Equal(t, "Segment Documentation", entries[0].Source)
	assert.Equal(t, "Segment Overview", entries[1].Source)
	assert.Equal(t, "how.*set up.*source.*segment", entries[0].Patterns[0].String())
}

func TestPattern_MatchesUnanchored(t *testing.T) {
	p := NewPattern(`add.*source`)
	assert.True(t, p.Matches("please add a new source for me"))
	assert.True(t, p.Matches("ADD A SOURCE"))
	assert.False(t, p.Matches("remove the destination"))
}

func TestPattern_CaseInsensitive(t *testing.T) {
	p := NewPattern(`what.*segment`)
	assert.True(t, p.Matches("What is Segment"))
}

func TestEntries_UnknownPlatformIsNil(t *testing.T) {
	base := NewBase()
	assert.Nil(t, base.Entries("acme"))
	assert.False(t, base.Has("acme"))
}

func TestNewBaseFromEntries_KeepsEmptyPlatforms(t *testing.T) {
	base := NewBaseFromEntries([]string{"alpha", "beta"}, map[string][]Entry{
		"alpha": {NewEntry([]string{`ping`}, "pong", "src", "")},
	})
	assert.True(t, base.Has("beta"))
	assert.Empty(t, base.Entries("beta"))
	assert.Len(t, base.Entries("alpha"), 1)
}
