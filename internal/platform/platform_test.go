package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll_OrderIsStable(t *testing.T) {
	ids := IDs()
	assert.Equal(t, []string{"segment", "mparticle", "lytics", "zeotap"}, ids)
}

func TestLookup_Known(t *testing.T) {
	p, ok := Lookup("mparticle")
	assert.True(t, ok)
	assert.Equal(t, "mParticle", p.Label)
	assert.Equal(t, "https://docs.mparticle.com/", p.DocsURL)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("acme")
	assert.False(t, ok)
	assert.False(t, Known("acme"))
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].ID = "mutated"
	b := All()
	assert.Equal(t, "segment", b[0].ID)
}
