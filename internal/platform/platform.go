// Package platform defines the closed set of supported Customer Data Platforms.
package platform

// Platform describes one supported CDP.
type Platform struct {
	ID      string
	Label   string
	DocsURL string
}

// registry is the ordered platform table. Iteration order everywhere in the
// system (matching precedence, ingestion runs, fallback scans) is this order.
var registry = []Platform{
	{ID: "segment", Label: "Segment", DocsURL: "https://segment.com/docs/"},
	{ID: "mparticle", Label: "mParticle", DocsURL: "https://docs.mparticle.com/"},
	{ID: "lytics", Label: "Lytics", DocsURL: "https://docs.lytics.com/"},
	{ID: "zeotap", Label: "Zeotap", DocsURL: "https://docs.zeotap.com/home/en-us/"},
}

// All returns the supported platforms in table order.
func All() []Platform {
	out := make([]Platform, len(registry))
	copy(out, registry)
	return out
}

// IDs returns the platform identifiers in table order.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, p := range registry {
		ids[i] = p.ID
	}
	return ids
}

// Lookup returns the platform with the given identifier.
func Lookup(id string) (Platform, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// Known reports whether the identifier names a supported platform.
func Known(id string) bool {
	_, ok := Lookup(id)
	return ok
}
