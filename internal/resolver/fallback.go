package resolver

import "fmt"

// HelpText is the canned answer returned when no knowledge entry matches.
// The leading sentence names the platform when one was requested.
func HelpText(platformID string) string {
	platformSpecific := ""
	if platformID != "" {
		platformSpecific = "about " + platformID
	}
	return fmt.Sprintf(`I don't have specific information %s for that query. You can try:

1. Ask about setting up or configuring sources
2. Ask about specific CDP features
3. Ask about integration steps

For example: 'How do I set up a new source?' or 'What are the steps to configure integration?'`, platformSpecific)
}
