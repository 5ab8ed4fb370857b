package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTMLToText_StripsTags(t *testing.T) {
	html := `<html><body><p>Hello</p><div>World</div></body></html>`
	assert.Equal(t, "Hello\nWorld", HTMLToText(html))
}

func TestHTMLToText_RemovesScriptAndStyle(t *testing.T) {
	html := `<html><body>
<script>var x = 1;</script>
<style>.cls { color: red; }</style>
<p>Visible text</p>
</body></html>`

	out := HTMLToText(html)
	assert.Equal(t, "Visible text", out)
	assert.NotContains(t, out, "var x")
	assert.NotContains(t, out, "color: red")
}

func TestHTMLToText_RemovesHeadAndComments(t *testing.T) {
	html := `<html><head><title>Docs</title><meta charset="utf-8"></head>
<body><!-- nav goes here --><p>Body only</p></body></html>`

	out := HTMLToText(html)
	assert.Equal(t, "Body only", out)
}

func TestHTMLToText_PreservesLinks(t *testing.T) {
	html := `<p>See the <a href="https://segment.com/docs/connections/">connections guide</a> for details.</p>`

	out := HTMLToText(html)
	assert.Equal(t, "See the connections guide (https://segment.com/docs/connections/) for details.", out)
}

func TestHTMLToText_LinkWithNestedMarkup(t *testing.T) {
	html := `<a href="/docs/sources"><strong>Sources</strong></a>`

	out := HTMLToText(html)
	assert.Equal(t, "Sources (/docs/sources)", out)
}

func TestHTMLToText_DecodesEntities(t *testing.T) {
	html := `<p>Sources &amp; Destinations &mdash; explained</p>`

	out := HTMLToText(html)
	assert.Contains(t, out, "Sources & Destinations")
}

func TestHTMLToText_BlockElementsBecomeNewlines(t *testing.T) {
	html := `<h1>Setup</h1><ul><li>Step one</li><li>Step two</li></ul>`

	out := HTMLToText(html)
	assert.Equal(t, "Setup\nStep one\nStep two", out)
}

func TestHTMLToText_CollapsesWhitespace(t *testing.T) {
	html := "<p>spaced     out\t\ttext</p>\n\n\n\n<p>next</p>"

	out := HTMLToText(html)
	assert.Equal(t, "spaced out text\nnext", out)
}

func TestHTMLToText_Empty(t *testing.T) {
	assert.Equal(t, "", HTMLToText(""))
	assert.Equal(t, "", HTMLToText("<script>only()</script>"))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Segment Documentation", ExtractTitle(`<html><head><title>Segment Documentation</title></head></html>`))
	assert.Equal(t, "A & B", ExtractTitle(`<title>A &amp; B</title>`))
	assert.Equal(t, "", ExtractTitle(`<html><body>no title</body></html>`))
}
