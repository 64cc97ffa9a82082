package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownRendererBasics(t *testing.T) {
	r := NewMarkdownRenderer()
	res, err := r.Render([]byte("# Title\n\nSome *emphasis* and ~~struck~~ text.\n"))
	require.NoError(t, err)

	html := string(res.HTML)
	assert.Contains(t, html, `<h1 id="title">Title</h1>`)
	assert.Contains(t, html, "<em>emphasis</em>")
	assert.Contains(t, html, "<del>struck</del>")
}

func TestMarkdownRendererGFM(t *testing.T) {
	r := NewMarkdownRenderer()
	res, err := r.Render([]byte("| a | b |\n|---|---|\n| 1 | 2 |\n\nVisit https://example.com now.\n"))
	require.NoError(t, err)

	html := string(res.HTML)
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `<a href="https://example.com">https://example.com</a>`)
}

func TestMarkdownRendererAllowsRawHTML(t *testing.T) {
	r := NewMarkdownRenderer()
	res, err := r.Render([]byte(`<div class="note">kept</div>`))
	require.NoError(t, err)
	assert.Contains(t, string(res.HTML), `<div class="note">kept</div>`)
}

func TestMarkdownRendererHeadingOutline(t *testing.T) {
	r := NewMarkdownRenderer()
	res, err := r.Render([]byte("# One\n\ntext\n\n## Two\n\n### Deep Three\n"))
	require.NoError(t, err)

	require.Len(t, res.Headings, 3)
	assert.Equal(t, Heading{Level: 1, ID: "one", Text: "One"}, res.Headings[0])
	assert.Equal(t, Heading{Level: 2, ID: "two", Text: "Two"}, res.Headings[1])
	assert.Equal(t, Heading{Level: 3, ID: "deep-three", Text: "Deep Three"}, res.Headings[2])
}
