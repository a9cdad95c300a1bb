package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithFrontmatter(t *testing.T) {
	src := "---\nsummary: The golden age of Baghdad\nauthor: Editorial\n---\n# House of Wisdom\n\nTranslators *gathered* here."

	html, meta, err := NewParser().Render(src)
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 id="house-of-wisdom">House of Wisdom</h1>`)
	assert.Contains(t, html, "<em>gathered</em>")
	assert.NotContains(t, html, "summary:")
	assert.Equal(t, "The golden age of Baghdad", meta["summary"])
	assert.Equal(t, "Editorial", meta["author"])
}

func TestRenderWithoutFrontmatter(t *testing.T) {
	html, meta, err := NewParser().Render("plain text")
	require.NoError(t, err)
	assert.Contains(t, html, "<p>plain text</p>")
	assert.NotNil(t, meta)
	assert.Empty(t, meta)
}
