package goquery_test

import (
	"testing"

	"github.com/fwojciec/docset/goquery"
	"github.com/stretchr/testify/assert"
)

func TestDetector_IsSphinx(t *testing.T) {
	t.Parallel()

	t.Run("detects Sphinx from meta generator tag", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
	<title>Beautiful Soup Documentation</title>
	<meta name="generator" content="Sphinx 7.2.6">
</head>
<body><div class="body">Content</div></body>
</html>`

		assert.True(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("detects Sphinx from toctree-wrapper class", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<div class="toctree-wrapper compound">
	<ul><li class="toctree-l1"><a href="api/bs4.html">bs4 package</a></li></ul>
</div>
</body></html>`

		assert.True(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("detects Sphinx from wy-nav-side class (ReadTheDocs theme)", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><nav class="wy-nav-side"><div class="wy-menu-vertical"></div></nav></body></html>`

		assert.True(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("detects Sphinx from documentation options script", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script id="documentation_options" data-url_root="./" src="_static/documentation_options.js"></script></head><body></body></html>`

		assert.True(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("meta generator of another tool wins over markers", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta name="generator" content="mkdocs-1.5.3"></head>
<body><div class="sphinxsidebar"></div></body></html>`

		assert.False(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("rejects generic HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Blog</title></head><body><article><p>Hello</p></article></body></html>`

		assert.False(t, goquery.NewDetector().IsSphinx(html))
	})

	t.Run("rejects empty HTML", func(t *testing.T) {
		t.Parallel()

		assert.False(t, goquery.NewDetector().IsSphinx(""))
	})
}
