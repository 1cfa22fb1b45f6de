package readability_test

import (
	"testing"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractTitle("")

	require.Error(t, err)
	assert.Equal(t, docset.EINVALID, docset.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	title, err := ext.ExtractTitle(html)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", title)
}

func TestExtractor_StripsSiteSuffix(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Beautiful Soup Documentation &#8212; Beautiful Soup 4.12.3 documentation</title></head>
<body><article><h1>Beautiful Soup Documentation</h1>
<p>Beautiful Soup is a Python library for pulling data out of HTML and XML files.</p></article></body>
</html>`

	ext := readability.NewExtractor()
	title, err := ext.ExtractTitle(html)

	require.NoError(t, err)
	assert.NotContains(t, title, "documentation")
	assert.Contains(t, title, "Beautiful Soup")
}
