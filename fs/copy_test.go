package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docset/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyHTMLFiles(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	for _, name := range []string{"index.html", "api.html", "search.html", "searchindex.html", "genindex.html", "genindex-all.html", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte(name), 0644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "nested.html"), []byte("nested"), 0644))

	dst := filepath.Join(t.TempDir(), "documents")

	names, err := fs.CopyHTMLFiles(src, dst)
	require.NoError(t, err)

	assert.Equal(t, []string{"api.html", "index.html"}, names)

	data, err := os.ReadFile(filepath.Join(dst, "api.html"))
	require.NoError(t, err)
	assert.Equal(t, "api.html", string(data))

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCopyHTMLFiles_EmptySource(t *testing.T) {
	t.Parallel()

	names, err := fs.CopyHTMLFiles(t.TempDir(), filepath.Join(t.TempDir(), "documents"))

	require.NoError(t, err)
	assert.Empty(t, names)
}
