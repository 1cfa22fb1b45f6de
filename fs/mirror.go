package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/docset"
)

// Ensure MirrorWriter implements docset.PageWriter at compile time.
var _ docset.PageWriter = (*MirrorWriter)(nil)

// MirrorWriter writes rewritten pages below a documents directory.
type MirrorWriter struct {
	baseDir string
}

// NewMirrorWriter creates a new MirrorWriter that writes to the given base directory.
func NewMirrorWriter(baseDir string) *MirrorWriter {
	return &MirrorWriter{baseDir: baseDir}
}

// WritePage writes html to path, a slash-separated path relative to the
// base directory. Paths that would leave the base directory are rejected.
func (w *MirrorWriter) WritePage(ctx context.Context, path, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := localPath(w.baseDir, path)
	if err != nil {
		return err
	}

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(html), 0644)
}

func localPath(base, rel string) (string, error) {
	p := filepath.FromSlash(rel)
	if rel == "" || !filepath.IsLocal(p) {
		return "", docset.Errorf(docset.EINVALID, "path %q escapes the documents directory", rel)
	}
	return filepath.Join(base, p), nil
}
