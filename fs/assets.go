package fs

import (
	"context"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docset"
)

var _ docset.AssetLocalizer = (*AssetLocalizer)(nil)

// AssetLocalizer downloads images and saves them beside the page that
// references them. It is safe for concurrent use.
type AssetLocalizer struct {
	fetcher docset.Fetcher
	baseDir string

	mu    sync.Mutex
	saved map[string]savedAsset // keyed by mirror-relative destination
}

type savedAsset struct {
	url  string
	hash uint64
}

// NewAssetLocalizer returns an AssetLocalizer writing below baseDir.
func NewAssetLocalizer(fetcher docset.Fetcher, baseDir string) *AssetLocalizer {
	return &AssetLocalizer{
		fetcher: fetcher,
		baseDir: baseDir,
		saved:   make(map[string]savedAsset),
	}
}

// Localize saves the asset at src (relative to pageURL) to
// dir(pagePath)/<basename> and returns the basename. Two different assets
// that share a basename in one directory cannot both be kept; the second
// is rejected with ECONFLICT.
func (l *AssetLocalizer) Localize(ctx context.Context, pageURL, src, pagePath string) (string, error) {
	abs, name, err := resolveAsset(pageURL, src)
	if err != nil {
		return "", err
	}
	rel := path.Join(path.Dir(pagePath), name)

	l.mu.Lock()
	prev, ok := l.saved[rel]
	l.mu.Unlock()
	if ok && prev.url == abs {
		return name, nil
	}

	body, err := l.fetcher.Fetch(ctx, abs)
	if err != nil {
		return "", err
	}
	sum := xxhash.Sum64String(body)

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.saved[rel]; ok {
		if prev.hash != sum {
			return "", docset.Errorf(docset.ECONFLICT, "asset %s from %s conflicts with %s", rel, abs, prev.url)
		}
		return name, nil
	}

	fullPath, err := localPath(l.baseDir, rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(fullPath, []byte(body), 0644); err != nil {
		return "", err
	}
	l.saved[rel] = savedAsset{url: abs, hash: sum}
	return name, nil
}

// resolveAsset returns the absolute URL of src and its file name.
func resolveAsset(pageURL, src string) (string, string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", "", docset.Errorf(docset.EINVALID, "invalid page url %q", pageURL)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", "", docset.Errorf(docset.EINVALID, "invalid asset reference %q", src)
	}
	u := base.ResolveReference(ref)
	u.Fragment = ""

	name := path.Base(u.Path)
	if name == "." || name == "/" || name == ".." {
		return "", "", docset.Errorf(docset.EINVALID, "asset reference %q has no file name", src)
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return u.String(), name, nil
}
