package mock

import (
	"context"

	"github.com/fwojciec/docset"
)

var (
	_ docset.PageRewriter   = (*PageRewriter)(nil)
	_ docset.Inliner        = (*Inliner)(nil)
	_ docset.AssetLocalizer = (*AssetLocalizer)(nil)
	_ docset.PageWriter     = (*PageWriter)(nil)
)

// PageRewriter is a mock implementation of docset.PageRewriter.
type PageRewriter struct {
	RewriteFn func(ctx context.Context, page *docset.Page) (*docset.RewriteResult, error)
}

func (r *PageRewriter) Rewrite(ctx context.Context, page *docset.Page) (*docset.RewriteResult, error) {
	return r.RewriteFn(ctx, page)
}

// Inliner is a mock implementation of docset.Inliner.
type Inliner struct {
	InlineStylesheetsFn func(ctx context.Context, urls []string) (string, error)
	InlineScriptsFn     func(ctx context.Context, urls []string) (string, error)
}

func (i *Inliner) InlineStylesheets(ctx context.Context, urls []string) (string, error) {
	return i.InlineStylesheetsFn(ctx, urls)
}

func (i *Inliner) InlineScripts(ctx context.Context, urls []string) (string, error) {
	return i.InlineScriptsFn(ctx, urls)
}

// AssetLocalizer is a mock implementation of docset.AssetLocalizer.
type AssetLocalizer struct {
	LocalizeFn func(ctx context.Context, pageURL, src, pagePath string) (string, error)
}

func (l *AssetLocalizer) Localize(ctx context.Context, pageURL, src, pagePath string) (string, error) {
	return l.LocalizeFn(ctx, pageURL, src, pagePath)
}

// PageWriter is a mock implementation of docset.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, path, html string) error
}

func (w *PageWriter) WritePage(ctx context.Context, path, html string) error {
	return w.WritePageFn(ctx, path, html)
}
