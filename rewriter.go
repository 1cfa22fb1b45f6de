package docset

import "context"

// Page is a fetched documentation page headed for the mirror.
type Page struct {
	// URL the page was fetched from; relative references resolve against it.
	URL string

	// HTML is the raw markup as fetched.
	HTML string

	// Path is the page's destination relative to the documents directory.
	Path string
}

// RewriteResult is the offline rendition of a page.
type RewriteResult struct {
	HTML string

	// Warnings collects non-fatal failures, such as a stylesheet or image
	// that could not be downloaded. The page is still usable.
	Warnings []error
}

// PageRewriter turns a fetched page into its self-contained offline form.
type PageRewriter interface {
	Rewrite(ctx context.Context, page *Page) (*RewriteResult, error)
}

// Inliner concatenates linked resources into a single text block.
type Inliner interface {
	// InlineStylesheets fetches the stylesheets and everything they import.
	// The error joins per-resource failures; the returned text holds
	// everything that was fetched.
	InlineStylesheets(ctx context.Context, urls []string) (string, error)

	// InlineScripts fetches and concatenates the scripts in order.
	InlineScripts(ctx context.Context, urls []string) (string, error)
}

// AssetLocalizer downloads page assets into the mirror.
type AssetLocalizer interface {
	// Localize resolves src against pageURL, saves the asset next to the
	// page at pagePath and returns the reference to use in its place.
	Localize(ctx context.Context, pageURL, src, pagePath string) (string, error)
}

// PageWriter persists rewritten pages under the documents directory.
type PageWriter interface {
	WritePage(ctx context.Context, path, html string) error
}
