// Package inline concatenates a page's linked stylesheets and scripts into
// single blocks so the page renders without network access.
package inline

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/fwojciec/docset"
)

var _ docset.Inliner = (*Inliner)(nil)

// Inliner fetches resources and concatenates them.
type Inliner struct {
	fetcher docset.Fetcher

	// staticBase is the absolute URL @import targets resolve against.
	staticBase string
}

// NewInliner returns an Inliner that resolves @import targets against
// staticBase, typically the site's "_static/" directory.
func NewInliner(fetcher docset.Fetcher, staticBase string) *Inliner {
	return &Inliner{fetcher: fetcher, staticBase: staticBase}
}

// InlineStylesheets returns the stylesheets at urls followed by everything
// they import, depth first, each resource exactly once. Import cycles
// terminate because a URL is never fetched twice within one call.
// Unreachable resources are skipped and reported in the joined error.
func (in *Inliner) InlineStylesheets(ctx context.Context, urls []string) (string, error) {
	visited := make(map[string]bool)
	var errs []error
	var out strings.Builder

	// Explicit stack instead of recursion; reverse pushes keep document order.
	stack := make([]string, 0, len(urls))
	for i := len(urls) - 1; i >= 0; i-- {
		stack = append(stack, urls[i])
	}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return out.String(), errors.Join(append(errs, err)...)
		}

		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		// Versioned links (a.css?v=1) and plain imports name one resource.
		key := resourceKey(u)
		if visited[key] {
			continue
		}
		visited[key] = true

		css, err := in.fetcher.Fetch(ctx, u)
		if err != nil {
			errs = append(errs, fmt.Errorf("stylesheet %s: %w", u, err))
			continue
		}
		css = controlRE.ReplaceAllString(css, "")

		imports := Imports(css)
		for i := len(imports) - 1; i >= 0; i-- {
			target, err := in.resolveImport(imports[i])
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if !visited[resourceKey(target)] {
				stack = append(stack, target)
			}
		}

		css = Normalize(StripComments(StripImports(css)))
		if css == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(css)
	}

	return out.String(), errors.Join(errs...)
}

// InlineScripts fetches each script and concatenates them in order.
// Only whitespace is normalized; comment markers may occur inside string
// and regex literals.
func (in *Inliner) InlineScripts(ctx context.Context, urls []string) (string, error) {
	var errs []error
	var out strings.Builder
	seen := make(map[string]bool, len(urls))

	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true

		js, err := in.fetcher.Fetch(ctx, u)
		if err != nil {
			errs = append(errs, fmt.Errorf("script %s: %w", u, err))
			continue
		}
		js = Normalize(js)
		if js == "" {
			continue
		}
		if out.Len() > 0 {
			out.WriteByte(' ')
		}
		out.WriteString(js)
	}

	return out.String(), errors.Join(errs...)
}

// resourceKey identifies a resource by its URL without query or fragment.
func resourceKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// resolveImport maps an @import target to an absolute URL. Absolute
// targets are kept; relative ones are taken relative to the static base.
func (in *Inliner) resolveImport(target string) (string, error) {
	t, err := url.Parse(target)
	if err != nil {
		return "", docset.Errorf(docset.EINVALID, "invalid @import target %q", target)
	}
	if t.IsAbs() {
		return t.String(), nil
	}
	base, err := url.Parse(in.staticBase)
	if err != nil {
		return "", docset.Errorf(docset.EINVALID, "invalid static base %q", in.staticBase)
	}
	// Only the file name matters: Sphinx themes import siblings like
	// "basic.css" that all live flat in the static directory.
	name := path.Base(t.Path)
	return base.ResolveReference(&url.URL{Path: name, RawQuery: t.RawQuery}).String(), nil
}
