package goquery

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docset"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ docset.PageRewriter = (*Rewriter)(nil)

// Step transforms a document into a new one. Steps must not modify doc;
// they clone it first. Non-fatal problems are added to warn.
type Step func(ctx context.Context, page *docset.Page, doc *goquery.Document, warn func(error)) (*goquery.Document, error)

// Rewriter turns a fetched Sphinx page into a self-contained offline page
// by running it through a fixed pipeline of steps.
type Rewriter struct {
	inliner docset.Inliner
	assets  docset.AssetLocalizer
	steps   []Step
}

// NewRewriter returns a Rewriter that inlines stylesheets and scripts,
// localizes images (when assets is not nil) and strips search and index
// chrome.
func NewRewriter(inliner docset.Inliner, assets docset.AssetLocalizer) *Rewriter {
	r := &Rewriter{inliner: inliner, assets: assets}
	r.steps = []Step{r.inlineStylesheets, r.inlineScripts, r.localizeImages, removeChrome}
	return r
}

// Rewrite runs the pipeline and renders the result as indented HTML.
func (r *Rewriter) Rewrite(ctx context.Context, page *docset.Page) (*docset.RewriteResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, docset.Errorf(docset.EINVALID, "failed to parse %s: %v", page.URL, err)
	}

	result := &docset.RewriteResult{}
	warn := func(err error) { result.Warnings = append(result.Warnings, err) }

	for _, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if doc, err = step(ctx, page, doc, warn); err != nil {
			return nil, err
		}
	}

	out, err := render(doc)
	if err != nil {
		return nil, docset.Errorf(docset.EINTERNAL, "failed to render %s: %v", page.URL, err)
	}
	result.HTML = out
	return result, nil
}

func (r *Rewriter) inlineStylesheets(ctx context.Context, page *docset.Page, doc *goquery.Document, warn func(error)) (*goquery.Document, error) {
	doc = goquery.CloneDocument(doc)
	links := doc.Find(`head > link[rel~="stylesheet"][href], head > link[href$=".css"]`)
	if links.Length() == 0 {
		return doc, nil
	}

	urls := resolveAll(page.URL, links, "href")
	css, err := r.inliner.InlineStylesheets(ctx, urls)
	if err != nil {
		warn(err)
	}
	if css == "" {
		return doc, nil
	}

	links.First().ReplaceWithNodes(element(atom.Style, nil, css))
	links.Slice(1, goquery.ToEnd).Remove()
	return doc, nil
}

func (r *Rewriter) inlineScripts(ctx context.Context, page *docset.Page, doc *goquery.Document, warn func(error)) (*goquery.Document, error) {
	doc = goquery.CloneDocument(doc)
	scripts := doc.Find("head > script")
	if scripts.Length() == 0 {
		return doc, nil
	}

	urls := resolveAll(page.URL, scripts.Filter("[src]"), "src")
	js, err := r.inliner.InlineScripts(ctx, urls)
	if err != nil {
		warn(err)
	}
	if js == "" {
		return doc, nil
	}

	scripts.First().ReplaceWithNodes(element(atom.Script, []html.Attribute{
		{Key: "type", Val: "text/javascript"},
		{Key: "id", Val: "documentation_options"},
		{Key: "data-url_root", Val: "./"},
	}, js))
	scripts.Slice(1, goquery.ToEnd).Filter("[src]").Remove()
	return doc, nil
}

func (r *Rewriter) localizeImages(ctx context.Context, page *docset.Page, doc *goquery.Document, warn func(error)) (*goquery.Document, error) {
	doc = goquery.CloneDocument(doc)
	if r.assets == nil {
		return doc, nil
	}

	doc.Find("img[src]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			return true
		}
		ref, err := r.assets.Localize(ctx, page.URL, src, page.Path)
		if err != nil {
			warn(err)
			return true
		}
		img.SetAttr("src", ref)
		return true
	})
	return doc, ctx.Err()
}

// removeChrome drops the search box and links to search and index pages,
// which do not work inside a docset viewer.
func removeChrome(_ context.Context, _ *docset.Page, doc *goquery.Document, _ func(error)) (*goquery.Document, error) {
	doc = goquery.CloneDocument(doc)
	doc.Find("#searchbox").Empty()
	doc.Find(`link[rel="search"], link[rel="index"], a[href$="genindex.html"]`).Remove()
	return doc, nil
}

// resolveAll resolves attr of every element in sel against base, in
// document order. Unparseable references are passed through unchanged.
func resolveAll(base string, sel *goquery.Selection, attr string) []string {
	b, err := url.Parse(base)
	urls := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		ref := strings.TrimSpace(s.AttrOr(attr, ""))
		if ref == "" {
			return
		}
		u, perr := url.Parse(ref)
		if err != nil || perr != nil {
			urls = append(urls, ref)
			return
		}
		urls = append(urls, b.ResolveReference(u).String())
	})
	return urls
}

func element(a atom.Atom, attrs []html.Attribute, text string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}

func render(doc *goquery.Document) (string, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return gohtml.Format(buf.String()), nil
}
