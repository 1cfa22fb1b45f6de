package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Detector recognizes pages generated by Sphinx.
// It checks the meta generator tag and structural markers left by the
// stock themes (alabaster, classic, ReadTheDocs, furo).
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// IsSphinx reports whether html looks like a Sphinx-built page.
func (d *Detector) IsSphinx(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}

	// Meta generator tag first - most reliable when present
	generator := ""
	doc.Find("meta[name='generator']").Each(func(_ int, s *goquery.Selection) {
		if content, exists := s.Attr("content"); exists {
			generator = strings.ToLower(content)
		}
	})
	if generator != "" {
		return strings.Contains(generator, "sphinx") || strings.Contains(generator, "docutils")
	}

	return d.hasSelector(doc, ".toctree-wrapper") ||
		d.hasSelector(doc, ".wy-nav-side") ||
		d.hasSelector(doc, ".wy-menu-vertical") ||
		d.hasSelector(doc, ".sphinxsidebar") ||
		d.hasSelector(doc, "script#documentation_options") ||
		d.hasSelector(doc, "a.headerlink")
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
