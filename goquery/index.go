package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docset"
)

var _ docset.IndexExtractor = (*IndexExtractor)(nil)

// IndexExtractor reads symbol entries from a Sphinx general index page
// (genindex.html).
type IndexExtractor struct {
	// APIPrefix restricts entries to hrefs under the API reference.
	APIPrefix string

	// MirrorRoot is prepended to every href to form the entry path.
	MirrorRoot string

	Classifier *docset.Classifier
}

// NewIndexExtractor returns an IndexExtractor configured from p.
func NewIndexExtractor(p *docset.Profile) *IndexExtractor {
	return &IndexExtractor{
		APIPrefix:  p.APIPrefix,
		MirrorRoot: p.MirrorRoot,
		Classifier: docset.NewClassifier(p.Rules),
	}
}

// Extract walks table.indextable links in document order. Each href is
// used at most once; the first label seen for it wins.
func (x *IndexExtractor) Extract(html string) ([]*docset.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docset.Errorf(docset.EINVALID, "failed to parse index page: %v", err)
	}

	classifier := x.Classifier
	if classifier == nil {
		classifier = docset.NewClassifier(docset.DefaultRuleConfig())
	}

	seen := make(map[string]bool)
	var entries []*docset.Entry

	doc.Find("table.indextable a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		label := strings.TrimSpace(s.Text())

		if !strings.HasPrefix(href, x.APIPrefix) || !strings.Contains(href, "#") {
			return
		}
		if skipLabel(label) || seen[href] {
			return
		}
		seen[href] = true

		name := entryName(label, href)
		if name == "" {
			return
		}

		entries = append(entries, &docset.Entry{
			Name: name,
			Type: classifier.Classify(label, name),
			Path: x.MirrorRoot + href,
		})
	})

	return entries, nil
}

// skipLabel reports labels that do not name a symbol: secondary
// "(in module x)" links and numbered back-references like "[1]".
func skipLabel(label string) bool {
	if label == "" || strings.HasPrefix(label, "(") {
		return true
	}
	digits := strings.NewReplacer("[", "", "]", "").Replace(label)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// entryName derives the symbol name from an index label.
func entryName(label, href string) string {
	name := label
	if i := strings.LastIndex(label, "("); i > 0 {
		name = strings.TrimRight(strings.TrimSpace(label[:i]), ".")
	}

	if strings.HasPrefix(strings.ToLower(label), "module") {
		if _, frag, ok := strings.Cut(href, "#"); ok && strings.HasPrefix(frag, "module-") {
			name = strings.TrimPrefix(frag, "module-")
		}
	}
	return name
}
