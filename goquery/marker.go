package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docset"
)

var _ docset.MarkerExtractor = (*MarkerExtractor)(nil)

// markerTypes maps Sphinx domain object classes to entry types, checked in order.
var markerTypes = []struct {
	class string
	typ   docset.EntryType
}{
	{"method", docset.EntryMethod},
	{"class", docset.EntryClass},
	{"function", docset.EntryFunction},
	{"attribute", docset.EntryAttribute},
	{"exception", docset.EntryException},
	{"data", docset.EntryConstant},
}

// MarkerExtractor reads entries from the definition markers of a rendered
// Sphinx page: <dt id="..."> signatures inside <dl class="py method"> and
// similar blocks.
type MarkerExtractor struct{}

// NewMarkerExtractor creates a new MarkerExtractor.
func NewMarkerExtractor() *MarkerExtractor {
	return &MarkerExtractor{}
}

// ExtractPage returns one entry per typed definition marker in html.
// Markers without a recognized type are ignored.
func (x *MarkerExtractor) ExtractPage(html, pagePath string) ([]*docset.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docset.Errorf(docset.EINVALID, "failed to parse %s: %v", pagePath, err)
	}

	var entries []*docset.Entry
	doc.Find("dt[id]").Each(func(_ int, dt *goquery.Selection) {
		id, _ := dt.Attr("id")
		id = strings.TrimSpace(id)
		if id == "" {
			return
		}

		typ, ok := markerType(dt)
		if !ok {
			return
		}

		name := id
		if i := strings.LastIndex(id, "."); i >= 0 && i < len(id)-1 {
			name = id[i+1:]
		}

		entries = append(entries, &docset.Entry{
			Name: name,
			Type: typ,
			Path: pagePath + "#" + id,
		})
	})

	return entries, nil
}

// markerType looks at the dt's own classes first, then its parent dl.
func markerType(dt *goquery.Selection) (docset.EntryType, bool) {
	for _, s := range []*goquery.Selection{dt, dt.Parent().Filter("dl")} {
		for _, m := range markerTypes {
			if s.HasClass(m.class) {
				return m.typ, true
			}
		}
	}
	return "", false
}
