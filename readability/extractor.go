// Package readability extracts page titles with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/docset"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docset.TitleExtractor at compile time.
var _ docset.TitleExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to read a page's title.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTitle returns the cleaned article title of rawHTML.
func (e *Extractor) ExtractTitle(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", docset.Errorf(docset.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	title := docset.CleanTitle(article.Title)
	if title == "" {
		return "", docset.Errorf(docset.ENOTFOUND, "no title found")
	}
	return title, nil
}
