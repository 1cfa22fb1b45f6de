// Package trafilatura extracts page titles with go-trafilatura.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/docset"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Extractor implements docset.TitleExtractor at compile time.
var _ docset.TitleExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to read a page's title metadata.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractTitle returns the cleaned metadata title of rawHTML.
func (e *Extractor) ExtractTitle(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", docset.Errorf(docset.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", err
	}

	title := docset.CleanTitle(result.Metadata.Title)
	if title == "" {
		return "", docset.Errorf(docset.ENOTFOUND, "no title found")
	}
	return title, nil
}
