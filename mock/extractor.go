package mock

import "github.com/fwojciec/docset"

var (
	_ docset.IndexExtractor  = (*IndexExtractor)(nil)
	_ docset.MarkerExtractor = (*MarkerExtractor)(nil)
	_ docset.TitleExtractor  = (*TitleExtractor)(nil)
	_ docset.VersionDetector = (*VersionDetector)(nil)
)

// IndexExtractor is a mock implementation of docset.IndexExtractor.
type IndexExtractor struct {
	ExtractFn func(html string) ([]*docset.Entry, error)
}

func (e *IndexExtractor) Extract(html string) ([]*docset.Entry, error) {
	return e.ExtractFn(html)
}

// MarkerExtractor is a mock implementation of docset.MarkerExtractor.
type MarkerExtractor struct {
	ExtractPageFn func(html, pagePath string) ([]*docset.Entry, error)
}

func (e *MarkerExtractor) ExtractPage(html, pagePath string) ([]*docset.Entry, error) {
	return e.ExtractPageFn(html, pagePath)
}

// TitleExtractor is a mock implementation of docset.TitleExtractor.
type TitleExtractor struct {
	ExtractTitleFn func(html string) (string, error)
}

func (e *TitleExtractor) ExtractTitle(html string) (string, error) {
	return e.ExtractTitleFn(html)
}

// VersionDetector is a mock implementation of docset.VersionDetector.
type VersionDetector struct {
	DetectVersionFn func(html string) string
}

func (d *VersionDetector) DetectVersion(html string) string {
	return d.DetectVersionFn(html)
}

var _ docset.SiteDetector = (*SiteDetector)(nil)

// SiteDetector is a mock implementation of docset.SiteDetector.
type SiteDetector struct {
	IsSphinxFn func(html string) bool
}

func (d *SiteDetector) IsSphinx(html string) bool {
	return d.IsSphinxFn(html)
}
