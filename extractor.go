package docset

// IndexExtractor recovers typed symbol entries from a site's general index page.
type IndexExtractor interface {
	// Extract parses the index page and returns entries in document order.
	// Anchors that do not describe a symbol are skipped silently.
	Extract(html string) ([]*Entry, error)
}

// MarkerExtractor recovers symbol entries from the definition markers
// inside a single documentation page.
type MarkerExtractor interface {
	// ExtractPage returns entries whose Path is pagePath#anchor.
	ExtractPage(html, pagePath string) ([]*Entry, error)
}

// TitleExtractor extracts a human title from a page.
type TitleExtractor interface {
	ExtractTitle(html string) (string, error)
}

// VersionDetector finds the documented library version on a page.
type VersionDetector interface {
	// DetectVersion returns the version, or "" if none is found.
	DetectVersion(html string) string
}

// SiteDetector recognizes pages built by the supported documentation generator.
type SiteDetector interface {
	IsSphinx(html string) bool
}
