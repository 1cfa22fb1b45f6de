package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docset"
)

var _ docset.VersionDetector = (*VersionDetector)(nil)

// VersionDetector finds the documented version in the first paragraph
// containing a marker phrase.
type VersionDetector struct {
	marker  string
	pattern *regexp.Regexp
	def     string
}

// NewVersionDetector returns a detector configured from the profile's
// version fields. The pattern's first capture group is the version.
func NewVersionDetector(p *docset.Profile) (*VersionDetector, error) {
	d := &VersionDetector{marker: p.VersionMarker, def: p.DefaultVersion}
	if p.VersionPattern != "" {
		re, err := regexp.Compile(p.VersionPattern)
		if err != nil {
			return nil, docset.Errorf(docset.EINVALID, "invalid version pattern %q: %v", p.VersionPattern, err)
		}
		d.pattern = re
	}
	return d, nil
}

// DetectVersion returns the captured version, or the default version when
// no paragraph matches.
func (d *VersionDetector) DetectVersion(html string) string {
	if d.marker == "" || d.pattern == nil {
		return d.def
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return d.def
	}

	var text string
	doc.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if t := p.Text(); strings.Contains(t, d.marker) {
			text = t
			return false
		}
		return true
	})

	m := d.pattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return d.def
	}
	// A sentence-ending period is not part of the version.
	if v := strings.TrimRight(m[1], "."); v != "" {
		return v
	}
	return d.def
}
