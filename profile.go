package docset

import (
	"net/url"
	"strings"
)

// Profile describes one documentation site and the bundle built from it.
type Profile struct {
	// Name is the bundle display name (CFBundleName).
	Name string `koanf:"name"`
	// BundleID is the CFBundleIdentifier.
	BundleID string `koanf:"bundle_id"`
	// PlatformFamily is the viewer keyword used for search scoping.
	PlatformFamily string `koanf:"platform_family"`
	// DashFamily groups the bundle with related languages in the viewer.
	DashFamily string `koanf:"dash_family"`
	// Title is the human title recorded in meta.json. When empty it is
	// extracted from the root page.
	Title string `koanf:"title"`

	RootURL    string `koanf:"root_url"`
	IndexPage  string `koanf:"index_page"`
	APIPrefix  string `koanf:"api_prefix"`
	MirrorRoot string `koanf:"mirror_root"`
	StaticPath string `koanf:"static_path"`

	// DocumentsDir is the directory under Contents/Resources holding the mirror.
	DocumentsDir string `koanf:"documents_dir"`

	// Version overrides version detection when set.
	Version        string `koanf:"version"`
	VersionMarker  string `koanf:"version_marker"`
	VersionPattern string `koanf:"version_pattern"`
	DefaultVersion string `koanf:"default_version"`

	JavaScriptEnabled bool `koanf:"javascript_enabled"`

	Rules RuleConfig `koanf:"rules"`
}

// DefaultProfile returns the profile for the Beautiful Soup 4 documentation.
func DefaultProfile() *Profile {
	return &Profile{
		Name:              "Beautiful Soup 4",
		BundleID:          "bs4",
		PlatformFamily:    "bs4",
		DashFamily:        "python",
		Title:             "Beautiful Soup",
		RootURL:           "https://www.crummy.com/software/BeautifulSoup/bs4/doc/",
		IndexPage:         "genindex.html",
		APIPrefix:         "api/",
		MirrorRoot:        "crummy.com/bs4/",
		StaticPath:        "_static/",
		DocumentsDir:      "Documents",
		VersionMarker:     "This document covers",
		VersionPattern:    `Beautiful Soup version\s+([\d.]+)`,
		DefaultVersion:    "4.x",
		JavaScriptEnabled: true,
		Rules:             DefaultRuleConfig(),
	}
}

// Validate returns an error if the profile cannot drive a crawl.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "profile name required")
	}
	if p.BundleID == "" {
		return Errorf(EINVALID, "profile bundle id required")
	}
	if p.RootURL == "" {
		return Errorf(EINVALID, "profile root url required")
	}
	u, err := url.Parse(p.RootURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "invalid root url %q", p.RootURL)
	}
	if p.IndexPage == "" {
		return Errorf(EINVALID, "profile index page required")
	}
	if p.DocumentsDir == "" {
		return Errorf(EINVALID, "profile documents dir required")
	}
	return nil
}

// BundleName returns the bundle directory name, e.g. "Beautiful_Soup_4.docset".
func (p *Profile) BundleName() string {
	return strings.ReplaceAll(p.Name, " ", "_") + ".docset"
}

// IndexFilePath is the mirror-relative path of the bundle's start page.
func (p *Profile) IndexFilePath() string {
	return p.MirrorRoot + "index.html"
}

// IndexURL is the absolute URL of the general index page.
func (p *Profile) IndexURL() string {
	return p.root() + p.IndexPage
}

// StaticURL resolves a resource name against the site's static directory.
func (p *Profile) StaticURL(name string) string {
	return p.root() + p.StaticPath + strings.TrimPrefix(name, "/")
}

// PageURL maps a mirror-relative path back to its remote URL.
func (p *Profile) PageURL(mirrorPath string) string {
	return p.root() + strings.TrimPrefix(mirrorPath, p.MirrorRoot)
}

func (p *Profile) root() string {
	if strings.HasSuffix(p.RootURL, "/") {
		return p.RootURL
	}
	return p.RootURL + "/"
}
