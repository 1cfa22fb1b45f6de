package docset

// BundleInfo is the content of a bundle's Contents/Info.plist.
type BundleInfo struct {
	ID             string
	Name           string
	PlatformFamily string
	DashFamily     string
	IndexFilePath  string
	Version        string

	JavaScriptEnabled bool
}

// BundleMeta is the content of a bundle's meta.json.
type BundleMeta struct {
	Name          string
	Title         string
	Version       string
	IndexFilePath string
}

// InfoWriter writes Info.plist.
type InfoWriter interface {
	WriteInfo(info *BundleInfo) error
}

// MetaWriter writes meta.json.
type MetaWriter interface {
	WriteMeta(meta *BundleMeta) error
}

// NewBundleInfo builds plist content from a profile.
func NewBundleInfo(p *Profile, version string) *BundleInfo {
	return &BundleInfo{
		ID:                p.BundleID,
		Name:              p.Name,
		PlatformFamily:    p.PlatformFamily,
		DashFamily:        p.DashFamily,
		IndexFilePath:     p.IndexFilePath(),
		Version:           version,
		JavaScriptEnabled: p.JavaScriptEnabled,
	}
}

// NewBundleMeta builds meta.json content from a profile.
func NewBundleMeta(p *Profile, title, version string) *BundleMeta {
	if title == "" {
		title = p.Name
	}
	return &BundleMeta{
		Name:          p.Name,
		Title:         title,
		Version:       version,
		IndexFilePath: p.IndexFilePath(),
	}
}
