// Package etree writes the docset property list with beevik/etree.
package etree

import (
	"github.com/beevik/etree"
	"github.com/fwojciec/docset"
)

var _ docset.InfoWriter = (*InfoWriter)(nil)

// InfoWriter writes Contents/Info.plist.
type InfoWriter struct {
	path string
}

// NewInfoWriter returns an InfoWriter that writes to path.
func NewInfoWriter(path string) *InfoWriter {
	return &InfoWriter{path: path}
}

// WriteInfo writes info as an XML property list.
func (w *InfoWriter) WriteInfo(info *docset.BundleInfo) error {
	if err := validateInfo(info); err != nil {
		return err
	}
	if err := NewPlist(info).WriteToFile(w.path); err != nil {
		return docset.Errorf(docset.EINTERNAL, "write %s: %v", w.path, err)
	}
	return nil
}

func validateInfo(info *docset.BundleInfo) error {
	if info.ID == "" {
		return docset.Errorf(docset.EINVALID, "bundle identifier required")
	}
	if info.Name == "" {
		return docset.Errorf(docset.EINVALID, "bundle name required")
	}
	return nil
}

// NewPlist builds the property list document for info. Version keys are
// present only when a version is known.
func NewPlist(info *docset.BundleInfo) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd"`)

	plist := doc.CreateElement("plist")
	plist.CreateAttr("version", "1.0")
	dict := plist.CreateElement("dict")

	str := func(key, value string) {
		dict.CreateElement("key").SetText(key)
		dict.CreateElement("string").SetText(value)
	}
	boolean := func(key string, value bool) {
		dict.CreateElement("key").SetText(key)
		if value {
			dict.CreateElement("true")
		} else {
			dict.CreateElement("false")
		}
	}

	str("CFBundleIdentifier", info.ID)
	str("CFBundleName", info.Name)
	str("DocSetPlatformFamily", info.PlatformFamily)
	if info.DashFamily != "" {
		str("DashDocSetFamily", info.DashFamily)
	}
	str("dashIndexFilePath", info.IndexFilePath)
	if info.Version != "" {
		str("CFBundleShortVersionString", info.Version)
		str("DocSetVersionString", info.Version)
	}
	boolean("isDashDocset", true)
	boolean("isJavaScriptEnabled", info.JavaScriptEnabled)

	doc.Indent(2)
	return doc
}
