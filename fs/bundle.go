// Package fs stores docset bundles on the local filesystem.
package fs

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fwojciec/docset"
)

// Bundle file names relative to the bundle directory.
const (
	InfoFile  = "Contents/Info.plist"
	IndexFile = "Contents/Resources/docSet.dsidx"
	MetaFile  = "meta.json"
)

// IconFiles are copied into the bundle root when present.
var IconFiles = []string{"icon.png", "icon@2x.png"}

var _ docset.MetaWriter = (*Bundle)(nil)

// Bundle is a docset directory built with atomic update semantics.
// Files are written to baseDir/name.tmp and moved to baseDir/name on Commit.
type Bundle struct {
	baseDir      string
	name         string
	documentsDir string
}

// NewBundle creates a new Bundle. documentsDir is the directory under
// Contents/Resources that holds the pages, "Documents" or "documents".
func NewBundle(baseDir, name, documentsDir string) *Bundle {
	return &Bundle{
		baseDir:      baseDir,
		name:         name,
		documentsDir: documentsDir,
	}
}

// Dir is the directory currently being built.
func (b *Bundle) Dir() string {
	return filepath.Join(b.baseDir, b.name+".tmp")
}

// FinalDir is where the bundle lives after Commit.
func (b *Bundle) FinalDir() string {
	return filepath.Join(b.baseDir, b.name)
}

// DocumentsDir is the page root inside the bundle being built.
func (b *Bundle) DocumentsDir() string {
	return filepath.Join(b.Dir(), "Contents", "Resources", b.documentsDir)
}

// IndexPath is the SQLite index inside the bundle being built.
func (b *Bundle) IndexPath() string {
	return filepath.Join(b.Dir(), filepath.FromSlash(IndexFile))
}

// InfoPath is the Info.plist inside the bundle being built.
func (b *Bundle) InfoPath() string {
	return filepath.Join(b.Dir(), filepath.FromSlash(InfoFile))
}

// Create lays out an empty bundle, discarding leftovers of an earlier
// aborted run.
func (b *Bundle) Create() error {
	if err := os.RemoveAll(b.Dir()); err != nil {
		return err
	}
	return os.MkdirAll(b.DocumentsDir(), 0755)
}

type metaJSON struct {
	Extra   metaExtra `json:"extra"`
	Name    string    `json:"name"`
	Title   string    `json:"title"`
	Version string    `json:"version"`
}

type metaExtra struct {
	IndexFilePath string `json:"indexFilePath"`
}

// WriteMeta writes meta.json at the bundle root.
func (b *Bundle) WriteMeta(meta *docset.BundleMeta) error {
	data, err := json.MarshalIndent(metaJSON{
		Extra:   metaExtra{IndexFilePath: meta.IndexFilePath},
		Name:    meta.Name,
		Title:   meta.Title,
		Version: meta.Version,
	}, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(b.Dir(), MetaFile), data, 0644)
}

// CopyIcons copies the IconFiles found in dir into the bundle root and
// returns how many were copied. Missing icons are not an error.
func (b *Bundle) CopyIcons(dir string) (int, error) {
	var n int
	for _, name := range IconFiles {
		err := copyFile(filepath.Join(dir, name), filepath.Join(b.Dir(), name))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (b *Bundle) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(b.FinalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(b.Dir(), b.FinalDir()); err != nil {
		return err
	}

	return nil
}

func (b *Bundle) Abort() error {
	return os.RemoveAll(b.Dir())
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
