package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docset"
	"github.com/fwojciec/docset/etree"
	"github.com/fwojciec/docset/fs"
	"github.com/fwojciec/docset/goquery"
	"github.com/fwojciec/docset/koanf"
	dsslog "github.com/fwojciec/docset/slog"
	"github.com/fwojciec/docset/sqlite"
	"github.com/google/uuid"
)

// documentsDir is the page directory of bundles built from local HTML.
const documentsDir = "documents"

// Builder turns a local HTML directory into a docset archive.
type Builder struct {
	HTMLDir    string
	DocsetName string
	Version    string
	// Config is an optional profile file. Without one the bundle name and
	// identifier are derived from DocsetName.
	Config    string
	OutputDir string
	EnvPrefix string

	Stdout io.Writer
	Logger *slog.Logger
}

// NewLogger returns a text logger tagged with a fresh run id.
func NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil)).With("run", uuid.NewString())
}

// Build writes <OutputDir>/<DocsetName>.tgz and returns its path. The
// bundle directory only exists while the archive is being made.
func (b *Builder) Build(ctx context.Context) (string, error) {
	if info, err := os.Stat(b.HTMLDir); err != nil || !info.IsDir() {
		return "", docset.Errorf(docset.ENOTFOUND, "HTML directory %s does not exist", b.HTMLDir)
	}

	profile, err := b.profile()
	if err != nil {
		return "", err
	}

	bundle := fs.NewBundle(b.OutputDir, b.DocsetName, documentsDir)
	if err := bundle.Create(); err != nil {
		return "", fmt.Errorf("create bundle: %w", err)
	}
	fmt.Fprintf(b.Stdout, "Creating docset at %s\n", bundle.FinalDir())

	n, err := b.fill(ctx, profile, bundle)
	if err != nil {
		_ = bundle.Abort()
		return "", err
	}
	fmt.Fprintf(b.Stdout, "Generated %d entries in docset\n", n)

	if err := bundle.Commit(); err != nil {
		_ = bundle.Abort()
		return "", fmt.Errorf("commit bundle: %w", err)
	}
	defer os.RemoveAll(bundle.FinalDir())

	dest := filepath.Join(b.OutputDir, b.DocsetName+".tgz")
	if err := fs.Archive(ctx, bundle.FinalDir(), dest); err != nil {
		return "", fmt.Errorf("archive bundle: %w", err)
	}
	fmt.Fprintf(b.Stdout, "Created %s\n", dest)

	return dest, nil
}

// profile loads the site profile and adapts it to a flat local build.
func (b *Builder) profile() (*docset.Profile, error) {
	p, err := koanf.LoadProfile(b.Config, b.EnvPrefix)
	if err != nil {
		return nil, err
	}
	if b.Config == "" {
		name := strings.TrimSuffix(b.DocsetName, ".docset")
		p.Name = name
		p.Title = name
		p.BundleID = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		p.PlatformFamily = p.BundleID
	}
	// Pages are copied flat into the documents directory.
	p.MirrorRoot = ""
	p.DocumentsDir = documentsDir
	if b.Version != "" {
		p.Version = b.Version
	}
	return p, p.Validate()
}

// fill copies pages and writes the index and metadata into the bundle.
// It returns the number of entries extracted.
func (b *Builder) fill(ctx context.Context, profile *docset.Profile, bundle *fs.Bundle) (int, error) {
	files, err := fs.CopyHTMLFiles(b.HTMLDir, bundle.DocumentsDir())
	if err != nil {
		return 0, fmt.Errorf("copy pages: %w", err)
	}

	var extractor docset.MarkerExtractor = goquery.NewMarkerExtractor()
	var entries []*docset.Entry
	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(bundle.DocumentsDir(), name))
		if err != nil {
			return 0, err
		}
		found, err := extractor.ExtractPage(string(data), name)
		if err != nil {
			// Unparseable pages still ship; they just add no entries.
			if b.Logger != nil {
				b.Logger.Warn("extract page", "file", name, "err", err)
			}
			continue
		}
		entries = append(entries, found...)
	}

	db := sqlite.NewDB(bundle.IndexPath())
	if err := db.Open(); err != nil {
		return 0, fmt.Errorf("open index: %w", err)
	}
	var index docset.IndexService = sqlite.NewIndexService(db)
	if b.Logger != nil {
		index = dsslog.NewLoggingIndexService(index, b.Logger)
	}
	if _, err := index.AddEntries(ctx, entries); err != nil {
		db.Close()
		return 0, fmt.Errorf("index entries: %w", err)
	}
	if err := db.Close(); err != nil {
		return 0, fmt.Errorf("close index: %w", err)
	}

	version := profile.Version
	if err := etree.NewInfoWriter(bundle.InfoPath()).WriteInfo(docset.NewBundleInfo(profile, version)); err != nil {
		return 0, fmt.Errorf("write info: %w", err)
	}
	if err := bundle.WriteMeta(docset.NewBundleMeta(profile, profile.Title, version)); err != nil {
		return 0, fmt.Errorf("write meta: %w", err)
	}

	return len(entries), nil
}
