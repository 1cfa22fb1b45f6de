package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// skippedPrefixes name generated pages that are useless offline.
var skippedPrefixes = []string{"search", "genindex"}

// CopyHTMLFiles copies the *.html files directly inside src to dst,
// skipping search and general index pages. It returns the copied file
// names, sorted.
func CopyHTMLFiles(src, dst string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(src, "*.html"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	if err := os.MkdirAll(dst, 0755); err != nil {
		return nil, err
	}

	var names []string
	for _, m := range matches {
		name := filepath.Base(m)
		if skipHTML(name) {
			continue
		}
		if info, err := os.Stat(m); err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := copyFile(m, filepath.Join(dst, name)); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}

func skipHTML(name string) bool {
	for _, p := range skippedPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
