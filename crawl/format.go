package crawl

import (
	"fmt"
	"time"
)

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatSummary renders the one-line outcome of a run.
func FormatSummary(r *Result, elapsed time.Duration) string {
	s := fmt.Sprintf("Mirrored %d pages (%s), indexed %d of %d entries in %s",
		r.Pages, FormatBytes(r.Bytes), r.Inserted, r.Entries, elapsed.Round(time.Millisecond))
	if r.Failed > 0 {
		s += fmt.Sprintf(", %d pages failed", r.Failed)
	}
	if r.Warnings > 0 {
		s += fmt.Sprintf(", %d warnings", r.Warnings)
	}
	return s
}
