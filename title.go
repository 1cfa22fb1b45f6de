package docset

import "strings"

// titleSeparators split a page title from the site suffix Sphinx appends,
// as in "Beautiful Soup Documentation — Beautiful Soup 4.12.3 documentation".
var titleSeparators = []string{" — ", " – ", " | ", " - "}

// CleanTitle reduces a page title to the project name.
func CleanTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	for _, sep := range titleSeparators {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
			break
		}
	}
	for _, suffix := range []string{" documentation", " Documentation"} {
		title = strings.TrimSuffix(title, suffix)
	}
	return strings.TrimSpace(title)
}
