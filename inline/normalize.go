package inline

import (
	"regexp"
	"strings"
)

var (
	controlRE = regexp.MustCompile(`[\r\t\n]+`)
	spacesRE  = regexp.MustCompile(` {2,}`)

	// commentRE matches one /* ... */ block without crossing into the next.
	commentRE = regexp.MustCompile(`/\*[^*]*\*+([^/*][^*]*\*+)*/`)

	// importRE matches @import url("x"), @import url(x) and @import "x",
	// with an optional media list, up to the terminating semicolon.
	importRE = regexp.MustCompile(`(?i)@import\s+(?:url\(\s*['"]?([^'")\s]+)['"]?\s*\)|['"]([^'"]+)['"])[^;]*;?`)
)

// Normalize removes carriage returns, tabs and newlines, then collapses
// runs of spaces to one until nothing changes. The result is trimmed.
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	s = controlRE.ReplaceAllString(s, "")
	for {
		next := spacesRE.ReplaceAllString(s, " ")
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// StripComments removes /* */ comments from CSS.
func StripComments(css string) string {
	return commentRE.ReplaceAllString(css, "")
}

// Imports returns the targets of @import statements in order of appearance.
func Imports(css string) []string {
	var targets []string
	for _, m := range importRE.FindAllStringSubmatch(css, -1) {
		if m[1] != "" {
			targets = append(targets, m[1])
		} else if m[2] != "" {
			targets = append(targets, m[2])
		}
	}
	return targets
}

// StripImports removes every @import statement from CSS.
func StripImports(css string) string {
	return importRE.ReplaceAllString(css, "")
}
