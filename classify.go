package docset

import "strings"

// RuleConfig holds the site-specific word lists used by the classifier.
type RuleConfig struct {
	// ConstantPrefixes mark a name as a constant when it starts with one of them.
	ConstantPrefixes []string `koanf:"constant_prefixes"`

	// ConstantNames mark a name as a constant when it contains one of them.
	ConstantNames []string `koanf:"constant_names"`

	// ExceptionNames mark a name as an exception when it equals one of them.
	ExceptionNames []string `koanf:"exception_names"`
}

// DefaultRuleConfig returns the word lists for the Beautiful Soup 4 docs.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		ConstantPrefixes: []string{"default_", "prefix", "suffix"},
		ConstantNames:    []string{"charset_aliases"},
		ExceptionNames:   []string{"parserrejectedmarkup"},
	}
}

// Rule maps a matching index label to an entry type. Label and name are
// passed lower-cased and trimmed.
type Rule struct {
	Type  EntryType
	Match func(label, name string) bool
}

// Classifier assigns an EntryType to a general-index label. Rules are
// evaluated in order and the first match wins; when nothing matches the
// entry is a Function. A Classifier has no state besides its rules.
type Classifier struct {
	Rules []Rule
}

// NewClassifier returns a Classifier with the standard rule order
// parameterized by cfg.
func NewClassifier(cfg RuleConfig) *Classifier {
	constantPrefixes := lowerAll(cfg.ConstantPrefixes)
	constantNames := lowerAll(cfg.ConstantNames)
	exceptionNames := lowerAll(cfg.ExceptionNames)

	return &Classifier{Rules: []Rule{
		{EntryModule, func(label, _ string) bool {
			return strings.HasPrefix(label, "module") || strings.Contains(label, "(module)")
		}},
		{EntryClass, func(label, _ string) bool {
			return strings.Contains(label, "class") && !strings.Contains(label, "exception")
		}},
		{EntryException, func(label, name string) bool {
			return strings.Contains(label, "exception") ||
				strings.Contains(label, "warning") ||
				equalsAny(name, exceptionNames)
		}},
		{EntryMethod, func(label, _ string) bool {
			return strings.Contains(label, "(method)") || strings.Contains(label, " method")
		}},
		{EntryAttribute, func(label, _ string) bool {
			return strings.Contains(label, "(attribute)") || strings.Contains(label, " attribute")
		}},
		{EntryFunction, func(label, _ string) bool {
			return strings.Contains(label, "(function)") ||
				strings.Contains(label, " function") ||
				strings.HasSuffix(label, "()")
		}},
		{EntryConstant, func(label, name string) bool {
			return strings.Contains(label, "constant") ||
				hasAnyPrefix(label, constantPrefixes) ||
				containsAny(label, constantNames)
		}},
		{EntryAttribute, func(label, _ string) bool {
			return strings.HasPrefix(label, "_") && !strings.HasSuffix(label, ")")
		}},
	}}
}

// Classify returns the entry type for an index label and its derived name.
func (c *Classifier) Classify(label, name string) EntryType {
	label = strings.ToLower(strings.TrimSpace(label))
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range c.Rules {
		if r.Match(label, name) {
			return r.Type
		}
	}
	return EntryFunction
}

var defaultClassifier = NewClassifier(DefaultRuleConfig())

// Classify classifies using DefaultRuleConfig.
func Classify(label, name string) EntryType {
	return defaultClassifier.Classify(label, name)
}

func lowerAll(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func equalsAny(s string, list []string) bool {
	for _, v := range list {
		if s == v {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
