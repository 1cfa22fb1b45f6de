// Package koanf loads site profiles with knadh/koanf.
package koanf

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/docset"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix selects environment overrides such as SPHINX2DOCSET_ROOT_URL.
const DefaultEnvPrefix = "SPHINX2DOCSET_"

// LoadProfile starts from docset.DefaultProfile, overlays the YAML file at
// path (when path is set and the file exists), then environment variables
// starting with prefix. Keys are the profile's koanf tags; nested keys use
// "." as in SPHINX2DOCSET_RULES.CONSTANT_NAMES.
func LoadProfile(path, prefix string) (*docset.Profile, error) {
	k := koanf.New(".")

	// Start from defaults.
	p := docset.DefaultProfile()

	// Load YAML file if it exists.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, docset.Errorf(docset.EINVALID, "reading profile %s: %v", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing profile %s: %w", path, err)
		}
	}

	// Overlay environment variables: SPHINX2DOCSET_ROOT_URL -> root_url, etc.
	if prefix != "" {
		if err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, prefix))
		}), nil); err != nil {
			return nil, fmt.Errorf("loading env overrides: %w", err)
		}
	}

	if err := k.Unmarshal("", p); err != nil {
		return nil, docset.Errorf(docset.EINVALID, "unmarshalling profile: %v", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
