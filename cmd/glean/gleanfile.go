package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const gleanFileName = ".glean"

type gleanProfile struct {
	Exclude   []string `yaml:"exclude"`
	Overrides []string `yaml:"overrides"`
}

type gleanFile struct {
	Exclude   []string                `yaml:"exclude"`
	Overrides []string                `yaml:"overrides"`
	MaxLength int                     `yaml:"max_length"`
	Encoding  string                  `yaml:"encoding"`
	Profiles  map[string]gleanProfile `yaml:"profiles"`
}

type gleanSettings struct {
	exclude   []string
	overrides []string
	maxLength int
	encoding  string
	// profile is the profile that was applied, empty if none.
	profile     string
	hasProfiles bool
}

// readGleanFile loads path and layers the named profile (or "default") over
// the top-level settings. A missing file yields empty settings.
func readGleanFile(path string, profile string) (*gleanSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &gleanSettings{}, nil
		}
		return nil, err
	}

	var cfg gleanFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.MaxLength < 0 {
		return nil, fmt.Errorf("invalid max_length %d in %s: must be positive", cfg.MaxLength, path)
	}

	settings := &gleanSettings{
		exclude:     append([]string{}, cfg.Exclude...),
		maxLength:   cfg.MaxLength,
		encoding:    cfg.Encoding,
		hasProfiles: len(cfg.Profiles) > 0,
	}

	for _, name := range []string{profile, "default"} {
		if name == "" {
			continue
		}
		if prof, ok := cfg.Profiles[name]; ok {
			settings.exclude = append(settings.exclude, prof.Exclude...)
			settings.overrides = append(settings.overrides, prof.Overrides...)
			settings.profile = name
			break
		}
	}
	// profile overrides come first so they shadow the top-level ones
	settings.overrides = append(settings.overrides, cfg.Overrides...)
	return settings, nil
}
