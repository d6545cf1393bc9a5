// Package config defines the language table that drives classification:
// an ordered list of per-language extension and ignore rules plus a
// shared ignore list applied to every rule.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultYAML is the built-in language table, used when no config file
// is present.
//
//go:embed default.yaml
var defaultYAML []byte

// Language maps a language name to its file extensions and the
// directory names excluded from its size accounting.
type Language struct {
	// Lang is the language name reported in statistics.
	Lang string `mapstructure:"lang" yaml:"lang"`
	// Ext lists file extensions without the leading dot.
	Ext []string `mapstructure:"ext" yaml:"ext"`
	// Ignore lists bare directory names excluded for this language.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// Common holds settings shared by every language rule.
type Common struct {
	// Ignore lists bare directory names excluded for all languages.
	Ignore []string `mapstructure:"ignore" yaml:"ignore"`
}

// Config is the full language table. The declaration order of Language
// entries is significant: it breaks ties when two languages end up with
// the same byte total.
type Config struct {
	Language []Language `mapstructure:"language" yaml:"language"`
	Common   Common     `mapstructure:"common" yaml:"common"`
}

// Default returns the embedded built-in language table.
// It panics if the embedded file is malformed, which can only happen
// through a broken build.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default.yaml is invalid: %v", err))
	}

	return &cfg
}

// New builds a config from explicit rules, for callers that assemble
// the table in memory instead of loading it.
func New(languages []Language, common Common) *Config {
	return &Config{Language: languages, Common: common}
}

// Validate checks the shape the engine assumes: at least one rule,
// named rules, extensions without leading dots, and ignore entries that
// are bare path-segment names rather than globs or nested paths.
func (c *Config) Validate() error {
	if len(c.Language) == 0 {
		return fmt.Errorf("config declares no languages")
	}

	for i, lang := range c.Language {
		if strings.TrimSpace(lang.Lang) == "" {
			return fmt.Errorf("language %d has an empty name", i)
		}

		for _, ext := range lang.Ext {
			if ext == "" {
				return fmt.Errorf("language %q has an empty extension", lang.Lang)
			}

			if strings.HasPrefix(ext, ".") {
				return fmt.Errorf("language %q: extension %q must not include the leading dot", lang.Lang, ext)
			}
		}

		if err := validateIgnores(lang.Lang, lang.Ignore); err != nil {
			return err
		}
	}

	return validateIgnores("common", c.Common.Ignore)
}

func validateIgnores(owner string, ignores []string) error {
	for _, pattern := range ignores {
		if pattern == "" {
			return fmt.Errorf("%s: empty ignore pattern", owner)
		}

		if strings.ContainsAny(pattern, `/\`) {
			return fmt.Errorf("%s: ignore pattern %q must be a bare directory name", owner, pattern)
		}
	}

	return nil
}
