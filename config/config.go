/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for code syntax generation.
package config

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/codesyntax/assign"
	"bennypowers.dev/codesyntax/naming"
	"bennypowers.dev/codesyntax/selector"
	"bennypowers.dev/codesyntax/variable"
)

// Config is the project configuration: the run settings plus where
// variables come from.
type Config struct {
	Settings `yaml:",inline" mapstructure:",squash"`

	// Sources lists token files to load (paths or globs).
	Sources []SourceSpec `yaml:"sources" json:"sources" mapstructure:"sources"`

	// Figma configures the REST variables source.
	Figma FigmaSettings `yaml:"figma" json:"figma" mapstructure:"figma"`

	// Journal is the path of the SQLite change journal. Empty disables it.
	Journal string `yaml:"journal" json:"journal" mapstructure:"journal"`
}

// Settings is the per-run snapshot of user intent.
type Settings struct {
	// Prefix is the global name prefix.
	Prefix string `yaml:"prefix" json:"prefix" mapstructure:"prefix"`

	Web     WebSettings      `yaml:"web" json:"web" mapstructure:"web"`
	Android PlatformSettings `yaml:"android" json:"android" mapstructure:"android"`
	IOS     PlatformSettings `yaml:"ios" json:"ios" mapstructure:"ios"`

	Collections CollectionSettings `yaml:"collections" json:"collections" mapstructure:"collections"`

	// PercentToPct spells "%" as "pct" in names.
	PercentToPct bool `yaml:"percentToPct" json:"percentToPct" mapstructure:"percentToPct"`

	// ReduceRepeatingPhrases collapses "group-group" into "group".
	ReduceRepeatingPhrases bool `yaml:"reduceRepeatingPhrases" json:"reduceRepeatingPhrases" mapstructure:"reduceRepeatingPhrases"`

	Filters FilterSettings `yaml:"filters" json:"filters" mapstructure:"filters"`
}

// PlatformSettings enables a platform and carries its force and clear flags.
type PlatformSettings struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Force   bool `yaml:"force" json:"force" mapstructure:"force"`
	Clear   bool `yaml:"clear" json:"clear" mapstructure:"clear"`
}

// Intent returns the assigner intent for the platform.
func (p PlatformSettings) Intent() assign.Intent {
	return assign.Intent{Force: p.Force, Clear: p.Clear}
}

// WebSettings adds the web output dialect.
type WebSettings struct {
	PlatformSettings `yaml:",inline" mapstructure:",squash"`

	// Dialect is CSS, SASS or LESS.
	Dialect string `yaml:"dialect" json:"dialect" mapstructure:"dialect"`

	// Wrap emits var(--name) for CSS.
	Wrap bool `yaml:"wrap" json:"wrap" mapstructure:"wrap"`
}

// CollectionSettings configures collection prefixes.
type CollectionSettings struct {
	Prefix        bool                  `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
	Abbreviate    bool                  `yaml:"abbreviate" json:"abbreviate" mapstructure:"abbreviate"`
	Abbreviations []naming.Abbreviation `yaml:"abbreviations" json:"abbreviations" mapstructure:"abbreviations"`
	Separator     string                `yaml:"separator" json:"separator" mapstructure:"separator"`
}

// FilterSettings selects variables.
type FilterSettings struct {
	Name       string `yaml:"name" json:"name" mapstructure:"name"`
	Collection string `yaml:"collection" json:"collection" mapstructure:"collection"`
	Type       string `yaml:"type" json:"type" mapstructure:"type"`
}

// FigmaSettings configures the REST variables source.
type FigmaSettings struct {
	FileKey string `yaml:"fileKey" json:"fileKey" mapstructure:"fileKey"`
	Token   string `yaml:"token" json:"token" mapstructure:"token"`
	BaseURL string `yaml:"baseURL" json:"baseURL" mapstructure:"baseURL"`
}

// SourceSpec is a token file specification.
// It can be given as a plain path or as an object with overrides.
type SourceSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path" mapstructure:"path"`

	// Collection overrides the collection name derived from the file name.
	Collection string `yaml:"collection" json:"collection" mapstructure:"collection"`
}

// UnmarshalYAML handles both string and object forms for SourceSpec.
func (s *SourceSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Path = node.Value
		return nil
	}

	type rawSourceSpec SourceSpec
	return node.Decode((*rawSourceSpec)(s))
}

// UnmarshalJSON handles both string and object forms for SourceSpec.
func (s *SourceSpec) UnmarshalJSON(data []byte) error {
	var path string
	if err := json.Unmarshal(data, &path); err == nil {
		s.Path = path
		return nil
	}

	type rawSourceSpec SourceSpec
	return json.Unmarshal(data, (*rawSourceSpec)(s))
}

// DefaultSettings returns the settings a fresh run starts from: every
// platform on, CSS with var() wrapping, abbreviated collection prefixes,
// percent conversion and repeat reduction.
func DefaultSettings() Settings {
	return Settings{
		Web: WebSettings{
			PlatformSettings: PlatformSettings{Enabled: true},
			Dialect:          string(assign.CSS),
			Wrap:             true,
		},
		Android: PlatformSettings{Enabled: true},
		IOS:     PlatformSettings{Enabled: true},
		Collections: CollectionSettings{
			Prefix:     true,
			Abbreviate: true,
			Separator:  naming.DefaultSeparator,
		},
		PercentToPct:           true,
		ReduceRepeatingPhrases: true,
	}
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{Settings: DefaultSettings()}
}

// ErrNoPlatform indicates every platform is disabled.
var ErrNoPlatform = errors.New("at least one platform must be enabled")

// Validate checks the settings that can be checked without a document.
// Filter patterns are validated when the run compiles them.
func (s *Settings) Validate() error {
	if !s.Web.Enabled && !s.Android.Enabled && !s.IOS.Enabled {
		return ErrNoPlatform
	}
	if _, err := assign.ParseDialect(s.Web.Dialect); err != nil {
		return err
	}
	if _, err := variable.ParseResolvedType(s.Filters.Type); err != nil {
		return err
	}
	return nil
}

// Platform returns the settings for p.
func (s *Settings) Platform(p variable.Platform) PlatformSettings {
	switch p {
	case variable.Web:
		return s.Web.PlatformSettings
	case variable.Android:
		return s.Android
	case variable.IOS:
		return s.IOS
	default:
		return PlatformSettings{}
	}
}

// EnabledPlatforms returns the enabled platforms in processing order.
func (s *Settings) EnabledPlatforms() []variable.Platform {
	var enabled []variable.Platform
	for _, p := range variable.Platforms {
		if s.Platform(p).Enabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

// Dialect returns the parsed web dialect.
func (s *Settings) Dialect() (assign.Dialect, error) {
	return assign.ParseDialect(s.Web.Dialect)
}

// SelectorFilters returns the selection filters.
func (s *Settings) SelectorFilters() (selector.Filters, error) {
	typ, err := variable.ParseResolvedType(s.Filters.Type)
	if err != nil {
		return selector.Filters{}, &selector.ConfigurationError{Field: "type", Pattern: s.Filters.Type, Err: err}
	}
	return selector.Filters{
		Name:       s.Filters.Name,
		Collection: s.Filters.Collection,
		Type:       typ,
	}, nil
}

// NamingOptions returns the canonical name options.
func (s *Settings) NamingOptions() naming.Options {
	return naming.Options{
		Prefix:        s.Prefix,
		PercentToPct:  s.PercentToPct,
		ReduceRepeats: s.ReduceRepeatingPhrases,
	}
}

// PrefixOptions returns the collection prefix options.
func (s *Settings) PrefixOptions() naming.PrefixOptions {
	return naming.PrefixOptions{
		Enabled:       s.Collections.Prefix,
		Abbreviate:    s.Collections.Abbreviate,
		Abbreviations: s.Collections.Abbreviations,
		Separator:     s.Collections.Separator,
	}
}

// SourcePaths returns the path of every source spec.
func (c *Config) SourcePaths() []string {
	paths := make([]string, 0, len(c.Sources))
	for _, spec := range c.Sources {
		paths = append(paths, spec.Path)
	}
	return paths
}
