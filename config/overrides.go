/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	csfs "bennypowers.dev/codesyntax/fs"
)

// EnvPrefix prefixes environment overrides: CODESYNTAX_WEB_DIALECT sets
// web.dialect.
const EnvPrefix = "CODESYNTAX"

// NewViper returns a viper instance reading CODESYNTAX_* environment
// variables. Callers bind their command flags to it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverrides copies every key set on v (changed flag or environment
// variable) over the loaded config.
func (c *Config) ApplyOverrides(v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	flag := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}
	platform := func(key string, dst *PlatformSettings) {
		flag(key+".enabled", &dst.Enabled)
		flag(key+".force", &dst.Force)
		flag(key+".clear", &dst.Clear)
	}

	str("prefix", &c.Prefix)
	platform("web", &c.Web.PlatformSettings)
	str("web.dialect", &c.Web.Dialect)
	flag("web.wrap", &c.Web.Wrap)
	platform("android", &c.Android)
	platform("ios", &c.IOS)

	flag("collections.prefix", &c.Collections.Prefix)
	flag("collections.abbreviate", &c.Collections.Abbreviate)
	str("collections.separator", &c.Collections.Separator)

	flag("percentToPct", &c.PercentToPct)
	flag("reduceRepeatingPhrases", &c.ReduceRepeatingPhrases)

	str("filters.name", &c.Filters.Name)
	str("filters.collection", &c.Filters.Collection)
	str("filters.type", &c.Filters.Type)

	str("figma.fileKey", &c.Figma.FileKey)
	str("figma.token", &c.Figma.Token)
	str("figma.baseURL", &c.Figma.BaseURL)
	str("journal", &c.Journal)

	if v.IsSet("sources") {
		c.Sources = nil
		for _, path := range v.GetStringSlice("sources") {
			c.Sources = append(c.Sources, SourceSpec{Path: path})
		}
	}
}

// Resolve loads the project config from rootDir, falling back to defaults,
// and applies v's overrides. A nil v applies none.
func Resolve(filesystem csfs.FileSystem, rootDir string, v *viper.Viper) (*Config, error) {
	cfg, err := Load(filesystem, rootDir)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}
	if v != nil {
		cfg.ApplyOverrides(v)
	}
	return cfg, nil
}

// FlagBindings maps CLI flag names to config keys.
var FlagBindings = map[string]string{
	"prefix":            "prefix",
	"web":               "web.enabled",
	"android":           "android.enabled",
	"ios":               "ios.enabled",
	"force-web":         "web.force",
	"force-android":     "android.force",
	"force-ios":         "ios.force",
	"clear-web":         "web.clear",
	"clear-android":     "android.clear",
	"clear-ios":         "ios.clear",
	"dialect":           "web.dialect",
	"wrap":              "web.wrap",
	"collection-prefix": "collections.prefix",
	"abbreviate":        "collections.abbreviate",
	"separator":         "collections.separator",
	"pct":               "percentToPct",
	"reduce-repeats":    "reduceRepeatingPhrases",
	"name":              "filters.name",
	"collection":        "filters.collection",
	"type":              "filters.type",
	"file-key":          "figma.fileKey",
	"token":             "figma.token",
	"api-url":           "figma.baseURL",
	"journal":           "journal",
}

// BindFlags binds each named flag to its config key on v. Flags missing
// from the set are skipped so commands can share one binding table.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, bindings map[string]string) error {
	for name, key := range bindings {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}
	return nil
}

// UseFiles replaces Sources with files named on the command line, made
// absolute against the working directory. No files leaves Sources alone.
func (c *Config) UseFiles(files []string) error {
	if len(files) == 0 {
		return nil
	}
	c.Sources = make([]SourceSpec, 0, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return err
		}
		c.Sources = append(c.Sources, SourceSpec{Path: abs})
	}
	return nil
}
