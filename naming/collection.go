/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package naming

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bennypowers.dev/codesyntax/variable"
)

// ErrUnknownCollection indicates a variable refers to a collection id that is
// not in the document.
var ErrUnknownCollection = errors.New("unknown collection")

// DefaultSeparator follows a collection prefix.
const DefaultSeparator = "-"

// Abbreviation maps a collection name keyword to a short prefix.
type Abbreviation struct {
	Keyword string `yaml:"keyword" json:"keyword" mapstructure:"keyword"`
	Short   string `yaml:"short" json:"short" mapstructure:"short"`
}

// DefaultAbbreviations is the keyword table, in match priority order.
var DefaultAbbreviations = []Abbreviation{
	{Keyword: "Primitive", Short: "prim"},
	{Keyword: "Semantic", Short: "sem"},
	{Keyword: "Component", Short: "comp"},
}

// PrefixOptions configures collection prefixing.
type PrefixOptions struct {
	// Enabled turns collection prefixes on.
	Enabled bool

	// Abbreviate uses the keyword table instead of the sanitized collection name.
	Abbreviate bool

	// Abbreviations overrides DefaultAbbreviations when non-empty.
	Abbreviations []Abbreviation

	// Separator follows the prefix. Empty means DefaultSeparator.
	Separator string
}

// Prefixer resolves a variable's owning collection to a name prefix.
type Prefixer struct {
	names map[string]string
	opts  PrefixOptions
}

// NewPrefixer creates a prefixer over the document's collections.
func NewPrefixer(collections []variable.Collection, opts PrefixOptions) *Prefixer {
	names := make(map[string]string, len(collections))
	for _, c := range collections {
		names[c.ID] = c.Name
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if len(opts.Abbreviations) == 0 {
		opts.Abbreviations = DefaultAbbreviations
	}
	return &Prefixer{names: names, opts: opts}
}

// Prefix returns the collection prefix for v, separator included.
//
// With prefixing disabled the result is empty and no lookup happens. In
// abbreviation mode a collection matching no keyword also yields an empty
// prefix rather than falling back to its name.
func (p *Prefixer) Prefix(v *variable.Variable) (string, error) {
	if !p.opts.Enabled {
		return "", nil
	}

	name, ok := p.names[v.CollectionID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, v.CollectionID)
	}

	if p.opts.Abbreviate {
		short, ok := Abbreviate(name, p.opts.Abbreviations)
		if !ok {
			return "", nil
		}
		return short + p.opts.Separator, nil
	}

	return SanitizeCollectionName(name) + p.opts.Separator, nil
}

// Abbreviate returns the short form of the first keyword contained in name.
func Abbreviate(name string, table []Abbreviation) (string, bool) {
	for _, a := range table {
		if strings.Contains(name, a.Keyword) {
			return a.Short, true
		}
	}
	return "", false
}

var collectionNameInvalid = regexp.MustCompile(`[^a-zA-Z0-9-_]+`)

// SanitizeCollectionName strips every character outside [A-Za-z0-9-_].
func SanitizeCollectionName(name string) string {
	return collectionNameInvalid.ReplaceAllString(name, "")
}
