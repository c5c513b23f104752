/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package naming derives code syntax identifiers from variable names.
//
// A variable's canonical name is built once per run for the web surface and
// then re-cased for native platforms, so web and native identifiers are always
// derived from the same sanitized string.
package naming

import "strings"

// Options configures canonical name derivation.
type Options struct {
	// Prefix is the global name prefix. A "-" is appended when non-empty.
	Prefix string

	// PercentToPct replaces every "%" with "pct".
	PercentToPct bool

	// ReduceRepeats collapses an immediately repeated hyphen-delimited phrase.
	ReduceRepeats bool
}

// Web returns the canonical, sigil-free web name for a variable.
// collectionPrefix is expected to already carry its separator.
func Web(collectionPrefix, name string, opts Options) string {
	var raw strings.Builder
	if opts.Prefix != "" {
		raw.WriteString(opts.Prefix)
		raw.WriteByte('-')
	}
	raw.WriteString(collectionPrefix)
	raw.WriteString(name)

	s := Escape(raw.String())
	if opts.PercentToPct {
		s = strings.ReplaceAll(s, "%", "pct")
	}
	if opts.ReduceRepeats {
		s = Collapse(s)
	}
	return s
}

// Native returns the camelCase identifier used for Android and iOS.
// Any web sigil on the input is stripped first.
func Native(webName string) string {
	return ToCamelCase(TrimSigil(webName))
}

// TrimSigil removes a web dialect sigil or var() wrapper from an identifier:
// "var(--a-b)", "--a-b", "$a-b" and "@a-b" all yield "a-b".
func TrimSigil(s string) string {
	if strings.HasPrefix(s, "var(") && strings.HasSuffix(s, ")") {
		s = s[len("var(") : len(s)-1]
	}
	switch {
	case strings.HasPrefix(s, "--"):
		return s[2:]
	case strings.HasPrefix(s, "$"), strings.HasPrefix(s, "@"):
		return s[1:]
	}
	return s
}
