/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package assign

import (
	"fmt"
	"strings"

	"bennypowers.dev/codesyntax/naming"
)

// Dialect is the web output syntax.
type Dialect string

// Web dialects.
const (
	CSS  Dialect = "CSS"
	SASS Dialect = "SASS"
	LESS Dialect = "LESS"
)

// ParseDialect parses a dialect name, case-insensitively. "scss" is accepted
// as SASS.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "CSS":
		return CSS, nil
	case "SASS", "SCSS":
		return SASS, nil
	case "LESS":
		return LESS, nil
	default:
		return "", fmt.Errorf("unknown web dialect %q (valid: CSS, SASS, LESS)", s)
	}
}

// Sigil returns the identifier prefix for the dialect.
func (d Dialect) Sigil() string {
	switch d {
	case SASS:
		return "$"
	case LESS:
		return "@"
	default:
		return "--"
	}
}

// FormatWeb renders a canonical name as web code syntax.
// wrap only applies to CSS, producing var(--name).
func FormatWeb(name string, d Dialect, wrap bool) string {
	id := d.Sigil() + name
	if d == CSS && wrap {
		return "var(" + id + ")"
	}
	return id
}

// FormatNative renders a canonical name as Android or iOS code syntax.
func FormatNative(name string) string {
	return naming.Native(name)
}
