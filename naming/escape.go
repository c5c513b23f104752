/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Escape sanitizes a raw label into a web-safe token.
//
// Diacritics are folded away, path and word separators become hyphens, and
// any other rune outside letters, digits, "-", "_" and "%" is dropped. Runs of
// hyphens collapse to one and edge hyphens are trimmed. Case is preserved.
// "%" is kept so a later pass can spell it out.
func Escape(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var sb strings.Builder
	sb.Grow(len(s))
	lastHyphen := true // suppresses leading hyphens
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '%':
			sb.WriteRune(r)
			lastHyphen = false
		case r == '-' || isSeparator(r):
			if !lastHyphen {
				sb.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}

func isSeparator(r rune) bool {
	switch r {
	case '/', '\\', '.', ':', ',':
		return true
	}
	return unicode.IsSpace(r)
}
