/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToCamelCase converts a string to camelCase.
// The first word is lowercased; every later word has its first letter
// uppercased and the rest left as is.
func ToCamelCase(s string) string {
	words := SplitIntoWords(s)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(strings.ToLower(words[0]))
	for _, word := range words[1:] {
		r, size := utf8.DecodeRuneInString(word)
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(word[size:])
	}
	return sb.String()
}

// SplitIntoWords splits a string on every rune that is not a letter or digit.
func SplitIntoWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
