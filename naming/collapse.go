/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package naming

import "unicode/utf8"

// Collapse removes one immediately repeated phrase from s.
//
// A phrase is a non-empty run of characters ending in "-". The leftmost
// position that starts a repeat wins, and at that position the longest
// phrase wins, so "prefix-group-group-name" becomes "prefix-group-name".
// Only the first repeat is collapsed.
func Collapse(s string) string {
	for i := 0; i < len(s); i++ {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		for n := (len(s) - i) / 2; n > 0; n-- {
			if s[i+n-1] != '-' {
				continue
			}
			if s[i:i+n] == s[i+n:i+2*n] {
				return s[:i] + s[i+n:]
			}
		}
	}
	return s
}
