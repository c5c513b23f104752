/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"bennypowers.dev/codesyntax/assign"
	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/naming"
	"bennypowers.dev/codesyntax/variable"
)

// PreviewName is the sample variable name previews render.
const PreviewName = "variable-name"

// Preview renders the code syntax settings would produce for a sample
// variable, per enabled platform. Platforms being cleared preview as empty.
// The collection segment is "coll" when abbreviating and "collection"
// otherwise.
func Preview(settings config.Settings) (map[variable.Platform]string, error) {
	dialect, err := settings.Dialect()
	if err != nil {
		return nil, err
	}

	collection := ""
	if settings.Collections.Prefix {
		sep := settings.Collections.Separator
		if sep == "" {
			sep = naming.DefaultSeparator
		}
		collection = "collection" + sep
		if settings.Collections.Abbreviate {
			collection = "coll" + sep
		}
	}
	web := naming.Web(collection, PreviewName, settings.NamingOptions())

	preview := make(map[variable.Platform]string)
	for _, p := range settings.EnabledPlatforms() {
		if settings.Platform(p).Clear {
			preview[p] = ""
			continue
		}
		if p == variable.Web {
			preview[p] = assign.FormatWeb(web, dialect, settings.Web.Wrap)
		} else {
			preview[p] = assign.FormatNative(web)
		}
	}
	return preview, nil
}
