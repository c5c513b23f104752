/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/pipeline"
	"bennypowers.dev/codesyntax/variable"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Settings)
		want   map[variable.Platform]string
	}{
		{
			name:   "defaults",
			modify: func(*config.Settings) {},
			want: map[variable.Platform]string{
				variable.Web:     "var(--coll-variable-name)",
				variable.Android: "collVariableName",
				variable.IOS:     "collVariableName",
			},
		},
		{
			name: "literal collection and prefix",
			modify: func(s *config.Settings) {
				s.Prefix = "ds"
				s.Collections.Abbreviate = false
				s.Web.Wrap = false
			},
			want: map[variable.Platform]string{
				variable.Web:     "--ds-collection-variable-name",
				variable.Android: "dsCollectionVariableName",
				variable.IOS:     "dsCollectionVariableName",
			},
		},
		{
			name: "sass without collections",
			modify: func(s *config.Settings) {
				s.Web.Dialect = "SASS"
				s.Collections.Prefix = false
				s.Android.Enabled = false
			},
			want: map[variable.Platform]string{
				variable.Web: "$variable-name",
				variable.IOS: "variableName",
			},
		},
		{
			name: "custom separator",
			modify: func(s *config.Settings) {
				s.Web.Dialect = "LESS"
				s.Collections.Separator = "_"
			},
			want: map[variable.Platform]string{
				variable.Web:     "@coll_variable-name",
				variable.Android: "collVariableName",
				variable.IOS:     "collVariableName",
			},
		},
		{
			name: "cleared web",
			modify: func(s *config.Settings) {
				s.Web.Clear = true
			},
			want: map[variable.Platform]string{
				variable.Web:     "",
				variable.Android: "collVariableName",
				variable.IOS:     "collVariableName",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			tt.modify(&settings)
			got, err := pipeline.Preview(settings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreview_InvalidDialect(t *testing.T) {
	settings := config.DefaultSettings()
	settings.Web.Dialect = "stylus"
	_, err := pipeline.Preview(settings)
	assert.Error(t, err)
}
