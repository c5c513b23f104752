/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package figma_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/document/figma"
	"bennypowers.dev/codesyntax/pipeline"
	"bennypowers.dev/codesyntax/testutil"
	"bennypowers.dev/codesyntax/variable"
)

func parseFixture(t *testing.T) *figma.Document {
	t.Helper()
	doc, err := figma.Parse(testutil.LoadFixtureFile(t, "local-variables.json"))
	require.NoError(t, err)
	return doc
}

func TestParse(t *testing.T) {
	doc := parseFixture(t)

	collections, err := doc.Collections()
	require.NoError(t, err)
	assert.Equal(t, []variable.Collection{
		{ID: "VariableCollectionId:1:1", Name: "Primitives"},
		{ID: "VariableCollectionId:2:1", Name: "Semantic Tokens"},
	}, collections)

	vars, err := doc.Variables("")
	require.NoError(t, err)
	require.Len(t, vars, 3)

	// document order, not id order
	assert.Equal(t, "VariableID:1:9", vars[0].ID)
	assert.Equal(t, "VariableID:1:2", vars[1].ID)
	assert.Equal(t, "VariableID:2:4", vars[2].ID)

	assert.Equal(t, "size/50%", vars[0].Name)
	assert.Equal(t, variable.TypeFloat, vars[0].Type)
	assert.Equal(t, "VariableCollectionId:2:1", vars[2].CollectionID)
	assert.Equal(t, "var(--legacy-bg)", vars[2].CodeSyntax[variable.Web])

	colors, err := doc.Variables(variable.TypeColor)
	require.NoError(t, err)
	assert.Len(t, colors, 2)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"malformed", `{"meta":`, "malformed JSON"},
		{"missing meta", `{"status":200}`, "missing meta"},
		{"error response", `{"status":403,"error":true,"message":"Invalid token"}`, "Invalid token"},
		{"unknown type", `{"meta":{"variables":{"a":{"id":"a","resolvedType":"VECTOR"}}}}`, "variable a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := figma.Parse([]byte(tt.payload))
			require.ErrorIs(t, err, figma.ErrInvalidPayload)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUpdates(t *testing.T) {
	doc := parseFixture(t)

	result, err := pipeline.Run(doc, config.DefaultSettings(), pipeline.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)

	updates := doc.Updates()
	require.Len(t, updates, 3)
	assert.Equal(t, figma.Update{
		Action: "UPDATE",
		ID:     "VariableID:1:9",
		CodeSyntax: map[variable.Platform]string{
			variable.Web:     "var(--prim-size-50pct)",
			variable.Android: "primSize50pct",
			variable.IOS:     "primSize50pct",
		},
	}, updates[0])
	assert.Equal(t, map[variable.Platform]string{
		variable.Android: "semColorBg",
		variable.IOS:     "semColorBg",
	}, updates[2].CodeSyntax)
}

func TestUpdates_RemovalIsEmptyString(t *testing.T) {
	doc := parseFixture(t)

	settings := config.DefaultSettings()
	settings.Web.Clear = true
	settings.Android.Enabled = false
	settings.IOS.Enabled = false
	_, err := pipeline.Run(doc, settings, pipeline.Options{})
	require.NoError(t, err)

	var bg *figma.Update
	for _, u := range doc.Updates() {
		if u.ID == "VariableID:2:4" {
			bg = &u
		}
	}
	require.NotNil(t, bg)
	assert.Equal(t, map[variable.Platform]string{variable.Web: ""}, bg.CodeSyntax)
}

func TestExport(t *testing.T) {
	doc := parseFixture(t)
	_, err := pipeline.Run(doc, config.DefaultSettings(), pipeline.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Export(&buf))

	out := buf.Bytes()
	assert.Equal(t, "Semantic Tokens", gjson.GetBytes(out, `meta.variableCollections.VariableCollectionId:2:1.name`).String())
	assert.Equal(t, float64(8), gjson.GetBytes(out, `meta.variables.VariableID:1:9.valuesByMode.1:0`).Float())

	reparsed, err := figma.Parse(out)
	require.NoError(t, err)
	vars, err := reparsed.Variables("")
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, "VariableID:1:9", vars[0].ID)
	assert.Equal(t, "primColorRed", vars[1].CodeSyntax[variable.Android])
	assert.Equal(t, "var(--legacy-bg)", vars[2].CodeSyntax[variable.Web])
	assert.Equal(t, "semColorBg", vars[2].CodeSyntax[variable.IOS])
}
