/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package dtcg_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/document/dtcg"
	"bennypowers.dev/codesyntax/internal/mapfs"
	"bennypowers.dev/codesyntax/testutil"
	"bennypowers.dev/codesyntax/variable"
)

const (
	primitives = "/tokens/Primitives.tokens.json"
	semantic   = "/tokens/semantic.yaml"
)

func load(t *testing.T, sources ...dtcg.Source) (*dtcg.Document, *mapfs.MapFileSystem) {
	t.Helper()
	mfs := testutil.NewFixtureFS(t, "tokens", "/tokens")
	doc, err := dtcg.Load(mfs, sources)
	require.NoError(t, err)
	return doc, mfs
}

func byName(t *testing.T, doc *dtcg.Document, name string) *variable.Variable {
	t.Helper()
	vars, err := doc.Variables("")
	require.NoError(t, err)
	for _, v := range vars {
		if v.Name == name {
			return v
		}
	}
	t.Fatalf("no variable named %s", name)
	return nil
}

func TestLoad_JSON(t *testing.T) {
	doc, _ := load(t, dtcg.Source{Path: primitives})

	collections, err := doc.Collections()
	require.NoError(t, err)
	assert.Equal(t, []variable.Collection{{ID: primitives, Name: "Primitives"}}, collections)

	vars, err := doc.Variables("")
	require.NoError(t, err)
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name
	}
	assert.Equal(t, []string{"color/blue", "color/red", "size/50%"}, names)

	blue := byName(t, doc, "color/blue")
	assert.Equal(t, primitives+"#color.blue", blue.ID)
	assert.Equal(t, primitives, blue.CollectionID)
	assert.Equal(t, variable.TypeColor, blue.Type)
	assert.Equal(t, "var(--brand-blue)", blue.CodeSyntax[variable.Web])

	assert.Equal(t, variable.TypeFloat, byName(t, doc, "size/50%").Type)
}

func TestLoad_YAMLInfersTypes(t *testing.T) {
	doc, _ := load(t, dtcg.Source{Path: semantic, Collection: "Semantic"})

	collections, err := doc.Collections()
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "Semantic", collections[0].Name)

	assert.Equal(t, variable.TypeColor, byName(t, doc, "surface/bg").Type)
	assert.Equal(t, variable.TypeColor, byName(t, doc, "surface/muted").Type)
	assert.Equal(t, variable.TypeBoolean, byName(t, doc, "surface/enabled").Type)
	assert.Equal(t, variable.TypeString, byName(t, doc, "surface/label").Type)

	colors, err := doc.Variables(variable.TypeColor)
	require.NoError(t, err)
	assert.Len(t, colors, 2)
}

func TestLoad_Errors(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "tokens", "/tokens")

	_, err := dtcg.Load(mfs, []dtcg.Source{{Path: "/tokens/bad.json"}})
	assert.ErrorContains(t, err, "failed to parse JSON")

	_, err = dtcg.Load(mfs, []dtcg.Source{{Path: "/tokens/missing.json"}})
	assert.ErrorContains(t, err, "failed to read file")
}

func TestSetCodeSyntax_SavesJSON(t *testing.T) {
	doc, fs := load(t, dtcg.Source{Path: primitives}, dtcg.Source{Path: semantic})
	red := byName(t, doc, "color/red")

	require.NoError(t, doc.SetCodeSyntax(red, variable.Android, "primColorRed"))
	assert.Equal(t, "primColorRed", red.CodeSyntax[variable.Android])
	assert.Equal(t, []string{primitives}, doc.Dirty())

	written, err := doc.Save()
	require.NoError(t, err)
	assert.Equal(t, []string{primitives}, written)
	assert.Equal(t, 1, fs.Writes(primitives))
	assert.Equal(t, 0, fs.Writes(semantic))
	assert.Empty(t, doc.Dirty())

	data, err := fs.ReadFile(primitives)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))

	reloaded, _ := json.Marshal(saved["color"].(map[string]any)["red"])
	assert.JSONEq(t, `{
		"$value": "#ff0000",
		"$extensions": {"com.figma": {"codeSyntax": {"ANDROID": "primColorRed"}}}
	}`, string(reloaded))
}

func TestSetCodeSyntax_SavesYAML(t *testing.T) {
	doc, fs := load(t, dtcg.Source{Path: semantic})
	require.NoError(t, doc.SetCodeSyntax(byName(t, doc, "surface/bg"), variable.IOS, "surfaceBg"))

	_, err := doc.Save()
	require.NoError(t, err)

	data, err := fs.ReadFile(semantic)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))

	bg := saved["surface"].(map[string]any)["bg"].(map[string]any)
	assert.Equal(t, "{color.red}", bg["$value"])
	cs := bg["$extensions"].(map[string]any)["com.figma"].(map[string]any)["codeSyntax"].(map[string]any)
	assert.Equal(t, "surfaceBg", cs["iOS"])
}

func TestRemoveCodeSyntax_PrunesExtensions(t *testing.T) {
	doc, fs := load(t, dtcg.Source{Path: primitives})
	blue := byName(t, doc, "color/blue")

	require.NoError(t, doc.RemoveCodeSyntax(blue, variable.Web))
	assert.False(t, blue.HasCodeSyntax(variable.Web))

	_, err := doc.Save()
	require.NoError(t, err)

	data, err := fs.ReadFile(primitives)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))
	savedBlue := saved["color"].(map[string]any)["blue"].(map[string]any)
	assert.NotContains(t, savedBlue, "$extensions")
}

func TestRemoveCodeSyntax_Absent(t *testing.T) {
	doc, _ := load(t, dtcg.Source{Path: primitives})
	require.NoError(t, doc.RemoveCodeSyntax(byName(t, doc, "color/red"), variable.Web))
	assert.Empty(t, doc.Dirty())
}

func TestUnknownVariable(t *testing.T) {
	doc, _ := load(t, dtcg.Source{Path: primitives})
	err := doc.SetCodeSyntax(&variable.Variable{ID: "nope"}, variable.Web, "--x")
	assert.ErrorIs(t, err, document.ErrUnknownVariable)
}
