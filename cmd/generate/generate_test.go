/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/journal"
	"bennypowers.dev/codesyntax/testutil"
)

const semanticFile = "/project/tokens/Semantic.tokens.json"

func projectConfig() *config.Config {
	cfg := config.Default()
	cfg.Sources = []config.SourceSpec{{Path: "tokens/*.tokens.json"}}
	return cfg
}

func TestGenerate(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	var out bytes.Buffer

	result, err := Generate(context.Background(), &out, mfs, projectConfig(), Options{Root: "/project"})
	require.NoError(t, err)
	assert.Len(t, result.Mutations, 5)
	assert.Equal(t, 1, result.Unchanged)

	assert.Contains(t, out.String(), "var(--sem-color-bg)")
	assert.Contains(t, out.String(), "2 variables, changed 5, unchanged 1, warnings 0")

	data, err := mfs.ReadFile(semanticFile)
	require.NoError(t, err)
	ext := `$extensions.com\.figma.codeSyntax`
	assert.Equal(t, "var(--sem-color-bg)", gjson.GetBytes(data, "color.color.bg."+ext+".WEB").String())
	assert.Equal(t, "semColorBg", gjson.GetBytes(data, "color.color.bg."+ext+".iOS").String())
	assert.Equal(t, "var(--legacy-text)", gjson.GetBytes(data, "color.text."+ext+".WEB").String())
	assert.Equal(t, "semColorText", gjson.GetBytes(data, "color.text."+ext+".ANDROID").String())
}

func TestGenerate_DryRun(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	var out bytes.Buffer

	result, err := Generate(context.Background(), &out, mfs, projectConfig(), Options{Root: "/project", DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Len(t, result.Mutations, 5)
	assert.Equal(t, 0, mfs.Writes(semanticFile))
	assert.Contains(t, out.String(), "would change 5")
}

func TestGenerate_JSON(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	cfg := projectConfig()
	cfg.Web.Clear = true
	cfg.Android.Enabled = false
	cfg.IOS.Enabled = false
	var out bytes.Buffer

	_, err := Generate(context.Background(), &out, mfs, cfg, Options{Root: "/project", Format: "json"})
	require.NoError(t, err)

	var report struct {
		Selected  int `json:"selected"`
		Mutations []struct {
			Name     string `json:"name"`
			Platform string `json:"platform"`
			Action   string `json:"action"`
			Previous string `json:"previous"`
			Value    string `json:"value"`
		} `json:"mutations"`
		Warnings []any `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 2, report.Selected)
	require.Len(t, report.Mutations, 2)
	assert.Equal(t, "write", report.Mutations[0].Action)
	assert.Equal(t, "remove", report.Mutations[1].Action)
	assert.Equal(t, "var(--legacy-text)", report.Mutations[1].Previous)
	assert.Empty(t, report.Warnings)
}

func TestGenerate_Journal(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	cfg := projectConfig()
	cfg.Journal = filepath.Join(t.TempDir(), "journal.db")

	_, err := Generate(context.Background(), &bytes.Buffer{}, mfs, cfg, Options{Root: "/project"})
	require.NoError(t, err)

	j, err := journal.Open(cfg.Journal)
	require.NoError(t, err)
	defer j.Close()

	changes, err := j.Changes(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, changes, 5)
	assert.Equal(t, "tokens/*.tokens.json", changes[0].Source)
}

func TestGenerate_InvalidFilter(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	cfg := projectConfig()
	cfg.Filters.Name = "("

	_, err := Generate(context.Background(), &bytes.Buffer{}, mfs, cfg, Options{Root: "/project"})
	require.Error(t, err)
	assert.Equal(t, 0, mfs.Writes(semanticFile))
}

func TestGenerate_UnknownFormat(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "project", "/project")
	var out bytes.Buffer

	result, err := Generate(context.Background(), &out, mfs, projectConfig(), Options{Root: "/project", Format: "yaml"})
	require.ErrorContains(t, err, `unknown format "yaml"`)
	assert.Nil(t, result)
	assert.Empty(t, out.String())
	assert.Equal(t, 0, mfs.Writes(semanticFile))
}
