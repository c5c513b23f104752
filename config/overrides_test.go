/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/testutil"
)

func TestApplyOverrides_Flags(t *testing.T) {
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	flags.String("prefix", "", "")
	flags.Bool("android", true, "")
	flags.String("dialect", "CSS", "")
	require.NoError(t, flags.Parse([]string{"--prefix=rh", "--android=false"}))

	v := config.NewViper()
	require.NoError(t, v.BindPFlag("prefix", flags.Lookup("prefix")))
	require.NoError(t, v.BindPFlag("android.enabled", flags.Lookup("android")))
	require.NoError(t, v.BindPFlag("web.dialect", flags.Lookup("dialect")))

	cfg := config.Default()
	cfg.Web.Dialect = "LESS"
	cfg.ApplyOverrides(v)

	assert.Equal(t, "rh", cfg.Prefix)
	assert.False(t, cfg.Android.Enabled)
	// unchanged flags leave the loaded value alone
	assert.Equal(t, "LESS", cfg.Web.Dialect)
}

func TestApplyOverrides_Env(t *testing.T) {
	t.Setenv("CODESYNTAX_WEB_DIALECT", "sass")
	t.Setenv("CODESYNTAX_FIGMA_TOKEN", "from-env")
	t.Setenv("CODESYNTAX_IOS_CLEAR", "true")

	cfg := config.Default()
	cfg.ApplyOverrides(config.NewViper())

	assert.Equal(t, "sass", cfg.Web.Dialect)
	assert.Equal(t, "from-env", cfg.Figma.Token)
	assert.True(t, cfg.IOS.Clear)
	assert.True(t, cfg.IOS.Enabled)
}

func TestApplyOverrides_Sources(t *testing.T) {
	v := config.NewViper()
	v.Set("sources", []string{"a.json", "b/*.yaml"})

	cfg := config.Default()
	cfg.Sources = []config.SourceSpec{{Path: "old.json", Collection: "Old"}}
	cfg.ApplyOverrides(v)

	assert.Equal(t, []string{"a.json", "b/*.yaml"}, cfg.SourcePaths())
	assert.Empty(t, cfg.Sources[0].Collection)
}

func TestResolve(t *testing.T) {
	mfs := testutil.NewFixtureFS(t, "fixtures/config/yaml", "/project")

	v := config.NewViper()
	v.Set("prefix", "override")

	cfg, err := config.Resolve(mfs, "/project", v)
	require.NoError(t, err)
	assert.Equal(t, "override", cfg.Prefix)
	assert.Equal(t, "SASS", cfg.Web.Dialect)

	cfg, err = config.Resolve(mfs, "/elsewhere", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
	flags.String("type", "", "")
	flags.Bool("clear-ios", false, "")
	require.NoError(t, flags.Parse([]string{"--type=color", "--clear-ios"}))

	v := config.NewViper()
	require.NoError(t, config.BindFlags(v, flags, config.FlagBindings))

	cfg := config.Default()
	cfg.ApplyOverrides(v)
	assert.Equal(t, "color", cfg.Filters.Type)
	assert.True(t, cfg.IOS.Clear)
	assert.Empty(t, cfg.Prefix)
}
