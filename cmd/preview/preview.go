/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package preview provides the preview command for codesyntax.
package preview

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/pipeline"
	"bennypowers.dev/codesyntax/variable"
)

// Cmd is the preview cobra command.
var Cmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the code syntax the current settings produce",
	Long: `Render code syntax for a sample variable named "` + pipeline.PreviewName + `" using
the resolved settings, without reading or writing any variables.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("prefix", "", "Global name prefix")
	Cmd.Flags().Bool("web", true, "Preview Web code syntax")
	Cmd.Flags().Bool("android", true, "Preview Android code syntax")
	Cmd.Flags().Bool("ios", true, "Preview iOS code syntax")
	Cmd.Flags().Bool("clear-web", false, "Preview with Web code syntax cleared")
	Cmd.Flags().Bool("clear-android", false, "Preview with Android code syntax cleared")
	Cmd.Flags().Bool("clear-ios", false, "Preview with iOS code syntax cleared")
	Cmd.Flags().String("dialect", "css", "Web dialect: css, sass, less")
	Cmd.Flags().Bool("wrap", true, "Wrap CSS names in var()")
	Cmd.Flags().Bool("collection-prefix", true, "Prefix names with their collection")
	Cmd.Flags().Bool("abbreviate", true, "Abbreviate collection prefixes")
	Cmd.Flags().String("separator", "-", "Separator after the collection prefix")
}

func run(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = "."
	}

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags(), config.FlagBindings); err != nil {
		return err
	}
	cfg, err := config.Resolve(fs.NewOSFileSystem(), root, v)
	if err != nil {
		return err
	}
	return Render(cmd.OutOrStdout(), cfg.Settings)
}

// Render writes one line per enabled platform.
func Render(w io.Writer, settings config.Settings) error {
	preview, err := pipeline.Preview(settings)
	if err != nil {
		return err
	}
	for _, p := range variable.Platforms {
		value, ok := preview[p]
		if !ok {
			continue
		}
		if value == "" {
			value = "(cleared)"
		}
		if _, err := fmt.Fprintf(w, "%-8s %s\n", p, value); err != nil {
			return err
		}
	}
	return nil
}
