/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for codesyntax.
package cmd

import (
	"github.com/spf13/cobra"

	"bennypowers.dev/codesyntax/cmd/generate"
	"bennypowers.dev/codesyntax/cmd/history"
	"bennypowers.dev/codesyntax/cmd/list"
	"bennypowers.dev/codesyntax/cmd/preview"
	"bennypowers.dev/codesyntax/cmd/version"
	"bennypowers.dev/codesyntax/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "codesyntax",
	Short: "Generate code syntax for design token variables",
	Long: `codesyntax derives Web (CSS, SASS, LESS), Android and iOS code syntax
identifiers from design token variable names and writes them back to the
token files or the design file.

Settings are read from .config/code-syntax.{yaml,yml,json} in the project
root, then from CODESYNTAX_* environment variables, then from flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("loglevel")
		return logger.SetLevel(level)
	},
}

// Execute runs the root command and logs any error it returns.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("%v", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringP("root", "C", ".", "Project root containing .config/code-syntax.yaml")
	rootCmd.PersistentFlags().String("loglevel", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(generate.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(preview.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
