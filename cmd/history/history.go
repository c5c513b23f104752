/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package history provides the history command for codesyntax.
package history

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/journal"
)

// Cmd is the history cobra command.
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded code syntax changes",
	Long: `Show the runs and changes recorded in the journal.

The journal is written by "generate" when a journal path is configured,
either as "journal" in the config file or with --journal.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("journal", "", "Journal to read")
	Cmd.Flags().Lookup("journal").NoOptDefVal = journal.DefaultPath
	Cmd.Flags().IntP("limit", "n", 20, "Maximum entries to show")
	Cmd.Flags().Bool("runs", false, "Show runs instead of individual changes")
}

func run(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = "."
	}
	limit, _ := cmd.Flags().GetInt("limit")
	runs, _ := cmd.Flags().GetBool("runs")

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags(), config.FlagBindings); err != nil {
		return err
	}
	cfg, err := config.Resolve(fs.NewOSFileSystem(), root, v)
	if err != nil {
		return err
	}
	if cfg.Journal == "" {
		return errors.New("no journal configured: set journal in the config file or pass --journal")
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer j.Close()

	if runs {
		return printRuns(cmd.Context(), cmd.OutOrStdout(), j, limit)
	}
	return printChanges(cmd.Context(), cmd.OutOrStdout(), j, limit)
}

func printRuns(ctx context.Context, w io.Writer, j *journal.Journal, limit int) error {
	runs, err := j.Runs(ctx, limit)
	if err != nil {
		return err
	}
	for _, r := range runs {
		mode := ""
		if r.DryRun {
			mode = " (dry run)"
		}
		if _, err := fmt.Fprintf(w, "#%-5d %s  %-30s selected %d, changed %d, unchanged %d, warnings %d%s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime), r.Source,
			r.Selected, r.Changes, r.Unchanged, r.Warnings, mode); err != nil {
			return err
		}
	}
	return nil
}

func printChanges(ctx context.Context, w io.Writer, j *journal.Journal, limit int) error {
	changes, err := j.Changes(ctx, limit)
	if err != nil {
		return err
	}
	for _, c := range changes {
		detail := c.Value
		switch c.Action {
		case "overwrite":
			detail = c.Previous + " -> " + c.Value
		case "remove":
			detail = c.Previous
		}
		if _, err := fmt.Fprintf(w, "#%-5d %s  %-9s %-7s %-40s %s\n",
			c.RunID, c.OccurredAt.Local().Format(time.DateTime), c.Action, c.Platform,
			c.VariableName, detail); err != nil {
			return err
		}
	}
	return nil
}
