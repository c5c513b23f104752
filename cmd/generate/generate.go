/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package generate provides the generate command for codesyntax.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bennypowers.dev/codesyntax/assign"
	"bennypowers.dev/codesyntax/config"
	csfs "bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/internal/logger"
	"bennypowers.dev/codesyntax/internal/session"
	"bennypowers.dev/codesyntax/journal"
	"bennypowers.dev/codesyntax/pipeline"
)

// Cmd is the generate cobra command.
var Cmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate and assign code syntax",
	Long: `Derive code syntax for every selected variable and write it back.

Variables come from, in order of precedence:
  --input      a local variables payload exported from the design file
  [files...]   DTCG token files (or "sources" in the config file)
  --file-key   the design file itself, fetched over the REST API

Existing code syntax is kept unless --force-<platform> is set.
--clear-<platform> removes it and takes precedence over --force.

Examples:
  # Preview what would change
  codesyntax generate --dry-run tokens/*.json

  # SASS variables with a global prefix, leaving Android alone
  codesyntax generate --dialect sass --prefix ds --android=false tokens/*.yaml

  # Rewrite every iOS identifier in the design file
  codesyntax generate --file-key abc123 --force-ios`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().Bool("dry-run", false, "Report changes without writing them")
	Cmd.Flags().String("input", "", "Local variables payload file to read")
	Cmd.Flags().StringP("output", "o", "", "Where to write the --input payload (default: in place)")
	Cmd.Flags().StringP("format", "f", "text", "Report format: text, json")

	Cmd.Flags().String("prefix", "", "Global name prefix")
	Cmd.Flags().Bool("web", true, "Generate Web code syntax")
	Cmd.Flags().Bool("android", true, "Generate Android code syntax")
	Cmd.Flags().Bool("ios", true, "Generate iOS code syntax")
	Cmd.Flags().Bool("force-web", false, "Overwrite existing Web code syntax")
	Cmd.Flags().Bool("force-android", false, "Overwrite existing Android code syntax")
	Cmd.Flags().Bool("force-ios", false, "Overwrite existing iOS code syntax")
	Cmd.Flags().Bool("clear-web", false, "Remove existing Web code syntax")
	Cmd.Flags().Bool("clear-android", false, "Remove existing Android code syntax")
	Cmd.Flags().Bool("clear-ios", false, "Remove existing iOS code syntax")
	Cmd.Flags().String("dialect", "css", "Web dialect: css, sass, less")
	Cmd.Flags().Bool("wrap", true, "Wrap CSS names in var()")
	Cmd.Flags().Bool("collection-prefix", true, "Prefix names with their collection")
	Cmd.Flags().Bool("abbreviate", true, "Abbreviate collection prefixes")
	Cmd.Flags().String("separator", "-", "Separator after the collection prefix")
	Cmd.Flags().Bool("pct", true, "Spell % as pct")
	Cmd.Flags().Bool("reduce-repeats", true, "Collapse repeated name phrases")
	Cmd.Flags().String("name", "", "Only variables whose name matches this regular expression")
	Cmd.Flags().String("collection", "", "Only variables whose collection id matches this regular expression")
	Cmd.Flags().String("type", "", "Only variables of this type: boolean, color, float, string")
	Cmd.Flags().String("file-key", "", "Design file key to fetch variables from")
	Cmd.Flags().String("token", "", "Personal access token for the REST API")
	Cmd.Flags().String("api-url", "", "REST API base URL")
	Cmd.Flags().String("journal", "", "Record changes in this SQLite journal")
	Cmd.Flags().Lookup("journal").NoOptDefVal = journal.DefaultPath
}

// Options are the per-invocation choices that are not settings.
type Options struct {
	Root   string
	Input  string
	Output string
	Format string
	DryRun bool
}

func run(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = "."
	}
	opts := Options{Root: root}
	opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
	opts.Input, _ = cmd.Flags().GetString("input")
	opts.Output, _ = cmd.Flags().GetString("output")
	opts.Format, _ = cmd.Flags().GetString("format")

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags(), config.FlagBindings); err != nil {
		return err
	}

	filesystem := csfs.NewOSFileSystem()
	cfg, err := config.Resolve(filesystem, root, v)
	if err != nil {
		return err
	}
	if err := cfg.UseFiles(args); err != nil {
		return err
	}

	_, err = Generate(cmd.Context(), cmd.OutOrStdout(), filesystem, cfg, opts)
	return err
}

// Generate runs the pipeline against the configured source, saves the
// changes unless this is a dry run, records them in the journal when one is
// configured and reports them to out.
func Generate(ctx context.Context, out io.Writer, filesystem csfs.FileSystem, cfg *config.Config, opts Options) (*pipeline.Result, error) {
	switch opts.Format {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("unknown format %q (valid: text, json)", opts.Format)
	}

	s, err := session.Open(ctx, filesystem, cfg, session.Options{
		Root:   opts.Root,
		Input:  opts.Input,
		Output: opts.Output,
	})
	if err != nil {
		return nil, err
	}

	result, err := pipeline.Run(s.Doc, cfg.Settings, pipeline.Options{DryRun: opts.DryRun})
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		written, err := s.Save(ctx)
		if err != nil {
			return result, err
		}
		for _, w := range written {
			logger.Info("wrote %s", w)
		}
		if cfg.Journal != "" {
			if err := record(ctx, cfg.Journal, s.Label, result); err != nil {
				return result, err
			}
		}
	}

	if opts.Format == "json" {
		return result, outputJSON(out, result)
	}
	return result, outputText(out, result)
}

func record(ctx context.Context, path, source string, result *pipeline.Result) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	runID, err := j.Record(ctx, source, result)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	logger.Debug("recorded run %d in %s", runID, path)
	return nil
}

func outputText(w io.Writer, result *pipeline.Result) error {
	for _, m := range result.Mutations {
		value := m.Value
		if m.Action == assign.Remove {
			value = m.Previous
		}
		if _, err := fmt.Fprintf(w, "%-9s %-7s %-40s %s\n", m.Action, m.Platform, m.VariableName, value); err != nil {
			return err
		}
	}
	verb := "changed"
	if result.DryRun {
		verb = "would change"
	}
	_, err := fmt.Fprintf(w, "%d variables, %s %d, unchanged %d, warnings %d\n",
		result.Selected, verb, len(result.Mutations), result.Unchanged, len(result.Warnings))
	return err
}

func outputJSON(w io.Writer, result *pipeline.Result) error {
	type mutationOutput struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Platform string `json:"platform"`
		Action   string `json:"action"`
		Previous string `json:"previous,omitempty"`
		Value    string `json:"value,omitempty"`
	}
	type warningOutput struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	type resultOutput struct {
		Selected  int              `json:"selected"`
		DryRun    bool             `json:"dryRun"`
		Unchanged int              `json:"unchanged"`
		Mutations []mutationOutput `json:"mutations"`
		Warnings  []warningOutput  `json:"warnings"`
	}

	output := resultOutput{
		Selected:  result.Selected,
		DryRun:    result.DryRun,
		Unchanged: result.Unchanged,
		Mutations: make([]mutationOutput, 0, len(result.Mutations)),
		Warnings:  make([]warningOutput, 0, len(result.Warnings)),
	}
	for _, m := range result.Mutations {
		output.Mutations = append(output.Mutations, mutationOutput{
			ID:       m.VariableID,
			Name:     m.VariableName,
			Platform: string(m.Platform),
			Action:   m.Action.String(),
			Previous: m.Previous,
			Value:    m.Value,
		})
	}
	for _, warning := range result.Warnings {
		output.Warnings = append(output.Warnings, warningOutput{
			ID:      warning.VariableID,
			Name:    warning.VariableName,
			Message: warning.Err.Error(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
