/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for codesyntax.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/internal/session"
	"bennypowers.dev/codesyntax/selector"
	"bennypowers.dev/codesyntax/variable"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List variables and their code syntax",
	Long:  `List variables with their current code syntax, or the collections they belong to.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("type", "", "Filter by variable type")
	Cmd.Flags().String("name", "", "Filter by name (regular expression)")
	Cmd.Flags().String("collection", "", "Filter by collection id (regular expression)")
	Cmd.Flags().Bool("missing", false, "Show only variables missing code syntax on some platform")
	Cmd.Flags().Bool("collections", false, "List collections instead of variables")
	Cmd.Flags().String("format", "table", "Output format: table, json")
	Cmd.Flags().String("input", "", "Local variables payload file to read")
	Cmd.Flags().String("file-key", "", "Design file key to fetch variables from")
	Cmd.Flags().String("token", "", "Personal access token for the REST API")
	Cmd.Flags().String("api-url", "", "REST API base URL")
}

// Options controls what is listed.
type Options struct {
	Filters     selector.Filters
	Missing     bool
	Collections bool
	Format      string
}

func run(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		root = "."
	}
	input, _ := cmd.Flags().GetString("input")
	missing, _ := cmd.Flags().GetBool("missing")
	collections, _ := cmd.Flags().GetBool("collections")
	format, _ := cmd.Flags().GetString("format")

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags(), config.FlagBindings); err != nil {
		return err
	}
	filesystem := fs.NewOSFileSystem()
	cfg, err := config.Resolve(filesystem, root, v)
	if err != nil {
		return err
	}
	if err := cfg.UseFiles(args); err != nil {
		return err
	}

	filters, err := cfg.SelectorFilters()
	if err != nil {
		return err
	}

	s, err := session.Open(cmd.Context(), filesystem, cfg, session.Options{Root: root, Input: input})
	if err != nil {
		return err
	}

	return List(cmd.OutOrStdout(), s.Doc, Options{
		Filters:     filters,
		Missing:     missing,
		Collections: collections,
		Format:      format,
	})
}

// List writes the document's variables or collections to w.
func List(w io.Writer, doc document.Reader, opts Options) error {
	if opts.Collections {
		collections, err := doc.Collections()
		if err != nil {
			return err
		}
		collections = document.SortedCollections(collections)
		if opts.Format == "json" {
			return outputJSON(w, collections)
		}
		for _, c := range collections {
			if _, err := fmt.Fprintf(w, "%-40s %s\n", c.Name, c.ID); err != nil {
				return err
			}
		}
		return nil
	}

	vars, err := doc.Variables(opts.Filters.Type)
	if err != nil {
		return err
	}
	vars, err = filterVariables(vars, opts.Filters, opts.Missing)
	if err != nil {
		return err
	}

	sort.SliceStable(vars, func(i, j int) bool {
		return vars[i].Name < vars[j].Name
	})

	switch opts.Format {
	case "json":
		return outputVariablesJSON(w, vars)
	default:
		return outputTable(w, vars)
	}
}

// filterVariables applies the selection filters, then keeps only variables
// missing code syntax on at least one platform when missing is set.
func filterVariables(vars []*variable.Variable, filters selector.Filters, missing bool) ([]*variable.Variable, error) {
	sel, err := selector.Compile(filters)
	if err != nil {
		return nil, err
	}
	vars = sel.Select(vars)
	if !missing {
		return vars, nil
	}

	filtered := make([]*variable.Variable, 0, len(vars))
	for _, v := range vars {
		for _, p := range variable.Platforms {
			if !v.HasCodeSyntax(p) {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered, nil
}

func outputTable(w io.Writer, vars []*variable.Variable) error {
	for _, v := range vars {
		if _, err := fmt.Fprintf(w, "%-40s %-8s", v.Name, v.Type); err != nil {
			return err
		}
		for _, p := range variable.Platforms {
			value := v.CodeSyntax[p]
			if value == "" {
				value = "-"
			}
			if _, err := fmt.Fprintf(w, " %-32s", value); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func outputVariablesJSON(w io.Writer, vars []*variable.Variable) error {
	type variableOutput struct {
		ID           string                       `json:"id"`
		Name         string                       `json:"name"`
		CollectionID string                       `json:"variableCollectionId"`
		Type         variable.ResolvedType        `json:"resolvedType"`
		CodeSyntax   map[variable.Platform]string `json:"codeSyntax"`
	}

	output := make([]variableOutput, 0, len(vars))
	for _, v := range vars {
		output = append(output, variableOutput{
			ID:           v.ID,
			Name:         v.Name,
			CollectionID: v.CollectionID,
			Type:         v.Type,
			CodeSyntax:   v.CodeSyntax,
		})
	}
	return outputJSON(w, output)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
