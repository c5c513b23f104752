/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package pipeline runs code syntax generation over a document: select
// variables, derive canonical names, format them per platform and assign.
package pipeline

import (
	"errors"
	"fmt"

	"bennypowers.dev/codesyntax/assign"
	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/internal/logger"
	"bennypowers.dev/codesyntax/naming"
	"bennypowers.dev/codesyntax/selector"
	"bennypowers.dev/codesyntax/variable"
)

// ErrEmptyIdentifier marks a variable whose name sanitized to nothing.
// The empty identifier is still assigned.
var ErrEmptyIdentifier = errors.New("name sanitizes to an empty identifier")

// Options configures a run.
type Options struct {
	// DryRun computes every decision without writing to the document.
	DryRun bool

	// Observer, when set, is called for each mutation as it happens.
	Observer func(Mutation)
}

// Run generates code syntax for every selected variable of doc.
//
// Invalid settings or filter patterns fail before any write. Failures on a
// single variable are recorded as warnings and the run moves on.
func Run(doc document.Document, settings config.Settings, opts Options) (*Result, error) {
	if err := settings.Validate(); err != nil {
		return nil, &selector.ConfigurationError{Field: "settings", Err: err}
	}
	filters, err := settings.SelectorFilters()
	if err != nil {
		return nil, err
	}
	sel, err := selector.Compile(filters)
	if err != nil {
		return nil, err
	}
	dialect, err := settings.Dialect()
	if err != nil {
		return nil, err
	}

	collections, err := doc.Collections()
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	vars, err := doc.Variables(sel.Type())
	if err != nil {
		return nil, fmt.Errorf("failed to list variables: %w", err)
	}

	r := &runner{
		doc:      doc,
		settings: settings,
		opts:     opts,
		prefixer: naming.NewPrefixer(collections, settings.PrefixOptions()),
		naming:   settings.NamingOptions(),
		dialect:  dialect,
		result:   &Result{DryRun: opts.DryRun},
	}

	selected := sel.Select(vars)
	r.result.Selected = len(selected)
	logger.Debug("processing %d of %d variables", len(selected), len(vars))

	for _, v := range selected {
		if err := r.process(v); err != nil {
			w := Warning{VariableID: v.ID, VariableName: v.Name, Err: err}
			logger.Warn("%v", w)
			r.result.Warnings = append(r.result.Warnings, w)
		}
	}

	return r.result, nil
}

type runner struct {
	doc      document.Document
	settings config.Settings
	opts     Options
	prefixer *naming.Prefixer
	naming   naming.Options
	dialect  assign.Dialect
	result   *Result
}

// CanonicalName returns the sanitized, prefixed web name for v.
func CanonicalName(v *variable.Variable, prefixer *naming.Prefixer, opts naming.Options) (string, error) {
	collection, err := prefixer.Prefix(v)
	if err != nil {
		return "", err
	}
	// one collapse regardless of ReduceRepeats: the collection segment can
	// introduce a repeat of its own
	return naming.Collapse(naming.Web(collection, v.Name, opts)), nil
}

func (r *runner) process(v *variable.Variable) error {
	name, err := CanonicalName(v, r.prefixer, r.naming)
	if err != nil {
		return err
	}
	logger.Debug("%s -> %s", v.Name, name)

	var errs []error
	if name == "" {
		errs = append(errs, ErrEmptyIdentifier)
	}

	for _, p := range r.settings.EnabledPlatforms() {
		if err := r.assign(v, p, r.format(name, p)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *runner) format(name string, p variable.Platform) string {
	if p == variable.Web {
		return assign.FormatWeb(name, r.dialect, r.settings.Web.Wrap)
	}
	return assign.FormatNative(name)
}

func (r *runner) assign(v *variable.Variable, p variable.Platform, value string) error {
	previous := v.CodeSyntax[p]
	action, err := assign.Apply(r.doc, v, p, value, r.settings.Platform(p).Intent(), r.opts.DryRun)
	if err != nil {
		return err
	}
	if action == assign.None {
		r.result.Unchanged++
		return nil
	}

	m := Mutation{
		VariableID:   v.ID,
		VariableName: v.Name,
		Platform:     p,
		Action:       action,
		Previous:     previous,
	}
	if action != assign.Remove {
		m.Value = value
	}
	r.result.Mutations = append(r.result.Mutations, m)
	if r.opts.Observer != nil {
		r.opts.Observer(m)
	}
	return nil
}
