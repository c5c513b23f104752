/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package pipeline

import (
	"fmt"

	"bennypowers.dev/codesyntax/assign"
	"bennypowers.dev/codesyntax/variable"
)

// Mutation is one code syntax write or removal.
type Mutation struct {
	VariableID   string
	VariableName string
	Platform     variable.Platform
	Action       assign.Action

	// Previous is the value before the mutation, empty when unset.
	Previous string

	// Value is the new value, empty for removals.
	Value string
}

// Warning is a per-variable failure. The run continues past it.
type Warning struct {
	VariableID   string
	VariableName string
	Err          error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s (%s): %v", w.VariableName, w.VariableID, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Result is the outcome of a run.
type Result struct {
	// Selected is the number of variables that passed the filters.
	Selected int

	// Mutations lists every write and removal in processing order.
	Mutations []Mutation

	// Unchanged counts (variable, platform) pairs left as they were.
	Unchanged int

	// Warnings lists per-variable failures.
	Warnings []Warning

	// DryRun is set when no mutation was applied.
	DryRun bool
}

// Count returns the number of mutations with the given action.
func (r *Result) Count(a assign.Action) int {
	n := 0
	for _, m := range r.Mutations {
		if m.Action == a {
			n++
		}
	}
	return n
}

// OK reports whether every variable was processed without a warning.
func (r *Result) OK() bool {
	return len(r.Warnings) == 0
}
