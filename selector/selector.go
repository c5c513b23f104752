/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package selector chooses which variables a run processes.
package selector

import (
	"fmt"
	"regexp"

	"bennypowers.dev/codesyntax/variable"
)

// Filters are the user-supplied selection criteria. Empty fields always pass.
type Filters struct {
	// Name is a regular expression matched against the raw variable name.
	Name string

	// Collection is matched against the collection id as a regular
	// expression, so a plain id also matches as a substring.
	Collection string

	// Type limits the run to one resolved type. It is applied by the
	// document read, not by Select.
	Type variable.ResolvedType
}

// ConfigurationError reports an invalid filter. It is raised before any
// variable is touched.
type ConfigurationError struct {
	Field   string
	Pattern string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Pattern == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s filter %q: %v", e.Field, e.Pattern, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Selector filters a variable list.
type Selector struct {
	name       *regexp.Regexp
	collection *regexp.Regexp
	typ        variable.ResolvedType
}

// Compile validates f and returns a Selector.
func Compile(f Filters) (*Selector, error) {
	s := &Selector{typ: f.Type}
	var err error
	if f.Collection != "" {
		if s.collection, err = regexp.Compile(f.Collection); err != nil {
			return nil, &ConfigurationError{Field: "collection", Pattern: f.Collection, Err: err}
		}
	}
	if f.Name != "" {
		if s.name, err = regexp.Compile(f.Name); err != nil {
			return nil, &ConfigurationError{Field: "name", Pattern: f.Name, Err: err}
		}
	}
	return s, nil
}

// Type returns the type filter to hand to the document read.
func (s *Selector) Type() variable.ResolvedType {
	return s.typ
}

// Match reports whether v passes the collection and name filters.
func (s *Selector) Match(v *variable.Variable) bool {
	if s.collection != nil && !s.collection.MatchString(v.CollectionID) {
		return false
	}
	if s.name != nil && !s.name.MatchString(v.Name) {
		return false
	}
	return true
}

// Select returns the matching variables in their original order.
// Variables of another type are dropped too, so Select is safe on an
// unfiltered read.
func (s *Selector) Select(vars []*variable.Variable) []*variable.Variable {
	selected := make([]*variable.Variable, 0, len(vars))
	for _, v := range vars {
		if s.typ != "" && v.Type != s.typ {
			continue
		}
		if s.Match(v) {
			selected = append(selected, v)
		}
	}
	return selected
}
