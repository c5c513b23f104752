/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package document abstracts the design tool's document model: where
// variables and collections come from and where code syntax is persisted.
package document

import (
	"errors"
	"slices"
	"strings"

	"bennypowers.dev/codesyntax/variable"
)

// ErrUnknownVariable indicates a write targeted a variable the document does
// not hold.
var ErrUnknownVariable = errors.New("unknown variable")

// Reader lists a document's variables and collections.
type Reader interface {
	// Variables returns variables in document order. A non-empty typ limits
	// the result to that resolved type.
	Variables(typ variable.ResolvedType) ([]*variable.Variable, error)

	// Collections returns the document's collections.
	Collections() ([]variable.Collection, error)
}

// Writer persists code syntax on a variable.
type Writer interface {
	SetCodeSyntax(v *variable.Variable, p variable.Platform, value string) error
	RemoveCodeSyntax(v *variable.Variable, p variable.Platform) error
}

// Document is a readable and writable document model.
type Document interface {
	Reader
	Writer
}

// SortedCollections returns a copy of collections ordered by name,
// case-insensitively.
func SortedCollections(collections []variable.Collection) []variable.Collection {
	sorted := slices.Clone(collections)
	slices.SortStableFunc(sorted, func(a, b variable.Collection) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return sorted
}
