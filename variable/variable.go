/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package variable provides the design-tool variable and collection types
// that code syntax is generated for.
package variable

import (
	"fmt"
	"strings"
)

// Variable is a single design token as the design tool's document model
// exposes it.
type Variable struct {
	// ID uniquely identifies the variable within its document.
	ID string `json:"id" yaml:"id"`

	// Name is the raw, free-form name (e.g., "color/brand/primary").
	Name string `json:"name" yaml:"name"`

	// CollectionID is the id of the owning collection.
	CollectionID string `json:"variableCollectionId" yaml:"variableCollectionId"`

	// Type is the resolved data type of the variable's values.
	Type ResolvedType `json:"resolvedType" yaml:"resolvedType"`

	// CodeSyntax holds previously assigned per-platform identifiers.
	CodeSyntax map[Platform]string `json:"codeSyntax,omitempty" yaml:"codeSyntax,omitempty"`
}

// HasCodeSyntax reports whether a non-empty identifier is assigned for p.
func (v *Variable) HasCodeSyntax(p Platform) bool {
	return v.CodeSyntax[p] != ""
}

// Collection is a named grouping of variables.
type Collection struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// ResolvedType is the data type a variable resolves to.
type ResolvedType string

// Resolved data types.
const (
	TypeBoolean ResolvedType = "BOOLEAN"
	TypeColor   ResolvedType = "COLOR"
	TypeFloat   ResolvedType = "FLOAT"
	TypeString  ResolvedType = "STRING"
)

// ParseResolvedType parses a resolved type name, case-insensitively.
// The empty string parses to the empty type, meaning "any".
func ParseResolvedType(s string) (ResolvedType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "BOOLEAN", "BOOL":
		return TypeBoolean, nil
	case "COLOR", "COLOUR":
		return TypeColor, nil
	case "FLOAT", "NUMBER":
		return TypeFloat, nil
	case "STRING":
		return TypeString, nil
	default:
		return "", fmt.Errorf("unknown variable type %q", s)
	}
}

// Platform is a code syntax target.
type Platform string

// Code syntax platforms. The keys match the design tool's codeSyntax record.
const (
	Web     Platform = "WEB"
	Android Platform = "ANDROID"
	IOS     Platform = "iOS"
)

// Platforms lists every platform in processing order.
var Platforms = []Platform{Web, Android, IOS}

// ParsePlatform parses a platform key, case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform %q", s)
}
