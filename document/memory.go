/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document

import (
	"fmt"

	"bennypowers.dev/codesyntax/variable"
)

// Memory is an in-memory Document. It is the base of the file-backed
// documents and stands in for the host in tests.
type Memory struct {
	collections []variable.Collection
	variables   []*variable.Variable
	byID        map[string]*variable.Variable
}

// NewMemory creates an empty in-memory document.
func NewMemory() *Memory {
	return &Memory{byID: make(map[string]*variable.Variable)}
}

// AddCollection appends a collection.
func (m *Memory) AddCollection(c variable.Collection) {
	m.collections = append(m.collections, c)
}

// AddVariable appends a variable, keeping insertion order.
func (m *Memory) AddVariable(v *variable.Variable) {
	if v.CodeSyntax == nil {
		v.CodeSyntax = make(map[variable.Platform]string)
	}
	m.variables = append(m.variables, v)
	m.byID[v.ID] = v
}

// Variable returns the variable with the given id.
func (m *Memory) Variable(id string) (*variable.Variable, bool) {
	v, ok := m.byID[id]
	return v, ok
}

// Variables implements Reader.
func (m *Memory) Variables(typ variable.ResolvedType) ([]*variable.Variable, error) {
	result := make([]*variable.Variable, 0, len(m.variables))
	for _, v := range m.variables {
		if typ != "" && v.Type != typ {
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

// Collections implements Reader.
func (m *Memory) Collections() ([]variable.Collection, error) {
	return append([]variable.Collection(nil), m.collections...), nil
}

// SetCodeSyntax implements Writer.
func (m *Memory) SetCodeSyntax(v *variable.Variable, p variable.Platform, value string) error {
	held, err := m.lookup(v)
	if err != nil {
		return err
	}
	held.CodeSyntax[p] = value
	return nil
}

// RemoveCodeSyntax implements Writer.
func (m *Memory) RemoveCodeSyntax(v *variable.Variable, p variable.Platform) error {
	held, err := m.lookup(v)
	if err != nil {
		return err
	}
	delete(held.CodeSyntax, p)
	return nil
}

func (m *Memory) lookup(v *variable.Variable) (*variable.Variable, error) {
	held, ok := m.byID[v.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVariable, v.ID)
	}
	if held.CodeSyntax == nil {
		held.CodeSyntax = make(map[variable.Platform]string)
	}
	return held, nil
}
