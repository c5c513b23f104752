/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/variable"
)

func TestMemory(t *testing.T) {
	doc := document.NewMemory()
	doc.AddCollection(variable.Collection{ID: "c1", Name: "Primitives"})
	doc.AddVariable(&variable.Variable{ID: "v1", Name: "color/red", CollectionID: "c1", Type: variable.TypeColor})
	doc.AddVariable(&variable.Variable{ID: "v2", Name: "size/100", CollectionID: "c1", Type: variable.TypeFloat})

	all, err := doc.Variables("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "v1", all[0].ID)

	colors, err := doc.Variables(variable.TypeColor)
	require.NoError(t, err)
	require.Len(t, colors, 1)
	assert.Equal(t, "v1", colors[0].ID)

	require.NoError(t, doc.SetCodeSyntax(all[0], variable.Web, "var(--color-red)"))
	v, ok := doc.Variable("v1")
	require.True(t, ok)
	assert.Equal(t, "var(--color-red)", v.CodeSyntax[variable.Web])

	require.NoError(t, doc.RemoveCodeSyntax(all[0], variable.Web))
	assert.False(t, v.HasCodeSyntax(variable.Web))

	err = doc.SetCodeSyntax(&variable.Variable{ID: "nope"}, variable.Web, "x")
	assert.ErrorIs(t, err, document.ErrUnknownVariable)
}

func TestSortedCollections(t *testing.T) {
	in := []variable.Collection{
		{ID: "1", Name: "semantic"},
		{ID: "2", Name: "Components"},
		{ID: "3", Name: "Primitives"},
	}
	sorted := document.SortedCollections(in)
	assert.Equal(t, "Components", sorted[0].Name)
	assert.Equal(t, "Primitives", sorted[1].Name)
	assert.Equal(t, "semantic", sorted[2].Name)
	assert.Equal(t, "semantic", in[0].Name, "input is not reordered")
}
