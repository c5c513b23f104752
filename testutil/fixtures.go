/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for codesyntax.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/internal/mapfs"
	"bennypowers.dev/codesyntax/variable"
)

// fixtureRoots are tried in order since go test runs in the package directory.
var fixtureRoots = []string{
	"testdata",
	filepath.Join("..", "testdata"),
	filepath.Join("..", "..", "testdata"),
}

// NewFixtureFS loads fixture files from testdata and returns a MapFileSystem
// with files mapped to the specified root path.
func NewFixtureFS(t *testing.T, fixtureDir string, rootPath string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()

	var fixturePath string
	for _, root := range fixtureRoots {
		candidate := filepath.Join(root, fixtureDir)
		if _, err := os.Stat(candidate); err == nil {
			fixturePath = candidate
			break
		}
	}
	if fixturePath == "" {
		t.Fatalf("Could not find fixtures at %s (tried all paths)", fixtureDir)
	}

	err := filepath.WalkDir(fixturePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(fixturePath, path)
		if err != nil {
			return err
		}
		mfs.AddFile(filepath.ToSlash(filepath.Join(rootPath, relPath)), string(content), 0644)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to load fixtures from %s: %v", fixtureDir, err)
	}

	return mfs
}

// LoadFixtureFile reads a single fixture file and returns its content.
func LoadFixtureFile(t *testing.T, fixturePath string) []byte {
	t.Helper()

	for _, root := range fixtureRoots {
		content, err := os.ReadFile(filepath.Join(root, fixturePath))
		if err == nil {
			return content
		}
	}
	t.Fatalf("Failed to read fixture %s (tried all paths)", fixturePath)
	return nil
}

// documentFixture is the YAML shape of an in-memory document fixture.
type documentFixture struct {
	Collections []variable.Collection `yaml:"collections"`
	Variables   []*variable.Variable  `yaml:"variables"`
}

// NewMemoryDocument builds an in-memory document from a YAML fixture with
// top-level "collections" and "variables" lists.
func NewMemoryDocument(t *testing.T, fixturePath string) *document.Memory {
	t.Helper()

	var fixture documentFixture
	if err := yaml.Unmarshal(LoadFixtureFile(t, fixturePath), &fixture); err != nil {
		t.Fatalf("Failed to parse document fixture %s: %v", fixturePath, err)
	}

	doc := document.NewMemory()
	for _, c := range fixture.Collections {
		doc.AddCollection(c)
	}
	for _, v := range fixture.Variables {
		doc.AddVariable(v)
	}
	return doc
}
