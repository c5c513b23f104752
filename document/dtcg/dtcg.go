/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package dtcg exposes DTCG design token files as a document.
//
// Each file is a collection and each token a variable named by its path
// ("color/brand/primary"). Code syntax lives in the token's
// $extensions["com.figma"].codeSyntax object, the shape the design tool
// itself exports, so files round-trip through its importer.
package dtcg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mazznoer/csscolorparser"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/codesyntax/document"
	csfs "bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/variable"
)

// ExtensionKey is the $extensions namespace code syntax is stored under.
const ExtensionKey = "com.figma"

// codeSyntaxKey is the object inside ExtensionKey holding per-platform values.
const codeSyntaxKey = "codeSyntax"

// Source is a token file to load.
type Source struct {
	Path string

	// Collection overrides the collection name derived from the file name.
	Collection string
}

// Document is a set of token files loaded as one document.
type Document struct {
	*document.Memory

	filesystem csfs.FileSystem
	files      []*file
	nodes      map[string]*node
}

type file struct {
	path  string
	yaml  bool
	root  map[string]any
	dirty bool
}

// node is the raw token object a variable was read from.
type node struct {
	file *file
	raw  map[string]any
}

// Load parses every source into one document. Sources are read in order.
func Load(filesystem csfs.FileSystem, sources []Source) (*Document, error) {
	d := &Document{
		Memory:     document.NewMemory(),
		filesystem: filesystem,
		nodes:      make(map[string]*node),
	}
	for _, src := range sources {
		if err := d.load(src); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Document) load(src Source) error {
	data, err := d.filesystem.ReadFile(src.Path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", src.Path, err)
	}

	f := &file{path: src.Path, yaml: !isLikelyJSON(data)}
	if f.yaml {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", src.Path, err)
		}
		root, ok := normalizeMap(raw).(map[string]any)
		if !ok {
			return fmt.Errorf("failed to parse YAML %s: root must be an object", src.Path)
		}
		f.root = root
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(data), &f.root); err != nil {
			return fmt.Errorf("failed to parse JSON %s: %w", src.Path, err)
		}
	}
	d.files = append(d.files, f)

	collection := variable.Collection{ID: src.Path, Name: src.Collection}
	if collection.Name == "" {
		collection.Name = collectionName(src.Path)
	}
	d.AddCollection(collection)

	d.extract(f, f.root, nil, "", collection.ID)
	return nil
}

// collectionName derives a collection name from a file name:
// "tokens/Primitives.tokens.json" becomes "Primitives".
func collectionName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, ".tokens")
}

// extract walks a group, adding a variable for every token.
// inheritedType is the $type from parent groups.
func (d *Document) extract(f *file, group map[string]any, path []string, inheritedType, collectionID string) {
	currentType := inheritedType
	if groupType, ok := group["$type"].(string); ok {
		currentType = groupType
	}

	keys := make([]string, 0, len(group))
	for k := range group {
		if !strings.HasPrefix(k, "$") {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		child, ok := group[key].(map[string]any)
		if !ok {
			continue
		}
		childPath := append(append([]string(nil), path...), key)

		value, isToken := child["$value"]
		if !isToken {
			d.extract(f, child, childPath, currentType, collectionID)
			continue
		}

		tokenType := currentType
		if t, ok := child["$type"].(string); ok {
			tokenType = t
		}

		v := &variable.Variable{
			ID:           collectionID + "#" + strings.Join(childPath, "."),
			Name:         strings.Join(childPath, "/"),
			CollectionID: collectionID,
			Type:         resolvedType(tokenType, value),
			CodeSyntax:   readCodeSyntax(child),
		}
		d.AddVariable(v)
		d.nodes[v.ID] = &node{file: f, raw: child}
	}
}

// resolvedType maps a DTCG $type to a resolved type, inferring it from the
// value when the token is untyped.
func resolvedType(dtcgType string, value any) variable.ResolvedType {
	switch dtcgType {
	case "color":
		return variable.TypeColor
	case "number", "dimension", "duration", "fontWeight":
		return variable.TypeFloat
	case "boolean":
		return variable.TypeBoolean
	case "":
	default:
		return variable.TypeString
	}

	switch x := value.(type) {
	case bool:
		return variable.TypeBoolean
	case float64, int:
		return variable.TypeFloat
	case map[string]any:
		if _, ok := x["colorSpace"]; ok {
			return variable.TypeColor
		}
	case string:
		if !strings.HasPrefix(x, "{") {
			if _, err := csscolorparser.Parse(x); err == nil {
				return variable.TypeColor
			}
		}
	}
	return variable.TypeString
}

func readCodeSyntax(raw map[string]any) map[variable.Platform]string {
	result := make(map[variable.Platform]string)
	ext, _ := raw["$extensions"].(map[string]any)
	ns, _ := ext[ExtensionKey].(map[string]any)
	cs, _ := ns[codeSyntaxKey].(map[string]any)
	for k, v := range cs {
		p, err := variable.ParsePlatform(k)
		if err != nil {
			continue
		}
		if s, ok := v.(string); ok {
			result[p] = s
		}
	}
	return result
}

// SetCodeSyntax implements document.Writer and updates the token file.
func (d *Document) SetCodeSyntax(v *variable.Variable, p variable.Platform, value string) error {
	n, err := d.node(v)
	if err != nil {
		return err
	}
	if err := d.Memory.SetCodeSyntax(v, p, value); err != nil {
		return err
	}
	cs := childMap(childMap(childMap(n.raw, "$extensions"), ExtensionKey), codeSyntaxKey)
	cs[string(p)] = value
	n.file.dirty = true
	return nil
}

// RemoveCodeSyntax implements document.Writer and updates the token file.
// Emptied extension objects are pruned.
func (d *Document) RemoveCodeSyntax(v *variable.Variable, p variable.Platform) error {
	n, err := d.node(v)
	if err != nil {
		return err
	}
	if err := d.Memory.RemoveCodeSyntax(v, p); err != nil {
		return err
	}

	ext, _ := n.raw["$extensions"].(map[string]any)
	ns, _ := ext[ExtensionKey].(map[string]any)
	cs, _ := ns[codeSyntaxKey].(map[string]any)
	if _, ok := cs[string(p)]; !ok {
		return nil
	}
	delete(cs, string(p))
	if len(cs) == 0 {
		delete(ns, codeSyntaxKey)
	}
	if len(ns) == 0 {
		delete(ext, ExtensionKey)
	}
	if len(ext) == 0 {
		delete(n.raw, "$extensions")
	}
	n.file.dirty = true
	return nil
}

func (d *Document) node(v *variable.Variable) (*node, error) {
	n, ok := d.nodes[v.ID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", document.ErrUnknownVariable, v.ID)
	}
	return n, nil
}

// childMap returns m[key] as a map, creating it when missing.
func childMap(m map[string]any, key string) map[string]any {
	if child, ok := m[key].(map[string]any); ok {
		return child
	}
	child := make(map[string]any)
	m[key] = child
	return child
}

// Dirty returns the paths of files with unsaved changes.
func (d *Document) Dirty() []string {
	var paths []string
	for _, f := range d.files {
		if f.dirty {
			paths = append(paths, f.path)
		}
	}
	return paths
}

// Save writes every changed file back in its original format and returns
// the paths written. Keys are written in sorted order.
func (d *Document) Save() ([]string, error) {
	var written []string
	for _, f := range d.files {
		if !f.dirty {
			continue
		}
		data, err := f.encode()
		if err != nil {
			return written, fmt.Errorf("failed to encode %s: %w", f.path, err)
		}
		if err := d.filesystem.WriteFile(f.path, data, 0644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		f.dirty = false
		written = append(written, f.path)
	}
	return written, nil
}

func (f *file) encode() ([]byte, error) {
	if f.yaml {
		return yaml.Marshal(f.root)
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case 0xEF, 0xBB, 0xBF: // UTF-8 BOM
			continue
		case '{', '/':
			return true
		default:
			return false
		}
	}
	return false
}

// normalizeMap converts the map[any]any YAML produces for non-string keys.
func normalizeMap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, val := range x {
			x[k] = normalizeMap(val)
		}
		return x
	case map[any]any:
		result := make(map[string]any, len(x))
		for k, val := range x {
			result[fmt.Sprintf("%v", k)] = normalizeMap(val)
		}
		return result
	case []any:
		for i, val := range x {
			x[i] = normalizeMap(val)
		}
		return x
	default:
		return v
	}
}
