/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package figma reads the design tool's local variables payload and
// collects code syntax changes for writing back.
//
// The payload is the body of GET /v1/files/:key/variables/local:
//
//	{"status": 200, "error": false, "meta": {
//	  "variableCollections": {"<id>": {"id": "...", "name": "...", ...}},
//	  "variables": {"<id>": {"id": "...", "name": "...",
//	    "variableCollectionId": "...", "resolvedType": "COLOR",
//	    "codeSyntax": {"WEB": "..."}, ...}}}}
package figma

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"

	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/variable"
)

// ErrInvalidPayload indicates the input is not a local variables payload.
var ErrInvalidPayload = errors.New("invalid variables payload")

// Update is one entry of a variables update request.
// An empty string removes the platform's code syntax.
type Update struct {
	Action     string                       `json:"action"`
	ID         string                       `json:"id"`
	CodeSyntax map[variable.Platform]string `json:"codeSyntax"`
}

// Document is a parsed local variables payload.
type Document struct {
	*document.Memory

	collectionsRaw string
	variablesRaw   map[string]string
	order          []string

	updates map[string]*Update
	touched []string
}

// Parse reads a local variables payload. Variables and collections keep the
// order they appear in.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidPayload)
	}
	if failed := gjson.GetBytes(data, "error"); failed.Bool() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPayload, errorMessage(data))
	}
	meta := gjson.GetBytes(data, "meta")
	if !meta.IsObject() {
		return nil, fmt.Errorf("%w: missing meta", ErrInvalidPayload)
	}

	d := &Document{
		Memory:         document.NewMemory(),
		collectionsRaw: "{}",
		variablesRaw:   make(map[string]string),
		updates:        make(map[string]*Update),
	}

	if collections := meta.Get("variableCollections"); collections.IsObject() {
		d.collectionsRaw = collections.Raw
		collections.ForEach(func(key, value gjson.Result) bool {
			d.AddCollection(variable.Collection{
				ID:   idOf(key, value),
				Name: value.Get("name").String(),
			})
			return true
		})
	}

	var err error
	meta.Get("variables").ForEach(func(key, value gjson.Result) bool {
		v := &variable.Variable{
			ID:           idOf(key, value),
			Name:         value.Get("name").String(),
			CollectionID: value.Get("variableCollectionId").String(),
			CodeSyntax:   make(map[variable.Platform]string),
		}
		if v.Type, err = variable.ParseResolvedType(value.Get("resolvedType").String()); err != nil {
			err = fmt.Errorf("variable %s: %w", v.ID, err)
			return false
		}
		value.Get("codeSyntax").ForEach(func(platform, syntax gjson.Result) bool {
			if p, perr := variable.ParsePlatform(platform.String()); perr == nil {
				v.CodeSyntax[p] = syntax.String()
			}
			return true
		})
		d.AddVariable(v)
		d.variablesRaw[v.ID] = value.Raw
		d.order = append(d.order, v.ID)
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return d, nil
}

func idOf(key, value gjson.Result) string {
	if id := value.Get("id").String(); id != "" {
		return id
	}
	return key.String()
}

func errorMessage(data []byte) string {
	for _, path := range []string{"message", "err"} {
		if msg := gjson.GetBytes(data, path).String(); msg != "" {
			return msg
		}
	}
	return "request failed"
}

// SetCodeSyntax implements document.Writer and records an update.
func (d *Document) SetCodeSyntax(v *variable.Variable, p variable.Platform, value string) error {
	if err := d.Memory.SetCodeSyntax(v, p, value); err != nil {
		return err
	}
	d.record(v.ID, p, value)
	return nil
}

// RemoveCodeSyntax implements document.Writer and records an update.
func (d *Document) RemoveCodeSyntax(v *variable.Variable, p variable.Platform) error {
	if err := d.Memory.RemoveCodeSyntax(v, p); err != nil {
		return err
	}
	d.record(v.ID, p, "")
	return nil
}

func (d *Document) record(id string, p variable.Platform, value string) {
	u, ok := d.updates[id]
	if !ok {
		u = &Update{Action: "UPDATE", ID: id, CodeSyntax: make(map[variable.Platform]string)}
		d.updates[id] = u
		d.touched = append(d.touched, id)
	}
	u.CodeSyntax[p] = value
}

// Updates returns the pending updates in the order variables were first
// changed.
func (d *Document) Updates() []Update {
	updates := make([]Update, 0, len(d.touched))
	for _, id := range d.touched {
		updates = append(updates, *d.updates[id])
	}
	return updates
}

// Export writes the payload back with current code syntax. Variables keep
// their order and every field other than codeSyntax is carried through.
func (d *Document) Export(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteString(`{"status":200,"error":false,"meta":{"variableCollections":`)
	buf.WriteString(d.collectionsRaw)
	buf.WriteString(`,"variables":{`)

	for i, id := range d.order {
		v, _ := d.Variable(id)

		var fields map[string]any
		if err := json.Unmarshal([]byte(d.variablesRaw[id]), &fields); err != nil {
			return fmt.Errorf("failed to decode variable %s: %w", id, err)
		}
		fields["codeSyntax"] = v.CodeSyntax

		key, err := json.Marshal(id)
		if err != nil {
			return err
		}
		value, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to encode variable %s: %w", id, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}}}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
