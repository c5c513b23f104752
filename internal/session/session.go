/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package session opens the document a command works on and saves it back
// the way it was read.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/codesyntax/config"
	"bennypowers.dev/codesyntax/document"
	"bennypowers.dev/codesyntax/document/dtcg"
	"bennypowers.dev/codesyntax/document/figma"
	csfs "bennypowers.dev/codesyntax/fs"
	"bennypowers.dev/codesyntax/internal/logger"
)

// ErrNoSource indicates neither token files, a payload file nor a remote
// file key was configured.
var ErrNoSource = errors.New("no variable source: pass token files, --input, or set figma.fileKey")

// Options selects the source.
type Options struct {
	// Root is the directory relative sources resolve against.
	Root string

	// Input is a local variables payload file. It takes precedence over
	// the other sources.
	Input string

	// Output is where an Input payload is exported. Empty means Input.
	Output string
}

// Session is an open document.
type Session struct {
	Doc document.Document

	// Label describes the source for logs and the journal.
	Label string

	save func(ctx context.Context) ([]string, error)
}

// Open resolves the configured source and loads it.
func Open(ctx context.Context, filesystem csfs.FileSystem, cfg *config.Config, opts Options) (*Session, error) {
	switch {
	case opts.Input != "":
		return openPayload(filesystem, opts)
	case len(cfg.Sources) > 0:
		return openTokens(filesystem, cfg, opts.Root)
	case cfg.Figma.FileKey != "":
		return openRemote(ctx, cfg.Figma)
	default:
		return nil, ErrNoSource
	}
}

// Save persists the document's changes and returns what was written.
func (s *Session) Save(ctx context.Context) ([]string, error) {
	return s.save(ctx)
}

func openPayload(filesystem csfs.FileSystem, opts Options) (*Session, error) {
	data, err := filesystem.ReadFile(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", opts.Input, err)
	}
	doc, err := figma.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opts.Input, err)
	}
	output := opts.Output
	if output == "" {
		output = opts.Input
	}
	return &Session{
		Doc:   doc,
		Label: opts.Input,
		save: func(context.Context) ([]string, error) {
			if len(doc.Updates()) == 0 {
				return nil, nil
			}
			var buf bytes.Buffer
			if err := doc.Export(&buf); err != nil {
				return nil, err
			}
			if err := filesystem.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", output, err)
			}
			return []string{output}, nil
		},
	}, nil
}

func openTokens(filesystem csfs.FileSystem, cfg *config.Config, root string) (*Session, error) {
	expanded, err := cfg.ExpandSources(filesystem, root)
	if err != nil {
		return nil, err
	}
	if len(expanded) == 0 {
		return nil, fmt.Errorf("%w: no files match %s", ErrNoSource, strings.Join(cfg.SourcePaths(), ", "))
	}
	sources := make([]dtcg.Source, 0, len(expanded))
	for _, src := range expanded {
		sources = append(sources, dtcg.Source{Path: src.Path, Collection: src.Collection})
	}
	logger.Debug("loading %d token files", len(sources))

	doc, err := dtcg.Load(filesystem, sources)
	if err != nil {
		return nil, err
	}
	return &Session{
		Doc:   doc,
		Label: strings.Join(cfg.SourcePaths(), ","),
		save: func(context.Context) ([]string, error) {
			return doc.Save()
		},
	}, nil
}

func openRemote(ctx context.Context, settings config.FigmaSettings) (*Session, error) {
	if settings.Token == "" {
		return nil, errors.New("figma.token is required to fetch variables")
	}
	client := figma.NewClient(settings.BaseURL, settings.Token)
	doc, err := client.Load(ctx, settings.FileKey)
	if err != nil {
		return nil, err
	}
	return &Session{
		Doc:   doc,
		Label: "figma:" + settings.FileKey,
		save: func(ctx context.Context) ([]string, error) {
			updates := doc.Updates()
			if len(updates) == 0 {
				return nil, nil
			}
			if err := client.Push(ctx, settings.FileKey, updates); err != nil {
				return nil, err
			}
			return []string{fmt.Sprintf("figma:%s (%d variables)", settings.FileKey, len(updates))}, nil
		},
	}, nil
}
