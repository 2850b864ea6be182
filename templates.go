// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rustache

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"

	"github.com/rustache/rustache/internal/renderer"
)

// DefaultMaxDepth is the maximum nesting of loop and optional blocks when
// BuildOptions.MaxDepth is zero.
const DefaultMaxDepth = renderer.DefaultMaxDepth

// AssetProvider is implemented by the providers of the assets inlined with
// the {> key <} directive.
type AssetProvider = renderer.AssetProvider

// Wrapping is the markup written before and after an inlined asset.
type Wrapping = renderer.Wrapping

// BuildOptions contains options for building templates.
type BuildOptions struct {

	// MaxDepth is the maximum nesting of loop and optional blocks. If it is
	// zero, DefaultMaxDepth is used.
	MaxDepth int

	// Assets are the keys of the assets that the template can inline and
	// the markup that wraps them. An inline directive with any other key
	// fails with an UndefinedReference error.
	Assets map[string]Wrapping
}

// RunOptions contains options for running templates.
type RunOptions struct {

	// Assets provides the content of the inlined assets.
	Assets AssetProvider

	// Logger logs the pipes, the loops and the inlined assets at debug
	// level. If it is nil, slog.Default() is used.
	Logger *slog.Logger
}

// Template is a template built with the BuildTemplate function. It is safe
// for concurrent use by multiple goroutines.
type Template struct {
	name     string
	src      []byte
	maxDepth int
	assets   map[string]Wrapping
}

// BuildTemplate builds the named template file of fsys.
//
// If the named file does not exist, BuildTemplate returns an error satisfying
// errors.Is(err, fs.ErrNotExist).
func BuildTemplate(fsys fs.FS, name string, options *BuildOptions) (*Template, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return NewTemplate(name, src, options), nil
}

// NewTemplate returns a template with the given name and source. The name is
// used only in errors.
func NewTemplate(name string, src []byte, options *BuildOptions) *Template {
	t := &Template{name: name, src: src}
	if options != nil {
		t.maxDepth = options.MaxDepth
		t.assets = make(map[string]Wrapping, len(options.Assets))
		for key, w := range options.Assets {
			t.assets[key] = w
		}
	}
	return t
}

// Name returns the name of the template.
func (t *Template) Name() string {
	return t.name
}

// Run renders the template with the data document data and writes the
// rendered document to out. data must be an Object or nil.
//
// The document is written to out only if the rendering succeeds. If the
// template cannot be rendered, Run returns an *Error and writes nothing.
func (t *Template) Run(out io.Writer, data Value, options *RunOptions) error {
	if out == nil {
		return errors.New("invalid nil out")
	}
	opts := &renderer.Options{
		Path:     t.name,
		MaxDepth: t.maxDepth,
		Assets:   t.assets,
	}
	if options != nil {
		opts.Provider = options.Assets
		opts.Logger = options.Logger
	}
	doc, err := renderer.Render(t.src, data, opts)
	if err != nil {
		return err
	}
	_, err = out.Write(doc)
	return err
}

// Render renders the project of fsys described by cfg and writes the
// rendered document to out. If cfg is nil, DefaultConfig is used.
//
// A missing data document is rendered as an empty object.
func Render(fsys fs.FS, cfg *Config, out io.Writer, logger *slog.Logger) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	t, err := BuildTemplate(fsys, cfg.Template, cfg.BuildOptions())
	if err != nil {
		return err
	}
	data, err := ParseDataFile(fsys, cfg.Data)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		logger.Debug("no data document", "path", cfg.Data)
		data = nil
	}
	return t.Run(out, data, &RunOptions{
		Assets: NewFSAssets(fsys, cfg.Assets),
		Logger: logger,
	})
}
