// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rustache

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ErrUnknownAsset is returned by FSAssets.Asset for a key that is not
// configured.
var ErrUnknownAsset = errors.New("unknown asset")

// FSAssets provides assets read from a file system.
type FSAssets struct {
	fsys   fs.FS
	assets map[string]Asset
	md     goldmark.Markdown
}

// NewFSAssets returns an asset provider that reads the given assets from
// fsys.
func NewFSAssets(fsys fs.FS, assets map[string]Asset) *FSAssets {
	return &FSAssets{
		fsys:   fsys,
		assets: assets,
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Asset returns the content of the asset with the given key. Markdown assets
// are converted to HTML.
func (a *FSAssets) Asset(key string) ([]byte, error) {
	asset, ok := a.assets[key]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownAsset, key)
	}
	src, err := fs.ReadFile(a.fsys, asset.Path)
	if err != nil {
		return nil, err
	}
	if asset.Format != FormatMarkdown {
		return src, nil
	}
	var b bytes.Buffer
	if err := a.md.Convert(src, &b); err != nil {
		return nil, fmt.Errorf("cannot convert %s: %w", asset.Path, err)
	}
	return b.Bytes(), nil
}
