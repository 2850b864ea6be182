// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"fmt"

	"github.com/rustache/rustache/internal/diag"
)

// AssetProvider provides the content of the assets inlined by the inline
// directives.
type AssetProvider interface {
	// Asset returns the content of the asset with the given key.
	Asset(key string) ([]byte, error)
}

// Wrapping is the markup written before and after the content of an
// inlined asset.
type Wrapping struct {
	Prefix string
	Suffix string
}

// inlineAsset writes the asset with the given key, wrapped in its markup.
func (s *state) inlineAsset(key string) error {
	w, ok := s.assets[key]
	if !ok || s.provider == nil {
		return diag.RefErrorf(diag.UndefinedReference, key, "unknown inline asset %q", key)
	}
	content, err := s.provider.Asset(key)
	if err != nil {
		return &diag.Error{
			Kind: diag.UndefinedReference,
			Ref:  key,
			Msg:  fmt.Sprintf("cannot inline asset %q", key),
			Err:  err,
		}
	}
	s.out.WriteString(w.Prefix)
	s.out.Write(content)
	s.out.WriteString(w.Suffix)
	s.logger.Debug("asset inlined", "key", key, "size", len(content))
	return nil
}
