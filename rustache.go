// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rustache renders a static document from a template and a data
// document.
//
// A data document is a tree of texts, arrays and objects:
//
//	{
//	    name: World
//	    people: [
//	        { name: Ada stars: { count: 10 } }
//	        { name: Bob stars: { count: 5 } }
//	    ]
//	}
//
// A template is a text with directives:
//
//	<h1>Hello {{ name }}</h1>
//	<ul>
//	{* people | $sort ($int_cmp $2.stars.count $1.stars.count) *}
//	  <li>{{ $it.name }}</li>
//	{}
//	</ul>
//	{? footer ?}<footer>{{ footer }}</footer>{}
//	{> style <}
//
// Variables are written with {{ path }}, arrays are iterated with
// {* path *} ... {} and optional blocks, rendered only if their path exists,
// are written as {? path ?} ... {}. A variable or loop path can be followed
// by a pipe, $reverse or $sort. {> key <} inlines an asset.
package rustache

import (
	"io/fs"

	"github.com/rustache/rustache/internal/notation"
	"github.com/rustache/rustache/internal/value"
)

// Version is the version of rustache.
const Version = "v1.2.0"

// Value is a Text, an Array or an Object.
type Value = value.Value

type (
	Text   = value.Text
	Array  = value.Array
	Object = value.Object
)

// ParseData parses a data document.
//
// If the document is not valid, it returns an *Error with kind LexError,
// SyntaxError or LimitExceeded.
func ParseData(src []byte) (Value, error) {
	return notation.Parse("", src)
}

// ParseDataFile reads and parses the named data document of fsys.
//
// If the named file does not exist, ParseDataFile returns an error
// satisfying errors.Is(err, fs.ErrNotExist).
func ParseDataFile(fsys fs.FS, name string) (Value, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, err
	}
	return notation.Parse(name, src)
}

// FormatData returns the canonical representation of v. Object keys are
// sorted and the colons in keys and texts are escaped.
func FormatData(v Value) []byte {
	return notation.Marshal(v)
}
