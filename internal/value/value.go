// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package value implements the tree of values read from a data document.
//
// A Value is one of Text, Array and Object:
//
//	{
//	    title: Home
//	    links: [
//	        { href: https\://example.com }
//	    ]
//	}
//
// is the Object
//
//	value.Object{
//		"title": value.Text("Home"),
//		"links": value.Array{
//			value.Object{"href": value.Text("https://example.com")},
//		},
//	}
package value

import (
	"strings"

	"github.com/rustache/rustache/internal/diag"
)

// Kind is the kind of a Value.
type Kind int

const (
	KindText Kind = iota
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is a Text, an Array or an Object.
type Value interface {
	Kind() Kind
	value()
}

// Text is a text value.
type Text string

// Array is an ordered sequence of values.
type Array []Value

// Object maps keys to values.
type Object map[string]Value

func (Text) Kind() Kind   { return KindText }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Text) value()   {}
func (Array) value()  {}
func (Object) value() {}

// KindName returns the kind name of v, "nothing" if v is nil.
func KindName(v Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}

// SplitPath splits a dotted path into its segments. It returns nil if path
// is empty or one of its segments is empty.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, ".")
	for _, s := range segments {
		if s == "" {
			return nil
		}
	}
	return segments
}

// Descend resolves the segments of path, starting from v. Every segment
// must descend through an Object. path is the full path, used only in
// errors.
func Descend(v Value, segments []string, path string) (Value, error) {
	for i, key := range segments {
		obj, ok := v.(Object)
		if !ok {
			if i == 0 {
				return nil, diag.RefErrorf(diag.ShapeMismatch, path,
					"cannot read %q of %s in %q", key, KindName(v), path)
			}
			parent := strings.Join(segments[:i], ".")
			return nil, diag.RefErrorf(diag.ShapeMismatch, path,
				"cannot read %q of %s %q in %q", key, KindName(v), parent, path)
		}
		v, ok = obj[key]
		if !ok {
			return nil, diag.RefErrorf(diag.UndefinedReference, path, "%q is undefined in %q", key, path)
		}
	}
	return v, nil
}
