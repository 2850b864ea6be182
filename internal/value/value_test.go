// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rustache/rustache/internal/diag"
)

var splitPathTests = []struct {
	path     string
	segments []string
}{
	{"", nil},
	{"a", []string{"a"}},
	{"a.b.c", []string{"a", "b", "c"}},
	{"$it.name", []string{"$it", "name"}},
	{"a..b", nil},
	{".a", nil},
	{"a.", nil},
}

func TestSplitPath(t *testing.T) {
	for _, test := range splitPathTests {
		got := SplitPath(test.path)
		if diff := cmp.Diff(test.segments, got); diff != "" {
			t.Errorf("path %q: (-want, +got):\n%s", test.path, diff)
		}
	}
}

var tree = Object{
	"name": Text("World"),
	"list": Array{Text("a"), Text("b")},
	"page": Object{
		"meta": Object{"title": Text("Home")},
	},
}

var descendTests = []struct {
	path string
	want Value
	kind diag.Kind
}{
	{"name", Text("World"), 0},
	{"page.meta.title", Text("Home"), 0},
	{"page.meta", Object{"title": Text("Home")}, 0},
	{"list", Array{Text("a"), Text("b")}, 0},
	{"missing", nil, diag.UndefinedReference},
	{"page.missing.title", nil, diag.UndefinedReference},
	{"name.first", nil, diag.ShapeMismatch},
	{"list.0", nil, diag.ShapeMismatch},
}

func TestDescend(t *testing.T) {
	for _, test := range descendTests {
		got, err := Descend(tree, SplitPath(test.path), test.path)
		if test.kind != 0 {
			if err == nil {
				t.Errorf("path %q: expected error, got value %v", test.path, got)
				continue
			}
			if k := diag.KindOf(err); k != test.kind {
				t.Errorf("path %q: unexpected error kind %s, expecting %s (%s)", test.path, k, test.kind, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("path %q: unexpected error: %s", test.path, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("path %q: (-want, +got):\n%s", test.path, diff)
		}
	}
}

func TestDescendFromText(t *testing.T) {
	_, err := Descend(Text("x"), []string{"n"}, "$1.n")
	if diag.KindOf(err) != diag.ShapeMismatch {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	want := `shape mismatch: cannot read "n" of text in "$1.n"`
	if err.Error() != want {
		t.Fatalf("unexpected error %q, expecting %q", err, want)
	}
}
