// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

var locateTests = []struct {
	src    string
	offset int
	want   Position
}{
	{"", 0, Position{1, 1, 0}},
	{"abc", 0, Position{1, 1, 0}},
	{"abc", 2, Position{1, 3, 2}},
	{"abc", 3, Position{1, 4, 3}},
	{"a\nbc", 2, Position{2, 1, 2}},
	{"a\nbc", 3, Position{2, 2, 3}},
	{"\n\n\n", 3, Position{4, 1, 3}},
	{"€€x", 6, Position{1, 3, 6}},
	{"€\n€x", 7, Position{2, 2, 7}},
	{"abc", 10, Position{1, 4, 3}},
}

func TestLocate(t *testing.T) {
	for _, test := range locateTests {
		got := Locate([]byte(test.src), test.offset)
		if got != test.want {
			t.Errorf("source: %q, offset %d: unexpected position %#v, expecting %#v", test.src, test.offset, got, test.want)
		}
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{Errorf(SyntaxError, "unexpected }"), "syntax error: unexpected }"},
		{&Error{Kind: PipeError, Path: "index.html", Msg: "unknown pipe"}, "index.html: pipe error: unknown pipe"},
		{&Error{Kind: ShapeMismatch, Pos: Position{3, 7, 20}, Msg: "m"}, "3:7: shape mismatch: m"},
		{&Error{Kind: UndefinedReference, Path: "a/index.html", Pos: Position{1, 2, 1}, Msg: "m"}, "a/index.html:1:2: undefined reference: m"},
		{&Error{Kind: LimitExceeded, Msg: "m", Err: errors.New("cause")}, "limit exceeded: m: cause"},
	}
	for _, test := range tests {
		if got := test.err.Error(); got != test.want {
			t.Errorf("unexpected %q, expecting %q", got, test.want)
		}
	}
}

func TestErrorAt(t *testing.T) {
	src := []byte("<p>\n  {{ x }}</p>")
	err := RefErrorf(UndefinedReference, "x", "%q is undefined", "x").At("index.html", src, 6)
	if want := `index.html:2:3: undefined reference: "x" is undefined`; err.Error() != want {
		t.Fatalf("unexpected %q, expecting %q", err.Error(), want)
	}
	// A located error keeps its first path and position.
	err.At("other.html", src, 0)
	if err.Path != "index.html" || err.Pos != (Position{2, 3, 6}) {
		t.Fatalf("unexpected path %q and position %#v", err.Path, err.Pos)
	}
}

func TestErrorIsAndKindOf(t *testing.T) {
	err := fmt.Errorf("rendering: %w", &Error{Kind: PipeError, Msg: "unknown pipe", Err: fs.ErrNotExist})
	if !errors.Is(err, &Error{Kind: PipeError}) {
		t.Error("expected error to be a pipe error")
	}
	if !errors.Is(err, &Error{Kind: PipeError, Msg: "unknown pipe"}) {
		t.Error("expected error to match kind and message")
	}
	if errors.Is(err, &Error{Kind: PipeError, Msg: "other"}) {
		t.Error("unexpected match with a different message")
	}
	if errors.Is(err, &Error{Kind: SyntaxError}) {
		t.Error("unexpected match with a different kind")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected wrapped error to be fs.ErrNotExist")
	}
	if k := KindOf(err); k != PipeError {
		t.Errorf("unexpected kind %s", k)
	}
	if k := KindOf(errors.New("plain")); k != 0 {
		t.Errorf("unexpected kind %s for a plain error", k)
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{Errorf(SyntaxError, "unexpected end of template, expecting }} to close {{"), true},
		{fmt.Errorf("x: %w", Errorf(SyntaxError, "unexpected end of document, expecting ]")), true},
		{Errorf(SyntaxError, "unexpected pipe in optional directive"), false},
		{Errorf(UndefinedReference, "unexpected end of template"), false},
		{errors.New("unexpected end of template"), false},
		{nil, false},
	}
	for _, test := range tests {
		if got := IsIncomplete(test.err); got != test.want {
			t.Errorf("error %v: unexpected %t, expecting %t", test.err, got, test.want)
		}
	}
}
