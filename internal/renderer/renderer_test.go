// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/notation"
	"github.com/rustache/rustache/internal/value"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

const people = `{
	name: World
	site: { title: Home url: https\://example.com }
	people: [
		{ name: Ada stars: { count: 10 } }
		{ name: Bob stars: { count: 5 } }
		{ name: Eve stars: { count: 55 } }
		{ name: Max stars: { count: 18 } }
	]
	tags: [ go data templates ]
	empty: []
	matrix: [ [ 1 2 ] [ 3 ] ]
	word: 12345
}`

var rendererTests = []struct {
	src  string
	want string
}{
	{``, ``},
	{`plain text`, `plain text`},
	{`<p>{{ name }}</p>`, `<p>World</p>`},
	{`<p>{{name}}</p>`, `<p>World</p>`},
	{"<p>{{ \tname\n }}</p>", `<p>World</p>`},
	{`{{ site.title }} {{ site.url }}`, `Home https://example.com`},
	{`{{ word | $reverse }}`, `54321`},
	{`{{ word|$reverse }}`, `54321`},
	{`{ } {} {x} {{ name }}{`, `{ } {} {x} World{`},
	{`a } b }} c *} d ?} e <}`, `a } b }} c *} d ?} e <}`},
	{`{* tags *}[{{ $it }}]{}`, `[go][data][templates]`},
	{`{* tags | $reverse *}{{ $it }} {}`, `templates data go `},
	{`{* empty *}never{}after`, `after`},
	{`{* people *}{{ $it.name }},{}`, `Ada,Bob,Eve,Max,`},
	{`{* people | $sort ($int_cmp $2.stars.count $1.stars.count) *}{{ $it.stars.count }} {}`, `55 18 10 5 `},
	{`{* people | $sort ($int_cmp $1.stars.count $2.stars.count) *}{{ $it.name }} {}`, `Bob Ada Max Eve `},
	{`{* people | $sort ($str_cmp $2.name $1.name) *}{{ $it.name }} {}`, `Max Eve Bob Ada `},
	{`{* matrix *}({* $it *}{{ $it }}{}){}`, `(12)(3)`},
	{`{* tags *}{{ name }}{}`, `WorldWorldWorld`},
	{`{* people *}{? $it.stars ?}*{}{}`, `****`},
	{`{? name ?}hello {{ name }}{}`, `hello World`},
	{`{? site.title ?}{{ site.title }}{}`, `Home`},
	{`{? missing ?}hidden{}shown`, `shown`},
	{`{? site.missing ?}hidden{}shown`, `shown`},
	{`{? name.first ?}hidden{}shown`, `shown`},
	{`a{? missing ?}{* people *}{{ $it.nope }}{}{? other ?}{{ x }}{}{> nope <}{}b`, `ab`},
	{`{? missing ?}{* tags *}{}{}{}`, `{}`},
	{`{? name ?}{? missing ?}x{}y{}z`, `yz`},
	{`{* empty *}{* tags *}{{ $it }}{}{? name ?}x{}{}.`, `.`},
	{`{> style <}`, `<style>p{}</style>`},
	{`{* tags *}{> script <}{}`, `<script>1</script><script>1</script><script>1</script>`},
	{`{? name ?}{> style <}{}`, `<style>p{}</style>`},
}

type testAssets map[string]string

func (a testAssets) Asset(key string) ([]byte, error) {
	content, ok := a[key]
	if !ok {
		return nil, fmt.Errorf("asset %q does not exist", key)
	}
	return []byte(content), nil
}

func testOptions() *Options {
	return &Options{
		Path: "index.html",
		Assets: map[string]Wrapping{
			"style":  {Prefix: "<style>", Suffix: "</style>"},
			"script": {Prefix: "<script>", Suffix: "</script>"},
			"broken": {},
		},
		Provider: testAssets{"style": "p{}", "script": "1"},
		Logger:   quiet,
	}
}

func parseData(t *testing.T, src string) value.Value {
	t.Helper()
	data, err := notation.Parse("index.data", []byte(src))
	if err != nil {
		t.Fatalf("cannot parse data: %s", err)
	}
	return data
}

func TestRender(t *testing.T) {
	data := parseData(t, people)
	for _, test := range rendererTests {
		got, err := Render([]byte(test.src), data, testOptions())
		if err != nil {
			t.Errorf("source: %q, unexpected error: %s", test.src, err)
			continue
		}
		if string(got) != test.want {
			t.Errorf("source: %q, unexpected %q, expecting %q", test.src, got, test.want)
		}
	}
}

var rendererErrorTests = []struct {
	src  string
	kind diag.Kind
	err  string
}{
	{`<p>{{ nobody }}</p>`, diag.UndefinedReference, `index.html:1:4: undefined reference: nobody is undefined`},
	{`{{ site.nope }}`, diag.UndefinedReference, `index.html:1:1: undefined reference: "nope" is undefined in "site.nope"`},
	{`{{ name.first }}`, diag.ShapeMismatch, `index.html:1:1: shape mismatch: cannot read "first" of text "name" in "name.first"`},
	{`{{ site }}`, diag.ShapeMismatch, `index.html:1:1: shape mismatch: cannot write object "site", expecting text`},
	{`{{ tags }}`, diag.ShapeMismatch, `index.html:1:1: shape mismatch: cannot write array "tags", expecting text`},
	{`{{ }}`, diag.SyntaxError, `index.html:1:1: syntax error: missing path`},
	{`{{ a..b }}`, diag.SyntaxError, `index.html:1:1: syntax error: invalid path "a..b"`},
	{`{{ name`, diag.SyntaxError, `index.html:1:1: syntax error: unexpected end of template, expecting }} to close {{`},
	{"\n\n  {* name *}{}", diag.ShapeMismatch, `index.html:3:3: shape mismatch: cannot iterate over text "name", expecting array`},
	{`{* site *}{}`, diag.ShapeMismatch, `index.html:1:1: shape mismatch: cannot iterate over object "site", expecting array`},
	{`{* tags *}{{ $it }}`, diag.SyntaxError, `index.html:1:20: syntax error: unexpected end of template, expecting {} to close the loop block at 1:1`},
	{`{* empty *}xx`, diag.SyntaxError, `index.html:1:14: syntax error: unexpected end of template, expecting {} to close the loop block at 1:1`},
	{`{? name ?}x`, diag.SyntaxError, `index.html:1:12: syntax error: unexpected end of template, expecting {} to close the optional block at 1:1`},
	{`{? nope ?}x{* tags *}{}`, diag.SyntaxError, `index.html:1:24: syntax error: unexpected end of template, expecting {} to close the optional block at 1:1`},
	{`{? nope ?}{{ x `, diag.SyntaxError, `index.html:1:16: syntax error: unexpected end of template, expecting {} to close the optional block at 1:1`},
	{`{? name | $reverse ?}{}`, diag.SyntaxError, `index.html:1:1: syntax error: unexpected pipe in optional directive "name | $reverse"`},
	{`{? ?}{}`, diag.SyntaxError, `index.html:1:1: syntax error: missing path`},
	{`{{ word | $nope }}`, diag.PipeError, `index.html:1:1: pipe error: unknown pipe "$nope"`},
	{`{{ word | }}`, diag.SyntaxError, `index.html:1:1: syntax error: missing pipe name`},
	{`{{ site | $reverse }}`, diag.PipeError, `index.html:1:1: pipe error: cannot apply $reverse to object, expecting text or array`},
	{`{* people | $sort ($int_cmp $1.name $2.name) *}{}`, diag.NumericParseError, ``},
	{`{* people | $sort ($int_cmp $1.stars $2.stars) *}{}`, diag.ShapeMismatch, ``},
	{`{* people | $sort ($int_cmp $1.stars.count) *}{}`, diag.SyntaxError, ``},
	{`{* people | $sort $int_cmp $1.a $2.a *}{}`, diag.SyntaxError, ``},
	{`{* people *}{}{{ $it }}`, diag.UndefinedReference, `index.html:1:15: undefined reference: $it is undefined`},
	{`{{ $it }}{* people *}{}`, diag.UndefinedReference, `index.html:1:1: undefined reference: $it is undefined`},
	{`{> nope <}`, diag.UndefinedReference, `index.html:1:1: undefined reference: unknown inline asset "nope"`},
	{`{> broken <}`, diag.UndefinedReference, `index.html:1:1: undefined reference: cannot inline asset "broken": asset "broken" does not exist`},
	{`{> <}`, diag.SyntaxError, `index.html:1:1: syntax error: missing asset key`},
}

func TestRenderErrors(t *testing.T) {
	data := parseData(t, people)
	for _, test := range rendererErrorTests {
		got, err := Render([]byte(test.src), data, testOptions())
		if err == nil {
			t.Errorf("source: %q, expecting error, got output %q", test.src, got)
			continue
		}
		if got != nil {
			t.Errorf("source: %q, unexpected output %q", test.src, got)
		}
		if k := diag.KindOf(err); k != test.kind {
			t.Errorf("source: %q, unexpected kind %s, expecting %s (%s)", test.src, k, test.kind, err)
		}
		if test.err != "" && err.Error() != test.err {
			t.Errorf("source: %q, unexpected error %q, expecting %q", test.src, err, test.err)
		}
	}
}

func TestRenderWithoutData(t *testing.T) {
	got, err := Render([]byte(`a{? x ?}b{}c`), nil, &Options{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "ac" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestRenderDataMustBeAnObject(t *testing.T) {
	_, err := Render([]byte(`x`), value.Array{}, &Options{Path: "index.html", Logger: quiet})
	if !errors.Is(err, &diag.Error{Kind: diag.ShapeMismatch}) {
		t.Fatalf("unexpected error %v", err)
	}
	if want := "index.html: shape mismatch: data document is array, expecting object"; err.Error() != want {
		t.Fatalf("unexpected %q, expecting %q", err, want)
	}
}

func TestRenderWithoutAssets(t *testing.T) {
	_, err := Render([]byte(`{> style <}`), nil, &Options{Logger: quiet})
	if diag.KindOf(err) != diag.UndefinedReference {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestShadowing(t *testing.T) {
	data := parseData(t, `{ $it: outer list: [ inner ] }`)
	got, err := Render([]byte(`{{ $it }} {* list *}{{ $it }}{} {{ $it }}`), data, &Options{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	if want := "outer inner outer"; string(got) != want {
		t.Fatalf("unexpected %q, expecting %q", got, want)
	}
}

func nested(open, body string, depth int) string {
	return strings.Repeat(open, depth) + body + strings.Repeat("{}", depth)
}

func TestMaxDepth(t *testing.T) {
	data := parseData(t, `{ a: x }`)
	tests := []struct {
		open     string
		depth    int
		maxDepth int
		fails    bool
	}{
		{"{? a ?}", DefaultMaxDepth, 0, false},
		{"{? a ?}", DefaultMaxDepth + 1, 0, true},
		{"{? a ?}", 3, 3, false},
		{"{? a ?}", 4, 3, true},
		{"{? b ?}", 3, 3, false},
		{"{? b ?}", 100, 3, false},
	}
	for _, test := range tests {
		src := nested(test.open, "{{ a }}", test.depth)
		got, err := Render([]byte(src), data, &Options{MaxDepth: test.maxDepth, Logger: quiet})
		if test.fails {
			if diag.KindOf(err) != diag.LimitExceeded {
				t.Errorf("open %q, depth %d: expecting limit exceeded, got %v", test.open, test.depth, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("open %q, depth %d: unexpected error: %s", test.open, test.depth, err)
			continue
		}
		want := ""
		if test.open == "{? a ?}" {
			want = "x"
		}
		if string(got) != want {
			t.Errorf("open %q, depth %d: unexpected %q, expecting %q", test.open, test.depth, got, want)
		}
	}
}

func TestLoopOverLoops(t *testing.T) {
	data := parseData(t, `{ rows: [ { cells: [ a b ] } { cells: [] } { cells: [ c ] } ] }`)
	src := `<table>{* rows *}<tr>{* $it.cells *}<td>{{ $it }}</td>{}</tr>{}</table>`
	got, err := Render([]byte(src), data, &Options{Logger: quiet})
	if err != nil {
		t.Fatal(err)
	}
	want := `<table><tr><td>a</td><td>b</td></tr><tr></tr><tr><td>c</td></tr></table>`
	if string(got) != want {
		t.Fatalf("unexpected %q, expecting %q", got, want)
	}
}
