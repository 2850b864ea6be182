// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipe

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/value"
)

// argument is an argument of a sort expression. Argument "$1" refers to the
// left element of a comparison and "$2" to the right element.
type argument struct {
	id    string   // as written, for example "$2.stars.count"
	right bool     // true for "$2"
	path  []string // path after the "$1" or "$2" head
}

// sorter sorts an array with a stable sort. It compares the two arguments
// in the order in which they are written, so
//
//	($int_cmp $1.n $2.n)
//
// sorts in ascending order and
//
//	($int_cmp $2.n $1.n)
//
// sorts in descending order.
type sorter struct {
	op    Op
	first argument
	other argument
}

func newSort(params string) (Pipe, error) {
	if params == "" {
		return nil, diag.RefErrorf(diag.SyntaxError, "$sort", "missing $sort expression")
	}
	e, err := ParseExpr(params)
	if err != nil {
		return nil, err
	}
	call, ok := e.(*Call)
	if !ok {
		return nil, diag.RefErrorf(diag.SyntaxError, params, "$sort expression %q is not a call", params)
	}
	if len(call.Args) != 2 {
		return nil, diag.RefErrorf(diag.SyntaxError, params,
			"unexpected number of $sort arguments %d, expecting 2", len(call.Args))
	}
	var s = &sorter{op: call.Op}
	s.first, err = parseArgument(call.Args[0])
	if err != nil {
		return nil, err
	}
	s.other, err = parseArgument(call.Args[1])
	if err != nil {
		return nil, err
	}
	if s.first.right == s.other.right {
		return nil, diag.RefErrorf(diag.SyntaxError, params,
			"$sort arguments %s and %s must start one with $1 and the other with $2", s.first.id, s.other.id)
	}
	return s, nil
}

// parseArgument parses an argument of a sort expression.
func parseArgument(e Expr) (argument, error) {
	id, ok := e.(Id)
	if !ok {
		return argument{}, diag.Errorf(diag.SyntaxError, "$sort arguments must be identifiers")
	}
	segments := strings.Split(string(id), ".")
	arg := argument{id: string(id), path: segments[1:]}
	switch segments[0] {
	case "$1":
	case "$2":
		arg.right = true
	default:
		return argument{}, diag.RefErrorf(diag.SyntaxError, arg.id,
			"invalid $sort argument %q, expecting an argument starting with $1 or $2", arg.id)
	}
	for _, s := range arg.path {
		if !isIdentifier(s) {
			return argument{}, diag.RefErrorf(diag.SyntaxError, arg.id,
				"invalid $sort argument %q, %q is not an identifier", arg.id, s)
		}
	}
	return arg, nil
}

// isIdentifier reports whether s is a non-empty sequence of letters, digits
// and underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_') {
			return false
		}
	}
	return true
}

func (s *sorter) Name() string { return "$sort" }

// key is a comparison operand of an element.
type key struct {
	s string
	n uint64
}

func (s *sorter) Apply(v value.Value) (value.Value, error) {
	arr, ok := v.(value.Array)
	if !ok {
		return nil, cannotApply("$sort", v, "array")
	}
	// Resolve the operands of each element once, so that an element that
	// cannot be compared is reported before sorting.
	type item struct {
		v     value.Value
		left  key // operand when the element is $1
		right key // operand when the element is $2
	}
	items := make([]item, len(arr))
	for i, e := range arr {
		items[i].v = e
		for _, arg := range []argument{s.first, s.other} {
			k, err := s.key(e, arg)
			if err != nil {
				return nil, err
			}
			if arg.right {
				items[i].right = k
			} else {
				items[i].left = k
			}
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].left, items[j].right
		if s.first.right {
			a, b = b, a
		}
		return s.compare(a, b) < 0
	})
	sorted := make(value.Array, len(items))
	for i, it := range items {
		sorted[i] = it.v
	}
	return sorted, nil
}

// key returns the operand of the argument arg for the element e.
func (s *sorter) key(e value.Value, arg argument) (key, error) {
	v, err := value.Descend(e, arg.path, arg.id)
	if err != nil {
		return key{}, err
	}
	text, ok := v.(value.Text)
	if !ok {
		return key{}, diag.RefErrorf(diag.ShapeMismatch, arg.id,
			"$sort argument %q is %s, expecting text", arg.id, value.KindName(v))
	}
	k := key{s: string(text)}
	if s.op == IntCompare {
		k.n, err = strconv.ParseUint(k.s, 10, 64)
		if err != nil {
			return key{}, diag.RefErrorf(diag.NumericParseError, arg.id,
				"$int_cmp operand %q of %q is not an unsigned base-10 integer", k.s, arg.id)
		}
	}
	return k, nil
}

func (s *sorter) compare(a, b key) int {
	if s.op == IntCompare {
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
		return 0
	}
	return strings.Compare(a.s, b.s)
}
