// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipe

import (
	"github.com/rustache/rustache/internal/combinator"
	"github.com/rustache/rustache/internal/diag"
)

// Op is a comparison operator of a sort expression.
type Op int

const (
	IntCompare    Op = iota + 1 // $int_cmp
	StringCompare               // $str_cmp
)

func (op Op) String() string {
	switch op {
	case IntCompare:
		return "$int_cmp"
	case StringCompare:
		return "$str_cmp"
	}
	return "unknown"
}

// Expr is an Id or a Call.
type Expr interface {
	expr()
}

// Id is an argument identifier, for example "$1.stars.count".
type Id string

// Call is a call of a comparison operator.
type Call struct {
	Op   Op
	Args []Expr
}

func (Id) expr()    {}
func (*Call) expr() {}

type span = combinator.Range

var (
	blank  = combinator.ByteRanges(span{Lo: ' ', Hi: ' '}, span{Lo: '\t', Hi: '\t'})
	blanks = combinator.Many(blank)
	gap    = combinator.Many1(blank)

	op = combinator.Map(
		combinator.Or(combinator.Literal("$int_cmp"), combinator.Literal("$str_cmp")),
		func(s string) Op {
			if s == "$int_cmp" {
				return IntCompare
			}
			return StringCompare
		})

	idByte = combinator.Or(
		combinator.ByteRanges(span{Lo: '0', Hi: '9'}, span{Lo: 'a', Hi: 'z'}, span{Lo: 'A', Hi: 'Z'}),
		combinator.Byte('$'),
		combinator.Byte('_'),
		combinator.Byte('.'),
	)
	id = combinator.Map(combinator.Many1(idByte), func(b []byte) Expr { return Id(b) })

	args = combinator.Many(combinator.Preceded(gap, id))
)

// call parses "(" op {gap id} ")" with optional blanks after "(" and
// before ")", followed by the end of the input.
var call combinator.Parser[Expr] = combinator.Func[Expr](func(s *combinator.State) (Expr, bool, error) {
	start := s.Pos()
	fail := func(err error) (Expr, bool, error) {
		if err == nil {
			s.Restore(start)
		}
		return nil, false, err
	}
	if _, ok, err := combinator.Preceded(combinator.Byte('('), blanks).Parse(s); !ok {
		return fail(err)
	}
	operator, ok, err := op.Parse(s)
	if !ok {
		return fail(err)
	}
	arguments, _, err := args.Parse(s)
	if err != nil {
		return fail(err)
	}
	if _, ok, err := combinator.Preceded(blanks, combinator.Byte(')')).Parse(s); !ok {
		return fail(err)
	}
	if _, ok, _ := combinator.End().Parse(s); !ok {
		return fail(nil)
	}
	return &Call{Op: operator, Args: arguments}, true, nil
})

// ParseExpr parses a sort expression such as "($int_cmp $2.count $1.count)".
func ParseExpr(src string) (Expr, error) {
	s := combinator.NewState([]byte(src))
	e, ok, err := call.Parse(s)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, diag.RefErrorf(diag.SyntaxError, src,
			"invalid expression %q, expecting ($int_cmp|$str_cmp $1[.path] $2[.path])", src)
	}
	return e, nil
}
