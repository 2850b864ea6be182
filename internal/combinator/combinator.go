// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package combinator implements byte-level parser combinators.
//
// A Parser reports one of three outcomes: a match, with the value and the
// consumed bytes; a no-match, with the position restored to where the parser
// began; or a non-nil error, which is fatal and is returned without
// restoring the position.
//
//	digit := combinator.ByteRanges(combinator.Range{Lo: '0', Hi: '9'})
//	number := combinator.Map(combinator.Many1(digit), func(b []byte) string { return string(b) })
//	n, ok, err := number.Parse(combinator.NewState([]byte("42!")))
package combinator

// State is the input of a parser and the position of the next byte to read.
type State struct {
	src []byte
	pos int
}

// NewState returns a state that reads src from the beginning.
func NewState(src []byte) *State {
	return &State{src: src}
}

// Pos returns the index of the next byte to read.
func (s *State) Pos() int {
	return s.pos
}

// Restore moves the state back to pos, a value previously returned by Pos.
func (s *State) Restore(pos int) {
	s.pos = pos
}

// AtEnd reports whether all the input has been read.
func (s *State) AtEnd() bool {
	return s.pos >= len(s.src)
}

// Rest returns the input not yet read.
func (s *State) Rest() []byte {
	return s.src[s.pos:]
}

// Parser is implemented by parsers of values of type T.
type Parser[T any] interface {
	// Parse parses a T from s. ok is false on a no-match, in which case the
	// position of s is the same as before the call.
	Parse(s *State) (v T, ok bool, err error)
}

// Func is a function that implements Parser. The function must restore the
// position of the state on a no-match.
type Func[T any] func(s *State) (T, bool, error)

func (f Func[T]) Parse(s *State) (T, bool, error) {
	return f(s)
}

// Range is an inclusive range of bytes.
type Range struct {
	Lo, Hi byte
}

type byteRanges []Range

// ByteRanges returns a parser that matches one byte in any of the ranges.
func ByteRanges(ranges ...Range) Parser[byte] {
	return byteRanges(ranges)
}

// Byte returns a parser that matches the byte c.
func Byte(c byte) Parser[byte] {
	return byteRanges{{c, c}}
}

func (ranges byteRanges) Parse(s *State) (byte, bool, error) {
	if s.AtEnd() {
		return 0, false, nil
	}
	c := s.src[s.pos]
	for _, r := range ranges {
		if r.Lo <= c && c <= r.Hi {
			s.pos++
			return c, true, nil
		}
	}
	return 0, false, nil
}

type seq[T any] []Parser[T]

// Seq returns a parser that matches all the parsers in order and collects
// their values.
func Seq[T any](parsers ...Parser[T]) Parser[[]T] {
	return seq[T](parsers)
}

func (parsers seq[T]) Parse(s *State) ([]T, bool, error) {
	start := s.pos
	values := make([]T, 0, len(parsers))
	for _, p := range parsers {
		v, ok, err := p.Parse(s)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			s.pos = start
			return nil, false, nil
		}
		values = append(values, v)
	}
	return values, true, nil
}

type or[T any] []Parser[T]

// Or returns a parser that tries the parsers in order and returns the value
// of the first one that matches.
func Or[T any](parsers ...Parser[T]) Parser[T] {
	return or[T](parsers)
}

func (parsers or[T]) Parse(s *State) (T, bool, error) {
	start := s.pos
	for _, p := range parsers {
		v, ok, err := p.Parse(s)
		if err != nil {
			return v, false, err
		}
		if ok {
			return v, true, nil
		}
		s.pos = start
	}
	var zero T
	return zero, false, nil
}

type many[T any] struct {
	p   Parser[T]
	min int
}

// Many returns a parser that matches p zero or more times. It always
// matches.
func Many[T any](p Parser[T]) Parser[[]T] {
	return many[T]{p: p}
}

// Many1 is like Many but p must match at least once.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return many[T]{p: p, min: 1}
}

func (m many[T]) Parse(s *State) ([]T, bool, error) {
	start := s.pos
	var values []T
	for {
		pos := s.pos
		v, ok, err := m.p.Parse(s)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			s.pos = pos
			break
		}
		values = append(values, v)
		// A parser that matches without consuming would loop forever.
		if s.pos == pos {
			break
		}
	}
	if len(values) < m.min {
		s.pos = start
		return nil, false, nil
	}
	return values, true, nil
}

type mapper[T, R any] struct {
	p Parser[T]
	f func(T) (R, error)
}

// Map returns a parser that transforms with f the value matched by p.
func Map[T, R any](p Parser[T], f func(T) R) Parser[R] {
	return mapper[T, R]{p: p, f: func(v T) (R, error) { return f(v), nil }}
}

// TryMap is like Map but f can fail. An error returned by f is fatal.
func TryMap[T, R any](p Parser[T], f func(T) (R, error)) Parser[R] {
	return mapper[T, R]{p: p, f: f}
}

func (m mapper[T, R]) Parse(s *State) (R, bool, error) {
	var zero R
	v, ok, err := m.p.Parse(s)
	if err != nil || !ok {
		return zero, false, err
	}
	r, err := m.f(v)
	if err != nil {
		return zero, false, err
	}
	return r, true, nil
}

// Preceded returns a parser that matches first and then p, and returns the
// value of p.
func Preceded[A, B any](first Parser[A], p Parser[B]) Parser[B] {
	return Func[B](func(s *State) (B, bool, error) {
		var zero B
		start := s.pos
		_, ok, err := first.Parse(s)
		if err != nil || !ok {
			return zero, false, err
		}
		v, ok, err := p.Parse(s)
		if err != nil {
			return zero, false, err
		}
		if !ok {
			s.pos = start
			return zero, false, nil
		}
		return v, true, nil
	})
}

// Literal returns a parser that matches the bytes of lit.
func Literal(lit string) Parser[string] {
	parsers := make([]Parser[byte], len(lit))
	for i := 0; i < len(lit); i++ {
		parsers[i] = Byte(lit[i])
	}
	return Map(Seq(parsers...), func([]byte) string { return lit })
}

// End returns a parser that matches, without consuming, only at the end of
// the input.
func End() Parser[struct{}] {
	return Func[struct{}](func(s *State) (struct{}, bool, error) {
		return struct{}{}, s.AtEnd(), nil
	})
}
