// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag defines the errors reported while reading data documents,
// compiling pipes and rendering templates.
package diag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Kind is the kind of an error.
type Kind int

const (
	LexError           Kind = iota + 1 // invalid byte or encoding in a data document
	SyntaxError                        // grammar violation or unterminated delimiter
	UndefinedReference                 // path or key not found
	ShapeMismatch                      // value has the wrong variant for the operation
	PipeError                          // unknown pipe or pipe not applicable to the value
	NumericParseError                  // $int_cmp operand is not a base-10 integer
	LimitExceeded                      // block nesting exceeds the configured limit
)

// String returns the name of the kind, for example "syntax error".
func (k Kind) String() string {
	switch k {
	case LexError:
		return "lex error"
	case SyntaxError:
		return "syntax error"
	case UndefinedReference:
		return "undefined reference"
	case ShapeMismatch:
		return "shape mismatch"
	case PipeError:
		return "pipe error"
	case NumericParseError:
		return "numeric parse error"
	case LimitExceeded:
		return "limit exceeded"
	}
	return "error"
}

// Position is a position in a source.
type Position struct {
	Line   int // line starting from 1
	Column int // column in characters starting from 1
	Offset int // index of the byte
}

// String returns line and column separated by a colon, for example "37:18".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// IsValid reports whether the position has been located in a source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Locate returns the position of the byte at index offset of src.
func Locate(src []byte, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}
	pos := Position{Line: 1, Column: 1, Offset: offset}
	for i := 0; i < offset; {
		if src[i] == '\n' {
			pos.Line++
			pos.Column = 1
			i++
			continue
		}
		_, size := utf8.DecodeRune(src[i:])
		pos.Column++
		i += size
	}
	return pos
}

// Error is an error occurred reading a data document, compiling a pipe or
// rendering a template. Errors returned by the file system or by an asset
// provider are wrapped in Err.
type Error struct {
	Kind Kind
	Path string   // path of the source, may be empty
	Pos  Position // zero if unknown
	Ref  string   // offending path, key or directive, may be empty
	Msg  string
	Err  error
}

// Errorf returns a new error of the given kind without a position.
func Errorf(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// RefErrorf returns a new error of the given kind about ref.
func RefErrorf(kind Kind, ref string, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Ref: ref, Msg: fmt.Sprintf(format, a...)}
}

func (e *Error) Error() string {
	var s string
	if e.Path != "" {
		s = e.Path + ":"
	}
	if e.Pos.IsValid() {
		s += e.Pos.String() + ":"
	}
	if s != "" {
		s += " "
	}
	s += e.Kind.String() + ": " + e.Msg
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind and, if it has
// no message, any message. It allows errors.Is(err, &diag.Error{Kind: k}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// At sets the path and the position of e, if not already set, locating
// offset in src. It returns e.
func (e *Error) At(path string, src []byte, offset int) *Error {
	if e.Path == "" {
		e.Path = path
	}
	if !e.Pos.IsValid() {
		e.Pos = Locate(src, offset)
	}
	return e
}

// KindOf returns the kind of err if it is, or wraps, an *Error. Otherwise it
// returns zero.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsIncomplete reports whether err is, or wraps, a syntax error due to an
// unexpected end of the source.
func IsIncomplete(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == SyntaxError && strings.HasPrefix(e.Msg, "unexpected end of ")
}
