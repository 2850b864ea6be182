// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rustache

import "github.com/rustache/rustache/internal/diag"

// Error is an error occurred parsing a data document or rendering a
// template. Its Error method returns a string such as
//
//	index.html:12:5: undefined reference: title is undefined
//
// Use errors.As to read its kind, path and position.
type Error = diag.Error

// ErrorKind is the kind of an Error.
type ErrorKind = diag.Kind

// Position is a position in a template or data document.
type Position = diag.Position

const (
	LexError           = diag.LexError
	SyntaxError        = diag.SyntaxError
	UndefinedReference = diag.UndefinedReference
	ShapeMismatch      = diag.ShapeMismatch
	PipeError          = diag.PipeError
	NumericParseError  = diag.NumericParseError
	LimitExceeded      = diag.LimitExceeded
)

// KindOf returns the kind of err if it is, or wraps, an *Error. Otherwise
// it returns zero.
func KindOf(err error) ErrorKind {
	return diag.KindOf(err)
}

// IsIncomplete reports whether err is a syntax error due to a template or a
// data document that ends inside a directive or a block.
func IsIncomplete(err error) bool {
	return diag.IsIncomplete(err)
}
