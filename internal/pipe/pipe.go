// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipe compiles and applies the pipes of variable and loop
// directives.
//
// A pipe directive is a pipe name optionally followed by a space and the
// pipe parameters:
//
//	$reverse
//	$sort ($int_cmp $2.stars.count $1.stars.count)
package pipe

import (
	"strings"
	"unicode"

	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/value"
)

// Pipe transforms a value. A Pipe is immutable and safe for concurrent use.
type Pipe interface {
	// Name returns the name of the pipe, for example "$sort".
	Name() string
	// Apply applies the pipe to v and returns the transformed value. v is
	// not modified.
	Apply(v value.Value) (value.Value, error)
}

// constructors maps the pipe names to the functions that build the pipes
// from their parameters.
var constructors = map[string]func(params string) (Pipe, error){
	"$reverse": newReverse,
	"$sort":    newSort,
}

// Names returns the names of the available pipes.
func Names() []string {
	return []string{"$reverse", "$sort"}
}

// Compile compiles a pipe directive. Leading and trailing white space of the
// directive is ignored; white space inside the parameters is preserved.
//
// It returns a *diag.Error with kind diag.PipeError if the pipe does not
// exist, and with kind diag.SyntaxError if the parameters are not valid.
func Compile(directive string) (Pipe, error) {
	directive = strings.TrimSpace(directive)
	name, params := directive, ""
	if i := strings.IndexFunc(directive, unicode.IsSpace); i > 0 {
		name, params = directive[:i], strings.TrimSpace(directive[i+1:])
	}
	if name == "" {
		return nil, diag.Errorf(diag.SyntaxError, "missing pipe name")
	}
	newPipe, ok := constructors[name]
	if !ok {
		return nil, diag.RefErrorf(diag.PipeError, name, "unknown pipe %q", name)
	}
	return newPipe(params)
}

// noParams returns an error if a pipe that has no parameters has been
// given some.
func noParams(name, params string) error {
	if params != "" {
		return diag.RefErrorf(diag.SyntaxError, name, "%s does not take parameters, got %q", name, params)
	}
	return nil
}

// cannotApply returns the error of a pipe applied to a value of the wrong
// kind.
func cannotApply(name string, v value.Value, expecting string) error {
	return diag.RefErrorf(diag.PipeError, name, "cannot apply %s to %s, expecting %s", name, value.KindName(v), expecting)
}
