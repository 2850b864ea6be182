// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/value"
)

// scopes is a stack of scopes. The first scope is the data document, the
// last one is the innermost.
type scopes []value.Object

// push pushes a new innermost scope.
func (s *scopes) push(scope value.Object) {
	*s = append(*s, scope)
}

// pop pops the innermost scope.
func (s *scopes) pop() {
	last := len(*s) - 1
	(*s)[last] = nil
	*s = (*s)[:last]
}

// lookup resolves a dotted path. The first segment is looked up from the
// innermost scope to the outermost and the first scope that has it wins.
func (s scopes) lookup(path string) (value.Value, error) {
	segments := value.SplitPath(path)
	if segments == nil {
		return nil, diag.RefErrorf(diag.SyntaxError, path, "invalid path %q", path)
	}
	for i := len(s) - 1; i >= 0; i-- {
		if _, ok := s[i][segments[0]]; ok {
			return value.Descend(s[i], segments, path)
		}
	}
	return nil, diag.RefErrorf(diag.UndefinedReference, path, "%s is undefined", segments[0])
}
