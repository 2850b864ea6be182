// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer implements the template interpreter.
//
// A template is a text with directives delimited by two-byte pairs:
//
//	{{ path }}              writes the text at path
//	{{ path | pipe }}       writes the text returned by the pipe
//	{* path *} ... {}       repeats the body for each element of an array,
//	                        the element is $it inside the body
//	{* path | pipe *} ... {}
//	{? path ?} ... {}       writes the body only if path exists
//	{> key <}               inlines the asset with the given key
//
// Everything else, including a "{}" outside of a block, is copied as is.
package renderer

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"

	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/pipe"
	"github.com/rustache/rustache/internal/value"
)

// DefaultMaxDepth is the default maximum nesting of loop and optional
// blocks.
const DefaultMaxDepth = 64

const (
	variableOpen  = "{{"
	variableClose = "}}"
	loopOpen      = "{*"
	loopClose     = "*}"
	optionalOpen  = "{?"
	optionalClose = "?}"
	inlineOpen    = "{>"
	inlineClose   = "<}"
	blockEnd      = "{}"
)

// Options are the rendering options.
type Options struct {
	// Path is the path of the template, used only in errors.
	Path string

	// MaxDepth is the maximum nesting of blocks. If it is zero or negative,
	// DefaultMaxDepth is used.
	MaxDepth int

	// Assets are the keys of the assets that can be inlined with the markup
	// that surrounds them.
	Assets map[string]Wrapping

	// Provider provides the content of the assets.
	Provider AssetProvider

	// Logger logs debug messages. If it is nil, slog.Default() is used.
	Logger *slog.Logger
}

// state is the state of a rendering.
type state struct {
	path     string
	src      []byte
	pos      int // cursor
	out      bytes.Buffer
	scopes   scopes
	depth    int // nesting of the block being rendered
	maxDepth int
	assets   map[string]Wrapping
	provider AssetProvider
	logger   *slog.Logger
}

// Render renders the template src with the data document data and returns
// the rendered document. data must be an Object or nil.
//
// Returned errors are *diag.Error values. If an error occurs, no output is
// returned.
func Render(src []byte, data value.Value, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = &Options{}
	}
	s := &state{
		path:     opts.Path,
		src:      src,
		maxDepth: opts.MaxDepth,
		assets:   opts.Assets,
		provider: opts.Provider,
		logger:   opts.Logger,
	}
	if s.maxDepth <= 0 {
		s.maxDepth = DefaultMaxDepth
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	switch data := data.(type) {
	case nil:
		s.scopes.push(value.Object{})
	case value.Object:
		s.scopes.push(data)
	default:
		err := diag.Errorf(diag.ShapeMismatch, "data document is %s, expecting object", value.KindName(data))
		err.Path = s.path
		return nil, err
	}
	if err := s.scan(); err != nil {
		return nil, err
	}
	return s.out.Bytes(), nil
}

// at reports whether the source at the cursor starts with the pair p.
func (s *state) at(p string) bool {
	return s.pos+1 < len(s.src) && s.src[s.pos] == p[0] && s.src[s.pos+1] == p[1]
}

// errorf returns a new error of the given kind located at offset.
func (s *state) errorf(offset int, kind diag.Kind, format string, a ...interface{}) error {
	return diag.Errorf(kind, format, a...).At(s.path, s.src, offset)
}

// located locates err at offset, if it has no position.
func (s *state) located(err error, offset int) error {
	var e *diag.Error
	if errors.As(err, &e) {
		e.At(s.path, s.src, offset)
	}
	return err
}

// scan renders the source from the cursor up to the end or, inside a
// block, up to the block end. The block end is not consumed.
func (s *state) scan() error {
	for s.pos < len(s.src) {
		open := s.pos
		var err error
		switch {
		case s.at(variableOpen):
			s.pos += 2
			err = s.variable(open)
		case s.at(loopOpen):
			s.pos += 2
			err = s.loop(open)
		case s.at(optionalOpen):
			s.pos += 2
			err = s.optional(open)
		case s.at(inlineOpen):
			s.pos += 2
			err = s.inline(open)
		case s.at(blockEnd):
			if s.depth > 0 {
				return nil
			}
			s.out.WriteString(blockEnd)
			s.pos += 2
		default:
			// Copy up to the next '{' that could open a directive.
			n := bytes.IndexByte(s.src[s.pos+1:], '{')
			if n < 0 {
				n = len(s.src) - s.pos - 1
			}
			s.out.Write(s.src[s.pos : s.pos+1+n])
			s.pos += 1 + n
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// directive reads the text of the directive opened at offset open up to
// the closing pair, and moves the cursor after it.
func (s *state) directive(open int, close string) (string, error) {
	n := bytes.Index(s.src[s.pos:], []byte(close))
	if n < 0 {
		return "", s.errorf(open, diag.SyntaxError,
			"unexpected end of template, expecting %s to close %s", close, s.src[open:open+2])
	}
	text := string(s.src[s.pos : s.pos+n])
	s.pos += n + 2
	return text, nil
}

// evaluate resolves the path of a variable or loop directive and applies
// its pipe, if there is one.
func (s *state) evaluate(text string) (value.Value, error) {
	path, directive, hasPipe := strings.Cut(strings.TrimSpace(text), "|")
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, diag.Errorf(diag.SyntaxError, "missing path")
	}
	v, err := s.scopes.lookup(path)
	if err != nil {
		return nil, err
	}
	if !hasPipe {
		return v, nil
	}
	p, err := pipe.Compile(directive)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("pipe compiled", "path", path, "pipe", p.Name())
	return p.Apply(v)
}

// variable renders a variable directive.
func (s *state) variable(open int) error {
	text, err := s.directive(open, variableClose)
	if err != nil {
		return err
	}
	v, err := s.evaluate(text)
	if err != nil {
		return s.located(err, open)
	}
	t, ok := v.(value.Text)
	if !ok {
		return s.errorf(open, diag.ShapeMismatch,
			"cannot write %s %q, expecting text", value.KindName(v), strings.TrimSpace(text))
	}
	s.out.WriteString(string(t))
	return nil
}

// loop renders a loop directive and its block.
func (s *state) loop(open int) error {
	text, err := s.directive(open, loopClose)
	if err != nil {
		return err
	}
	v, err := s.evaluate(text)
	if err != nil {
		return s.located(err, open)
	}
	arr, ok := v.(value.Array)
	if !ok {
		return s.errorf(open, diag.ShapeMismatch,
			"cannot iterate over %s %q, expecting array", value.KindName(v), strings.TrimSpace(text))
	}
	if err := s.enter(open); err != nil {
		return err
	}
	s.logger.Debug("loop", "path", strings.TrimSpace(text), "iterations", len(arr))
	if len(arr) == 0 {
		err = s.skip(open)
	} else {
		start := s.pos
		for _, elem := range arr {
			s.pos = start
			s.scopes.push(value.Object{"$it": elem})
			err = s.block(open)
			s.scopes.pop()
			if err != nil {
				break
			}
		}
	}
	s.depth--
	return err
}

// optional renders an optional directive and its block.
func (s *state) optional(open int) error {
	text, err := s.directive(open, optionalClose)
	if err != nil {
		return err
	}
	path := strings.TrimSpace(text)
	if strings.Contains(path, "|") {
		return s.errorf(open, diag.SyntaxError, "unexpected pipe in optional directive %q", path)
	}
	if path == "" {
		return s.errorf(open, diag.SyntaxError, "missing path")
	}
	_, err = s.scopes.lookup(path)
	found := err == nil
	if k := diag.KindOf(err); !found && k != diag.UndefinedReference && k != diag.ShapeMismatch {
		return s.located(err, open)
	}
	if err := s.enter(open); err != nil {
		return err
	}
	if found {
		err = s.block(open)
	} else {
		s.logger.Debug("optional block skipped", "path", path)
		err = s.skip(open)
	}
	s.depth--
	return err
}

// inline renders an inline directive.
func (s *state) inline(open int) error {
	text, err := s.directive(open, inlineClose)
	if err != nil {
		return err
	}
	key := strings.TrimSpace(text)
	if key == "" {
		return s.errorf(open, diag.SyntaxError, "missing asset key")
	}
	if err := s.inlineAsset(key); err != nil {
		return s.located(err, open)
	}
	return nil
}

// enter enters the block opened at offset open.
func (s *state) enter(open int) error {
	if s.depth == s.maxDepth {
		return s.errorf(open, diag.LimitExceeded, "blocks nested too deeply, the maximum depth is %d", s.maxDepth)
	}
	s.depth++
	return nil
}

// block renders the body of the block opened at offset open and consumes
// its block end.
func (s *state) block(open int) error {
	if err := s.scan(); err != nil {
		return err
	}
	if !s.at(blockEnd) {
		return s.unterminated(open)
	}
	s.pos += 2
	return nil
}

// skip skips the body of the block opened at offset open, without rendering
// it, and consumes its block end.
func (s *state) skip(open int) error {
	nesting := 0
	for s.pos < len(s.src) {
		var close string
		switch {
		case s.at(variableOpen):
			close = variableClose
		case s.at(inlineOpen):
			close = inlineClose
		case s.at(loopOpen):
			close = loopClose
			nesting++
		case s.at(optionalOpen):
			close = optionalClose
			nesting++
		case s.at(blockEnd):
			s.pos += 2
			if nesting == 0 {
				return nil
			}
			nesting--
			continue
		default:
			s.pos++
			continue
		}
		n := bytes.Index(s.src[s.pos+2:], []byte(close))
		if n < 0 {
			break
		}
		s.pos += n + 4
	}
	return s.unterminated(open)
}

// unterminated returns the error of a block opened at offset open and not
// closed.
func (s *state) unterminated(open int) error {
	kind := "loop"
	if s.src[open+1] == optionalOpen[1] {
		kind = "optional"
	}
	pos := diag.Locate(s.src, open)
	return s.errorf(len(s.src), diag.SyntaxError,
		"unexpected end of template, expecting {} to close the %s block at %s", kind, pos)
}
