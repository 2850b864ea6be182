// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package notation reads and writes data documents.
//
// A data document is a text, an array or an object:
//
//	{
//	    name: World
//	    tags: [ go templates ]
//	    home: https\://example.com
//	}
//
// Keys end with an unescaped ':'. Texts end with a white space, one of the
// bytes '{', '}', '[' and ']', or the end of the document. The sequence `\:`
// is a literal ':' in both keys and texts.
package notation

import (
	"bytes"
	"errors"

	"github.com/rustache/rustache/internal/diag"
	"github.com/rustache/rustache/internal/value"
)

// maxNesting is the maximum nesting of objects and arrays in a document.
const maxNesting = 1000

// parser maintains the parsing status.
type parser struct {
	path   string
	src    []byte
	tokens []token
	i      int // index of the next token
}

// Parse parses the data document src read from the file with the given
// path. path is used only in errors and can be empty.
//
// Returned errors are *diag.Error values with kind diag.LexError,
// diag.SyntaxError or diag.LimitExceeded.
func Parse(path string, src []byte) (value.Value, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, located(err, path, src)
	}
	p := &parser{path: path, src: src, tokens: tokens}
	if len(tokens) == 0 {
		return nil, p.errorf(len(src), "empty document, expecting text, array or object")
	}
	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}
	if p.i < len(tokens) {
		tok := tokens[p.i]
		return nil, p.errorf(tok.pos, "unexpected %s after the end of the document", tok)
	}
	return v, nil
}

// located sets the path and position of err if it is a *diag.Error.
func located(err error, path string, src []byte) error {
	var e *diag.Error
	if errors.As(err, &e) {
		e.At(path, src, e.Pos.Offset)
	}
	return err
}

// next returns the next token. ok is false if there are no more tokens.
func (p *parser) next() (tok token, ok bool) {
	if p.i == len(p.tokens) {
		return token{}, false
	}
	tok = p.tokens[p.i]
	p.i++
	return tok, true
}

// parseValue parses a text, an array or an object.
func (p *parser) parseValue(depth int) (value.Value, error) {
	tok, ok := p.next()
	if !ok {
		return nil, p.errorf(len(p.src), "unexpected end of document, expecting text, array or object")
	}
	switch tok.typ {
	case tokenText:
		return value.Text(unescape(tok.txt)), nil
	case tokenObjectOpen:
		if depth == maxNesting {
			return nil, p.limitf(tok.pos)
		}
		return p.parseObject(tok, depth+1)
	case tokenArrayOpen:
		if depth == maxNesting {
			return nil, p.limitf(tok.pos)
		}
		return p.parseArray(tok, depth+1)
	}
	return nil, p.errorf(tok.pos, "unexpected %s, expecting text, array or object", tok)
}

// parseObject parses the key/value pairs of an object opened by open. The
// last value wins on duplicate keys.
func (p *parser) parseObject(open token, depth int) (value.Value, error) {
	obj := value.Object{}
	for {
		tok, ok := p.next()
		if !ok {
			return nil, p.errorf(len(p.src), "unexpected end of document, expecting } to close the object at %s",
				diag.Locate(p.src, open.pos))
		}
		switch tok.typ {
		case tokenObjectClose:
			return obj, nil
		case tokenKey:
			if bytes.IndexByte(tok.txt, '.') >= 0 {
				return nil, p.errorf(tok.pos, "invalid key %q, keys cannot contain '.'", unescape(tok.txt))
			}
			v, err := p.parseValue(depth)
			if err != nil {
				return nil, err
			}
			obj[unescape(tok.txt)] = v
		default:
			return nil, p.errorf(tok.pos, "unexpected %s, expecting key or }", tok)
		}
	}
}

// parseArray parses the elements of an array opened by open.
func (p *parser) parseArray(open token, depth int) (value.Value, error) {
	arr := value.Array{}
	for {
		if p.i == len(p.tokens) {
			return nil, p.errorf(len(p.src), "unexpected end of document, expecting ] to close the array at %s",
				diag.Locate(p.src, open.pos))
		}
		if p.tokens[p.i].typ == tokenArrayClose {
			p.i++
			return arr, nil
		}
		v, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func (p *parser) errorf(offset int, format string, a ...interface{}) *diag.Error {
	return diag.Errorf(diag.SyntaxError, format, a...).At(p.path, p.src, offset)
}

func (p *parser) limitf(offset int) *diag.Error {
	return diag.Errorf(diag.LimitExceeded, "document nesting exceeds %d levels", maxNesting).At(p.path, p.src, offset)
}
