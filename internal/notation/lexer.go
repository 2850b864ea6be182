// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notation

import (
	"bytes"
	"unicode/utf8"

	"github.com/rustache/rustache/internal/diag"
)

var escapedColon = []byte(`\:`)
var colon = []byte(`:`)

// lexer maintains the scanner status.
type lexer struct {
	src    []byte  // scanned source
	p      int     // index of the current byte
	tokens []token // scanned tokens
}

// lex scans src and returns its tokens. Returned errors have kind
// diag.LexError and carry the offset of the offending byte.
func lex(src []byte) ([]token, error) {
	l := &lexer{src: src}
	for l.p < len(l.src) {
		c := l.src[l.p]
		switch c {
		case '{':
			l.emit(tokenObjectOpen)
		case '}':
			l.emit(tokenObjectClose)
		case '[':
			l.emit(tokenArrayOpen)
		case ']':
			l.emit(tokenArrayClose)
		case ':':
			return nil, l.errorf(l.p, "unexpected ':', expecting key before it")
		default:
			if isSpace(c) {
				l.p++
				continue
			}
			if err := l.lexRun(); err != nil {
				return nil, err
			}
		}
	}
	return l.tokens, nil
}

// emit emits a structural token at the current byte.
func (l *lexer) emit(typ tokenTyp) {
	l.tokens = append(l.tokens, token{typ: typ, pos: l.p})
	l.p++
}

// lexRun scans a key or a text. A run ending with an unescaped ':' is a key.
func (l *lexer) lexRun() error {
	start := l.p
	typ := tokenText
	end := len(l.src)
LOOP:
	for l.p < len(l.src) {
		c := l.src[l.p]
		switch {
		case c == '\\' && l.p+1 < len(l.src) && l.src[l.p+1] == ':':
			l.p += 2
		case c == ':':
			typ = tokenKey
			end = l.p
			l.p++
			break LOOP
		case isSpace(c) || isStructural(c):
			end = l.p
			break LOOP
		default:
			l.p++
		}
	}
	txt := l.src[start:end]
	if !utf8.Valid(txt) {
		i := start
		for i < end {
			r, size := utf8.DecodeRune(l.src[i:end])
			if r == utf8.RuneError && size <= 1 {
				break
			}
			i += size
		}
		return l.errorf(i, "invalid UTF-8 encoding")
	}
	l.tokens = append(l.tokens, token{typ: typ, txt: txt, pos: start})
	return nil
}

func (l *lexer) errorf(offset int, format string, a ...interface{}) *diag.Error {
	err := diag.Errorf(diag.LexError, format, a...)
	err.Pos.Offset = offset
	return err
}

// unescape replaces every `\:` in txt with ':'.
func unescape(txt []byte) string {
	if bytes.Contains(txt, escapedColon) {
		return string(bytes.ReplaceAll(txt, escapedColon, colon))
	}
	return string(txt)
}

// isSpace reports whether c is an ASCII white space.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// isStructural reports whether c opens or closes an object or an array.
func isStructural(c byte) bool {
	return c == '{' || c == '}' || c == '[' || c == ']'
}
