// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notation

import "strconv"

// tokenTyp is the type of a token.
type tokenTyp int

const (
	tokenObjectOpen  tokenTyp = iota // {
	tokenObjectClose                 // }
	tokenArrayOpen                   // [
	tokenArrayClose                  // ]
	tokenKey                         // run terminated by an unescaped ':'
	tokenText                        // run terminated by white space, a structural byte or the end
)

var tokenTypeString = [...]string{
	tokenObjectOpen:  "{",
	tokenObjectClose: "}",
	tokenArrayOpen:   "[",
	tokenArrayClose:  "]",
	tokenKey:         "key",
	tokenText:        "text",
}

func (tt tokenTyp) String() string {
	return tokenTypeString[tt]
}

// token is a lexed token.
type token struct {
	typ tokenTyp
	txt []byte // raw run, escapes not yet replaced; nil for structural tokens
	pos int    // index of the first byte
}

func (tok token) String() string {
	switch tok.typ {
	case tokenKey, tokenText:
		return tok.typ.String() + " " + strconv.Quote(string(tok.txt))
	}
	return strconv.Quote(tok.typ.String())
}
