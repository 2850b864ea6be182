// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipe

import "github.com/rustache/rustache/internal/value"

// reverse reverses the code points of a text or the elements of an array.
//
// Texts are reversed by code point, so combining characters end up attached
// to a different base character.
type reverse struct{}

func newReverse(params string) (Pipe, error) {
	if err := noParams("$reverse", params); err != nil {
		return nil, err
	}
	return reverse{}, nil
}

func (reverse) Name() string { return "$reverse" }

func (reverse) Apply(v value.Value) (value.Value, error) {
	switch v := v.(type) {
	case value.Text:
		runes := []rune(string(v))
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.Text(runes), nil
	case value.Array:
		reversed := make(value.Array, len(v))
		for i, e := range v {
			reversed[len(v)-1-i] = e
		}
		return reversed, nil
	}
	return nil, cannotApply("$reverse", v, "text or array")
}
