// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package notation

import (
	"bufio"
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/rustache/rustache/internal/value"
)

const indent = "  "

// Marshal returns the canonical form of v.
//
// Object keys are sorted and each ':' is escaped. A text containing white
// space or one of the bytes '{', '}', '[' and ']' cannot be read back as the
// same text.
func Marshal(v value.Value) []byte {
	var b bytes.Buffer
	_ = Format(&b, v)
	return b.Bytes()
}

// Format writes the canonical form of v to w, followed by a newline.
func Format(w io.Writer, v value.Value) error {
	bw := bufio.NewWriter(w)
	writeValue(bw, v, 0)
	_ = bw.WriteByte('\n')
	return bw.Flush()
}

func writeValue(w *bufio.Writer, v value.Value, depth int) {
	switch v := v.(type) {
	case value.Text:
		_, _ = w.WriteString(escape(string(v)))
	case value.Array:
		if len(v) == 0 {
			_, _ = w.WriteString("[]")
			return
		}
		_, _ = w.WriteString("[\n")
		for _, e := range v {
			writeIndent(w, depth+1)
			writeValue(w, e, depth+1)
			_ = w.WriteByte('\n')
		}
		writeIndent(w, depth)
		_ = w.WriteByte(']')
	case value.Object:
		if len(v) == 0 {
			_, _ = w.WriteString("{}")
			return
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		_, _ = w.WriteString("{\n")
		for _, k := range keys {
			writeIndent(w, depth+1)
			_, _ = w.WriteString(escape(k))
			_, _ = w.WriteString(": ")
			writeValue(w, v[k], depth+1)
			_ = w.WriteByte('\n')
		}
		writeIndent(w, depth)
		_ = w.WriteByte('}')
	}
}

func writeIndent(w *bufio.Writer, depth int) {
	for i := 0; i < depth; i++ {
		_, _ = w.WriteString(indent)
	}
}

func escape(s string) string {
	return strings.ReplaceAll(s, ":", `\:`)
}
