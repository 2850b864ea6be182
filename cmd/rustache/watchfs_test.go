// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchFS(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "data", "index.data"), "{ a: b }")
	fsys, err := newWatchFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer fsys.Close()

	data, err := fs.ReadFile(fsys, "data/index.data")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{ a: b }" {
		t.Fatalf("unexpected data %q", data)
	}

	err = os.WriteFile(filepath.Join(dir, "data", "index.data"), []byte("{ a: c }"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case name := <-fsys.Changed():
		if name != "data/index.data" {
			t.Fatalf("expected data/index.data, got %q", name)
		}
	case err := <-fsys.Errors:
		t.Fatal(err)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notified")
	}
}

func TestWatchFSNotExist(t *testing.T) {
	fsys, err := newWatchFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fsys.Close()
	_, err = fs.ReadFile(fsys, "index.data")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	_, err = fsys.Open("index.html")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
	if len(fsys.watched) > 0 {
		t.Fatalf("expected no watched files, got %v", fsys.watched)
	}
}
