// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rustache/rustache"
)

// build renders the project in the directory dir and writes the rendered
// document to out. If out is empty, the document is written to the output
// path of the project configuration.
func build(dir, out string, logger *slog.Logger) error {
	fsys := os.DirFS(dir)
	cfg, err := rustache.LoadConfig(fsys, rustache.ConfigFile)
	if err != nil {
		return err
	}
	if out == "" {
		out = filepath.Join(dir, filepath.FromSlash(cfg.Output))
	}
	var b bytes.Buffer
	err = rustache.Render(fsys, cfg, &b, logger)
	if err != nil {
		return err
	}
	err = writeFile(out, b.Bytes())
	if err != nil {
		return err
	}
	logger.Info("document built", "template", cfg.Template, "output", out, "size", b.Len())
	return nil
}

// writeFile writes data to the named file, creating its directory if it does
// not exist. data is first written to a temporary file in the same directory
// that is then renamed, so the named file is never left partially written.
func writeFile(name string, data []byte) error {
	dir := filepath.Dir(name)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}
	fi, err := os.CreateTemp(dir, "rustache-*")
	if err != nil {
		return err
	}
	_, err = fi.Write(data)
	if err2 := fi.Close(); err == nil {
		err = err2
	}
	if err == nil {
		err = os.Chmod(fi.Name(), 0644)
	}
	if err == nil {
		err = os.Rename(fi.Name(), name)
	}
	if err != nil {
		_ = os.Remove(fi.Name())
	}
	return err
}
