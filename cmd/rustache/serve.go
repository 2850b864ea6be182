// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/rustache/rustache"
)

func serve(dir, addr string, logger *slog.Logger) error {

	fsys, err := newWatchFS(dir)
	if err != nil {
		return err
	}
	defer fsys.Close()

	srv := newServer(fsys, http.FileServer(http.Dir(dir)), logger)
	go func() {
		for {
			select {
			case name := <-fsys.Changed():
				srv.invalidate(name)
			case err := <-fsys.Errors:
				logger.Error("watch error", "err", err)
			}
		}
	}()

	s := &http.Server{
		Addr:           addr,
		Handler:        srv,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	fmt.Fprintf(os.Stderr, "Web server is available at http://%s/\n", addr)
	fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop\n\n")

	return s.ListenAndServe()
}

// server serves the rendered document of a project and its static files.
// The rendered document is cached until a file read to render it changes.
type server struct {
	fsys   fs.FS
	static http.Handler
	logger *slog.Logger

	sync.Mutex
	cfg  *rustache.Config
	page []byte
	err  error
}

func newServer(fsys fs.FS, static http.Handler, logger *slog.Logger) *server {
	return &server{fsys: fsys, static: static, logger: logger}
}

func (srv *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	cfg, page, err := srv.render()
	if cfg == nil {
		// The configuration cannot be read.
		srv.writeError(w, err)
		return
	}

	name := r.URL.Path[1:]
	if name != "" && name != cfg.Template {
		srv.static.ServeHTTP(w, r)
		return
	}

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		srv.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write(page)
	if err != nil {
		srv.logger.Error("cannot write response", "err", err)
	}
}

// render returns the configuration and the rendered document, rendering it
// if it is not cached. If the document cannot be rendered, it returns the
// error. If the configuration cannot be read, the returned configuration is
// nil.
func (srv *server) render() (*rustache.Config, []byte, error) {
	srv.Lock()
	defer srv.Unlock()
	if srv.cfg != nil {
		return srv.cfg, srv.page, srv.err
	}
	cfg, err := rustache.LoadConfig(srv.fsys, rustache.ConfigFile)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	var b bytes.Buffer
	err = rustache.Render(srv.fsys, cfg, &b, srv.logger)
	if err != nil {
		srv.logger.Info("document not rendered", "err", err)
	} else {
		srv.logger.Info("document rendered", "template", cfg.Template, "size", b.Len(), "time", time.Since(start))
	}
	srv.cfg, srv.page, srv.err = cfg, b.Bytes(), err
	return srv.cfg, srv.page, srv.err
}

// invalidate invalidates the cached document after the named file changed.
func (srv *server) invalidate(name string) {
	srv.Lock()
	srv.cfg, srv.page, srv.err = nil, nil, nil
	srv.Unlock()
	srv.logger.Debug("file changed", "name", name)
}

// writeError writes err as a plain text internal server error.
func (srv *server) writeError(w http.ResponseWriter, err error) {
	var e *rustache.Error
	if !errors.As(err, &e) {
		srv.logger.Error("cannot render document", "err", err)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "%s", err)
}
