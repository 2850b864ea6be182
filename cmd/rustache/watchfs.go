// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// watchFS implements a file system that reads the files in a directory and
// watches the files it has read. The name of a read file is sent on the
// channel returned by Changed when the file is written, created, removed or
// renamed.
type watchFS struct {
	fsys    fs.FS
	root    string
	watcher *fsnotify.Watcher
	changed chan string
	Errors  chan error

	sync.Mutex
	watched map[string]bool
}

func newWatchFS(root string) (*watchFS, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watchFS{
		fsys:    os.DirFS(root),
		root:    root,
		watcher: watcher,
		changed: make(chan string),
		Errors:  make(chan error),
		watched: map[string]bool{},
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := w.name(event.Name)
				if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					// The watch is removed with the file. It is added again
					// when the file is read.
					w.Lock()
					delete(w.watched, name)
					w.Unlock()
				}
				w.changed <- name
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				w.Errors <- err
			}
		}
	}()
	return w, nil
}

// Changed returns the channel on which the names of the changed files are
// sent.
func (w *watchFS) Changed() <-chan string {
	return w.changed
}

func (w *watchFS) Close() error {
	return w.watcher.Close()
}

func (w *watchFS) Open(name string) (fs.File, error) {
	f, err := w.fsys.Open(name)
	if err != nil {
		return nil, err
	}
	err = w.watch(name)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func (w *watchFS) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(w.fsys, name)
	if err != nil {
		return nil, err
	}
	err = w.watch(name)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// watch watches the named file, if it is not already watched.
func (w *watchFS) watch(name string) error {
	w.Lock()
	defer w.Unlock()
	if w.watched[name] {
		return nil
	}
	err := w.watcher.Add(filepath.Join(w.root, filepath.FromSlash(name)))
	if err != nil {
		return err
	}
	w.watched[name] = true
	return nil
}

// name returns the slash separated name, relative to the root, of the file
// with the given operating system path.
func (w *watchFS) name(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
