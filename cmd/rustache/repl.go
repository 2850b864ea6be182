// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/rustache/rustache"
	"github.com/rustache/rustache/internal/pipe"
)

const (
	promptMain = "> "
	promptCont = ". "
)

// session is a repl session. It renders the fragments read from the standard
// input with the data document of a project.
type session struct {
	fsys   fs.FS
	logger *slog.Logger
	cfg    *rustache.Config
	data   rustache.Value
}

func repl(dir string, logger *slog.Logger) error {

	s := &session{fsys: os.DirFS(dir), logger: logger}
	err := s.load()
	if err != nil {
		return err
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(s.complete)

	history := historyFile()
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(history); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Printf("rustache %s, type :quit to exit\n", version())

	for {
		src, ok := s.read(ln)
		if !ok {
			fmt.Println()
			return nil
		}
		line := strings.TrimSpace(src)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			switch line {
			case ":quit":
				return nil
			case ":data":
				os.Stdout.Write(rustache.FormatData(s.data))
			case ":reload":
				if err := s.load(); err != nil {
					stderr("\033[1;31m" + err.Error() + "\033[0m")
				}
			default:
				fmt.Println("unknown command, the commands are :data, :reload and :quit")
			}
			continue
		}
		out, err := s.render(src)
		if err != nil {
			stderr("\033[1;31m" + err.Error() + "\033[0m")
			continue
		}
		os.Stdout.Write(out)
		if len(out) > 0 && out[len(out)-1] != '\n' {
			fmt.Println()
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}

// load reads the configuration and the data document of the project.
func (s *session) load() error {
	cfg, err := rustache.LoadConfig(s.fsys, rustache.ConfigFile)
	if err != nil {
		return err
	}
	data, err := rustache.ParseDataFile(s.fsys, cfg.Data)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		data = rustache.Object{}
	}
	s.cfg, s.data = cfg, data
	return nil
}

// render renders the template fragment src.
func (s *session) render(src string) ([]byte, error) {
	t := rustache.NewTemplate("repl", []byte(src), s.cfg.BuildOptions())
	var b bytes.Buffer
	err := t.Run(&b, s.data, &rustache.RunOptions{
		Assets: rustache.NewFSAssets(s.fsys, s.cfg.Assets),
		Logger: s.logger,
	})
	return b.Bytes(), err
}

// read reads a fragment from ln. It continues to read lines while the
// fragment ends inside a directive or a block. It returns false if there is
// no more input.
func (s *session) read(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return "", false
			}
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := s.render(src); !rustache.IsIncomplete(err) {
			return src, true
		}
	}
}

// complete returns the completions of line. The last word of line is
// completed with a command, a pipe or a top-level key of the data document.
func (s *session) complete(line string) []string {
	i := strings.LastIndexAny(line, " \t{|(") + 1
	head, word := line[:i], line[i:]
	var candidates []string
	switch {
	case strings.HasPrefix(word, ":") && i == 0:
		candidates = []string{":data", ":quit", ":reload"}
	case strings.HasPrefix(word, "$"):
		candidates = append(pipe.Names(), "$int_cmp", "$str_cmp", "$it")
	default:
		if data, ok := s.data.(rustache.Object); ok {
			for key := range data {
				candidates = append(candidates, key)
			}
		}
	}
	sort.Strings(candidates)
	var completions []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) {
			completions = append(completions, head+c)
		}
	}
	return completions
}

// historyFile returns the path of the history file, or the empty string if
// the home directory is not known.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rustache_history")
}
