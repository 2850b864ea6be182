// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rustache

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the name of the configuration file of a project.
const ConfigFile = "rustache.yaml"

// Config is the configuration of a project.
type Config struct {
	// Requires is the minimum version of rustache required by the project,
	// for example "v1.2.0". It is optional.
	Requires string `yaml:"requires"`

	// Template is the path of the template, "index.html" by default.
	Template string `yaml:"template"`

	// Data is the path of the data document, "index.data" by default.
	Data string `yaml:"data"`

	// Output is the path, relative to the project directory, of the
	// rendered document. "build/index.html" by default.
	Output string `yaml:"output"`

	// MaxDepth is the maximum nesting of blocks, DefaultMaxDepth if zero.
	MaxDepth int `yaml:"maxDepth"`

	// Assets are the assets that can be inlined, by key.
	Assets map[string]Asset `yaml:"assets"`
}

// Asset is an asset that a template can inline.
type Asset struct {
	Path   string `yaml:"path"`
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`
	Format Format `yaml:"format"`
}

// Format is the format of an asset.
type Format string

const (
	// FormatRaw assets are inlined as they are.
	FormatRaw Format = ""
	// FormatMarkdown assets are converted to HTML before being inlined.
	FormatMarkdown Format = "markdown"
)

// DefaultConfig returns the configuration used when a project has no
// configuration file.
func DefaultConfig() *Config {
	return &Config{
		Template: "index.html",
		Data:     "index.data",
		Output:   "build/index.html",
		Assets: map[string]Asset{
			"style":  {Path: "build/css/style.css", Prefix: "<style>", Suffix: "</style>"},
			"script": {Path: "build/js/app.js", Prefix: "<script>", Suffix: "</script>"},
		},
	}
}

// LoadConfig reads the named configuration file of fsys. If the file does
// not exist, it returns DefaultConfig(). Fields not present in the file
// have their default value.
func LoadConfig(fsys fs.FS, name string) (*Config, error) {
	src, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defaults := DefaultConfig()
	if cfg.Template == "" {
		cfg.Template = defaults.Template
	}
	if cfg.Data == "" {
		cfg.Data = defaults.Data
	}
	if cfg.Output == "" {
		cfg.Output = defaults.Output
	}
	if cfg.Assets == nil {
		cfg.Assets = defaults.Assets
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %s", name, err)
	}
	return cfg, nil
}

// validate validates the configuration.
func (cfg *Config) validate() error {
	if cfg.Requires != "" {
		if !semver.IsValid(cfg.Requires) {
			return fmt.Errorf("invalid requires version %q", cfg.Requires)
		}
		if semver.Compare(Version, cfg.Requires) < 0 {
			return fmt.Errorf("project requires rustache %s or later, this is %s", cfg.Requires, Version)
		}
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("invalid negative maxDepth %d", cfg.MaxDepth)
	}
	for _, p := range []struct{ field, path string }{
		{"template", cfg.Template}, {"data", cfg.Data}, {"output", cfg.Output},
	} {
		if !fs.ValidPath(p.path) {
			return fmt.Errorf("invalid %s path %q", p.field, p.path)
		}
	}
	for key, asset := range cfg.Assets {
		if !fs.ValidPath(asset.Path) || asset.Path == "." {
			return fmt.Errorf("invalid path %q for asset %q", asset.Path, key)
		}
		switch asset.Format {
		case FormatRaw, FormatMarkdown:
		default:
			return fmt.Errorf("unknown format %q for asset %q", asset.Format, key)
		}
	}
	return nil
}

// BuildOptions returns the options to build the templates of the project.
func (cfg *Config) BuildOptions() *BuildOptions {
	opts := &BuildOptions{
		MaxDepth: cfg.MaxDepth,
		Assets:   make(map[string]Wrapping, len(cfg.Assets)),
	}
	for key, asset := range cfg.Assets {
		opts.Assets[key] = Wrapping{Prefix: asset.Prefix, Suffix: asset.Suffix}
	}
	return opts
}
