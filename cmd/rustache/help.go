// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"runtime/debug"

	"github.com/rustache/rustache"
)

// commandsHelp maps a command name to a function that prints help for that
// command.
var commandsHelp = map[string]func(){
	"rustache": func() {
		stderr(
			`Rustache renders a static document from a template and a data document.`,
			``,
			`Usage:`,
			``,
			`	   rustache <command> [arguments]`,
			``,
			`The commands are:`,
			``,
			`	   build       render the document`,
			`	   serve       serve the document, rendering it on change`,
			`	   repl        render template fragments interactively`,
			`	   version     print rustache version`,
			``,
			`Use "rustache help <command>" for more information about a command.`,
			``,
			`Additional help topics:`,
			``,
			`	   templates   template directives and pipes`,
			`	   config      the rustache.yaml configuration file`,
		)
	},
	"build": func() {
		stderr(helpBuild)
	},
	"serve": func() {
		stderr(helpServe)
	},
	"repl": func() {
		stderr(helpRepl)
	},
	"version": func() {
		stderr(
			`usage: rustache version`,
		)
	},
	"templates": func() {
		stderr(helpTemplates)
	},
	"config": func() {
		stderr(helpConfig)
	},
}

// version returns the version of the module, if the command is built as a
// module dependency, otherwise rustache.Version.
func version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return rustache.Version
}

const helpBuild = `usage: rustache build [-in dir] [-out file] [-v]

Build renders the template of the project in the directory dir, the current
directory by default, with the project data document and writes the rendered
document to file.

The template, the data document, the output path and the inline assets are
read from the rustache.yaml file of the project, if it exists. Run
'rustache help config' for its format.

The rendered document is written to a temporary file that is renamed only if
the rendering succeeds, so a failed build leaves the previous document
unchanged.

The -v flag logs the pipes, the loops and the inlined assets.`

const helpServe = `usage: rustache serve [-in dir] [-http addr] [-v]

Serve runs a web server that serves the rendered document of the project in
the directory dir at the root path and the other files of the directory as
they are.

The document is rendered on the first request and it is rendered again after
the template, the data document, the configuration or an inlined asset
changes. Rendering errors are served as plain text.

The -http flag sets the address to listen on, localhost:8080 by default.`

const helpRepl = `usage: rustache repl [-in dir] [-v]

Repl reads template fragments from the standard input and renders them with
the data document of the project in the directory dir.

A fragment that ends inside a directive or a block continues on the next line.
The following commands are available:

	:data     print the data document
	:reload   read the configuration and the data document again
	:quit     exit`

const helpTemplates = `A template is a text with directives.

	{{ path }}                 write the text at path
	{{ path | pipe }}          write the text returned by the pipe
	{* path *} ... {}          repeat the body for each element of the array at
	                           path, $it is the element inside the body
	{* path | pipe *} ... {}   repeat the body for the array returned by the pipe
	{? path ?} ... {}          render the body only if path exists
	{> key <}                  inline the asset with the given key

A path is a dot separated list of keys, for example "site.author.name".

The pipes are:

	$reverse                                    reverse a text or an array
	$sort ($int_cmp $1.path $2.path)            sort an array by an integer
	$sort ($str_cmp $1.path $2.path)            sort an array by a text

Write $2 before $1 to sort in descending order:

	{* repos | $sort ($int_cmp $2.stars $1.stars) *}{{ $it.name }}{}`

const helpConfig = `The rustache.yaml file configures a project. All fields are optional.

	requires: v1.0.0       # minimum rustache version
	template: index.html   # template path
	data: index.data       # data document path
	output: build/index.html
	maxDepth: 64           # maximum nesting of blocks
	assets:
	  style:
	    path: build/css/style.css
	    prefix: <style>
	    suffix: </style>
	  about:
	    path: ABOUT.md
	    format: markdown   # converted to HTML

Without assets, the "style" and "script" assets read build/css/style.css and
build/js/app.js.`
