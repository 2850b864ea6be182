// Copyright 2026 The Rustache Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

func main() {
	os.Exit(run(os.Args...))
}

// stderr prints lines on stderr.
func stderr(lines ...string) {
	for _, l := range lines {
		fmt.Fprint(os.Stderr, l+"\n")
	}
}

// exitError prints msg on stderr with a bold red color and returns the exit
// status code 1.
func exitError(format string, a ...interface{}) int {
	msg := fmt.Errorf(format, a...)
	stderr("\033[1;31m"+msg.Error()+"\033[0m", `exit status 1`)
	return 1
}

// run runs command 'rustache' with given args and returns the exit
// status code. First argument must be executable name.
func run(args ...string) int {

	// No command provided.
	if len(args) == 1 {
		commandsHelp["rustache"]()
		return 0
	}

	cmdArg := args[1]

	cmd, ok := commands[cmdArg]
	if !ok {
		stderr(
			fmt.Sprintf("rustache %s: unknown command", cmdArg),
			`Run 'rustache help' for usage.`,
		)
		return 1
	}
	return cmd(args[2:])
}

// commands maps a command name to a function that executes that command.
// Commands are called by command-line using:
//
//	rustache command [arguments]
var commands = map[string]func(args []string) int{
	"build": func(args []string) int {
		flags := newFlagSet("build")
		in := flags.String("in", ".", "project directory.")
		out := flags.String("out", "", "rendered file, output path of the configuration file if empty.")
		verbose := flags.Bool("v", false, "log pipes, loops and inlined assets.")
		if err := flags.Parse(args); err != nil {
			return 2
		}
		if flags.NArg() > 0 {
			stderr(`bad number of arguments`)
			flags.Usage()
			return 2
		}
		err := build(*in, *out, newLogger(*verbose))
		if err != nil {
			return exitError("%s", err)
		}
		return 0
	},
	"serve": func(args []string) int {
		flags := newFlagSet("serve")
		in := flags.String("in", ".", "project directory.")
		addr := flags.String("http", "localhost:8080", "HTTP address to listen on.")
		verbose := flags.Bool("v", false, "log pipes, loops and inlined assets.")
		if err := flags.Parse(args); err != nil {
			return 2
		}
		err := serve(*in, *addr, newLogger(*verbose))
		if err != nil {
			return exitError("%s", err)
		}
		return 0
	},
	"repl": func(args []string) int {
		flags := newFlagSet("repl")
		in := flags.String("in", ".", "project directory.")
		verbose := flags.Bool("v", false, "log pipes, loops and inlined assets.")
		if err := flags.Parse(args); err != nil {
			return 2
		}
		err := repl(*in, newLogger(*verbose))
		if err != nil {
			return exitError("%s", err)
		}
		return 0
	},
	"help": func(args []string) int {
		if len(args) == 0 {
			commandsHelp["rustache"]()
			return 0
		}
		topic := args[0]
		help, ok := commandsHelp[topic]
		if !ok {
			fmt.Fprintf(os.Stderr, "rustache help %s: unknown help topic. Run 'rustache help'.\n", topic)
			return 1
		}
		help()
		return 0
	},
	"version": func(args []string) int {
		fmt.Printf("rustache version %s (%s)\n", version(), runtime.Version())
		return 0
	},
}

// newFlagSet returns a new flag set for the named command.
func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	flags.Usage = func() {
		commandsHelp[name]()
		stderr(``, `Flags:`)
		flags.PrintDefaults()
	}
	return flags
}

// newLogger returns a logger that writes text records on stderr. If verbose
// is true, debug records are written too.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
