package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	configureMaxProcs(os.Args, os.Stderr)
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota, logging
// the decision only in verbose mode.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(args []string, w io.Writer) {
	logger := func(string, ...interface{}) {}
	if slices.Contains(args, "-v") || slices.Contains(args, "--verbose") {
		logger = func(format string, a ...interface{}) {
			fmt.Fprintf(w, format+"\n", a...)
		}
	}
	_, _ = maxprocs.Set(maxprocs.Logger(logger))
}

// runMain dispatches to a command and returns the process exit code.
// Input as the first argument, or flags followed by input, run convert
// implicitly.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if isImplicitConvert(args[1:]) {
		cmd, rest = "convert", args[1:]
	}

	switch cmd {
	case "convert":
		return runConvertCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2page %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		if err := runCompletion(rest, env); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// runConvertCmd parses convert flags, runs the conversion and reports errors.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err.Error()+hintFor(err, cmp.Or(flags.common.config, os.Getenv("MD2PAGE_CONFIG"))))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isImplicitConvert reports whether args omit the convert command: the first
// argument is input, or it is a convert flag and input follows.
func isImplicitConvert(args []string) bool {
	first := args[0]
	if looksLikeInput(first) {
		return true
	}
	switch first {
	case "-h", "--help", "--version":
		return false
	}
	if !strings.HasPrefix(first, "-") {
		return false
	}
	return slices.ContainsFunc(args[1:], looksLikeInput)
}

// looksLikeInput reports whether arg is a Markdown file or stdin.
func looksLikeInput(arg string) bool {
	if arg == stdinArg {
		return true
	}
	return isMarkdownExt(filepath.Ext(arg))
}
