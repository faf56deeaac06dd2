package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2page <command> [flags] [args]")
	fmt.Fprintln(w, "       md2page [convert flags] <file.md|->")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert       Convert markdown files to sanitized HTML")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show help for a command")
	fmt.Fprintln(w, "  completion    Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2page help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2page convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown to sanitized HTML fragments or standalone pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --max-size <bytes>       Reject larger inputs (default 100000)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Metadata:")
	fmt.Fprintln(w, "      --date-format <s>        Frontmatter dates: preset or tokens")
	fmt.Fprintln(w, "                               Presets: short (default), iso, european, us, long")
	fmt.Fprintln(w, "                               Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                               Use [text] to escape literals")
	fmt.Fprintln(w, "      --no-lang                Disable language detection")
	fmt.Fprintln(w, "      --meta                   Write <name>.meta.json next to each output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Highlighting:")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style for pages (default github)")
	fmt.Fprintln(w, "      --no-highlight           Disable code highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --page                   Write standalone HTML pages")
	fmt.Fprintln(w, "      --theme <name>           Page theme: default, resume (implies --page)")
	fmt.Fprintln(w, "      --assets-dir <path>      Custom themes/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2page version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2page help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
