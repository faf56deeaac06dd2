package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// frontmatterFlags holds flags for frontmatter and metadata.
type frontmatterFlags struct {
	dateFormat string
	noLang     bool
	meta       bool
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	style    string
	disabled bool
}

// pageFlags holds standalone page flags.
type pageFlags struct {
	enabled   bool
	theme     string
	assetsDir string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	output      string
	workers     int
	maxSize     int64
	frontmatter frontmatterFlags
	highlight   highlightFlags
	page        pageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addFrontmatterFlags adds frontmatter and metadata flags to a FlagSet.
func addFrontmatterFlags(fs *flag.FlagSet, f *frontmatterFlags) {
	fs.StringVar(&f.dateFormat, "date-format", "", "frontmatter date format (preset or tokens)")
	fs.BoolVar(&f.noLang, "no-lang", false, "disable language detection")
	fs.BoolVar(&f.meta, "meta", false, "write metadata as <name>.meta.json")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for page output")
	fs.BoolVar(&f.disabled, "no-highlight", false, "disable code highlighting")
}

// addPageFlags adds standalone page flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.BoolVar(&f.enabled, "page", false, "write standalone pages instead of fragments")
	fs.StringVar(&f.theme, "theme", "", "page theme (implies --page)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "custom themes/templates directory")
}

// newConvertFlagSet registers every convert flag into f.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.Int64Var(&f.maxSize, "max-size", 0, "maximum input size in bytes (0 = config or default)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addFrontmatterFlags(fs, &f.frontmatter)
	addHighlightFlags(fs, &f.highlight)
	addPageFlags(fs, &f.page)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage goes to usageOut on -h or a parse error.
func parseConvertFlags(args []string, usageOut io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(usageOut)
	fs.Usage = func() { printConvertUsage(usageOut) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
