package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteOutput  = errors.New("failed to write output file")
)

// conversionParams groups values shared across batch/file conversion.
type conversionParams struct {
	converter *md2page.Converter
	page      *md2page.PageOptions // nil writes fragments
	meta      bool
	maxBytes  int64
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if err := validateMaxSize(flags.maxSize); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(cmp.Or(flags.common.config, envCfg.ConfigPath))
	if err != nil {
		return err
	}
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	params, err := buildParams(cfg, flags.frontmatter.meta)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	if inputPath == stdinArg {
		return convertStdin(ctx, params, env)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	results := convertBatch(ctx, files, params, md2page.ResolvePoolSize(cfg.Workers), env)
	printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	return batchErr(results)
}

// loadConfig loads the named config, or the defaults when name is empty.
func loadConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags overrides config values with flags that were set.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}
	if flags.maxSize > 0 {
		cfg.Limits.MaxInputBytes = flags.maxSize
	}
	if flags.frontmatter.dateFormat != "" {
		cfg.Frontmatter.DateFormat = flags.frontmatter.dateFormat
	}
	if flags.frontmatter.noLang {
		cfg.Language.Disabled = true
	}
	if flags.highlight.disabled {
		cfg.Highlight.Disabled = true
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
	}
	if flags.page.enabled {
		cfg.Page.Enabled = true
	}
	if flags.page.theme != "" {
		cfg.Page.Theme = flags.page.theme
		cfg.Page.Enabled = true
	}
	if flags.page.assetsDir != "" {
		cfg.Page.AssetsDir = flags.page.assetsDir
	}
}

// buildParams creates the converter and, for page output, validates the
// page options against an empty result so bad themes fail before any file
// is read.
func buildParams(cfg *config.Config, meta bool) (*conversionParams, error) {
	opts := []md2page.Option{
		md2page.WithHighlighting(!cfg.Highlight.Disabled),
		md2page.WithLanguageDetection(!cfg.Language.Disabled),
	}
	if cfg.Frontmatter.DateFormat != "" {
		opts = append(opts, md2page.WithDateFormat(cfg.Frontmatter.DateFormat))
	}
	conv, err := md2page.NewConverter(opts...)
	if err != nil {
		return nil, err
	}

	params := &conversionParams{
		converter: conv,
		meta:      meta,
		maxBytes:  cfg.MaxInputBytes(),
	}
	if !cfg.Page.Enabled {
		return params, nil
	}

	page, err := buildPageOptions(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := md2page.RenderPage(&md2page.Result{}, *page); err != nil {
		return nil, err
	}
	params.page = page
	return params, nil
}

// buildPageOptions resolves the asset loader and page settings.
func buildPageOptions(cfg *config.Config) (*md2page.PageOptions, error) {
	loader, err := md2page.NewAssetLoader(cfg.Page.AssetsDir)
	if err != nil {
		return nil, err
	}
	return &md2page.PageOptions{
		Theme:          cfg.Page.Theme,
		HighlightStyle: cfg.Highlight.Style,
		Assets:         loader,
	}, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// convertStdin converts stdin to stdout. With --meta the whole result is
// written as JSON instead of the HTML alone.
func convertStdin(ctx context.Context, params *conversionParams, env *Environment) error {
	content, err := fileutil.ReadLimited(env.Stdin, params.maxBytes)
	if err != nil {
		if errors.Is(err, fileutil.ErrInputTooLarge) {
			return err
		}
		return fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
	}

	res, err := params.converter.Convert(ctx, string(content))
	if err != nil {
		return err
	}

	var out []byte
	switch {
	case params.meta:
		if out, err = json.MarshalIndent(res, "", "  "); err != nil {
			return err
		}
		out = append(out, '\n')
	case params.page != nil:
		if out, err = md2page.RenderPage(res, *params.page); err != nil {
			return err
		}
	default:
		out = []byte(res.HTML)
	}

	if _, err := env.Stdout.Write(out); err != nil {
		return fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
	}
	return nil
}

// pageTitle falls back to the file name when the document has no title.
func pageTitle(res *md2page.Result, inputPath string) string {
	if res.Metadata.Title != "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
}

// writeMetadata writes res.Metadata as indented JSON next to htmlPath.
func writeMetadata(htmlPath string, res *md2page.Result) error {
	data, err := json.MarshalIndent(res.Metadata, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	// #nosec G306 -- metadata is meant to be readable
	if err := fileutil.WriteFileAtomic(metadataOutputPath(htmlPath), data, filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %v", ErrWriteOutput, err)
	}
	return nil
}
