package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
)

const (
	stdinArg    = "-"
	htmlExt     = ".html"
	metadataExt = ".meta.json"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidMaxSize     = errors.New("invalid max size")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// isMarkdownExt reports whether ext is a Markdown extension.
func isMarkdownExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// discoverFiles finds all markdown files to convert, in walk order.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdownExt(filepath.Ext(path)) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a markdown file.
// Directory inputs mirror their tree under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), htmlExt)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), htmlExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// metadataOutputPath returns the metadata sidecar path for an HTML path.
func metadataOutputPath(htmlPath string) string {
	return fileutil.ReplaceExt(htmlPath, metadataExt)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	ext := filepath.Ext(path)
	if !isMarkdownExt(ext) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, ext)
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// validateMaxSize checks the --max-size flag. Zero keeps the configured cap.
func validateMaxSize(n int64) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidMaxSize, n)
	}
	if n > config.MaxInputBytesLimit {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidMaxSize, n, config.MaxInputBytesLimit)
	}
	return nil
}
