package main

import (
	"errors"
	"os"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
)

// Exit codes for the md2page CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, input too large
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Usage errors are checked first: a bad config path is a usage problem
// even though it wraps os.ErrNotExist.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldOutOfRange) ||
		errors.Is(err, md2page.ErrInvalidDateFormat) ||
		errors.Is(err, md2page.ErrThemeNotFound) ||
		errors.Is(err, md2page.ErrStyleNotFound) ||
		errors.Is(err, md2page.ErrTemplateNotFound) ||
		errors.Is(err, md2page.ErrInvalidAssetPath) ||
		errors.Is(err, md2page.ErrPageRender) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidMaxSize) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrInputTooLarge) {
		return ExitIO
	}

	return ExitGeneral
}
