package main

import (
	"errors"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
// configName is the --config value used to list searched paths.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, fileutil.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, md2page.ErrInvalidDateFormat):
		return hints.ForDateFormat(datePresetNames())
	case errors.Is(err, md2page.ErrThemeNotFound):
		return hints.ForAvailable(md2page.Themes())
	case errors.Is(err, md2page.ErrStyleNotFound):
		return hints.ForAvailable(md2page.HighlightStyles())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
