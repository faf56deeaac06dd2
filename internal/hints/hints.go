// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path, or creating a config in the user config
// directory when one of the searched paths lives there.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	marker := filepath.Join(".config", "go-md2page")
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInputTooLarge suggests raising the input cap.
func ForInputTooLarge() string {
	return format("raise the cap with --max-size or limits.maxInputBytes")
}

// ForDateFormat lists the date format presets and tokens.
func ForDateFormat(presets []string) string {
	hint := "tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D; [text] is literal"
	if len(presets) > 0 {
		hint = "presets: " + strings.Join(presets, ", ") + "; " + hint
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForAvailable lists valid names after a not-found error, e.g. themes or
// highlight styles.
func ForAvailable(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
