package assets

import (
	"fmt"
	"strings"
)

// Built-in asset names.
const (
	// DefaultThemeName is the theme used when none is configured.
	DefaultThemeName = "default"

	// PageTemplateName is the template wrapping a fragment into a page.
	PageTemplateName = "page"
)

// AssetLoader defines the contract for loading themes and page templates.
type AssetLoader interface {
	// LoadTheme loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName rejects names that could escape the asset directory:
// empty names and names holding separators or dots.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
