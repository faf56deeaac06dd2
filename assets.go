package md2page

import (
	"errors"

	"github.com/alnah/go-md2page/internal/assets"
)

// Asset name constants for built-in themes and templates.
const (
	// DefaultTheme is the name of the built-in page theme.
	DefaultTheme = assets.DefaultThemeName

	// PageTemplate is the name of the template wrapping a fragment into a page.
	PageTemplate = assets.PageTemplateName
)

// AssetLoader defines the contract for loading page themes and templates.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// NewAssetLoader provides filesystem loading with fallback to the embedded
// defaults. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTheme loads a theme stylesheet by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) (string, error)

	// LoadTemplate loads a page template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded assets.
// If basePath is set, custom assets take precedence with fallback to embedded.
//
// The basePath directory may contain:
//   - themes/{name}.css for page themes
//   - templates/{name}.html for page templates
//
// Returns ErrInvalidAssetPath if basePath is set but not a readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// Themes lists the names of the built-in themes.
func Themes() []string {
	return assets.ThemeNames()
}

// assetLoaderAdapter maps internal asset errors to the public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) (string, error) {
	content, err := a.resolver.LoadTheme(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError keeps the original message and matches the public sentinel
// with errors.Is. Internal sentinels are not exposed.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
