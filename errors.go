package md2page

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInternal          = errors.New("internal conversion error")

	// Page rendering errors.
	ErrNilResult     = errors.New("result cannot be nil")
	ErrPageRender    = errors.New("page rendering failed")
	ErrThemeNotFound = errors.New("theme not found")
	ErrStyleNotFound = errors.New("highlight style not found")

	// Asset loading errors.
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
