// Package config loads the YAML configuration of the md2page command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2page/internal/fileutil"
	"github.com/alnah/go-md2page/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldOutOfRange = errors.New("field out of range")
)

// Field limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxDateFormatLength = 50   // Matches the date format parser limit
	MaxNameLength       = 64   // Theme and highlight style names
	MaxWorkers          = 64
	MaxInputBytesLimit  = 100 << 20 // Hard ceiling for limits.maxInputBytes

	// DefaultMaxInputBytes caps a single Markdown input.
	DefaultMaxInputBytes = 100_000
)

// appDirName is the directory under os.UserConfigDir holding named configs.
const appDirName = "go-md2page"

// Config holds all configuration for the md2page command.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Frontmatter FrontmatterConfig `yaml:"frontmatter"`
	Highlight   HighlightConfig   `yaml:"highlight"`
	Language    LanguageConfig    `yaml:"language"`
	Page        PageConfig        `yaml:"page"`
	Limits      LimitsConfig      `yaml:"limits"`
	Workers     int               `yaml:"workers"` // 0 = automatic
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// FrontmatterConfig defines how frontmatter values are displayed.
type FrontmatterConfig struct {
	DateFormat string `yaml:"dateFormat"` // Preset or token format (empty = "short")
}

// HighlightConfig defines code highlighting options.
type HighlightConfig struct {
	Disabled bool   `yaml:"disabled"`
	Style    string `yaml:"style"` // Chroma style for page output (empty = "github")
}

// LanguageConfig defines language detection options.
type LanguageConfig struct {
	Disabled bool `yaml:"disabled"`
}

// PageConfig defines standalone page output.
type PageConfig struct {
	Enabled   bool   `yaml:"enabled"`   // Write full pages instead of fragments
	Theme     string `yaml:"theme"`     // Theme name (empty = "default")
	AssetsDir string `yaml:"assetsDir"` // Custom themes/templates (empty = embedded only)
}

// LimitsConfig defines input limits.
type LimitsConfig struct {
	MaxInputBytes int64 `yaml:"maxInputBytes"` // 0 = DefaultMaxInputBytes
}

// Validate checks field lengths and numeric bounds.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"frontmatter.dateFormat", c.Frontmatter.DateFormat, MaxDateFormatLength},
		{"highlight.style", c.Highlight.Style, MaxNameLength},
		{"page.theme", c.Page.Theme, MaxNameLength},
		{"page.assetsDir", c.Page.AssetsDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrFieldOutOfRange, MaxWorkers, c.Workers)
	}
	if c.Limits.MaxInputBytes < 0 || c.Limits.MaxInputBytes > MaxInputBytesLimit {
		return fmt.Errorf("%w: limits.maxInputBytes must be between 0 and %d, got %d",
			ErrFieldOutOfRange, MaxInputBytesLimit, c.Limits.MaxInputBytes)
	}
	return nil
}

// MaxInputBytes returns the configured input cap or the default.
func (c *Config) MaxInputBytes() int64 {
	if c.Limits.MaxInputBytes > 0 {
		return c.Limits.MaxInputBytes
	}
	return DefaultMaxInputBytes
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used without a config file:
// fragments, highlighting and language detection on.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{MaxInputBytes: DefaultMaxInputBytes},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then ~/.config/go-md2page/, each with .yaml and .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
