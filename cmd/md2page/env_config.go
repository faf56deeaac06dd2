package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2page/internal/config"
)

const envPrefix = "MD2PAGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string // MD2PAGE_CONFIG: config name or path
	InputDir       string // MD2PAGE_INPUT_DIR: default input directory
	OutputDir      string // MD2PAGE_OUTPUT_DIR: default output directory
	Theme          string // MD2PAGE_THEME: page theme (enables page output)
	HighlightStyle string // MD2PAGE_HIGHLIGHT_STYLE: chroma style for pages
	DateFormat     string // MD2PAGE_DATE_FORMAT: frontmatter date format
	Workers        int    // MD2PAGE_WORKERS: parallel workers
	MaxSize        int64  // MD2PAGE_MAX_SIZE: input cap in bytes
}

// knownEnvVars lists valid MD2PAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PAGE_CONFIG":          true,
	"MD2PAGE_INPUT_DIR":       true,
	"MD2PAGE_OUTPUT_DIR":      true,
	"MD2PAGE_THEME":           true,
	"MD2PAGE_HIGHLIGHT_STYLE": true,
	"MD2PAGE_DATE_FORMAT":     true,
	"MD2PAGE_WORKERS":         true,
	"MD2PAGE_MAX_SIZE":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MD2PAGE_CONFIG"),
		InputDir:       os.Getenv("MD2PAGE_INPUT_DIR"),
		OutputDir:      os.Getenv("MD2PAGE_OUTPUT_DIR"),
		Theme:          os.Getenv("MD2PAGE_THEME"),
		HighlightStyle: os.Getenv("MD2PAGE_HIGHLIGHT_STYLE"),
		DateFormat:     os.Getenv("MD2PAGE_DATE_FORMAT"),
	}

	if workers := os.Getenv("MD2PAGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if size := os.Getenv("MD2PAGE_MAX_SIZE"); size != "" {
		if n, err := strconv.ParseInt(size, 10, 64); err == nil && n > 0 {
			cfg.MaxSize = n
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2PAGE_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero,
// so the order is: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Theme != "" && cfg.Page.Theme == "" {
		cfg.Page.Theme = env.Theme
		cfg.Page.Enabled = true
	}
	if env.HighlightStyle != "" && cfg.Highlight.Style == "" {
		cfg.Highlight.Style = env.HighlightStyle
	}
	if env.DateFormat != "" && cfg.Frontmatter.DateFormat == "" {
		cfg.Frontmatter.DateFormat = env.DateFormat
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
	if env.MaxSize > 0 && cfg.Limits.MaxInputBytes == config.DefaultMaxInputBytes {
		cfg.Limits.MaxInputBytes = env.MaxSize
	}
}
