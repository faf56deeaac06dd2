package md2page

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNewAssetLoader - Construction
// ---------------------------------------------------------------------------

func TestNewAssetLoader(t *testing.T) {
	t.Parallel()

	t.Run("embedded only", func(t *testing.T) {
		t.Parallel()

		loader, err := NewAssetLoader("")
		if err != nil {
			t.Fatalf("NewAssetLoader(\"\") error = %v", err)
		}
		css, err := loader.LoadTheme(DefaultTheme)
		if err != nil {
			t.Fatalf("LoadTheme(%q) error = %v", DefaultTheme, err)
		}
		if !strings.Contains(css, ".frontmatter-container") {
			t.Error("default theme does not style the frontmatter panel")
		}
		tmpl, err := loader.LoadTemplate(PageTemplate)
		if err != nil {
			t.Fatalf("LoadTemplate(%q) error = %v", PageTemplate, err)
		}
		if !strings.Contains(tmpl, "{{.Content}}") {
			t.Error("page template has no content slot")
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetLoader(filepath.Join(t.TempDir(), "missing"))
		if !errors.Is(err, ErrInvalidAssetPath) {
			t.Errorf("NewAssetLoader() error = %v, want ErrInvalidAssetPath", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestAssetLoader_Errors - Public error mapping
// ---------------------------------------------------------------------------

func TestAssetLoader_Errors(t *testing.T) {
	t.Parallel()

	loader, err := NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func() (string, error)
		wantErr error
	}{
		{
			name:    "unknown theme",
			load:    func() (string, error) { return loader.LoadTheme("nonexistent") },
			wantErr: ErrThemeNotFound,
		},
		{
			name:    "unknown template",
			load:    func() (string, error) { return loader.LoadTemplate("nonexistent") },
			wantErr: ErrTemplateNotFound,
		},
		{
			name:    "traversal in theme name",
			load:    func() (string, error) { return loader.LoadTheme("../secret") },
			wantErr: ErrInvalidAssetPath,
		},
		{
			name:    "empty template name",
			load:    func() (string, error) { return loader.LoadTemplate("") },
			wantErr: ErrInvalidAssetPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAssetLoader_CustomDirectory - Override and fallback
// ---------------------------------------------------------------------------

func TestAssetLoader_CustomDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "themes"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "themes", "corporate.css"), []byte("body{color:navy}"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader, err := NewAssetLoader(dir)
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	css, err := loader.LoadTheme("corporate")
	if err != nil {
		t.Fatalf("LoadTheme(corporate) error = %v", err)
	}
	if css != "body{color:navy}" {
		t.Errorf("LoadTheme(corporate) = %q", css)
	}

	// Not in the custom directory: embedded fallback
	if _, err := loader.LoadTheme(DefaultTheme); err != nil {
		t.Errorf("LoadTheme(%q) fallback error = %v", DefaultTheme, err)
	}
	if _, err := loader.LoadTemplate(PageTemplate); err != nil {
		t.Errorf("LoadTemplate(%q) fallback error = %v", PageTemplate, err)
	}
}

func TestThemes(t *testing.T) {
	t.Parallel()

	names := Themes()
	for _, want := range []string{"default", "resume"} {
		if !slices.Contains(names, want) {
			t.Errorf("Themes() = %v, missing %q", names, want)
		}
	}
}
