package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2page "github.com/alnah/go-md2page"
	"github.com/alnah/go-md2page/internal/config"
	"github.com/alnah/go-md2page/internal/fileutil"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testEnv captures CLI output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestEnv(stdin string) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fixed := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return fixed },
			Stdin:  strings.NewReader(stdin),
			Stdout: stdout,
			Stderr: stderr,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

func newTestConfig() *config.Config {
	return config.DefaultConfig()
}

// writeFile creates dir/name with content, making parent directories.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 -- test path
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const sampleMarkdown = "# Hello World\n\nSome body text for the page.\n"

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end conversions
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	t.Run("fragment next to input", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "doc.md", sampleMarkdown)
		env := newTestEnv("")

		code := runMain([]string{"md2page", "convert", "-q", in}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}

		got := readFile(t, filepath.Join(dir, "doc.html"))
		if !strings.Contains(got, `<h1 id="hello-world">Hello World</h1>`) {
			t.Errorf("fragment missing heading, got %q", got)
		}
		if strings.Contains(got, "<!DOCTYPE html>") {
			t.Error("fragment should not be a full page")
		}
		if env.stdout.Len() != 0 {
			t.Errorf("quiet mode wrote to stdout: %q", env.stdout)
		}
	})

	t.Run("implicit convert command", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "doc.md", sampleMarkdown)
		env := newTestEnv("")

		code := runMain([]string{"md2page", in}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}
		if !strings.Contains(env.stdout.String(), "Created "+filepath.Join(dir, "doc.html")) {
			t.Errorf("stdout = %q, want Created line", env.stdout)
		}
	})

	t.Run("page with metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "doc.md", "---\ntitle: Front Title\n---\n"+sampleMarkdown)
		out := filepath.Join(t.TempDir(), "site")
		env := newTestEnv("")

		code := runMain([]string{"md2page", "convert", "--page", "--meta", "-o", out, in}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}

		page := readFile(t, filepath.Join(out, "doc.html"))
		if !strings.HasPrefix(page, "<!DOCTYPE html>") {
			t.Errorf("expected full page, got %.80q", page)
		}
		if !strings.Contains(page, "<title>Front Title</title>") {
			t.Errorf("page title missing")
		}

		var meta md2page.Metadata
		if err := json.Unmarshal([]byte(readFile(t, filepath.Join(out, "doc.meta.json"))), &meta); err != nil {
			t.Fatalf("invalid metadata JSON: %v", err)
		}
		if meta.Title != "Front Title" {
			t.Errorf("meta title = %q, want Front Title", meta.Title)
		}
	})

	t.Run("page title falls back to file name", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := writeFile(t, dir, "notes.md", "just a paragraph\n")
		env := newTestEnv("")

		code := runMain([]string{"md2page", "--page", "-q", in}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}
		if page := readFile(t, filepath.Join(dir, "notes.html")); !strings.Contains(page, "<title>notes</title>") {
			t.Errorf("expected file name title, got %.300q", page)
		}
	})

	t.Run("directory batch", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "a.md", "# A\n")
		writeFile(t, dir, "nested/b.md", "# B\n")
		out := t.TempDir()
		env := newTestEnv("")

		code := runMain([]string{"md2page", "convert", "-w", "2", "-o", out, dir}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}
		for _, p := range []string{"a.html", filepath.Join("nested", "b.html")} {
			if !fileutil.FileExists(filepath.Join(out, p)) {
				t.Errorf("missing output %s", p)
			}
		}
		if !strings.Contains(env.stdout.String(), "2 succeeded, 0 failed") {
			t.Errorf("summary missing: %q", env.stdout)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Stdin - Stdin to stdout
// ---------------------------------------------------------------------------

func TestRunMain_Stdin(t *testing.T) {
	t.Parallel()

	t.Run("html fragment", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(sampleMarkdown)
		code := runMain([]string{"md2page", "-"}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}
		if !strings.HasPrefix(env.stdout.String(), `<h1 id="hello-world">`) {
			t.Errorf("stdout = %q", env.stdout)
		}
	})

	t.Run("meta emits result json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(sampleMarkdown)
		code := runMain([]string{"md2page", "convert", "--meta", "-"}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("exit code = %d, stderr: %s", code, env.stderr)
		}

		var res md2page.Result
		if err := json.Unmarshal(env.stdout.Bytes(), &res); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if res.Metadata.Title != "Hello World" {
			t.Errorf("title = %q, want Hello World", res.Metadata.Title)
		}
		if !strings.Contains(res.HTML, "Some body text") {
			t.Errorf("html = %q", res.HTML)
		}
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(strings.Repeat("a", 100))
		code := runMain([]string{"md2page", "convert", "--max-size", "10", "-"}, env.Environment)
		if code != ExitIO {
			t.Fatalf("exit code = %d, want %d", code, ExitIO)
		}
		if !strings.Contains(env.stderr.String(), "hint:") {
			t.Errorf("expected hint, stderr: %q", env.stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunMain_Errors - Exit codes for failures
// ---------------------------------------------------------------------------

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "doc.md", sampleMarkdown)
	empty := t.TempDir()

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"unknown flag", []string{"convert", "--bogus", in}, ExitUsage, "unknown flag"},
		{"no input", []string{"convert"}, ExitIO, "no input specified"},
		{"missing file", []string{"convert", filepath.Join(dir, "nope.md")}, ExitIO, "no such file"},
		{"empty directory", []string{"convert", empty}, ExitIO, "no markdown files found"},
		{"bad workers", []string{"convert", "-w", "-2", in}, ExitUsage, "invalid worker count"},
		{"bad date format", []string{"convert", "--date-format", "[YYYY", in}, ExitUsage, "invalid date format"},
		{"unknown theme", []string{"convert", "--theme", "neon", in}, ExitUsage, "theme not found"},
		{"unknown style", []string{"convert", "--page", "--highlight-style", "nope", in}, ExitUsage, "highlight style not found"},
		{"missing config", []string{"convert", "-c", "no-such-config-name", in}, ExitUsage, "hint:"},
		{"bad assets dir", []string{"convert", "--page", "--assets-dir", filepath.Join(dir, "missing"), in}, ExitUsage, "invalid base path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			code := runMain(append([]string{"md2page"}, tt.args...), env.Environment)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, env.stderr)
			}
			if !strings.Contains(env.stderr.String(), tt.wantErr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunConvert_Cancelled - Context cancellation
// ---------------------------------------------------------------------------

func TestRunConvert_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "doc.md", sampleMarkdown)
	env := newTestEnv("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runConvert(ctx, []string{in}, &convertFlags{common: commonFlags{quiet: true}}, env.Environment)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if fileutil.FileExists(filepath.Join(dir, "doc.html")) {
		t.Error("no output expected after cancellation")
	}
}
