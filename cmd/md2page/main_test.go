package main

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain_Dispatch - Command routing and exit codes
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no command", []string{"md2page"}, ExitUsage, "", "Usage: md2page"},
		{"version", []string{"md2page", "version"}, ExitSuccess, "md2page " + Version, ""},
		{"version flag", []string{"md2page", "--version"}, ExitSuccess, "md2page " + Version, ""},
		{"help", []string{"md2page", "help"}, ExitSuccess, "Commands:", ""},
		{"help flag", []string{"md2page", "-h"}, ExitSuccess, "Commands:", ""},
		{"convert help", []string{"md2page", "convert", "--help"}, ExitSuccess, "", "Usage: md2page convert"},
		{"unknown command", []string{"md2page", "publish"}, ExitUsage, "", "unknown command: publish"},
		{"flag without input", []string{"md2page", "--page"}, ExitUsage, "", "unknown command: --page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			code := runMain(tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout, tt.wantStdout)
			}
			if !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLooksLikeInput
// ---------------------------------------------------------------------------

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"-", true},
		{"doc.md", true},
		{"notes/README.markdown", true},
		{"convert", false},
		{"--page", false},
		{"doc.txt", false},
	}

	for _, tt := range tests {
		if got := looksLikeInput(tt.arg); got != tt.want {
			t.Errorf("looksLikeInput(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestIsImplicitConvert
// ---------------------------------------------------------------------------

func TestIsImplicitConvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"input first", []string{"doc.md", "--page"}, true},
		{"stdin", []string{"-"}, true},
		{"flags then input", []string{"--page", "-q", "notes.md"}, true},
		{"flag value then stdin", []string{"-o", "out", "-"}, true},
		{"command", []string{"convert", "doc.md"}, false},
		{"help flag with input", []string{"--help", "doc.md"}, false},
		{"version flag", []string{"--version"}, false},
		{"flag without input", []string{"--page"}, false},
	}

	for _, tt := range tests {
		if got := isImplicitConvert(tt.args); got != tt.want {
			t.Errorf("%s: isImplicitConvert(%v) = %v, want %v", tt.name, tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConfigureMaxProcs - Verbose logging only
// ---------------------------------------------------------------------------

func TestConfigureMaxProcs(t *testing.T) {
	t.Parallel()

	var quiet bytes.Buffer
	configureMaxProcs([]string{"md2page", "doc.md"}, &quiet)
	if quiet.Len() != 0 {
		t.Errorf("non-verbose run logged %q", quiet.String())
	}
}
