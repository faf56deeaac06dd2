package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Help per command
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, "Usage: md2page <command>", ""},
		{"convert", []string{"convert"}, "--highlight-style", ""},
		{"version", []string{"version"}, "Usage: md2page version", ""},
		{"help", []string{"help"}, "Usage: md2page help", ""},
		{"completion", []string{"completion"}, "Supported shells", ""},
		{"unknown", []string{"bogus"}, "", "Unknown command: bogus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv("")
			runHelp(tt.args, env.Environment)

			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", env.stderr, tt.wantStderr)
			}
		})
	}
}
