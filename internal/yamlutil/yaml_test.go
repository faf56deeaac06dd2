package yamlutil_test

// Notes:
// - Marshal error branches: not tested because goccy/go-yaml only fails on
//   unmarshalable types (channels, functions) that never reach these helpers.
// - TestInputSizeLimit mutates the package-level MaxInputSize and therefore
//   does not run in parallel.

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-md2page/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{name: "valid YAML", data: []byte("name: test\ncount: 42\nenabled: true"), dest: &testConfig{}},
		{name: "nil data", data: nil, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "empty data", data: []byte{}, dest: &testConfig{}, wantErr: yamlutil.ErrNilData},
		{name: "nil destination", data: []byte("name: test"), dest: nil, wantErr: yamlutil.ErrNilDestination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			cfg := tt.dest.(*testConfig)
			if cfg.Name != "test" || cfg.Count != 42 || !cfg.Enabled {
				t.Errorf("Unmarshal() = %+v, want {test 42 true}", cfg)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("name: ok"), &cfg); err != nil {
			t.Fatalf("UnmarshalStrict() unexpected error: %v", err)
		}
		if cfg.Name != "ok" {
			t.Errorf("Name = %q, want %q", cfg.Name, "ok")
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: ok\nunknown: 1"), &cfg)
		if err == nil {
			t.Fatal("UnmarshalStrict() expected error for unknown field")
		}
		if !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error should be prefixed, got: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEntries - Ordered top-level mapping decoding
// ---------------------------------------------------------------------------

func TestEntries(t *testing.T) {
	t.Parallel()

	t.Run("preserves source order", func(t *testing.T) {
		t.Parallel()

		entries, err := yamlutil.Entries([]byte("zeta: 1\nalpha: two\nmid: true"))
		if err != nil {
			t.Fatalf("Entries() unexpected error: %v", err)
		}
		var keys []string
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		if got := strings.Join(keys, ","); got != "zeta,alpha,mid" {
			t.Errorf("keys = %q, want %q", got, "zeta,alpha,mid")
		}
	})

	t.Run("value kinds", func(t *testing.T) {
		t.Parallel()

		src := "title: Hello\ncount: 3\nratio: 1.5\ndraft: false\nempty: ~\ntags: [a, b]\nnested:\n  k: v\n"
		entries, err := yamlutil.Entries([]byte(src))
		if err != nil {
			t.Fatalf("Entries() unexpected error: %v", err)
		}
		if len(entries) != 7 {
			t.Fatalf("len(entries) = %d, want 7", len(entries))
		}
		if v, ok := entries[0].Value.(string); !ok || v != "Hello" {
			t.Errorf("title = %#v, want string Hello", entries[0].Value)
		}
		if _, ok := entries[1].Value.(string); ok {
			t.Errorf("count decoded as string: %#v", entries[1].Value)
		}
		if v, ok := entries[3].Value.(bool); !ok || v {
			t.Errorf("draft = %#v, want false", entries[3].Value)
		}
		if entries[4].Value != nil {
			t.Errorf("empty = %#v, want nil", entries[4].Value)
		}
		if v, ok := entries[5].Value.([]any); !ok || len(v) != 2 {
			t.Errorf("tags = %#v, want 2-item sequence", entries[5].Value)
		}
		if _, ok := entries[6].Value.(yaml.MapSlice); !ok {
			t.Errorf("nested = %T, want yaml.MapSlice", entries[6].Value)
		}
	})

	t.Run("plain timestamp becomes time", func(t *testing.T) {
		t.Parallel()

		entries, err := yamlutil.Entries([]byte("date: 2024-03-05\nquoted: \"2024-03-05\""))
		if err != nil {
			t.Fatalf("Entries() unexpected error: %v", err)
		}
		got, ok := entries[0].Value.(time.Time)
		if !ok {
			t.Fatalf("date = %T, want time.Time", entries[0].Value)
		}
		if want := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
			t.Errorf("date = %v, want %v", got, want)
		}
		if _, ok := entries[1].Value.(string); !ok {
			t.Errorf("quoted = %T, want string", entries[1].Value)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		entries, err := yamlutil.Entries([]byte(""))
		if err != nil {
			t.Fatalf("Entries() unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("len(entries) = %d, want 0", len(entries))
		}
	})

	t.Run("scalar document", func(t *testing.T) {
		t.Parallel()

		_, err := yamlutil.Entries([]byte("just some text"))
		if !errors.Is(err, yamlutil.ErrNotMapping) {
			t.Errorf("Entries() error = %v, want ErrNotMapping", err)
		}
	})

	t.Run("invalid syntax", func(t *testing.T) {
		t.Parallel()

		if _, err := yamlutil.Entries([]byte("key: [unclosed")); err == nil {
			t.Error("Entries() expected error for invalid YAML")
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshalFlow - Single-line rendering
// ---------------------------------------------------------------------------

func TestMarshalFlow(t *testing.T) {
	t.Parallel()

	got, err := yamlutil.MarshalFlow(yaml.MapSlice{{Key: "a", Value: 1}, {Key: "b", Value: "x"}})
	if err != nil {
		t.Fatalf("MarshalFlow() unexpected error: %v", err)
	}
	if strings.Contains(got, "\n") {
		t.Errorf("MarshalFlow() = %q, want a single line", got)
	}
	if !strings.Contains(got, "a: 1") || !strings.Contains(got, "b: x") {
		t.Errorf("MarshalFlow() = %q, want both pairs", got)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Memory exhaustion guard
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })

	yamlutil.MaxInputSize = 50

	t.Run("Unmarshal reports sizes", func(t *testing.T) {
		var cfg testConfig
		err := yamlutil.Unmarshal(make([]byte, 100), &cfg)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain sizes, got: %s", err)
		}
	})

	t.Run("Entries enforces limit", func(t *testing.T) {
		_, err := yamlutil.Entries([]byte(strings.Repeat("k: v\n", 20)))
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}
