package langdetect

import (
	"strings"
	"testing"
	"unicode/utf8"
)

type stubClassifier struct {
	code string
	got  *string
}

func (s stubClassifier) Classify(text string) string {
	if s.got != nil {
		*s.got = text
	}
	return s.code
}

// ---------------------------------------------------------------------------
// TestDetector_Detect - Sampling and code mapping
// ---------------------------------------------------------------------------

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Lorem ipsum dolor sit amet ", 5)

	tests := []struct {
		name string
		text string
		code string
		want string
	}{
		{name: "french maps to fr", text: long, code: "fra", want: "fr"},
		{name: "english maps to en", text: long, code: "eng", want: "en"},
		{name: "undetermined", text: long, code: Undetermined, want: ""},
		{name: "no two-letter code", text: long, code: "haw", want: ""},
		{name: "garbage code", text: long, code: "!!", want: ""},
		{name: "too short", text: "Hi there", code: "eng", want: ""},
		{name: "empty", text: "", code: "eng", want: ""},
		{name: "digits only", text: strings.Repeat("1234 ", 40), code: "eng", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := New(stubClassifier{code: tt.code}, nil)
			if got := d.Detect(tt.text); got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetector_SamplesLeadingCharacters(t *testing.T) {
	t.Parallel()

	var seen string
	d := New(stubClassifier{code: "deu", got: &seen}, ISOTable{})
	text := strings.Repeat("é", SampleSize) + strings.Repeat("x", 50)

	if got := d.Detect(text); got != "de" {
		t.Errorf("Detect() = %q, want %q", got, "de")
	}
	if n := utf8.RuneCountInString(seen); n != SampleSize {
		t.Errorf("classifier saw %d characters, want %d", n, SampleSize)
	}
	if strings.Contains(seen, "x") {
		t.Error("classifier saw characters past the sample")
	}
}

// ---------------------------------------------------------------------------
// TestISOTable_Lookup - ISO 639-3 to ISO 639-1
// ---------------------------------------------------------------------------

func TestISOTable_Lookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "eng", want: "en", wantOK: true},
		{in: "spa", want: "es", wantOK: true},
		{in: "jpn", want: "ja", wantOK: true},
		{in: "und", wantOK: false},
		{in: "", wantOK: false},
		{in: "yue", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, ok := ISOTable{}.Lookup(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
