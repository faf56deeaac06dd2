// Package langdetect guesses the natural language of a text sample.
//
// Detection is two steps, each behind an interface so tests can stub them:
// a Classifier returns an ISO 639-3 code, and a CodeTable maps it to the
// two-letter ISO 639-1 code used in lang attributes.
package langdetect

import (
	"unicode"
	"unicode/utf8"

	"github.com/RadhiFadlillah/whatlanggo"
	"golang.org/x/text/language"
)

const (
	// SampleSize is the number of leading characters inspected.
	SampleSize = 300

	// MinLetters is the minimum number of letters needed for a guess.
	MinLetters = 10

	// Undetermined is the ISO 639-3 code for an unknown language.
	Undetermined = "und"
)

// Classifier returns the ISO 639-3 code of the language of text, or
// Undetermined.
type Classifier interface {
	Classify(text string) string
}

// CodeTable maps an ISO 639-3 code to its ISO 639-1 equivalent.
type CodeTable interface {
	Lookup(iso3 string) (string, bool)
}

// Compile-time interface implementation checks.
var (
	_ Classifier = TrigramClassifier{}
	_ CodeTable  = ISOTable{}
)

// TrigramClassifier classifies text with whatlanggo's trigram model.
// Unreliable guesses are reported as Undetermined.
type TrigramClassifier struct{}

func (TrigramClassifier) Classify(text string) string {
	info := whatlanggo.Detect(text)
	if info.Script == nil || !info.IsReliable() {
		return Undetermined
	}
	code := info.Lang.Iso6393()
	if code == "" {
		return Undetermined
	}
	return code
}

// ISOTable resolves codes through the x/text language registry.
type ISOTable struct{}

func (ISOTable) Lookup(iso3 string) (string, bool) {
	if iso3 == "" || iso3 == Undetermined {
		return "", false
	}
	base, err := language.ParseBase(iso3)
	if err != nil {
		return "", false
	}
	code := base.String()
	if len(code) != 2 {
		return "", false
	}
	return code, true
}

// Detector combines a Classifier and a CodeTable.
type Detector struct {
	classifier Classifier
	table      CodeTable
}

// New returns a Detector. Nil arguments select the defaults.
func New(classifier Classifier, table CodeTable) *Detector {
	if classifier == nil {
		classifier = TrigramClassifier{}
	}
	if table == nil {
		table = ISOTable{}
	}
	return &Detector{classifier: classifier, table: table}
}

// Detect returns the ISO 639-1 code for the language of text, or "" when
// the sample is too short, the language is undetermined, or it has no
// two-letter code.
func (d *Detector) Detect(text string) string {
	sample := Sample(text)
	if countLetters(sample) < MinLetters {
		return ""
	}
	code, ok := d.table.Lookup(d.classifier.Classify(sample))
	if !ok {
		return ""
	}
	return code
}

// Sample returns the first SampleSize characters of text.
func Sample(text string) string {
	if utf8.RuneCountInString(text) <= SampleSize {
		return text
	}
	n := 0
	for i := range text {
		if n == SampleSize {
			return text[:i]
		}
		n++
	}
	return text
}

func countLetters(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
