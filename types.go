package md2page

import "github.com/alnah/go-md2page/internal/langdetect"

// Result is the output of one conversion.
type Result struct {
	// HTML is a sanitized fragment, safe to embed in a page.
	HTML string `json:"html"`

	Metadata Metadata `json:"metadata"`
}

// Metadata describes a converted document. Empty strings mean absent.
type Metadata struct {
	Language    string `json:"lang,omitempty"` // ISO 639-1
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	HasCodeBlock bool `json:"hasCodeBlock,omitempty"`
	HasKatex     bool `json:"hasKatex,omitempty"`
	HasMermaid   bool `json:"hasMermaid,omitempty"`
	HasWikiLink  bool `json:"hasWikiLink,omitempty"`
}

// Classifier guesses the language of a text sample and returns an
// ISO 639-3 code, or "und" when it cannot tell.
type Classifier = langdetect.Classifier

// CodeTable maps ISO 639-3 codes to ISO 639-1 codes.
type CodeTable = langdetect.CodeTable
