package pipeline

import (
	"context"
	"regexp"
	"strings"
)

// byteOrderMark is stripped so a leading --- is still seen as frontmatter.
const byteOrderMark = "\ufeff"

// Line ending normalization
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// SourcePreprocessor normalizes raw input before parsing.
type SourcePreprocessor struct{}

// PreprocessMarkdown replaces invalid UTF-8 sequences with U+FFFD, strips a
// leading byte-order mark and converts \r\n and \r line endings to \n.
// Content is otherwise untouched.
func (p *SourcePreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = strings.ToValidUTF8(content, "\uFFFD")
	content = strings.TrimPrefix(content, byteOrderMark)
	return normalizeLineEndings(content)
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}
