package pipeline

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

const (
	// MaxTitleLength is the title limit in characters, ellipsis included.
	MaxTitleLength = 60

	// MaxDescriptionLength is the description limit in characters, ellipsis included.
	MaxDescriptionLength = 160

	ellipsis = "..."
)

// Metadata is what one walk of the document tree learns about it.
// Empty strings mean absent.
type Metadata struct {
	Title        string
	Description  string
	HasCodeBlock bool
	HasKatex     bool
	HasMermaid   bool
	HasWikiLink  bool
}

// stripTags removes markup left in collected text. StrictPolicy keeps no
// element at all.
var stripTags = bluemonday.StrictPolicy()

// breakTags separate words when stripped: line breaks and block boundaries.
var breakTags = regexp.MustCompile(`(?i)<(?:br|hr|/?(?:p|div|li|tr|td|th|h[1-6]|blockquote))\b[^>]*>`)

// CollectMetadata walks doc once, in document order, without modifying it.
//
// String-typed title and description frontmatter entries win. Otherwise the
// first heading gives the title and the first paragraph the description.
func CollectMetadata(doc *Document) Metadata {
	var (
		m             Metadata
		titleSet      bool
		descSet       bool
		seenHeading   bool
		seenParagraph bool
	)

	_ = ast.Walk(doc.Root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *FrontmatterPanel:
			if e, ok := n.Lookup("title"); ok && e.IsString && e.Value != "" {
				m.Title = truncate(plainText(html.EscapeString(e.Value)), MaxTitleLength)
				titleSet = true
			}
			if e, ok := n.Lookup("description"); ok && e.IsString && e.Value != "" {
				m.Description = truncate(plainText(html.EscapeString(e.Value)), MaxDescriptionLength)
				descSet = true
			}
			return ast.WalkSkipChildren, nil
		case *ast.Heading:
			if !titleSet && !seenHeading {
				seenHeading = true
				m.Title = truncate(plainText(inlineMarkup(n, doc.Source)), MaxTitleLength)
			}
		case *ast.Paragraph, *ast.TextBlock:
			if !descSet && !seenParagraph {
				seenParagraph = true
				m.Description = truncate(plainText(inlineMarkup(n, doc.Source)), MaxDescriptionLength)
			}
		case *MathInline, *MathBlock:
			m.HasKatex = true
		case *ast.FencedCodeBlock:
			if string(n.Language(doc.Source)) == mermaid {
				m.HasMermaid = true
			} else {
				m.HasCodeBlock = true
			}
		case *ast.CodeBlock:
			m.HasCodeBlock = true
		case *WikiLink:
			m.HasWikiLink = true
		default:
		}
		return ast.WalkContinue, nil
	})
	return m
}

// inlineMarkup concatenates the inline content of n as HTML: text is
// escaped, raw HTML is kept so that plainText can strip it.
func inlineMarkup(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := node.(type) {
		case *ast.Text:
			value := c.Value(source)
			if !c.IsRaw() {
				value = util.ResolveNumericReferences(util.ResolveEntityNames(util.UnescapePunctuations(value)))
			}
			sb.WriteString(html.EscapeString(string(value)))
			if c.SoftLineBreak() || c.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.WriteString(html.EscapeString(string(c.Value)))
		case *ast.RawHTML:
			for i := 0; i < c.Segments.Len(); i++ {
				seg := c.Segments.At(i)
				sb.Write(seg.Value(source))
			}
		case *ast.AutoLink:
			sb.WriteString(html.EscapeString(string(c.Label(source))))
		case *MathInline:
			sb.WriteString(html.EscapeString(c.Value))
		case *WikiLink:
			sb.WriteString(html.EscapeString(c.Label()))
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}

// plainText strips tags from markup, decodes entities and collapses whitespace.
// Line breaks and block boundaries become spaces.
func plainText(markup string) string {
	markup = breakTags.ReplaceAllString(markup, " ")
	return strings.Join(strings.Fields(html.UnescapeString(stripTags.Sanitize(markup))), " ")
}

// truncate shortens s to limit characters, the last three being "...".
// Strings within the limit are returned unchanged.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}
