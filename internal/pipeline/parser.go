package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// FootnoteIDPrefix namespaces footnote ids so they cannot clobber page ids.
const FootnoteIDPrefix = "user-content-"

// Document is a parsed Markdown document and the source its segments refer to.
type Document struct {
	Root   ast.Node
	Source []byte
}

// Markdown parses Markdown into a Document and lowers Documents to markup.
// It holds no per-document state and is safe for concurrent use.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown with GFM, footnotes, frontmatter, math and
// wiki links enabled.
//
// Raw HTML is rendered as-is; the markup must go through the sanitizer
// before it is shown to anyone.
func NewMarkdown() *Markdown {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			extension.NewFootnote(extension.WithFootnoteIDPrefix(FootnoteIDPrefix)),
			FrontmatterExtension,
			MathExtension,
			WikiLinkExtension,
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(&nodeRenderer{}, 500)),
		),
	)
	return &Markdown{md: md}
}

// Parse builds the document tree. It never fails: any input is a document.
func (m *Markdown) Parse(source []byte) *Document {
	root := m.md.Parser().Parse(text.NewReader(source))
	return &Document{Root: root, Source: source}
}
