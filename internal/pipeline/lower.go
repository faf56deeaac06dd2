package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	nethtml "golang.org/x/net/html"

	"github.com/alnah/go-md2page/internal/htmltree"
)

// ErrLowering indicates the document tree could not be turned into markup.
var ErrLowering = errors.New("markup lowering failed")

// Lower renders doc and parses the output into a markup fragment.
func (m *Markdown) Lower(doc *Document) (*nethtml.Node, error) {
	var buf bytes.Buffer
	if err := m.md.Renderer().Render(&buf, doc.Source, doc.Root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLowering, err)
	}
	root, err := htmltree.Parse(buf.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLowering, err)
	}
	return root, nil
}

// nodeRenderer writes the custom node kinds.
type nodeRenderer struct{}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindFrontmatter, r.renderFrontmatter)
	reg.Register(KindFrontmatterPanel, r.renderFrontmatterPanel)
	reg.Register(KindMathInline, r.renderMathInline)
	reg.Register(KindMathBlock, r.renderMathBlock)
	reg.Register(KindWikiLink, r.renderWikiLink)
}

// renderFrontmatter drops frontmatter that was never extracted.
func (r *nodeRenderer) renderFrontmatter(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderFrontmatterPanel(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*FrontmatterPanel)
	_, _ = w.WriteString(`<div class="frontmatter-container">`)
	for _, e := range n.Entries {
		_, _ = w.WriteString(`<div class="frontmatter-row"><div class="frontmatter-label">`)
		_, _ = w.Write(util.EscapeHTML([]byte(e.Label)))
		_, _ = w.WriteString(`</div><div class="frontmatter-value">`)
		_, _ = w.Write(util.EscapeHTML([]byte(e.Value)))
		_, _ = w.WriteString(`</div></div>`)
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderMathInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathInline)
	_, _ = w.WriteString(`<code class="language-math math-inline">`)
	_, _ = w.Write(util.EscapeHTML([]byte(n.Value)))
	_, _ = w.WriteString(`</code>`)
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderMathBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<pre><code class="language-math math-display">`)
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderWikiLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*WikiLink)
	href := util.EscapeHTML([]byte(n.Href()))
	label := util.EscapeHTML([]byte(n.Label()))

	switch {
	case n.IsImage():
		_, _ = w.WriteString(`<img src="`)
		_, _ = w.Write(href)
		_, _ = w.WriteString(`" alt="`)
		_, _ = w.Write(label)
		_, _ = w.WriteString(`" class="wikilink-embed">`)
	case n.Embed:
		_, _ = w.WriteString(`<a href="`)
		_, _ = w.Write(href)
		_, _ = w.WriteString(`" class="wikilink wikilink-embed">`)
		_, _ = w.Write(label)
		_, _ = w.WriteString(`</a>`)
	default:
		_, _ = w.WriteString(`<a href="`)
		_, _ = w.Write(href)
		_, _ = w.WriteString(`" class="wikilink">`)
		_, _ = w.Write(label)
		_, _ = w.WriteString(`</a>`)
	}
	return ast.WalkSkipChildren, nil
}
