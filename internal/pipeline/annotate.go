package pipeline

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2page/internal/htmltree"
)

const (
	languagePrefix = "language-"
	mathLanguage   = "math"
	mermaid        = "mermaid"
	chromaClass    = "chroma"
)

// Annotator prepares code and math for client-side rendering. It runs on
// the sanitized tree, so the markup it adds is not subject to the policy.
type Annotator struct {
	// Highlight tokenises code with chroma into class-named spans.
	Highlight bool
}

// Annotate rewrites code and math elements below root:
//   - code.language-math becomes span.math.math-inline, and
//     pre > code.language-math becomes div.math.math-display, for KaTeX;
//   - pre > code.language-mermaid is left for the mermaid script;
//   - other pre > code.language-X get the canonical lexer name and,
//     when highlighting, chroma token spans.
func (a *Annotator) Annotate(root *html.Node) {
	htmltree.Walk(root, func(n *html.Node) bool {
		if !htmltree.IsElement(n, "code") {
			return true
		}
		lang := codeLanguage(n)
		pre := n.Parent
		inPre := htmltree.IsElement(pre, "pre")

		switch {
		case lang == mathLanguage && inPre && htmltree.HasClass(n, "math-display"):
			replaceWithMath(pre, n, atom.Div, "math math-display")
		case lang == mathLanguage:
			replaceWithMath(n, n, atom.Span, "math math-inline")
		case lang == mermaid, lang == "" || !inPre:
		default:
			a.annotateCode(pre, n, lang)
		}
		return false
	})
}

// codeLanguage returns X from the first language-X class of n.
func codeLanguage(n *html.Node) string {
	for _, c := range htmltree.Classes(n) {
		if lang, ok := strings.CutPrefix(c, languagePrefix); ok {
			return lang
		}
	}
	return ""
}

func replaceWithMath(target, code *html.Node, tag atom.Atom, class string) {
	math := &html.Node{
		Type:     html.ElementNode,
		Data:     tag.String(),
		DataAtom: tag,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	math.AppendChild(&html.Node{Type: html.TextNode, Data: htmltree.TextContent(code)})
	target.Parent.InsertBefore(math, target)
	target.Parent.RemoveChild(target)
}

func (a *Annotator) annotateCode(pre, code *html.Node, lang string) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return
	}
	htmltree.SetAttr(code, "class", languagePrefix+canonicalLanguage(lexer))

	if !a.Highlight || !htmltree.OnlyText(code) {
		return
	}
	spans, ok := highlight(chroma.Coalesce(lexer), htmltree.TextContent(code))
	if !ok {
		return
	}
	htmltree.ReplaceChildren(code, spans...)
	if !htmltree.HasClass(pre, chromaClass) {
		htmltree.SetAttr(pre, "class", strings.TrimSpace(strings.Join(append(htmltree.Classes(pre), chromaClass), " ")))
	}
}

// canonicalLanguage is the lexer's primary alias, or its lowercased name.
func canonicalLanguage(lexer chroma.Lexer) string {
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ReplaceAll(strings.ToLower(cfg.Name), " ", "-")
}

// highlight tokenises src and returns text and span nodes whose classes
// match chroma's CSS class names.
func highlight(lexer chroma.Lexer, src string) ([]*html.Node, bool) {
	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil, false
	}
	var nodes []*html.Node
	for _, tok := range it.Tokens() {
		text := &html.Node{Type: html.TextNode, Data: tok.Value}
		class := tokenClass(tok.Type)
		if class == "" {
			nodes = append(nodes, text)
			continue
		}
		span := &html.Node{
			Type:     html.ElementNode,
			Data:     "span",
			DataAtom: atom.Span,
			Attr:     []html.Attribute{{Key: "class", Val: class}},
		}
		span.AppendChild(text)
		nodes = append(nodes, span)
	}
	return nodes, true
}

func tokenClass(t chroma.TokenType) string {
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if class, ok := chroma.StandardTypes[candidate]; ok && class != "" {
			return class
		}
	}
	return ""
}
