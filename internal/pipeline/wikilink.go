package pipeline

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var (
	wikiOpen  = []byte("[[")
	wikiClose = []byte("]]")
)

// imageExtensions select an <img> rendering for ![[embed]] targets.
var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".webp": true, ".svg": true, ".avif": true, ".bmp": true,
}

// wikiLinkParser parses [[target]], [[target|alias]], [[target#heading]]
// and the ![[target]] embed form.
type wikiLinkParser struct{}

func (p *wikiLinkParser) Trigger() []byte {
	return []byte{'[', '!'}
}

func (p *wikiLinkParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	start := 0
	embed := line[0] == '!'
	if embed {
		start = 1
	}
	if !bytes.HasPrefix(line[start:], wikiOpen) {
		return nil
	}
	inner := start + len(wikiOpen)
	end := bytes.Index(line[inner:], wikiClose)
	if end <= 0 {
		return nil
	}
	content := line[inner : inner+end]
	if bytes.ContainsAny(content, "[]\n") {
		return nil
	}

	node := parseWikiTarget(string(content))
	if node == nil {
		return nil
	}
	node.Embed = embed
	block.Advance(inner + end + len(wikiClose))
	return node
}

func parseWikiTarget(content string) *WikiLink {
	target, alias, _ := strings.Cut(content, "|")
	target, fragment, _ := strings.Cut(target, "#")
	n := &WikiLink{
		Target:   strings.TrimSpace(target),
		Fragment: strings.TrimSpace(fragment),
		Alias:    strings.TrimSpace(alias),
	}
	if n.Target == "" && n.Fragment == "" {
		return nil
	}
	return n
}

// Href returns the relative URL of the link target.
func (n *WikiLink) Href() string {
	href := (&url.URL{Path: n.Target}).EscapedPath()
	// A colon in the first segment would read as a URL scheme.
	if first, _, _ := strings.Cut(href, "/"); strings.Contains(first, ":") {
		href = "./" + href
	}
	if n.Fragment != "" {
		href += "#" + Slugify(n.Fragment)
	}
	return href
}

// IsImage reports whether an embed points at an image file.
func (n *WikiLink) IsImage() bool {
	return n.Embed && imageExtensions[strings.ToLower(path.Ext(n.Target))]
}

type wikiLinkExtension struct{}

// WikiLinkExtension enables [[wiki links]] and ![[embeds]].
var WikiLinkExtension goldmark.Extender = &wikiLinkExtension{}

func (e *wikiLinkExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&wikiLinkParser{}, 199),
	))
}
