package pipeline

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-md2page/internal/dateutil"
	"github.com/alnah/go-md2page/internal/yamlutil"
)

var frontmatterFence = []byte("---")

// frontmatterParser opens a Frontmatter block on a --- line at the very top
// of the document, provided a closing --- line exists further down.
// Otherwise the line is left to the thematic break parser.
type frontmatterParser struct{}

func (b *frontmatterParser) Trigger() []byte {
	return []byte{'-'}
}

func (b *frontmatterParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	linenum, _ := reader.Position()
	if linenum != 0 || parent.Kind() != ast.KindDocument {
		return nil, parser.NoChildren
	}
	line, segment := reader.PeekLine()
	if !isFrontmatterFence(line) || !hasClosingFence(reader.Source()[segment.Stop:]) {
		return nil, parser.NoChildren
	}
	return &Frontmatter{}, parser.NoChildren
}

func (b *frontmatterParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isFrontmatterFence(line) {
		reader.Advance(len(util.TrimRightSpace(line)))
		return parser.Close
	}
	node.Lines().Append(segment)
	return parser.Continue | parser.NoChildren
}

func (b *frontmatterParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *frontmatterParser) CanInterruptParagraph() bool {
	return false
}

func (b *frontmatterParser) CanAcceptIndentedLine() bool {
	return false
}

func isFrontmatterFence(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(line), frontmatterFence)
}

func hasClosingFence(rest []byte) bool {
	for len(rest) > 0 {
		end := bytes.IndexByte(rest, '\n')
		if end < 0 {
			return isFrontmatterFence(rest)
		}
		if isFrontmatterFence(rest[:end]) {
			return true
		}
		rest = rest[end+1:]
	}
	return false
}

type frontmatterExtension struct{}

// FrontmatterExtension enables leading --- YAML blocks.
var FrontmatterExtension goldmark.Extender = &frontmatterExtension{}

func (e *frontmatterExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(&frontmatterParser{}, 0),
	))
}

// ExtractFrontmatter replaces the document's Frontmatter node with a
// FrontmatterPanel holding one entry per top-level key, in source order.
// When the YAML is invalid, not a mapping, or has no keys, the node is
// removed and nothing is displayed. Dates are rendered with dateLayout.
func ExtractFrontmatter(doc *Document, dateLayout string) {
	fm, ok := doc.Root.FirstChild().(*Frontmatter)
	if !ok {
		return
	}

	entries, err := yamlutil.Entries(fm.Lines().Value(doc.Source))
	if err != nil || len(entries) == 0 {
		doc.Root.RemoveChild(doc.Root, fm)
		return
	}

	panel := &FrontmatterPanel{Entries: make([]FrontmatterEntry, 0, len(entries))}
	for _, e := range entries {
		_, isString := e.Value.(string)
		panel.Entries = append(panel.Entries, FrontmatterEntry{
			Label:    e.Key,
			Value:    formatValue(e.Value, dateLayout),
			IsString: isString,
		})
	}
	doc.Root.ReplaceChild(doc.Root, fm, panel)
}

// formatValue renders a decoded YAML value as display text.
func formatValue(v any, dateLayout string) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return dateutil.FormatDate(x, dateLayout)
	case []byte:
		// !!binary: show decoded text, or the base64 form for non-text bytes.
		if utf8.Valid(x) {
			return string(x)
		}
		return base64.StdEncoding.EncodeToString(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, formatValue(item, dateLayout))
		}
		return strings.Join(parts, ", ")
	}
	if flow, ok := yamlutil.FlowMapping(v); ok {
		return flow
	}
	return fmt.Sprint(v)
}
