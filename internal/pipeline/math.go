package pipeline

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var mathFence = []byte("$$")

// mathInlineParser parses $tex$ and $$tex$$ on a single line.
//
// The opening delimiter must not be followed by a space and the closing
// one must not be preceded by a space nor followed by a digit, so prices
// such as "$5 and $10" stay text.
type mathInlineParser struct{}

func (p *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	opener := 0
	for opener < len(line) && line[opener] == '$' {
		opener++
	}
	if opener > 2 || opener >= len(line) || util.IsSpace(line[opener]) {
		return nil
	}

	rest := line[opener:]
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '\\':
			i++
			continue
		case '\n':
			return nil
		case '$':
		default:
			continue
		}
		j := i
		for j < len(rest) && rest[j] == '$' {
			j++
		}
		if j-i == opener && i > 0 && !util.IsSpace(rest[i-1]) && (j >= len(rest) || !isDigit(rest[j])) {
			node := &MathInline{Value: string(rest[:i])}
			block.Advance(opener + j)
			return node
		}
		i = j - 1
	}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// mathBlockParser parses display math between lines holding only $$.
// An unclosed block runs to the end of its container, like a fenced code block.
type mathBlockParser struct{}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || !isMathFence(line[pos:]) {
		return nil, parser.NoChildren
	}
	return &MathBlock{}, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if isMathFence(util.TrimLeftSpace(line)) {
		reader.Advance(len(util.TrimRightSpace(line)))
		return parser.Close
	}
	node.Lines().Append(segment)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

func isMathFence(line []byte) bool {
	return bytes.Equal(util.TrimRightSpace(line), mathFence)
}

type mathExtension struct{}

// MathExtension enables $…$ inline math and $$ display blocks.
var MathExtension goldmark.Extender = &mathExtension{}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&mathBlockParser{}, 690)),
		parser.WithInlineParsers(util.Prioritized(&mathInlineParser{}, 150)),
	)
}
