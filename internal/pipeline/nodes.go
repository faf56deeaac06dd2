package pipeline

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// Node kinds added to the goldmark document tree.
var (
	KindFrontmatter      = ast.NewNodeKind("Frontmatter")
	KindFrontmatterPanel = ast.NewNodeKind("FrontmatterPanel")
	KindMathInline       = ast.NewNodeKind("MathInline")
	KindMathBlock        = ast.NewNodeKind("MathBlock")
	KindWikiLink         = ast.NewNodeKind("WikiLink")
)

// Frontmatter holds the raw YAML lines of a leading --- block.
// ExtractFrontmatter replaces it with a FrontmatterPanel or removes it.
type Frontmatter struct {
	ast.BaseBlock
}

func (n *Frontmatter) Kind() ast.NodeKind { return KindFrontmatter }
func (n *Frontmatter) IsRaw() bool        { return true }

func (n *Frontmatter) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// FrontmatterEntry is one key of the frontmatter mapping, rendered as text.
// IsString is set when the YAML value was a string scalar.
type FrontmatterEntry struct {
	Label    string
	Value    string
	IsString bool
}

// FrontmatterPanel displays frontmatter entries in source order.
type FrontmatterPanel struct {
	ast.BaseBlock
	Entries []FrontmatterEntry
}

func (n *FrontmatterPanel) Kind() ast.NodeKind { return KindFrontmatterPanel }

func (n *FrontmatterPanel) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Entries": strconv.Itoa(len(n.Entries)),
	}, nil)
}

// Lookup returns the entry with the given label.
func (n *FrontmatterPanel) Lookup(label string) (FrontmatterEntry, bool) {
	for _, e := range n.Entries {
		if e.Label == label {
			return e, true
		}
	}
	return FrontmatterEntry{}, false
}

// MathInline is TeX delimited by $ or $$ inside a paragraph.
type MathInline struct {
	ast.BaseInline
	Value string
}

func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": n.Value}, nil)
}

// MathBlock is display TeX between $$ lines.
type MathBlock struct {
	ast.BaseBlock
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }
func (n *MathBlock) IsRaw() bool        { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// WikiLink is [[target#fragment|label]], or ![[target]] when Embed is set.
type WikiLink struct {
	ast.BaseInline
	Target   string
	Fragment string
	Alias    string
	Embed    bool
}

func (n *WikiLink) Kind() ast.NodeKind { return KindWikiLink }

func (n *WikiLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Target":   n.Target,
		"Fragment": n.Fragment,
		"Alias":    n.Alias,
		"Embed":    strconv.FormatBool(n.Embed),
	}, nil)
}

// Label is the visible text: the alias, else the target with its fragment.
func (n *WikiLink) Label() string {
	switch {
	case n.Alias != "":
		return n.Alias
	case n.Target == "":
		return n.Fragment
	case n.Fragment != "":
		return n.Target + " > " + n.Fragment
	default:
		return n.Target
	}
}
