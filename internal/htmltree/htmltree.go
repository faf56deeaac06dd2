// Package htmltree holds the markup tree helpers shared by the sanitizer and
// the conversion pipeline.
//
// A fragment is represented by a detached <body> element whose children are
// the top-level nodes. Parsing always uses a <body> context so that a
// rendered fragment reparses into the same tree.
package htmltree

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrRender indicates the markup tree could not be serialized.
var ErrRender = errors.New("htmltree: render failed")

// NewRoot returns an empty fragment container.
func NewRoot() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}

// Parse parses s as a <body> fragment.
func Parse(s string) (*html.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(s), NewRoot())
	if err != nil {
		return nil, fmt.Errorf("htmltree: parse: %w", err)
	}
	root := NewRoot()
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

// Render serializes the children of root. The container itself is not written.
func Render(root *html.Node) (string, error) {
	var sb strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("%w: %v", ErrRender, err)
		}
	}
	return sb.String(), nil
}

// Attr returns the value of the attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key on n, replacing an existing value in place.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Classes returns the whitespace-separated class tokens of n.
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries the class token.
func HasClass(n *html.Node, class string) bool {
	for _, c := range Classes(n) {
		if c == class {
			return true
		}
	}
	return false
}

// IsElement reports whether n is an HTML-namespace element with the given tag.
func IsElement(n *html.Node, tag string) bool {
	return n != nil && n.Type == html.ElementNode && n.Namespace == "" && n.Data == tag
}

// TextContent concatenates the text nodes below n in document order.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// OnlyText reports whether every child of n is a text node.
func OnlyText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			return false
		}
	}
	return true
}

// ReplaceChildren drops the children of n and appends nodes in order.
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
}

// Unwrap replaces n with its children and returns the first promoted child,
// or the node that followed n when it had none.
func Unwrap(n *html.Node) *html.Node {
	parent := n.Parent
	next := n.NextSibling
	first := n.FirstChild
	for c := n.FirstChild; c != nil; {
		following := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = following
	}
	parent.RemoveChild(n)
	if first != nil {
		return first
	}
	return next
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		Walk(c, fn)
		c = next
	}
}
