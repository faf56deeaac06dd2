// Package sanitize filters an untrusted markup tree against an allow-list.
//
// Sanitize never fails. Whatever the input, the result contains only
// elements and attributes named by the policy, no event handler attributes,
// no script-capable URLs and no content of script-like elements.
//
// The filtered tree is serialized and reparsed until the markup is stable, so
// sanitizing already sanitized output returns it unchanged.
package sanitize

import (
	"html"
	"strings"
	"unicode"

	nethtml "golang.org/x/net/html"

	"github.com/alnah/go-md2page/internal/htmltree"
)

// maxPasses bounds the filter/serialize/reparse loop.
const maxPasses = 4

// maxDecodeRounds bounds repeated entity decoding of attribute values.
const maxDecodeRounds = 4

// Sanitize filters the children of root with DefaultPolicy.
func Sanitize(root *nethtml.Node) *nethtml.Node {
	return DefaultPolicy.Sanitize(root)
}

// SanitizeString parses s as a fragment, sanitizes it with DefaultPolicy and
// serializes the result.
func SanitizeString(s string) string {
	return DefaultPolicy.SanitizeString(s)
}

// SanitizeString parses s as a fragment, sanitizes it and serializes the result.
func (p *Policy) SanitizeString(s string) string {
	root, err := htmltree.Parse(s)
	if err != nil {
		return html.EscapeString(s)
	}
	out, err := htmltree.Render(p.Sanitize(root))
	if err != nil {
		return ""
	}
	return out
}

// Sanitize filters the children of root in place and returns the container
// holding the sanitized fragment. The returned node may differ from root
// when reparsing was needed to reach a stable tree.
func (p *Policy) Sanitize(root *nethtml.Node) *nethtml.Node {
	p.filterChildren(root)

	for range maxPasses {
		rendered, err := htmltree.Render(root)
		if err != nil {
			return textOnly(root)
		}
		reparsed, err := htmltree.Parse(rendered)
		if err != nil {
			return textOnly(root)
		}
		p.filterChildren(reparsed)
		again, err := htmltree.Render(reparsed)
		if err != nil {
			return textOnly(root)
		}
		if again == rendered {
			return reparsed
		}
		root = reparsed
	}
	return textOnly(root)
}

// textOnly replaces the fragment by its text, which is always stable.
func textOnly(root *nethtml.Node) *nethtml.Node {
	out := htmltree.NewRoot()
	if text := htmltree.TextContent(root); text != "" {
		out.AppendChild(&nethtml.Node{Type: nethtml.TextNode, Data: text})
	}
	return out
}

func (p *Policy) filterChildren(parent *nethtml.Node) {
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case nethtml.TextNode:
		case nethtml.ElementNode:
			next = p.filterElement(c, next)
		default:
			// Comments, doctypes and raw nodes never survive.
			parent.RemoveChild(c)
		}
		c = next
	}
}

// filterElement sanitizes n and returns the next node the caller must visit.
func (p *Policy) filterElement(n, next *nethtml.Node) *nethtml.Node {
	tag := strings.ToLower(n.Data)

	if p.StripContent[tag] {
		n.Parent.RemoveChild(n)
		return next
	}

	rules, allowed := p.Elements[tag]
	if n.Namespace != "" || !allowed {
		// Promoted children are visited by the caller in place of n.
		return htmltree.Unwrap(n)
	}

	n.Attr = p.filterAttrs(tag, n.Attr, rules)
	for _, req := range p.Required[tag] {
		htmltree.SetAttr(n, req.Key, req.Val)
	}
	p.filterChildren(n)
	return next
}

func (p *Policy) filterAttrs(tag string, attrs []nethtml.Attribute, rules []AttrRule) []nethtml.Attribute {
	kept := make([]nethtml.Attribute, 0, len(attrs))
	seen := make(map[string]bool, len(attrs))

	for _, a := range attrs {
		if a.Namespace != "" {
			continue
		}
		name := strings.ToLower(a.Key)
		if seen[name] || strings.HasPrefix(name, "on") {
			continue
		}
		rule, ok := findRule(rules, name)
		if !ok {
			rule, ok = findRule(p.Global, name)
		}
		if !ok {
			continue
		}
		val, ok := p.filterValue(tag, name, a.Val, rule)
		if !ok {
			continue
		}
		seen[name] = true
		kept = append(kept, nethtml.Attribute{Key: name, Val: val})
	}
	return kept
}

func findRule(rules []AttrRule, name string) (AttrRule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return AttrRule{}, false
}

func (p *Policy) filterValue(tag, name, val string, rule AttrRule) (string, bool) {
	switch {
	case p.URLAttrs[name]:
		val = strings.TrimSpace(val)
		return val, p.allowURL(tag, name, val)
	case name == "style":
		return val, p.allowStyle(val)
	case name == "class":
		var tokens []string
		for _, tok := range strings.Fields(val) {
			if rule.matches(tok) {
				tokens = append(tokens, tok)
			}
		}
		return strings.Join(tokens, " "), len(tokens) > 0
	default:
		return val, rule.matches(val)
	}
}

func (r AttrRule) matches(val string) bool {
	if len(r.Values) == 0 && len(r.Prefixes) == 0 {
		return true
	}
	lower := strings.ToLower(val)
	for _, v := range r.Values {
		if lower == v {
			return true
		}
	}
	for _, pre := range r.Prefixes {
		if strings.HasPrefix(lower, pre) && len(lower) > len(pre) {
			return true
		}
	}
	return false
}

// allowURL decodes before checking: entity-encoded schemes such as
// "&#106;avascript:" are caught even when double encoded.
func (p *Policy) allowURL(tag, attr, raw string) bool {
	u := strings.ToLower(stripInvisible(decodeEntities(raw)))
	scheme, ok := urlScheme(u)
	if !ok {
		return true
	}
	if p.BlockedSchemes[scheme] {
		return scheme == "data" && tag == "img" && attr == "src" && p.safeData(u)
	}
	return p.AllowedSchemes[scheme]
}

// safeData reports whether a data: URL carries an allowed media type.
func (p *Policy) safeData(u string) bool {
	rest := strings.TrimPrefix(u, "data:")
	end := strings.IndexAny(rest, ";,")
	if end < 0 {
		return false
	}
	return p.SafeDataTypes[rest[:end]]
}

func (p *Policy) allowStyle(val string) bool {
	s := strings.ToLower(stripInvisible(decodeEntities(val)))
	for _, bad := range p.StyleBlocklist {
		if strings.Contains(s, bad) {
			return false
		}
	}
	return true
}

// urlScheme returns the scheme of u, if u has one. A colon appearing after
// a path, query or fragment delimiter does not start a scheme.
func urlScheme(u string) (string, bool) {
	i := strings.IndexAny(u, ":/?#")
	if i <= 0 || u[i] != ':' {
		return "", false
	}
	scheme := u[:i]
	for j, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z':
		case j > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return "", false
		}
	}
	return scheme, true
}

func decodeEntities(s string) string {
	for range maxDecodeRounds {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}
	return s
}

// stripInvisible drops whitespace and control characters, which browsers
// ignore inside URL schemes.
func stripInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '\u200b' || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
}
