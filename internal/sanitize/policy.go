package sanitize

import "golang.org/x/net/html"

// AttrRule allows one attribute. With no Values and no Prefixes any value is
// accepted. For class attributes the constraint applies per token and
// disallowed tokens are removed; for other attributes the whole value must
// match, case-insensitively.
type AttrRule struct {
	Name     string
	Values   []string
	Prefixes []string
}

// Policy is the allow-list applied by Sanitize. Policies are plain data so a
// change to what is allowed is a reviewable diff of this file.
type Policy struct {
	// Version identifies the policy revision.
	Version string

	// Elements lists allowed tags and the attributes each may carry.
	// Tags missing from the map are unwrapped: the element goes, its
	// children stay.
	Elements map[string][]AttrRule

	// Global attributes are allowed on every allowed element.
	Global []AttrRule

	// URLAttrs are attributes whose value is a URL and must pass the
	// scheme checks.
	URLAttrs map[string]bool

	// AllowedSchemes are the schemes accepted in URL attributes. URLs
	// without a scheme are relative and always accepted.
	AllowedSchemes map[string]bool

	// BlockedSchemes are rejected outright. data: is the one exception:
	// an img src may carry a data URL whose media type is in SafeDataTypes.
	BlockedSchemes map[string]bool

	// SafeDataTypes are the data: media types accepted on img src.
	SafeDataTypes map[string]bool

	// StripContent elements are removed together with everything inside.
	// Only elements whose content is never rendered text belong here;
	// other disallowed elements are unwrapped.
	StripContent map[string]bool

	// StyleBlocklist are substrings that reject a style attribute. The
	// value is entity-decoded, lowercased and stripped of whitespace first.
	StyleBlocklist []string

	// Required attributes are forced onto an element after filtering.
	Required map[string][]html.Attribute
}

var (
	citeRule   = AttrRule{Name: "cite"}
	styleRule  = AttrRule{Name: "style"}
	alignRule  = AttrRule{Name: "align", Values: []string{"left", "center", "right", "justify"}}
	tableCells = []AttrRule{alignRule, styleRule, {Name: "colspan"}, {Name: "rowspan"}, {Name: "headers"}}
)

// DefaultPolicy is the policy used by the conversion pipeline.
var DefaultPolicy = &Policy{
	Version: "2025.2",
	Elements: map[string][]AttrRule{
		"a": {
			{Name: "href"},
			{Name: "class", Values: []string{"wikilink", "wikilink-embed", "footnote-ref", "footnote-backref"}},
			{Name: "role", Values: []string{"doc-noteref", "doc-backlink"}},
		},
		"abbr":       nil,
		"b":          nil,
		"blockquote": {citeRule},
		"br":         nil,
		"caption":    nil,
		"code": {
			{Name: "class", Values: []string{"math-inline", "math-display"}, Prefixes: []string{"language-"}},
		},
		"dd":      nil,
		"del":     {citeRule},
		"details": {{Name: "open"}},
		"div": {
			{Name: "class", Values: []string{
				"frontmatter-container", "frontmatter-row", "frontmatter-label", "frontmatter-value",
				"footnotes",
			}},
			{Name: "role", Values: []string{"doc-endnotes"}},
		},
		"dl":         nil,
		"dt":         nil,
		"em":         nil,
		"figcaption": nil,
		"figure":     nil,
		"h1":         nil,
		"h2":         nil,
		"h3":         nil,
		"h4":         nil,
		"h5":         nil,
		"h6":         nil,
		"hr":         nil,
		"i":          nil,
		"img": {
			{Name: "src"}, {Name: "alt"}, {Name: "width"}, {Name: "height"},
			{Name: "class", Values: []string{"wikilink-embed"}},
		},
		"input": {
			{Name: "type", Values: []string{"checkbox"}}, {Name: "checked"}, {Name: "disabled"},
		},
		"ins":     {citeRule},
		"kbd":     nil,
		"li":      {{Name: "id", Prefixes: []string{"user-content-fn"}}, {Name: "value"}},
		"mark":    nil,
		"ol":      {{Name: "start"}, {Name: "reversed"}},
		"p":       nil,
		"pre":     nil,
		"q":       {citeRule},
		"rp":      nil,
		"rt":      nil,
		"ruby":    nil,
		"s":       nil,
		"samp":    nil,
		"section": nil,
		"small":   nil,
		"span":    {styleRule},
		"strike":  nil,
		"strong":  nil,
		"sub":     nil,
		"summary": nil,
		"sup":     {{Name: "id", Prefixes: []string{"user-content-fnref"}}},
		"table":   nil,
		"tbody":   nil,
		"td":      tableCells,
		"tfoot":   nil,
		"th":      append([]AttrRule{{Name: "scope"}}, tableCells...),
		"thead":   nil,
		"tr":      nil,
		"tt":      nil,
		"u":       nil,
		"ul":      nil,
		"var":     nil,
	},
	Global: []AttrRule{
		{Name: "title"},
		{Name: "lang"},
		{Name: "dir", Values: []string{"ltr", "rtl", "auto"}},
		{Name: "aria-label"},
		{Name: "aria-hidden"},
		{Name: "aria-describedby"},
	},
	URLAttrs: map[string]bool{
		"href": true, "src": true, "cite": true, "longdesc": true,
		"action": true, "formaction": true, "poster": true, "background": true,
	},
	AllowedSchemes: map[string]bool{
		"http": true, "https": true, "mailto": true, "tel": true,
	},
	BlockedSchemes: map[string]bool{
		"javascript": true, "vbscript": true, "livescript": true, "data": true, "file": true,
	},
	SafeDataTypes: map[string]bool{
		"image/png": true, "image/jpeg": true, "image/gif": true, "image/webp": true,
	},
	StripContent: map[string]bool{
		"script": true, "style": true, "template": true, "iframe": true, "object": true,
		"embed": true, "noscript": true, "noembed": true, "noframes": true, "xmp": true,
		"plaintext": true, "link": true, "meta": true, "base": true,
	},
	StyleBlocklist: []string{
		"expression(", "url(", "javascript:", "vbscript:", "@import",
		"behavior:", "-moz-binding", `\`, "/*",
	},
	Required: map[string][]html.Attribute{
		"input": {{Key: "type", Val: "checkbox"}, {Key: "disabled", Val: ""}},
	},
}
