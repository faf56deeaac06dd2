package pipeline

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/alnah/go-md2page/internal/htmltree"
)

// fallbackSlug is used for headings whose text yields an empty slug.
const fallbackSlug = "heading"

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Slugify lowercases s, drops everything except ASCII letters, digits and
// whitespace, turns whitespace runs into a single hyphen and trims hyphens.
func Slugify(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return sb.String()
}

// SlugRegistry hands out unique slugs within one document. A repeated base
// gets -1, -2, … appended; generated slugs are registered as well so they
// never collide with a later heading spelled the same way.
type SlugRegistry struct {
	occurrences map[string]int
}

// NewSlugRegistry returns an empty registry.
func NewSlugRegistry() *SlugRegistry {
	return &SlugRegistry{occurrences: make(map[string]int)}
}

// Slug returns the unique identifier for a heading with the given text.
func (r *SlugRegistry) Slug(text string) string {
	base := Slugify(text)
	if base == "" {
		base = fallbackSlug
	}
	result := base
	for {
		if _, taken := r.occurrences[result]; !taken {
			break
		}
		r.occurrences[base]++
		result = base + "-" + strconv.Itoa(r.occurrences[base])
	}
	r.occurrences[result] = 0
	return result
}

// AssignHeadingIDs sets an id on every h1-h6 below root, in document
// order, replacing any id already present.
func AssignHeadingIDs(root *html.Node) {
	registry := NewSlugRegistry()
	htmltree.Walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Namespace == "" && headingTags[n.Data] {
			htmltree.SetAttr(n, "id", registry.Slug(htmltree.TextContent(n)))
			return false
		}
		return true
	})
}
