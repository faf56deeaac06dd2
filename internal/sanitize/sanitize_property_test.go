//go:build property

package sanitize_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/alnah/go-md2page/internal/sanitize"
)

// fragments are glued together to build hostile markup.
var fragments = []any{
	"<p>", "</p>", "<div>", "</div>", "<a href=\"", "javascript:", "java&#x09;script:", "&#106;",
	"\">", "</a>", "<img src=x onerror=alert(1)>", "<svg>", "</svg>", "<math>", "<mtext>",
	"<style>", "</style>", "<script>", "</script>", "<noscript>", "</noscript>", "<!--", "-->",
	"<table>", "<td>", "<template>", "<select>", "<textarea>", "\"", "'", "<", ">", "&", "text",
	" onclick=alert(1) ", "<iframe>", "<b title=\"", "<form>", "<input onfocus=x>", "<mglyph>",
	"<span style=\"", "expression(1)", "url(javascript:1)", "<code class=\"language-go\">",
}

func markupGen() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(fragments...), reflect.TypeOf("")).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})
}

// TestSanitizeProperties checks the sanitizer guarantees over generated markup.
func TestSanitizeProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property: sanitizing twice equals sanitizing once
	properties.Property("idempotent", prop.ForAll(
		func(in string) bool {
			once := sanitize.SanitizeString(in)
			return sanitize.SanitizeString(once) == once
		},
		markupGen(),
	))

	// Property: no script element survives
	properties.Property("no script elements", prop.ForAll(
		func(in string) bool {
			return !strings.Contains(strings.ToLower(sanitize.SanitizeString(in)), "<script")
		},
		markupGen(),
	))

	// Property: no event handler attribute or script URL survives
	properties.Property("no handlers or script urls", prop.ForAll(
		func(in string) bool {
			doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitize.SanitizeString(in)))
			if err != nil {
				return false
			}
			clean := true
			doc.Find("body *").Each(func(_ int, sel *goquery.Selection) {
				for _, a := range sel.Nodes[0].Attr {
					val := strings.ToLower(strings.TrimSpace(a.Val))
					if strings.HasPrefix(a.Key, "on") ||
						(a.Key == "href" || a.Key == "src") && strings.HasPrefix(val, "javascript:") {
						clean = false
					}
				}
			})
			return clean
		},
		markupGen(),
	))

	properties.TestingRun(t)
}
