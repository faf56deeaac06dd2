package pipeline

import (
	"golang.org/x/net/html"

	"github.com/alnah/go-md2page/internal/htmltree"
)

// Serialize writes the fragment below root as an HTML string.
func Serialize(root *html.Node) (string, error) {
	return htmltree.Render(root)
}
