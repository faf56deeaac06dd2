// Package md2page converts untrusted Markdown into sanitized HTML and a small
// metadata record.
//
// # Quick Start
//
// The package-level Convert uses a shared default converter:
//
//	res := md2page.Convert("# Hello\n\nWorld")
//	fmt.Println(res.HTML)           // <h1 id="hello">Hello</h1> <p>World</p>
//	fmt.Println(res.Metadata.Title) // Hello
//
// Create a Converter to change defaults:
//
//	conv, err := md2page.NewConverter(
//	    md2page.WithDateFormat("iso"),
//	    md2page.WithHighlighting(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := conv.Convert(ctx, markdown)
//
// A Converter holds no per-document state and is safe for concurrent use.
//
// # Conversion Pipeline
//
//  1. Source normalization (line endings, byte-order mark)
//  2. Parsing with goldmark: GFM, footnotes, YAML frontmatter, $math$ and
//     [[wiki links]]
//  3. Frontmatter extraction into a key/value panel
//  4. Metadata collection (title, description, content flags), while the
//     language is detected concurrently
//  5. Lowering to an HTML tree, raw HTML included
//  6. Sanitization against an allow-list policy
//  7. Heading ids (github-slugger compatible)
//  8. Code and math annotation for chroma, KaTeX and mermaid
//  9. Serialization
//
// Malformed input never fails a conversion; only context cancellation does.
//
// # Metadata
//
// Result.Metadata drives page titles, previews and conditional script
// loading. Frontmatter title and description win over the first heading and
// paragraph. Titles are cut at 60 characters and descriptions at 160, ending
// in "..." when cut.
//
// # Pages
//
// RenderPage wraps a Result into a standalone HTML document using a theme
// and a page template. KaTeX and mermaid assets are referenced only when the
// document needs them:
//
//	page, err := md2page.RenderPage(res, md2page.PageOptions{Theme: "default"})
//
// Themes and templates can be overridden from a directory:
//
//	loader, err := md2page.NewAssetLoader("/path/to/assets")
//	page, err := md2page.RenderPage(res, md2page.PageOptions{Assets: loader})
//
//	assets/
//	├── themes/
//	│   └── custom.css
//	└── templates/
//	    └── page.html
package md2page
