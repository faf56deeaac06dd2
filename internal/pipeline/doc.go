// Package pipeline implements the stages that turn Markdown into a
// sanitized HTML fragment and its metadata.
//
// The stages run in this order:
//   - source preprocessing (BOM, line endings)
//   - parsing into a goldmark tree, with GFM, footnotes, frontmatter,
//     math and wiki link extensions
//   - frontmatter extraction into a display panel
//   - metadata collection (title, description, content flags)
//   - lowering to an x/net/html tree, raw HTML included
//   - sanitization (internal/sanitize)
//   - heading id assignment
//   - code and math annotation
//   - serialization
//
// Language detection runs beside these stages in the root md2page package.
// Every stage is a plain function or a stateless value; per-document state
// such as the heading slug registry is created inside the call that needs it.
package pipeline
