package md2page

import (
	"bytes"
	"cmp"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Page defaults.
const (
	// DefaultHighlightStyle is the chroma style used for code blocks.
	DefaultHighlightStyle = "github"

	// DefaultLang is the page language when none is detected.
	DefaultLang = "en"

	// DefaultDescription is used when the document yields no description.
	DefaultDescription = "Convert and share your markdown files as beautiful HTML pages"

	// DefaultTitle is used when the document yields no title.
	DefaultTitle = "Untitled"

	// Generator names the tool in the page footer and meta tags.
	Generator = "go-md2page"

	// resumeTheme is a print-first theme without the theme toggle.
	resumeTheme = "resume"

	katexBase     = "https://cdn.jsdelivr.net/npm/katex@0.16.27/dist"
	mermaidModule = "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs"
)

// PageOptions configures RenderPage. Zero values select the defaults.
type PageOptions struct {
	Theme          string      // Theme name, default "default"
	HighlightStyle string      // Chroma style name, default "github"
	Assets         AssetLoader // Nil uses the embedded assets
	Title          string      // Overrides the document title
	Lang           string      // Overrides the detected language
}

// pageData feeds the page template.
type pageData struct {
	Lang          string
	Title         string
	Description   string
	Generator     string
	ThemeCSS      template.CSS
	ChromaCSS     template.CSS
	HasKatex      bool
	KatexBase     string
	ThemeToggle   bool
	Content       template.HTML
	HasMermaid    bool
	MermaidModule string
}

// embeddedAssets backs RenderPage when no loader is given.
var embeddedAssets = sync.OnceValues(func() (AssetLoader, error) {
	return NewAssetLoader("")
})

// RenderPage wraps a conversion result in a standalone HTML page.
// KaTeX and mermaid scripts are included only when the metadata flags ask
// for them; chroma CSS only when the document has code blocks.
func RenderPage(res *Result, opts PageOptions) ([]byte, error) {
	if res == nil {
		return nil, ErrNilResult
	}

	loader := opts.Assets
	if loader == nil {
		var err error
		if loader, err = embeddedAssets(); err != nil {
			return nil, err
		}
	}

	theme := cmp.Or(opts.Theme, DefaultTheme)
	themeCSS, err := loader.LoadTheme(theme)
	if err != nil {
		return nil, err
	}

	style, err := highlightStyle(cmp.Or(opts.HighlightStyle, DefaultHighlightStyle))
	if err != nil {
		return nil, err
	}

	source, err := loader.LoadTemplate(PageTemplate)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(PageTemplate).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing template: %v", ErrPageRender, err)
	}

	data := pageData{
		Lang:          cmp.Or(opts.Lang, res.Metadata.Language, DefaultLang),
		Title:         cmp.Or(opts.Title, res.Metadata.Title, DefaultTitle),
		Description:   cmp.Or(res.Metadata.Description, DefaultDescription),
		Generator:     Generator,
		ThemeCSS:      template.CSS(themeCSS),
		HasKatex:      res.Metadata.HasKatex,
		KatexBase:     katexBase,
		ThemeToggle:   theme != resumeTheme,
		Content:       template.HTML(res.HTML), // #nosec G203 -- sanitized by Convert
		HasMermaid:    res.Metadata.HasMermaid,
		MermaidModule: mermaidModule,
	}
	if res.Metadata.HasCodeBlock {
		css, err := chromaCSS(style)
		if err != nil {
			return nil, err
		}
		data.ChromaCSS = template.CSS(css)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.Bytes(), nil
}

// HighlightStyles lists the chroma style names accepted by PageOptions.
func HighlightStyles() []string {
	return styles.Names()
}

func highlightStyle(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return style, nil
}

// chromaCSS returns the class-based stylesheet matching the spans the
// annotator emits.
func chromaCSS(style *chroma.Style) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: highlight css: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}
