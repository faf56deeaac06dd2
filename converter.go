package md2page

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2page/internal/dateutil"
	"github.com/alnah/go-md2page/internal/langdetect"
	"github.com/alnah/go-md2page/internal/pipeline"
	"github.com/alnah/go-md2page/internal/sanitize"
)

// Compile-time interface implementation check.
var _ pipeline.MarkdownPreprocessor = (*pipeline.SourcePreprocessor)(nil)

// Converter runs the Markdown to sanitized HTML pipeline.
// Create with NewConverter; it is immutable and safe for concurrent use.
type Converter struct {
	cfg          converterConfig
	preprocessor pipeline.MarkdownPreprocessor
	markdown     *pipeline.Markdown
	detector     *langdetect.Detector
	policy       *sanitize.Policy
	annotator    *pipeline.Annotator
}

type converterConfig struct {
	dateFormat     string
	dateLayout     string
	highlight      bool
	detectLanguage bool
	classifier     Classifier
	codeTable      CodeTable
}

// NewConverter creates a Converter with default configuration.
// Returns ErrInvalidDateFormat if WithDateFormat was given an unusable format.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			dateFormat:     dateutil.DefaultDateFormat,
			highlight:      true,
			detectLanguage: true,
		},
		preprocessor: &pipeline.SourcePreprocessor{},
		markdown:     pipeline.NewMarkdown(),
		policy:       sanitize.DefaultPolicy,
	}

	for _, opt := range opts {
		opt(c)
	}

	layout, err := dateutil.ResolveLayout(c.cfg.dateFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	c.cfg.dateLayout = layout

	c.detector = langdetect.New(c.cfg.classifier, c.cfg.codeTable)
	c.annotator = &pipeline.Annotator{Highlight: c.cfg.highlight}
	return c, nil
}

// defaultConverter backs the package-level Convert.
var defaultConverter = sync.OnceValue(func() *Converter {
	c, err := NewConverter()
	if err != nil {
		panic(fmt.Sprintf("md2page: default converter: %v", err))
	}
	return c
})

// Convert converts markdown with the default converter. It never fails:
// malformed input still yields a (possibly empty) sanitized fragment.
func Convert(markdown string) *Result {
	res, err := defaultConverter().Convert(context.Background(), markdown)
	if err != nil {
		return &Result{}
	}
	return res
}

// Convert runs the full pipeline on markdown.
// The context is checked between stages; its error is returned on cancellation.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, markdown string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	source := c.preprocessor.PreprocessMarkdown(ctx, markdown)

	// Language detection reads the source only; it overlaps parsing
	var (
		g    errgroup.Group
		lang string
	)
	if c.cfg.detectLanguage {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: language detection: %v", ErrInternal, r)
				}
			}()
			lang = c.detector.Detect(source)
			return nil
		})
	}

	doc := c.markdown.Parse([]byte(source))
	pipeline.ExtractFrontmatter(doc, c.cfg.dateLayout)
	meta := pipeline.CollectMetadata(doc)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := c.markdown.Lower(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	root = c.policy.Sanitize(root)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pipeline.AssignHeadingIDs(root)
	c.annotator.Annotate(root)

	html, err := pipeline.Serialize(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &Result{
		HTML: html,
		Metadata: Metadata{
			Language:     lang,
			Title:        meta.Title,
			Description:  meta.Description,
			HasCodeBlock: meta.HasCodeBlock,
			HasKatex:     meta.HasKatex,
			HasMermaid:   meta.HasMermaid,
			HasWikiLink:  meta.HasWikiLink,
		},
	}, nil
}
