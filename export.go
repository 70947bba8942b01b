package mdinterop

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-mdinterop/internal/assets"
	"github.com/alnah/go-mdinterop/internal/doc"
	"github.com/alnah/go-mdinterop/internal/mdserial"
	"github.com/alnah/go-mdinterop/internal/pipeline"
)

// Format is an export target.
type Format string

// Export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
)

// ParseFormat maps a user-facing name to a Format.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatMarkdown, FormatHTML, FormatText:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatText:
		return ".txt"
	}
	return ".md"
}

var serializer = mdserial.New()

// SerializeToMarkdown renders tree as markdown. It has no side effects and
// returns an empty string for a nil tree.
func SerializeToMarkdown(tree *Node) string {
	return serializer.Serialize(tree)
}

// PlainText returns the text of tree with blocks separated by a blank line
// and hard breaks as newlines.
func PlainText(tree *Node) string {
	if tree == nil {
		return ""
	}
	var blocks []string
	collectText(tree, &blocks)
	return strings.Join(blocks, "\n\n")
}

func collectText(n *Node, blocks *[]string) {
	switch {
	case n.Type.IsTextblock():
		var b strings.Builder
		for _, c := range n.Content {
			switch c.Type {
			case doc.Text:
				b.WriteString(c.Text)
			case doc.HardBreak:
				b.WriteByte('\n')
			case doc.Mathematics:
				b.WriteString(c.Attrs.String("latex"))
			}
		}
		*blocks = append(*blocks, b.String())
	case n.Type == doc.Mathematics:
		*blocks = append(*blocks, n.Attrs.String("latex"))
	default:
		for _, c := range n.Content {
			collectText(c, blocks)
		}
	}
}

// ExportOption configures an Exporter.
type ExportOption func(*exportConfig)

type exportConfig struct {
	standalone     bool
	title          string
	pageStyle      string
	highlightStyle string
	minify         bool
	css            string
}

// defaultHighlightStyle is the chroma style used for standalone pages.
const defaultHighlightStyle = "github"

// WithStandalone wraps exported HTML in a complete HTML5 document that
// carries the code highlighting stylesheet.
func WithStandalone(enabled bool) ExportOption {
	return func(c *exportConfig) { c.standalone = enabled }
}

// WithTitle sets the <title> of standalone documents.
func WithTitle(title string) ExportOption {
	return func(c *exportConfig) { c.title = title }
}

// WithPageStyle selects the embedded page stylesheet of standalone
// documents. "none" leaves the page unstyled; an empty name keeps the
// default.
func WithPageStyle(name string) ExportOption {
	return func(c *exportConfig) {
		if name != "" {
			c.pageStyle = name
		}
	}
}

// CheckPageStyle reports whether name selects an embedded page stylesheet.
// The empty name and "none" are accepted.
func CheckPageStyle(name string) error {
	if name == "" {
		return nil
	}
	_, err := assets.LoadStyle(name)
	return err
}

// PageStyles lists the embedded page stylesheets.
func PageStyles() []string {
	return assets.Styles()
}

// WithHighlightStyle selects the chroma style for code highlighting.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(style string) ExportOption {
	return func(c *exportConfig) {
		if style != "" {
			c.highlightStyle = style
		}
	}
}

// WithMinify minifies exported HTML.
func WithMinify(enabled bool) ExportOption {
	return func(c *exportConfig) { c.minify = enabled }
}

// WithCSS appends a user stylesheet to standalone documents.
func WithCSS(css string) ExportOption {
	return func(c *exportConfig) { c.css = css }
}

// Exporter renders document trees to markdown, HTML or plain text.
// It is safe for concurrent use.
type Exporter struct {
	cfg         exportConfig
	schema      *doc.Schema
	converter   pipeline.HTMLConverter
	sanitizer   *pipeline.Sanitizer
	minifier    *pipeline.Minifier
	cssInjector pipeline.CSSInjector
}

// NewExporter returns an Exporter configured by opts.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{
		cfg:         exportConfig{pageStyle: assets.DefaultStyle, highlightStyle: defaultHighlightStyle},
		schema:      doc.DefaultSchema(),
		converter:   pipeline.NewGoldmarkConverter(),
		sanitizer:   pipeline.NewSanitizer(),
		minifier:    pipeline.NewMinifier(),
		cssInjector: &pipeline.CSSInjection{},
	}
	for _, opt := range opts {
		opt(&e.cfg)
	}
	return e
}

// ExportHTML renders tree as sanitized HTML using a one-off Exporter.
func ExportHTML(ctx context.Context, tree *Node, opts ...ExportOption) (string, error) {
	return NewExporter(opts...).HTML(ctx, tree)
}

// Export renders tree in format f.
func (e *Exporter) Export(ctx context.Context, tree *Node, f Format) (string, error) {
	switch f {
	case FormatHTML:
		return e.HTML(ctx, tree)
	case FormatMarkdown, FormatText:
		if err := e.validate(tree); err != nil {
			return "", err
		}
		if f == FormatText {
			return PlainText(tree), nil
		}
		return SerializeToMarkdown(tree), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// HTML renders tree as sanitized HTML. The context is checked between
// stages. Recovers from internal panics.
func (e *Exporter) HTML(ctx context.Context, tree *Node) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := e.validate(tree); err != nil {
		return "", err
	}

	md := pipeline.PrepareMarkdown(SerializeToMarkdown(tree))
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	htmlContent, err := e.converter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}

	// Placeholders become tags only after sanitizing so the policy never
	// has to allow them as raw input.
	htmlContent = pipeline.ConvertPlaceholders(e.sanitizer.Sanitize(htmlContent))

	if e.cfg.standalone {
		htmlContent, err = e.standalone(ctx, htmlContent)
		if err != nil {
			return "", err
		}
	}

	if e.cfg.minify {
		htmlContent, err = e.minifier.Minify(htmlContent)
		if err != nil {
			return "", err
		}
	}
	return htmlContent, nil
}

func (e *Exporter) standalone(ctx context.Context, fragment string) (string, error) {
	page, err := pipeline.WrapDocument(ctx, fragment, e.cfg.title)
	if err != nil {
		return "", fmt.Errorf("wrapping document: %w", err)
	}

	css, err := assets.LoadStyle(e.cfg.pageStyle)
	if err != nil {
		return "", fmt.Errorf("loading page style: %w", err)
	}
	highlight, err := pipeline.HighlightCSS(e.cfg.highlightStyle)
	if err != nil {
		return "", err
	}
	css = joinCSS(css, highlight, e.cfg.css)

	page = e.cssInjector.InjectCSS(ctx, page, css)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return page, nil
}

// joinCSS concatenates the non-empty stylesheets in cascade order.
func joinCSS(sheets ...string) string {
	var parts []string
	for _, s := range sheets {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// validate is the trust boundary for trees built by hand or decoded from
// untrusted JSON.
func (e *Exporter) validate(tree *Node) error {
	if tree == nil {
		return ErrNilDocument
	}
	if tree.Type != doc.Doc {
		return fmt.Errorf("%w: got %s", ErrNotDocument, tree.Type)
	}
	if len(tree.Content) == 0 {
		return ErrEmptyDocument
	}
	return e.schema.Validate(tree)
}
