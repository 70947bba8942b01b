package mdinterop

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alnah/go-mdinterop/internal/detect"
	"github.com/alnah/go-mdinterop/internal/doc"
	"github.com/alnah/go-mdinterop/internal/fragment"
	"github.com/alnah/go-mdinterop/internal/parse"
	"github.com/alnah/go-mdinterop/internal/pipeline"
	"github.com/alnah/go-mdinterop/internal/transform"
)

// State is the part of the host's editor state a paste reads.
type State struct {
	Doc       *Node
	Selection Selection
}

// Host is an editing surface that can receive a pasted transaction.
type Host interface {
	State() State
	Dispatch(tr *Transaction)
}

// PasteOption configures a Paster.
type PasteOption func(*Paster)

// WithSchema sets the schema the host supports. Constructs whose nodes the
// schema lacks are not handled. A nil schema means DefaultSchema.
func WithSchema(s *Schema) PasteOption {
	return func(p *Paster) {
		if s != nil {
			p.schema = s
		}
	}
}

// WithLogger sets the logger that receives failed and recovered pastes.
// The default logger discards everything.
func WithLogger(l *slog.Logger) PasteOption {
	return func(p *Paster) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTablePaste enables or disables table recognition.
func WithTablePaste(enabled bool) PasteOption {
	return func(p *Paster) { p.enabled[detect.Table] = enabled }
}

// WithListPaste enables or disables list recognition.
func WithListPaste(enabled bool) PasteOption {
	return func(p *Paster) { p.enabled[detect.List] = enabled }
}

// WithImagePaste enables or disables image recognition.
func WithImagePaste(enabled bool) PasteOption {
	return func(p *Paster) { p.enabled[detect.Image] = enabled }
}

// WithHeadingPaste enables or disables heading recognition.
func WithHeadingPaste(enabled bool) PasteOption {
	return func(p *Paster) { p.enabled[detect.Heading] = enabled }
}

// WithTrailingParagraph appends an empty paragraph after pasted images so
// the caret has somewhere to go.
func WithTrailingParagraph(enabled bool) PasteOption {
	return func(p *Paster) { p.trailingParagraph = enabled }
}

// Paster turns markdown-shaped text into document transactions.
// It holds no per-paste state and is safe for concurrent use.
type Paster struct {
	schema            *doc.Schema
	logger            *slog.Logger
	enabled           map[detect.Construct]bool
	trailingParagraph bool
}

// NewPaster returns a Paster with every construct enabled.
func NewPaster(opts ...PasteOption) *Paster {
	p := &Paster{
		schema: doc.DefaultSchema(),
		logger: slog.New(slog.DiscardHandler),
		enabled: map[detect.Construct]bool{
			detect.Table:   true,
			detect.List:    true,
			detect.Image:   true,
			detect.Heading: true,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Classify returns the construct HandlePaste would act upon, honoring the
// enabled constructs. It does not parse.
func (p *Paster) Classify(text string) Construct {
	text = pipeline.NormalizePaste(text)
	for _, c := range detect.Priority {
		if p.enabled[c] && detect.Matches(c, text) {
			return c
		}
	}
	return detect.None
}

// HandlePaste recognizes text and builds one transaction that replaces the
// selection with the resulting nodes. It reports false when the text is not
// markdown it handles or when anything fails along the way; the host then
// falls back to its default paste. Failures are logged, never returned.
func (p *Paster) HandlePaste(state State, text string) (tr *Transaction, handled bool) {
	if !p.anyEnabled() || state.Doc == nil || strings.TrimSpace(text) == "" {
		return nil, false
	}

	c := p.Classify(text)
	if c == detect.None {
		return nil, false
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("markdown paste panicked",
				slog.String("construct", c.String()),
				slog.Any("panic", r))
			tr, handled = nil, false
		}
	}()

	nodes, err := p.build(c, pipeline.NormalizePaste(text))
	if err != nil {
		p.logFailure(c, err)
		return nil, false
	}

	tr = transform.New(state.Doc, state.Selection, p.schema).ReplaceSelection(nodes...)
	if err := tr.Err(); err != nil {
		p.logFailure(c, err)
		return nil, false
	}
	tr.Construct = c

	p.logger.Debug("markdown paste handled",
		slog.String("construct", c.String()),
		slog.Int("nodes", len(nodes)),
		slog.Int("steps", len(tr.Steps)))
	return tr, true
}

// Paste runs HandlePaste against the host's current state and dispatches
// the transaction when the paste was handled. Dispatch is called at most
// once.
func (p *Paster) Paste(h Host, text string) bool {
	tr, ok := p.HandlePaste(h.State(), text)
	if !ok {
		return false
	}
	h.Dispatch(tr)
	return true
}

// PastePlain replaces the selection with text as plain paragraphs, one per
// blank-line separated block. It is the fallback for unhandled pastes.
func (p *Paster) PastePlain(state State, text string) (*Transaction, error) {
	if state.Doc == nil {
		return nil, ErrNilDocument
	}
	if err := p.schema.Supports(doc.Paragraph); err != nil {
		return nil, err
	}
	nodes := fragment.Paragraphs(pipeline.NormalizePaste(text))
	tr := transform.New(state.Doc, state.Selection, p.schema).ReplaceSelection(nodes...)
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return tr, nil
}

func (p *Paster) anyEnabled() bool {
	for _, on := range p.enabled {
		if on {
			return true
		}
	}
	return false
}

func (p *Paster) logFailure(c detect.Construct, err error) {
	p.logger.Warn("markdown paste not handled",
		slog.String("construct", c.String()),
		slog.Any("error", err))
}

// build parses text as c and returns the nodes to insert. Schema support
// is checked before parsing.
func (p *Paster) build(c detect.Construct, text string) ([]*doc.Node, error) {
	switch c {
	case detect.Table:
		if err := p.schema.Supports(doc.Table, doc.TableRow, doc.TableHeader, doc.TableCell, doc.Paragraph); err != nil {
			return nil, err
		}
		ir, err := parse.Table(text)
		if err != nil {
			return nil, err
		}
		return []*doc.Node{fragment.Table(ir)}, nil

	case detect.List:
		if err := p.schema.Supports(doc.Paragraph); err != nil {
			return nil, err
		}
		items := parse.List(text)
		if err := p.supportsListKinds(items); err != nil {
			return nil, err
		}
		return fragment.Lists(items), nil

	case detect.Image:
		if err := p.schema.Supports(doc.Image, doc.Paragraph); err != nil {
			return nil, err
		}
		refs := parse.Images(text)
		return fragment.Images(text, refs, fragment.ImageOptions{TrailingParagraph: p.trailingParagraph}), nil

	case detect.Heading:
		if err := p.schema.Supports(doc.Heading, doc.Paragraph); err != nil {
			return nil, err
		}
		return fragment.Headings(text, parse.Headings(text)), nil
	}
	return nil, fmt.Errorf("no builder for construct %s", c)
}

// supportsListKinds checks the list and item types the parsed items need.
// Only the kinds present are required, so a host without task lists can
// still take a bullet list.
func (p *Paster) supportsListKinds(items []parse.ListItemIR) error {
	seen := make(map[parse.ListKind]bool, 3)
	for _, it := range items {
		if seen[it.Kind] {
			continue
		}
		seen[it.Kind] = true

		var err error
		switch it.Kind {
		case parse.Task:
			err = p.schema.Supports(doc.TaskList, doc.TaskItem)
		case parse.Ordered:
			err = p.schema.Supports(doc.OrderedList, doc.ListItem)
		default:
			err = p.schema.Supports(doc.BulletList, doc.ListItem)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
