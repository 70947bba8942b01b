package mdinterop

import (
	"io"

	"github.com/alnah/go-mdinterop/internal/detect"
	"github.com/alnah/go-mdinterop/internal/doc"
	"github.com/alnah/go-mdinterop/internal/transform"
)

// Document model.
type (
	Node     = doc.Node
	NodeType = doc.NodeType
	Mark     = doc.Mark
	MarkType = doc.MarkType
	Attrs    = doc.Attrs
	Schema   = doc.Schema
)

// Transactions.
type (
	Selection   = transform.Selection
	Transaction = transform.Transaction
	Step        = transform.Step
	StepMap     = transform.StepMap
	Mapping     = transform.Mapping
)

// Construct names what a paste was recognized as.
type Construct = detect.Construct

// Constructs in dispatch priority order.
const (
	ConstructNone    = detect.None
	ConstructTable   = detect.Table
	ConstructList    = detect.List
	ConstructImage   = detect.Image
	ConstructHeading = detect.Heading
)

// Node types.
const (
	NodeDoc            = doc.Doc
	NodeParagraph      = doc.Paragraph
	NodeHeading        = doc.Heading
	NodeBlockquote     = doc.Blockquote
	NodeBulletList     = doc.BulletList
	NodeOrderedList    = doc.OrderedList
	NodeTaskList       = doc.TaskList
	NodeListItem       = doc.ListItem
	NodeTaskItem       = doc.TaskItem
	NodeImage          = doc.Image
	NodeTable          = doc.Table
	NodeTableRow       = doc.TableRow
	NodeTableCell      = doc.TableCell
	NodeTableHeader    = doc.TableHeader
	NodeText           = doc.Text
	NodeHardBreak      = doc.HardBreak
	NodeMathematics    = doc.Mathematics
	NodeYoutube        = doc.Youtube
	NodeDetails        = doc.Details
	NodeDetailsSummary = doc.DetailsSummary
	NodeDetailsContent = doc.DetailsContent
	NodeCodeBlock      = doc.CodeBlock
	NodeHorizontalRule = doc.HorizontalRule
)

// Mark types in collation order.
const (
	MarkLink        = doc.Link
	MarkTextStyle   = doc.TextStyle
	MarkHighlight   = doc.Highlight
	MarkBold        = doc.Bold
	MarkItalic      = doc.Italic
	MarkUnderline   = doc.Underline
	MarkStrike      = doc.Strike
	MarkSubscript   = doc.Subscript
	MarkSuperscript = doc.Superscript
	MarkCode        = doc.Code
)

// NewNode returns a non-text node.
func NewNode(t NodeType, attrs Attrs, content ...*Node) *Node {
	return doc.NewNode(t, attrs, content...)
}

// NewText returns a text node carrying marks.
func NewText(text string, marks ...Mark) *Node {
	return doc.NewText(text, marks...)
}

// NewMark returns a mark.
func NewMark(t MarkType, attrs Attrs) Mark {
	return doc.NewMark(t, attrs)
}

// NewSelection returns the selection between a and b in either order.
func NewSelection(a, b int) Selection {
	return transform.NewSelection(a, b)
}

// Caret returns an empty selection at pos.
func Caret(pos int) Selection {
	return transform.Caret(pos)
}

// DefaultSchema returns a schema supporting every node type.
func DefaultSchema() *Schema {
	return doc.DefaultSchema()
}

// NewSchema returns a schema supporting only the given node types.
func NewSchema(types ...NodeType) *Schema {
	return doc.NewSchema(types...)
}

// EmptyDocument returns a doc holding one empty paragraph, the smallest
// document an editor accepts.
func EmptyDocument() *Node {
	return doc.NewNode(doc.Doc, nil, doc.NewNode(doc.Paragraph, nil))
}

// ParseDocument decodes a tree from the editor's JSON shape.
func ParseDocument(data []byte) (*Node, error) {
	return doc.Unmarshal(data)
}

// ReadDocument decodes one tree from r.
func ReadDocument(r io.Reader) (*Node, error) {
	return doc.Decode(r)
}

// FormatDocument encodes a tree in the editor's JSON shape, indented.
func FormatDocument(n *Node) ([]byte, error) {
	if n == nil {
		return nil, ErrNilDocument
	}
	return doc.MarshalIndent(n)
}
