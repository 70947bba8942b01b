// Package fragment builds document tree fragments from parser output.
package fragment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/alnah/go-mdinterop/internal/doc"
	"github.com/alnah/go-mdinterop/internal/parse"
)

var blankLines = regexp.MustCompile(`\n{2,}`)

// ---------------------------------------------------------------------------
// Table
// ---------------------------------------------------------------------------

// Table builds a table node from ir. Every row gets exactly ir.ColumnCount
// cells: short rows are padded with empty cells, long rows are cut.
func Table(ir parse.TableIR) *doc.Node {
	rows := make([]*doc.Node, 0, len(ir.Rows)+1)
	rows = append(rows, row(doc.TableHeader, ir.Headers, ir.ColumnCount))
	for _, r := range ir.Rows {
		rows = append(rows, row(doc.TableCell, r, ir.ColumnCount))
	}
	return doc.NewNode(doc.Table, nil, rows...)
}

func row(cellType doc.NodeType, texts []string, columns int) *doc.Node {
	cells := make([]*doc.Node, columns)
	for i := range cells {
		var text string
		if i < len(texts) {
			text = texts[i]
		}
		cells[i] = doc.NewNode(cellType, nil, paragraph(text))
	}
	return doc.NewNode(doc.TableRow, nil, cells...)
}

// ---------------------------------------------------------------------------
// Lists
// ---------------------------------------------------------------------------

// Lists groups items into sibling list nodes, one per run of equal kind.
// Indentation levels are not used for nesting.
func Lists(items []parse.ListItemIR) []*doc.Node {
	var lists []*doc.Node
	cur := -1
	var kind parse.ListKind
	for _, it := range items {
		if cur < 0 || it.Kind != kind {
			lists = append(lists, doc.NewNode(listType(it.Kind), nil))
			cur = len(lists) - 1
			kind = it.Kind
		}
		lists[cur].Content = append(lists[cur].Content, listItem(it))
	}
	return lists
}

func listType(k parse.ListKind) doc.NodeType {
	switch k {
	case parse.Task:
		return doc.TaskList
	case parse.Ordered:
		return doc.OrderedList
	}
	return doc.BulletList
}

func listItem(it parse.ListItemIR) *doc.Node {
	p := paragraph(strings.TrimSpace(it.Content))
	if it.Kind == parse.Task {
		return doc.NewNode(doc.TaskItem, doc.Attrs{"checked": it.Checked}, p)
	}
	return doc.NewNode(doc.ListItem, nil, p)
}

// ---------------------------------------------------------------------------
// Spans
// ---------------------------------------------------------------------------

// ImageOptions tunes image splicing.
type ImageOptions struct {
	// TrailingParagraph appends an empty paragraph after the spliced
	// content so the caret has somewhere to land below an image.
	TrailingParagraph bool
}

// Images splices image nodes into the paragraphs of text.
func Images(text string, refs []parse.ImageRef, opts ImageOptions) []*doc.Node {
	spans := make([]span, len(refs))
	for i, r := range refs {
		spans[i] = span{match: r.FullMatch, node: image(r)}
	}
	nodes := splice(text, spans)
	if opts.TrailingParagraph && len(refs) > 0 && !isEmptyParagraphs(nodes) {
		nodes = append(nodes, paragraph(""))
	}
	return nodes
}

// Headings splices heading nodes into the paragraphs of text.
func Headings(text string, refs []parse.HeadingRef) []*doc.Node {
	spans := make([]span, len(refs))
	for i, r := range refs {
		h := doc.NewNode(doc.Heading, doc.Attrs{"level": r.Level})
		if c := strings.TrimSpace(r.Content); c != "" {
			h.Content = []*doc.Node{doc.NewText(c)}
		}
		spans[i] = span{match: r.FullMatch, node: h}
	}
	return splice(text, spans)
}

// Paragraphs splits plain text into paragraphs on blank lines.
// Blank text yields a single empty paragraph.
func Paragraphs(text string) []*doc.Node {
	nodes := appendParagraphs(nil, text)
	if len(nodes) == 0 {
		return []*doc.Node{paragraph("")}
	}
	return nodes
}

type span struct {
	match string
	node  *doc.Node
}

// splice walks text left to right, emitting the text between matched spans
// as paragraphs and each span as its node. Spans whose match cannot be
// found past the cursor are skipped.
func splice(text string, spans []span) []*doc.Node {
	if len(spans) == 0 {
		return Paragraphs(text)
	}

	sorted := append([]span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.Index(text, sorted[i].match) < strings.Index(text, sorted[j].match)
	})

	var nodes []*doc.Node
	cursor := 0
	for _, s := range sorted {
		if s.match == "" {
			continue
		}
		idx := strings.Index(text[cursor:], s.match)
		if idx < 0 {
			continue
		}
		idx += cursor
		nodes = appendParagraphs(nodes, text[cursor:idx])
		nodes = append(nodes, s.node)
		cursor = idx + len(s.match)
	}
	nodes = appendParagraphs(nodes, text[cursor:])

	if len(nodes) == 0 {
		return []*doc.Node{paragraph("")}
	}
	return nodes
}

func appendParagraphs(nodes []*doc.Node, text string) []*doc.Node {
	text = strings.TrimSpace(text)
	if text == "" {
		return nodes
	}
	for _, part := range blankLines.Split(text, -1) {
		if p := strings.TrimSpace(part); p != "" {
			nodes = append(nodes, paragraph(p))
		}
	}
	return nodes
}

func image(r parse.ImageRef) *doc.Node {
	attrs := doc.Attrs{"src": r.Src}
	if r.Alt != "" {
		attrs["alt"] = r.Alt
	}
	if r.HasTitle {
		attrs["title"] = r.Title
	}
	return doc.NewNode(doc.Image, attrs)
}

func paragraph(text string) *doc.Node {
	if text == "" {
		return doc.NewNode(doc.Paragraph, nil)
	}
	return doc.NewNode(doc.Paragraph, nil, doc.NewText(text))
}

func isEmptyParagraphs(nodes []*doc.Node) bool {
	for _, n := range nodes {
		if n.Type != doc.Paragraph || len(n.Content) > 0 {
			return false
		}
	}
	return true
}
