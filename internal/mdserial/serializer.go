// Package mdserial converts document trees to markdown text.
//
// Rendering is table driven: one handler per node type and one open/close
// pair per mark type. Co-occurring marks open in collation order and close
// in reverse, so a mark set always produces the same delimiters.
package mdserial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-mdinterop/internal/doc"
)

type nodeHandler func(s *state, n, parent *doc.Node, index int)

type markSpec struct {
	open            func(m doc.Mark, n *doc.Node) string
	close           func(m doc.Mark, n *doc.Node) string
	expelWhitespace bool
	noEscape        bool
}

func literal(str string) func(doc.Mark, *doc.Node) string {
	return func(doc.Mark, *doc.Node) string { return str }
}

// Serializer renders document trees to markdown. It holds no per-call
// state and is safe for concurrent use.
type Serializer struct {
	nodes map[doc.NodeType]nodeHandler
	marks map[doc.MarkType]markSpec
}

// New returns a serializer with handlers for every node and mark type.
func New() *Serializer {
	return &Serializer{
		nodes: defaultNodes(),
		marks: defaultMarks(),
	}
}

// Serialize renders n. A doc node renders its blocks; any other node
// renders as if it were the only block of a document.
func (z *Serializer) Serialize(n *doc.Node) string {
	if n == nil {
		return ""
	}
	s := &state{ser: z}
	if n.Type == doc.Doc {
		s.renderContent(n)
	} else {
		s.render(n, nil, 0)
	}
	return s.out.String()
}

// HasNode reports whether t has a handler.
func (z *Serializer) HasNode(t doc.NodeType) bool {
	_, ok := z.nodes[t]
	return ok
}

// HasMark reports whether t has an open/close pair.
func (z *Serializer) HasMark(t doc.MarkType) bool {
	_, ok := z.marks[t]
	return ok
}

// ---------------------------------------------------------------------------
// Node handlers
// ---------------------------------------------------------------------------

func defaultNodes() map[doc.NodeType]nodeHandler {
	return map[doc.NodeType]nodeHandler{
		doc.Doc: func(s *state, n, _ *doc.Node, _ int) {
			s.renderContent(n)
		},
		doc.Paragraph: func(s *state, n, _ *doc.Node, _ int) {
			s.renderInline(n)
			s.closeBlock(n)
		},
		doc.Heading: func(s *state, n, _ *doc.Node, _ int) {
			level := min(max(n.Attrs.Int("level", 1), 1), 6)
			s.write(strings.Repeat("#", level) + " ")
			s.renderInline(n)
			s.closeBlock(n)
		},
		doc.Blockquote: func(s *state, n, _ *doc.Node, _ int) {
			s.wrapBlock("> ", "", n, func() { s.renderContent(n) })
		},
		doc.CodeBlock: func(s *state, n, _ *doc.Node, _ int) {
			text := n.TextContent()
			fence := codeFence(text)
			s.write(fence + n.Attrs.String("language") + "\n")
			s.text(text, false)
			s.ensureNewLine()
			s.write(fence)
			s.closeBlock(n)
		},
		doc.HorizontalRule: func(s *state, n, _ *doc.Node, _ int) {
			markup := n.Attrs.String("markup")
			if markup == "" {
				markup = "---"
			}
			s.write(markup)
			s.closeBlock(n)
		},
		doc.BulletList: func(s *state, n, _ *doc.Node, _ int) {
			bullet := n.Attrs.String("bullet")
			if bullet == "" {
				bullet = "-"
			}
			s.renderList(n, "  ", func(int) string { return bullet + " " })
		},
		doc.TaskList: func(s *state, n, _ *doc.Node, _ int) {
			s.renderList(n, "  ", func(int) string { return "- " })
		},
		doc.OrderedList: func(s *state, n, _ *doc.Node, _ int) {
			start := n.Attrs.Int("start", 1)
			width := len(strconv.Itoa(start + len(n.Content) - 1))
			s.renderList(n, strings.Repeat(" ", width+2), func(i int) string {
				num := strconv.Itoa(start + i)
				return strings.Repeat(" ", max(width-len(num), 0)) + num + ". "
			})
		},
		doc.ListItem: func(s *state, n, _ *doc.Node, _ int) {
			s.renderContent(n)
		},
		doc.TaskItem: func(s *state, n, _ *doc.Node, _ int) {
			check := " "
			if n.Attrs.Bool("checked") {
				check = "x"
			}
			s.write("[" + check + "] ")
			s.renderContent(n)
		},
		doc.Image: func(s *state, n, parent *doc.Node, _ int) {
			alt := esc(n.Attrs.String("alt"), false)
			src := esc(n.Attrs.String("src"), false)
			title := ""
			if t := n.Attrs.String("title"); t != "" {
				title = ` "` + esc(t, false) + `"`
			}
			s.write("![" + alt + "](" + src + title + ")")
			closeIfBlock(s, n, parent)
		},
		doc.Table:       renderTable,
		doc.TableRow:    renderRow,
		doc.TableCell:   renderCell,
		doc.TableHeader: renderCell,
		doc.Details: func(s *state, n, _ *doc.Node, _ int) {
			s.write("<details>")
			s.renderContent(n)
			s.write("</details>")
			s.closeBlock(n)
		},
		doc.DetailsSummary: func(s *state, n, _ *doc.Node, _ int) {
			s.write("<summary>")
			s.renderInline(n)
			s.write("</summary>")
			s.closeBlock(n)
		},
		doc.DetailsContent: func(s *state, n, _ *doc.Node, _ int) {
			s.renderContent(n)
		},
		doc.Mathematics: func(s *state, n, parent *doc.Node, _ int) {
			latex := n.Attrs.String("latex")
			if latex == "" {
				latex = n.TextContent()
			}
			if n.Attrs.Bool("display") {
				s.write("$$\n" + latex + "\n$$")
				s.closeBlock(n)
				return
			}
			s.write("$" + latex + "$")
			closeIfBlock(s, n, parent)
		},
		doc.Youtube: func(s *state, n, parent *doc.Node, _ int) {
			s.write("[YouTube Video](" + n.Attrs.String("src") + ")")
			closeIfBlock(s, n, parent)
		},
		doc.Text: func(s *state, n, _ *doc.Node, _ int) {
			s.text(n.Text, true)
		},
		doc.HardBreak: func(s *state, _, parent *doc.Node, index int) {
			if parent != nil && index == len(parent.Content)-1 {
				return
			}
			s.write("\n")
		},
	}
}

// closeIfBlock closes n when it sits directly in a block container rather
// than inside a textblock.
func closeIfBlock(s *state, n, parent *doc.Node) {
	if parent == nil || !parent.Type.IsTextblock() {
		s.closeBlock(n)
	}
}

func renderTable(s *state, n, _ *doc.Node, _ int) {
	for i, row := range n.Content {
		if i > 0 {
			s.ensureNewLine()
		}
		s.write(rowLine(row))
		if i == 0 && row.FirstChild() != nil && row.FirstChild().Type == doc.TableHeader {
			s.ensureNewLine()
			s.write(separatorLine(row.ChildCount()))
		}
	}
	s.closeBlock(n)
}

func renderRow(s *state, n, _ *doc.Node, _ int) {
	s.write(rowLine(n))
	s.closeBlock(n)
}

func renderCell(s *state, n, _ *doc.Node, _ int) {
	s.renderContent(n)
}

// rowLine renders a row as "| a | b |" using the flattened text of each
// cell. Inline marks inside cells are dropped.
func rowLine(row *doc.Node) string {
	var b strings.Builder
	for i, cell := range row.Content {
		if i == 0 {
			b.WriteString("| ")
		} else {
			b.WriteString(" | ")
		}
		b.WriteString(cellText(cell))
	}
	b.WriteString(" |")
	return b.String()
}

func separatorLine(columns int) string {
	var b strings.Builder
	for i := 0; i < columns; i++ {
		if i == 0 {
			b.WriteString("| ")
		} else {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |")
	return b.String()
}

func cellText(cell *doc.Node) string {
	parts := make([]string, 0, len(cell.Content))
	for _, block := range cell.Content {
		if t := strings.TrimSpace(block.TextContent()); t != "" {
			parts = append(parts, t)
		}
	}
	text := strings.Join(parts, " ")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ReplaceAll(text, "|", `\|`)
}

// codeFence returns a backtick fence longer than any backtick run in text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// ---------------------------------------------------------------------------
// Marks
// ---------------------------------------------------------------------------

func defaultMarks() map[doc.MarkType]markSpec {
	return map[doc.MarkType]markSpec{
		doc.Link: {
			open: literal("["),
			close: func(m doc.Mark, _ *doc.Node) string {
				title := ""
				if t := m.Attrs.String("title"); t != "" {
					title = ` "` + esc(t, false) + `"`
				}
				return "](" + esc(m.Attrs.String("href"), false) + title + ")"
			},
		},
		doc.TextStyle: {
			open: func(m doc.Mark, _ *doc.Node) string {
				var open string
				if c := m.Attrs.String("color"); c != "" {
					open += fmt.Sprintf(`<span style="color: %s">`, c)
				}
				if c := m.Attrs.String("backgroundColor"); c != "" {
					open += fmt.Sprintf(`<span style="background-color: %s">`, c)
				}
				return open
			},
			close: func(m doc.Mark, _ *doc.Node) string {
				var close string
				if m.Attrs.String("backgroundColor") != "" {
					close += "</span>"
				}
				if m.Attrs.String("color") != "" {
					close += "</span>"
				}
				return close
			},
		},
		doc.Highlight:   {open: literal("=="), close: literal("=="), expelWhitespace: true},
		doc.Bold:        {open: literal("**"), close: literal("**"), expelWhitespace: true},
		doc.Italic:      {open: literal("*"), close: literal("*"), expelWhitespace: true},
		doc.Underline:   {open: literal("<u>"), close: literal("</u>")},
		doc.Strike:      {open: literal("~~"), close: literal("~~"), expelWhitespace: true},
		doc.Subscript:   {open: literal("~"), close: literal("~")},
		doc.Superscript: {open: literal("^"), close: literal("^")},
		doc.Code: {
			open:     codeOpen,
			close:    codeClose,
			noEscape: true,
		},
	}
}

// codeDelims returns a backtick run longer than any run inside the code
// text and whether the text needs a space between it and the delimiters.
func codeDelims(n *doc.Node) (string, bool) {
	if n == nil {
		return "`", false
	}
	longest, run := 0, 0
	for _, r := range n.Text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	pad := strings.HasPrefix(n.Text, "`") || strings.HasSuffix(n.Text, "`")
	return strings.Repeat("`", longest+1), pad
}

func codeOpen(_ doc.Mark, n *doc.Node) string {
	ticks, pad := codeDelims(n)
	if pad {
		return ticks + " "
	}
	return ticks
}

func codeClose(_ doc.Mark, n *doc.Node) string {
	ticks, pad := codeDelims(n)
	if pad {
		return " " + ticks
	}
	return ticks
}
