package mdserial

import (
	"testing"

	"github.com/alnah/go-mdinterop/internal/doc"
)

func txt(s string, marks ...doc.Mark) *doc.Node { return doc.NewText(s, marks...) }

func p(content ...*doc.Node) *doc.Node { return doc.NewNode(doc.Paragraph, nil, content...) }

func root(content ...*doc.Node) *doc.Node { return doc.NewNode(doc.Doc, nil, content...) }

func item(content ...*doc.Node) *doc.Node { return doc.NewNode(doc.ListItem, nil, content...) }

func mark(t doc.MarkType) doc.Mark { return doc.NewMark(t, nil) }

func TestEveryTypeHasAHandler(t *testing.T) {
	t.Parallel()

	s := New()
	for _, nt := range doc.NodeTypes() {
		if !s.HasNode(nt) {
			t.Errorf("no handler for node type %s", nt)
		}
	}
	for _, mt := range doc.MarkTypes() {
		if !s.HasMark(mt) {
			t.Errorf("no open/close pair for mark type %s", mt)
		}
	}
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

func TestSerializeBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		node *doc.Node
		want string
	}{
		{
			name: "heading level 3",
			node: doc.NewNode(doc.Heading, doc.Attrs{"level": 3}, txt("Title")),
			want: "### Title",
		},
		{
			name: "empty heading keeps its space",
			node: doc.NewNode(doc.Heading, doc.Attrs{"level": 2}),
			want: "## ",
		},
		{
			name: "paragraphs separated by a blank line",
			node: root(p(txt("a")), p(txt("b"))),
			want: "a\n\nb",
		},
		{
			name: "table with header separator",
			node: doc.NewNode(doc.Table, nil,
				doc.NewNode(doc.TableRow, nil,
					doc.NewNode(doc.TableHeader, nil, p(txt("a"))),
					doc.NewNode(doc.TableHeader, nil, p(txt("b", mark(doc.Bold))))),
				doc.NewNode(doc.TableRow, nil,
					doc.NewNode(doc.TableCell, nil, p(txt("1"))),
					doc.NewNode(doc.TableCell, nil, p(txt("x|y"))))),
			want: "| a | b |\n| --- | --- |\n| 1 | x\\|y |",
		},
		{
			name: "bullet list is tight",
			node: doc.NewNode(doc.BulletList, nil, item(p(txt("a"))), item(p(txt("b")))),
			want: "- a\n- b",
		},
		{
			name: "ordered list pads numbers",
			node: doc.NewNode(doc.OrderedList, doc.Attrs{"start": 9},
				item(p(txt("a"))), item(p(txt("b")))),
			want: " 9. a\n10. b",
		},
		{
			name: "task list",
			node: doc.NewNode(doc.TaskList, nil,
				doc.NewNode(doc.TaskItem, doc.Attrs{"checked": false}, p(txt("todo"))),
				doc.NewNode(doc.TaskItem, doc.Attrs{"checked": true}, p(txt("done")))),
			want: "- [ ] todo\n- [x] done",
		},
		{
			name: "nested list",
			node: doc.NewNode(doc.BulletList, nil,
				item(p(txt("a")), doc.NewNode(doc.BulletList, nil, item(p(txt("b")))))),
			want: "- a\n  - b",
		},
		{
			name: "adjacent lists of the same type stay apart",
			node: root(
				doc.NewNode(doc.BulletList, nil, item(p(txt("a")))),
				doc.NewNode(doc.BulletList, nil, item(p(txt("b"))))),
			want: "- a\n\n\n- b",
		},
		{
			name: "blockquote",
			node: doc.NewNode(doc.Blockquote, nil, p(txt("a")), p(txt("b"))),
			want: "> a\n>\n> b",
		},
		{
			name: "code block",
			node: doc.NewNode(doc.CodeBlock, doc.Attrs{"language": "go"}, txt("x := `1`\n*y*")),
			want: "```go\nx := `1`\n*y*\n```",
		},
		{
			name: "horizontal rule",
			node: root(p(txt("a")), doc.NewNode(doc.HorizontalRule, nil), p(txt("b"))),
			want: "a\n\n---\n\nb",
		},
		{
			name: "block image closes the block",
			node: root(doc.NewNode(doc.Image, doc.Attrs{"src": "a.png", "alt": "A", "title": "t"}), p(txt("b"))),
			want: "![A](a.png \"t\")\n\nb",
		},
		{
			name: "image without title",
			node: p(txt("see "), doc.NewNode(doc.Image, doc.Attrs{"src": "a.png"})),
			want: "see ![](a.png)",
		},
		{
			name: "details",
			node: doc.NewNode(doc.Details, nil,
				doc.NewNode(doc.DetailsSummary, nil, txt("S")),
				doc.NewNode(doc.DetailsContent, nil, p(txt("x")))),
			want: "<details><summary>S</summary>\n\nx\n\n</details>",
		},
		{
			name: "inline math",
			node: p(txt("E = "), doc.NewNode(doc.Mathematics, doc.Attrs{"latex": "mc^2"})),
			want: "E = $mc^2$",
		},
		{
			name: "display math",
			node: root(doc.NewNode(doc.Mathematics, doc.Attrs{"latex": "x", "display": true}), p(txt("y"))),
			want: "$$\nx\n$$\n\ny",
		},
		{
			name: "youtube",
			node: doc.NewNode(doc.Youtube, doc.Attrs{"src": "https://youtu.be/v"}),
			want: "[YouTube Video](https://youtu.be/v)",
		},
		{
			name: "hard break dropped when last",
			node: p(txt("a"), doc.NewNode(doc.HardBreak, nil), txt("b"), doc.NewNode(doc.HardBreak, nil)),
			want: "a\nb",
		},
		{
			name: "hard break inside list keeps indentation",
			node: doc.NewNode(doc.BulletList, nil, item(p(txt("a"), doc.NewNode(doc.HardBreak, nil), txt("b")))),
			want: "- a\n  b",
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Serialize(tt.node); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerializeNil(t *testing.T) {
	t.Parallel()

	if got := New().Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Inline
// ---------------------------------------------------------------------------

func TestSerializeMarks(t *testing.T) {
	t.Parallel()

	link := doc.NewMark(doc.Link, doc.Attrs{"href": "http://x", "title": "T"})

	tests := []struct {
		name string
		node *doc.Node
		want string
	}{
		{"bold", p(txt("x", mark(doc.Bold))), "**x**"},
		{"italic", p(txt("x", mark(doc.Italic))), "*x*"},
		{"strike", p(txt("x", mark(doc.Strike))), "~~x~~"},
		{"underline", p(txt("x", mark(doc.Underline))), "<u>x</u>"},
		{"highlight", p(txt("x", mark(doc.Highlight))), "==x=="},
		{"subscript", p(txt("x", mark(doc.Subscript))), "~x~"},
		{"superscript", p(txt("x", mark(doc.Superscript))), "^x^"},
		{"code is not escaped", p(txt("a*b", mark(doc.Code))), "`a*b`"},
		{"code with backtick", p(txt("a`b", mark(doc.Code))), "``a`b``"},
		{"bold code", p(txt("x", mark(doc.Bold), mark(doc.Code))), "**`x`**"},
		{"link with title", p(txt("site", link)), `[site](http://x "T")`},
		{
			name: "text color",
			node: p(txt("red", doc.NewMark(doc.TextStyle, doc.Attrs{"color": "red"}))),
			want: `<span style="color: red">red</span>`,
		},
		{
			name: "text color and background",
			node: p(txt("x", doc.NewMark(doc.TextStyle, doc.Attrs{"color": "red", "backgroundColor": "blue"}))),
			want: `<span style="color: red"><span style="background-color: blue">x</span></span>`,
		},
		{
			name: "shared marks stay open",
			node: p(txt("a", mark(doc.Bold)), txt("b", mark(doc.Bold), mark(doc.Italic))),
			want: "**a*b***",
		},
		{
			name: "whitespace moves outside marks",
			node: p(txt("hi ", mark(doc.Bold)), txt("there")),
			want: "**hi** there",
		},
		{
			name: "leading whitespace moves outside marks",
			node: p(txt("a"), txt(" b", mark(doc.Italic))),
			want: "a *b*",
		},
		{
			name: "bang before link is escaped",
			node: p(txt("wow!"), txt("site", link)),
			want: `wow\![site](http://x "T")`,
		},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Serialize(tt.node); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMarkOrderIsDeterministic(t *testing.T) {
	t.Parallel()

	s := New()
	a := s.Serialize(p(txt("x", mark(doc.Italic), mark(doc.Strike), mark(doc.Bold))))
	b := s.Serialize(p(txt("x", mark(doc.Bold), mark(doc.Italic), mark(doc.Strike))))

	const want = "***~~x~~***"
	for _, got := range []string{a, b} {
		if got != want {
			t.Errorf("Serialize() = %q, want %q", got, want)
		}
	}
}

// Nodes built as struct literals carry marks in whatever order the caller
// wrote them.
func TestMarkOrderIgnoresSliceOrder(t *testing.T) {
	t.Parallel()

	link := doc.NewMark(doc.Link, doc.Attrs{"href": "http://a"})
	bold, italic := mark(doc.Bold), mark(doc.Italic)
	raw := func(text string, marks ...doc.Mark) *doc.Node {
		return &doc.Node{Type: doc.Text, Text: text, Marks: marks}
	}

	tests := []struct {
		name string
		node *doc.Node
		want string
	}{
		{"bold then link", p(raw("z", bold, link)), "[**z**](http://a)"},
		{"link then bold", p(raw("z", link, bold)), "[**z**](http://a)"},
		{"adjacent runs share marks", p(raw("z", italic, bold), raw("w", bold, italic)), "***zw***"},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Serialize(tt.node); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emphasis chars", "*a* and [b]", `\*a\* and \[b\]`},
		{"intraword underscore kept", "snake_case", "snake_case"},
		{"leading underscore escaped", "_x_", `\_x\_`},
		{"heading marker at block start", "# not heading", `\# not heading`},
		{"bullet marker at block start", "- not item", `\- not item`},
		{"plus marker", "+ not item", `\+ not item`},
		{"quote marker", "> not quote", `\> not quote`},
		{"ordered marker", "1. not item", `1\. not item`},
		{"tilde", "~x~", `\~x\~`},
	}

	s := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Serialize(p(txt(tt.in))); got != tt.want {
				t.Errorf("Serialize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func BenchmarkSerialize(b *testing.B) {
	rows := []*doc.Node{doc.NewNode(doc.TableRow, nil,
		doc.NewNode(doc.TableHeader, nil, p(txt("h1"))),
		doc.NewNode(doc.TableHeader, nil, p(txt("h2"))))}
	for i := 0; i < 20; i++ {
		rows = append(rows, doc.NewNode(doc.TableRow, nil,
			doc.NewNode(doc.TableCell, nil, p(txt("a"))),
			doc.NewNode(doc.TableCell, nil, p(txt("b")))))
	}
	var blocks []*doc.Node
	for i := 0; i < 50; i++ {
		blocks = append(blocks,
			doc.NewNode(doc.Heading, doc.Attrs{"level": 2}, txt("Section")),
			p(txt("Some "), txt("bold", mark(doc.Bold)), txt(" and "), txt("code", mark(doc.Code))),
			doc.NewNode(doc.BulletList, nil, item(p(txt("one"))), item(p(txt("two")))),
		)
	}
	blocks = append(blocks, doc.NewNode(doc.Table, nil, rows...))
	tree := root(blocks...)
	s := New()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Serialize(tree)
	}
}
