package mdserial

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-mdinterop/internal/doc"
)

var (
	lineStartMarker = regexp.MustCompile(`^(\+ |[\-*>])`)
	lineStartATX    = regexp.MustCompile(`^(\s*)(#{1,6})(\s|$)`)
	lineStartNumber = regexp.MustCompile(`^(\s*\d+)\.\s`)
	leadingSpace    = regexp.MustCompile(`^(\s*)([\s\S]*)$`)
	trailingSpace   = regexp.MustCompile(`^([\s\S]*?)(\s*)$`)
)

// state accumulates output while walking a tree.
//
// A finished block is not terminated immediately: closed remembers it and
// the next write emits the separating newlines, so the last block of the
// document never gets a trailing blank line.
type state struct {
	ser          *Serializer
	out          bytes.Buffer
	delim        string
	closed       *doc.Node
	atBlockStart bool
	inTightList  bool
}

func (s *state) atBlank() bool {
	n := s.out.Len()
	return n == 0 || s.out.Bytes()[n-1] == '\n'
}

// flushClose terminates a closed block with size-1 blank lines.
func (s *state) flushClose(size int) {
	if s.closed == nil {
		return
	}
	if !s.atBlank() {
		s.out.WriteByte('\n')
	}
	if size > 1 {
		delim := strings.TrimRightFunc(s.delim, unicode.IsSpace)
		for i := 1; i < size; i++ {
			s.out.WriteString(delim)
			s.out.WriteByte('\n')
		}
	}
	s.closed = nil
}

func (s *state) ensureNewLine() {
	if !s.atBlank() {
		s.out.WriteByte('\n')
	}
}

// write flushes any pending block, prefixes the current delimiter at the
// start of a line and appends content.
func (s *state) write(content string) {
	s.flushClose(2)
	if s.delim != "" && s.atBlank() {
		s.out.WriteString(s.delim)
	}
	s.out.WriteString(content)
}

func (s *state) closeBlock(n *doc.Node) {
	s.closed = n
}

// wrapBlock renders f with delim prefixed to every line it produces.
// firstDelim replaces delim on the first line when not empty.
func (s *state) wrapBlock(delim, firstDelim string, n *doc.Node, f func()) {
	old := s.delim
	if firstDelim != "" {
		s.write(firstDelim)
	} else {
		s.write(delim)
	}
	s.delim += delim
	f()
	s.delim = old
	s.closeBlock(n)
}

// text writes str line by line, escaping markdown syntax when escape is set.
func (s *state) text(str string, escape bool) {
	lines := strings.Split(str, "\n")
	for i, line := range lines {
		s.write("")
		if !escape && strings.HasPrefix(line, "[") && s.endsWithBang() {
			s.out.Truncate(s.out.Len() - 1)
			s.out.WriteString(`\!`)
		}
		if escape {
			s.out.WriteString(esc(line, s.atBlockStart))
		} else {
			s.out.WriteString(line)
		}
		if i != len(lines)-1 {
			s.out.WriteByte('\n')
		}
	}
}

// endsWithBang reports whether the output ends in an unescaped '!', which
// would turn a following '[' into image syntax.
func (s *state) endsWithBang() bool {
	b := s.out.Bytes()
	n := len(b)
	return n > 0 && b[n-1] == '!' && (n == 1 || b[n-2] != '\\')
}

func (s *state) render(n, parent *doc.Node, index int) {
	h, ok := s.ser.nodes[n.Type]
	if !ok {
		s.renderContent(n)
		return
	}
	h(s, n, parent, index)
}

func (s *state) renderContent(parent *doc.Node) {
	for i, c := range parent.Content {
		s.render(c, parent, i)
	}
}

// renderInline renders the inline children of parent, opening and closing
// marks so that a run of equal marks stays open across children.
func (s *state) renderInline(parent *doc.Node) {
	s.atBlockStart = true
	var active []doc.Mark
	trailing := ""

	progress := func(node *doc.Node, index int) {
		var marks []doc.Mark
		if node != nil {
			marks = doc.SortMarks(node.Marks)
		}

		leading := trailing
		trailing = ""

		if node != nil && node.IsText() && s.expels(marks, func(m doc.Mark) bool { return !inSet(m, active) }) {
			parts := leadingSpace.FindStringSubmatch(node.Text)
			if parts[1] != "" {
				leading += parts[1]
				node = withText(node, parts[2])
				if node == nil {
					marks = active
				}
			}
		}
		if node != nil && node.IsText() && s.expels(marks, func(m doc.Mark) bool {
			return index == len(parent.Content)-1 || !inSet(m, parent.Content[index+1].Marks)
		}) {
			parts := trailingSpace.FindStringSubmatch(node.Text)
			if parts[2] != "" {
				trailing = parts[2]
				node = withText(node, parts[1])
				if node == nil {
					marks = active
				}
			}
		}

		var inner *doc.Mark
		if len(marks) > 0 {
			inner = &marks[len(marks)-1]
		}
		noEsc := inner != nil && s.ser.marks[inner.Type].noEscape
		n := len(marks)
		if noEsc {
			n--
		}

		keep := 0
		for keep < min(len(active), n) && marks[keep].Equal(active[keep]) {
			keep++
		}
		for keep < len(active) {
			m := active[len(active)-1]
			active = active[:len(active)-1]
			s.text(s.markString(m, false, node), false)
		}

		if leading != "" {
			s.text(leading, true)
		}

		if node == nil {
			return
		}
		for len(active) < n {
			m := marks[len(active)]
			active = append(active, m)
			s.text(s.markString(m, true, node), false)
			s.atBlockStart = false
		}
		if noEsc && node.IsText() {
			s.text(s.markString(*inner, true, node)+node.Text+s.markString(*inner, false, node), false)
		} else {
			s.render(node, parent, index)
		}
		s.atBlockStart = false
	}

	for i, c := range parent.Content {
		progress(c, i)
	}
	progress(nil, len(parent.Content))
	s.atBlockStart = false
}

// renderList renders each child of n as a list item prefixed by marker(i).
// Lists are tight: items are separated by a single newline.
func (s *state) renderList(n *doc.Node, delim string, marker func(i int) string) {
	if s.closed != nil && s.closed.Type == n.Type {
		s.flushClose(3)
	} else if s.inTightList {
		s.flushClose(1)
	}

	prev := s.inTightList
	s.inTightList = true
	for i, c := range n.Content {
		if i > 0 {
			s.flushClose(1)
		}
		s.wrapBlock(delim, marker(i), n, func() { s.render(c, n, i) })
	}
	s.inTightList = prev
}

func (s *state) expels(marks []doc.Mark, pred func(doc.Mark) bool) bool {
	for _, m := range marks {
		if s.ser.marks[m.Type].expelWhitespace && pred(m) {
			return true
		}
	}
	return false
}

func (s *state) markString(m doc.Mark, open bool, node *doc.Node) string {
	spec, ok := s.ser.marks[m.Type]
	if !ok {
		return ""
	}
	if open {
		return spec.open(m, node)
	}
	return spec.close(m, node)
}

func inSet(m doc.Mark, set []doc.Mark) bool {
	for _, o := range set {
		if m.Equal(o) {
			return true
		}
	}
	return false
}

func withText(n *doc.Node, text string) *doc.Node {
	if text == "" {
		return nil
	}
	c := *n
	c.Text = text
	return &c
}

// esc backslash-escapes inline markdown syntax in str. At the start of a
// block it also escapes characters that would open a list, quote or heading.
func esc(str string, startOfLine bool) string {
	var b strings.Builder
	b.Grow(len(str))
	for i, r := range str {
		switch r {
		case '`', '*', '\\', '~', '[', ']':
			b.WriteByte('\\')
		case '_':
			if !intraword(str, i) {
				b.WriteByte('\\')
			}
		}
		b.WriteRune(r)
	}
	out := b.String()
	if startOfLine {
		out = lineStartMarker.ReplaceAllString(out, `\$1`)
		out = lineStartATX.ReplaceAllString(out, `$1\$2$3`)
		out = lineStartNumber.ReplaceAllString(out, `$1\. `)
	}
	return out
}

// intraword reports whether the underscore at byte i sits between two word
// characters.
func intraword(str string, i int) bool {
	if i == 0 || i+1 >= len(str) {
		return false
	}
	prev, _ := utf8.DecodeLastRuneInString(str[:i])
	next, _ := utf8.DecodeRuneInString(str[i+1:])
	return isWord(prev) && isWord(next)
}

func isWord(r rune) bool {
	return r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
