package doc

import (
	"strings"
	"unicode/utf8"
)

// Attrs holds scalar node or mark attributes.
// Values are string, bool, int, float64 or nil.
type Attrs map[string]any

// String returns the string attribute at key, or "" when missing or not a string.
func (a Attrs) String(key string) string {
	if a == nil {
		return ""
	}
	s, _ := a[key].(string)
	return s
}

// Int returns the integer attribute at key, or def when missing.
// JSON decoding yields float64, so both numeric forms are accepted.
func (a Attrs) Int(key string, def int) int {
	if a == nil {
		return def
	}
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns the boolean attribute at key, or false when missing.
func (a Attrs) Bool(key string) bool {
	if a == nil {
		return false
	}
	b, _ := a[key].(bool)
	return b
}

// Equal reports whether a and b hold the same keys and values.
// Numeric values compare by integer value so decoded and built attrs match.
func (a Attrs) Equal(b Attrs) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !scalarEqual(av, bv) {
			return false
		}
	}
	return true
}

func scalarEqual(a, b any) bool {
	an, aNum := toFloat(a)
	bn, bNum := toFloat(b)
	if aNum && bNum {
		return an == bn
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func (a Attrs) clone() Attrs {
	if a == nil {
		return nil
	}
	c := make(Attrs, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

// Node is one element of the document tree.
// Text nodes carry Text and Marks; every other node carries Content.
type Node struct {
	Type    NodeType
	Attrs   Attrs
	Content []*Node
	Marks   []Mark
	Text    string
}

// NewNode creates a non-text node.
func NewNode(t NodeType, attrs Attrs, content ...*Node) *Node {
	return &Node{Type: t, Attrs: attrs, Content: content}
}

// NewText creates a text node. Marks are stored in collation order.
func NewText(text string, marks ...Mark) *Node {
	return &Node{Type: Text, Text: text, Marks: SortMarks(marks)}
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Type == Text
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.Content)
}

// Child returns the child at index i.
func (n *Node) Child(i int) *Node {
	return n.Content[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.Content) == 0 {
		return nil
	}
	return n.Content[0]
}

// NodeSize returns the size of the node in the position model:
// rune count for text, 1 for leaves, content size plus 2 otherwise.
func (n *Node) NodeSize() int {
	if n.Type == Text {
		return utf8.RuneCountInString(n.Text)
	}
	if n.Type.IsLeaf() {
		return 1
	}
	return n.ContentSize() + 2
}

// ContentSize returns the summed size of the node's children.
func (n *Node) ContentSize() int {
	size := 0
	for _, c := range n.Content {
		size += c.NodeSize()
	}
	return size
}

// TextContent concatenates the text of all descendant text nodes.
func (n *Node) TextContent() string {
	if n.Type == Text {
		return n.Text
	}
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	for _, c := range n.Content {
		if c.Type == Text {
			b.WriteString(c.Text)
			continue
		}
		c.appendText(b)
	}
}

// Copy returns a shallow copy of n whose content slice can be modified
// without affecting n. Children are shared.
func (n *Node) Copy() *Node {
	c := *n
	if n.Content != nil {
		c.Content = append([]*Node(nil), n.Content...)
	}
	c.Attrs = n.Attrs.clone()
	return &c
}

// WithContent returns a copy of n holding the given children.
func (n *Node) WithContent(content []*Node) *Node {
	c := *n
	c.Content = content
	return &c
}

// Cut returns a copy of the text node restricted to runes [from, to).
func (n *Node) Cut(from, to int) *Node {
	runes := []rune(n.Text)
	c := *n
	c.Text = string(runes[from:to])
	return &c
}

// Equal reports deep equality of two trees.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type || n.Text != o.Text || !n.Attrs.Equal(o.Attrs) {
		return false
	}
	if !SameMarkSet(n.Marks, o.Marks) || len(n.Content) != len(o.Content) {
		return false
	}
	for i := range n.Content {
		if !n.Content[i].Equal(o.Content[i]) {
			return false
		}
	}
	return true
}
