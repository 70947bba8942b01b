// Package transform applies atomic, copy-on-write edits to a document tree.
//
// Positions follow the usual flat position model: every text rune and every
// leaf node occupies one position, and every other node adds one position
// for its opening and one for its closing token. A transaction never
// mutates the tree it started from; each step produces a new root that
// shares untouched subtrees with the previous one.
package transform

import (
	"fmt"

	"github.com/alnah/go-mdinterop/internal/detect"
	"github.com/alnah/go-mdinterop/internal/doc"
)

// Selection is a range of document positions with From <= To.
type Selection struct {
	From int
	To   int
}

// NewSelection returns the selection between a and b in either order.
func NewSelection(a, b int) Selection {
	if a > b {
		a, b = b, a
	}
	return Selection{From: a, To: b}
}

// Caret returns an empty selection at pos.
func Caret(pos int) Selection {
	return Selection{From: pos, To: pos}
}

// Empty reports whether the selection is a caret.
func (s Selection) Empty() bool {
	return s.From == s.To
}

// Step is one applied replacement.
type Step struct {
	From    int
	To      int
	Content []*doc.Node
	Map     StepMap
}

// Transaction accumulates steps against a document.
// After the first failing step every later call is a no-op and Err
// reports the failure; the caller must discard the transaction.
type Transaction struct {
	Before    *doc.Node
	Doc       *doc.Node
	Steps     []Step
	Mapping   Mapping
	Selection Selection

	// Construct names the pasted construct that produced the transaction.
	Construct detect.Construct

	schema *doc.Schema
	err    error
}

// New starts a transaction on root with the given selection.
// A nil schema means doc.DefaultSchema.
func New(root *doc.Node, sel Selection, schema *doc.Schema) *Transaction {
	if schema == nil {
		schema = doc.DefaultSchema()
	}
	return &Transaction{
		Before:    root,
		Doc:       root,
		Selection: NewSelection(sel.From, sel.To),
		schema:    schema,
	}
}

// Err returns the error of the first failed step.
func (tr *Transaction) Err() error {
	return tr.err
}

// DocChanged reports whether any step was applied.
func (tr *Transaction) DocChanged() bool {
	return len(tr.Steps) > 0
}

// ReplaceWith replaces the range from..to with block nodes.
func (tr *Transaction) ReplaceWith(from, to int, nodes ...*doc.Node) *Transaction {
	if tr.err == nil {
		_, tr.err = tr.replace(from, to, nodes)
	}
	return tr
}

// Insert inserts block nodes at pos, splitting a textblock when pos is
// inside one.
func (tr *Transaction) Insert(pos int, nodes ...*doc.Node) *Transaction {
	return tr.ReplaceWith(pos, pos, nodes...)
}

// ReplaceSelection replaces the current selection with nodes. The first
// node replaces the selection; each further node is inserted directly
// after the previous one, advancing the insert position by the previous
// node's size.
func (tr *Transaction) ReplaceSelection(nodes ...*doc.Node) *Transaction {
	if tr.err != nil {
		return tr
	}
	if len(nodes) == 0 {
		tr.err = ErrEmptyFragment
		return tr
	}

	pos, err := tr.replace(tr.Selection.From, tr.Selection.To, nodes[:1])
	if err != nil {
		tr.err = err
		return tr
	}
	prev := nodes[0]
	for _, n := range nodes[1:] {
		pos += prev.NodeSize()
		if _, err := tr.replace(pos, pos, []*doc.Node{n}); err != nil {
			tr.err = err
			return tr
		}
		prev = n
	}
	return tr
}

// endpoint is one side of a replace range expressed relative to the
// container whose children are being replaced.
type endpoint struct {
	rp       *ResolvedPos
	depth    int // container depth
	index    int // child index in the container
	inText   bool
	offset   int // offset inside the textblock when inText
	blockPos int // before (from side) or after (to side) the textblock
}

func resolveEndpoint(root *doc.Node, pos int, toSide bool) (endpoint, error) {
	rp, err := Resolve(root, pos)
	if err != nil {
		return endpoint{}, err
	}
	d := rp.Depth()
	if !rp.InTextblock() {
		return endpoint{rp: rp, depth: d, index: rp.Index(d)}, nil
	}
	if d == 0 {
		return endpoint{}, fmt.Errorf("%w: root is a textblock", ErrUnsupportedRange)
	}
	ep := endpoint{
		rp:       rp,
		depth:    d - 1,
		index:    rp.Index(d - 1),
		inText:   true,
		offset:   rp.ParentOffset(),
		blockPos: rp.Before(d),
	}
	if toSide {
		ep.blockPos = rp.After(d)
	}
	return ep, nil
}

// replace applies one replace step and returns the position where the
// first inserted node starts.
func (tr *Transaction) replace(from, to int, nodes []*doc.Node) (int, error) {
	if len(nodes) == 0 {
		return 0, ErrEmptyFragment
	}
	if from > to {
		return 0, fmt.Errorf("%w: from %d after to %d", ErrUnsupportedRange, from, to)
	}
	for _, n := range nodes {
		if err := tr.schema.Validate(n); err != nil {
			return 0, err
		}
	}

	left, err := resolveEndpoint(tr.Doc, from, false)
	if err != nil {
		return 0, err
	}
	right, err := resolveEndpoint(tr.Doc, to, true)
	if err != nil {
		return 0, err
	}
	if left.depth != right.depth || left.rp.Start(left.depth) != right.rp.Start(right.depth) {
		return 0, fmt.Errorf("%w: %d and %d are in different containers", ErrUnsupportedRange, from, to)
	}

	container := left.rp.Node(left.depth)
	content := make([]*doc.Node, 0, len(container.Content)+len(nodes)+1)

	regionStart, leftTok := from, 0
	if left.inText {
		block := container.Content[left.index]
		content = append(content, container.Content[:left.index]...)
		if left.offset > 0 {
			content = append(content, block.WithContent(cutInline(block.Content, 0, left.offset)))
			leftTok = 1
		} else {
			regionStart = left.blockPos
		}
	} else {
		content = append(content, container.Content[:left.index]...)
	}

	blocksSize := 0
	for _, n := range nodes {
		blocksSize += n.NodeSize()
	}
	content = append(content, nodes...)

	regionEnd, rightTok := to, 0
	if right.inText {
		block := container.Content[right.index]
		if size := block.ContentSize(); right.offset < size {
			content = append(content, block.WithContent(cutInline(block.Content, right.offset, size)))
			rightTok = 1
		} else {
			regionEnd = right.blockPos
		}
		content = append(content, container.Content[right.index+1:]...)
	} else {
		content = append(content, container.Content[right.index:]...)
	}

	if err := tr.schema.ValidContent(container.Type, content); err != nil {
		return 0, err
	}

	tr.Doc = rebuild(left.rp, left.depth, container.WithContent(content))
	sm := StepMap{
		Start:   regionStart,
		OldSize: regionEnd - regionStart,
		NewSize: leftTok + blocksSize + rightTok,
	}
	tr.Steps = append(tr.Steps, Step{From: from, To: to, Content: nodes, Map: sm})
	tr.Mapping.Append(sm)

	insertAt := regionStart + leftTok
	tr.Selection = Caret(insertAt + blocksSize)
	return insertAt, nil
}

// rebuild replaces the node at depth d on rp's path and copies every
// ancestor above it.
func rebuild(rp *ResolvedPos, d int, replacement *doc.Node) *doc.Node {
	child := replacement
	for i := d - 1; i >= 0; i-- {
		parent := rp.Node(i).Copy()
		parent.Content[rp.Index(i)] = child
		child = parent
	}
	return child
}

// cutInline returns the inline nodes covering content offsets [from, to).
func cutInline(content []*doc.Node, from, to int) []*doc.Node {
	var out []*doc.Node
	pos := 0
	for _, c := range content {
		size := c.NodeSize()
		end := pos + size
		if end > from && pos < to {
			if c.IsText() {
				out = append(out, c.Cut(max(from-pos, 0), min(to-pos, size)))
			} else {
				out = append(out, c)
			}
		}
		pos = end
	}
	return out
}
