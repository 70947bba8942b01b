package transform

import (
	"fmt"

	"github.com/alnah/go-mdinterop/internal/doc"
)

type level struct {
	node  *doc.Node
	index int
	start int
}

// ResolvedPos is a document position with its ancestor path.
// Depth 0 is the root. A position strictly inside a textblock resolves
// to that textblock; any other position resolves to the deepest node
// whose child boundary it sits on.
type ResolvedPos struct {
	Pos  int
	path []level
}

// Resolve locates pos in root.
func Resolve(root *doc.Node, pos int) (*ResolvedPos, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: nil document", ErrPositionOutOfRange)
	}
	if pos < 0 || pos > root.ContentSize() {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrPositionOutOfRange, pos, root.ContentSize())
	}

	rp := &ResolvedPos{Pos: pos}
	node, start := root, 0
	for {
		if node.Type.IsTextblock() {
			rp.path = append(rp.path, level{node: node, index: inlineIndex(node, pos-start), start: start})
			return rp, nil
		}

		idx, childStart := 0, start
		descended := false
		for idx < len(node.Content) {
			c := node.Content[idx]
			end := childStart + c.NodeSize()
			if pos == childStart {
				break
			}
			if pos < end {
				if c.IsText() || c.Type.IsLeaf() {
					return nil, fmt.Errorf("%w: %d inside %s", ErrPositionOutOfRange, pos, c.Type)
				}
				rp.path = append(rp.path, level{node: node, index: idx, start: start})
				node, start = c, childStart+1
				descended = true
				break
			}
			idx++
			childStart = end
		}
		if !descended {
			rp.path = append(rp.path, level{node: node, index: idx, start: start})
			return rp, nil
		}
	}
}

func inlineIndex(n *doc.Node, offset int) int {
	pos := 0
	for i, c := range n.Content {
		end := pos + c.NodeSize()
		if offset < end {
			return i
		}
		pos = end
	}
	return len(n.Content)
}

// Depth returns the depth of the parent node.
func (r *ResolvedPos) Depth() int {
	return len(r.path) - 1
}

// Node returns the ancestor at depth d.
func (r *ResolvedPos) Node(d int) *doc.Node {
	return r.path[d].node
}

// Parent returns the innermost node containing the position.
func (r *ResolvedPos) Parent() *doc.Node {
	return r.path[len(r.path)-1].node
}

// Index returns the child index the position falls at inside the node at depth d.
func (r *ResolvedPos) Index(d int) int {
	return r.path[d].index
}

// Start returns the position where the content of the node at depth d starts.
func (r *ResolvedPos) Start(d int) int {
	return r.path[d].start
}

// ParentOffset returns the offset of the position inside its parent's content.
func (r *ResolvedPos) ParentOffset() int {
	return r.Pos - r.Start(r.Depth())
}

// Before returns the position directly before the node at depth d (d >= 1).
func (r *ResolvedPos) Before(d int) int {
	return r.Start(d) - 1
}

// After returns the position directly after the node at depth d (d >= 1).
func (r *ResolvedPos) After(d int) int {
	return r.Before(d) + r.Node(d).NodeSize()
}

// InTextblock reports whether the position points into inline content.
func (r *ResolvedPos) InTextblock() bool {
	return r.Parent().Type.IsTextblock()
}
