package doc

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// Sentinel errors for the JSON codec.
var (
	ErrUnknownNodeType = errors.New("unknown node type")
	ErrUnknownMarkType = errors.New("unknown mark type")
)

// jsonNode is the editor's JSON shape for a node.
type jsonNode struct {
	Type    string         `json:"type"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Content []jsonNode     `json:"content,omitempty"`
	Marks   []jsonMark     `json:"marks,omitempty"`
	Text    string         `json:"text,omitempty"`
}

type jsonMark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// Decode reads one JSON document tree from r.
func Decode(r io.Reader) (*Node, error) {
	var jn jsonNode
	if err := json.NewDecoder(r).Decode(&jn); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return fromJSON(jn)
}

// Unmarshal parses a JSON document tree.
func Unmarshal(data []byte) (*Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return fromJSON(jn)
}

// Marshal encodes a tree in the editor's JSON shape.
func Marshal(n *Node) ([]byte, error) {
	return json.Marshal(toJSON(n))
}

// MarshalIndent is like Marshal with indentation, for human-facing output.
func MarshalIndent(n *Node) ([]byte, error) {
	return json.MarshalIndent(toJSON(n), "", "  ")
}

func fromJSON(jn jsonNode) (*Node, error) {
	t, ok := ParseNodeType(jn.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, jn.Type)
	}

	n := &Node{Type: t, Text: jn.Text}
	if len(jn.Attrs) > 0 {
		n.Attrs = Attrs(jn.Attrs)
	}

	for _, jm := range jn.Marks {
		mt, ok := ParseMarkType(jm.Type)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMarkType, jm.Type)
		}
		var attrs Attrs
		if len(jm.Attrs) > 0 {
			attrs = Attrs(jm.Attrs)
		}
		n.Marks = append(n.Marks, Mark{Type: mt, Attrs: attrs})
	}
	n.Marks = SortMarks(n.Marks)

	for _, jc := range jn.Content {
		child, err := fromJSON(jc)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, child)
	}
	return n, nil
}

func toJSON(n *Node) jsonNode {
	jn := jsonNode{Type: n.Type.String(), Text: n.Text}
	if len(n.Attrs) > 0 {
		jn.Attrs = map[string]any(n.Attrs)
	}
	for _, m := range n.Marks {
		jm := jsonMark{Type: m.Type.String()}
		if len(m.Attrs) > 0 {
			jm.Attrs = map[string]any(m.Attrs)
		}
		jn.Marks = append(jn.Marks, jm)
	}
	for _, c := range n.Content {
		jn.Content = append(jn.Content, toJSON(c))
	}
	return jn
}
