package doc

import (
	"errors"
	"fmt"
)

// Sentinel errors for schema checks.
var (
	ErrSchemaUnavailable = errors.New("node type not supported by schema")
	ErrInvalidContent    = errors.New("invalid node content")
)

// Schema describes which node types a host supports and the content model
// each of them enforces.
type Schema struct {
	supported [numNodeTypes]bool
}

// DefaultSchema returns a schema supporting every node type.
func DefaultSchema() *Schema {
	return NewSchema(NodeTypes()...)
}

// NewSchema returns a schema supporting only the given node types.
// The doc and text types are always supported.
func NewSchema(types ...NodeType) *Schema {
	s := &Schema{}
	s.supported[Doc] = true
	s.supported[Text] = true
	for _, t := range types {
		if t.Valid() {
			s.supported[t] = true
		}
	}
	return s
}

// Supports returns an error wrapping ErrSchemaUnavailable naming the first
// type the schema lacks.
func (s *Schema) Supports(types ...NodeType) error {
	for _, t := range types {
		if !t.Valid() || !s.supported[t] {
			return fmt.Errorf("%w: %s", ErrSchemaUnavailable, t)
		}
	}
	return nil
}

// isBlock reports whether t may appear where the content model says "block".
func isBlock(t NodeType) bool {
	switch t {
	case Paragraph, Heading, Blockquote, BulletList, OrderedList, TaskList,
		Image, Table, Youtube, Details, CodeBlock, HorizontalRule, Mathematics:
		return true
	}
	return false
}

// isInlineContent reports whether t may appear inside a textblock.
func isInlineContent(t NodeType) bool {
	switch t {
	case Text, HardBreak, Image, Mathematics:
		return true
	}
	return false
}

// Allows reports whether a node of type child may be a direct child of a
// node of type parent, ignoring positional rules.
func (s *Schema) Allows(parent, child NodeType) bool {
	if !s.supported[parent] || !s.supported[child] {
		return false
	}
	switch parent {
	case Doc, Blockquote, TableCell, TableHeader, DetailsContent:
		return isBlock(child)
	case ListItem, TaskItem:
		return isBlock(child)
	case Paragraph, Heading, DetailsSummary:
		return isInlineContent(child)
	case CodeBlock:
		return child == Text
	case BulletList, OrderedList:
		return child == ListItem
	case TaskList:
		return child == TaskItem
	case Table:
		return child == TableRow
	case TableRow:
		return child == TableCell || child == TableHeader
	case Details:
		return child == DetailsSummary || child == DetailsContent
	}
	return false
}

// ValidContent reports whether content is an acceptable child sequence for
// a node of type parent, including positional and cardinality rules.
func (s *Schema) ValidContent(parent NodeType, content []*Node) error {
	if !s.supported[parent] {
		return fmt.Errorf("%w: %s", ErrSchemaUnavailable, parent)
	}
	if parent.IsLeaf() || parent == Text {
		if len(content) > 0 {
			return fmt.Errorf("%w: %s cannot hold content", ErrInvalidContent, parent)
		}
		return nil
	}
	for _, c := range content {
		if !s.Allows(parent, c.Type) {
			return fmt.Errorf("%w: %s inside %s", ErrInvalidContent, c.Type, parent)
		}
	}

	switch parent {
	case Doc, Blockquote, TableCell, TableHeader, DetailsContent,
		BulletList, OrderedList, TaskList, Table, TableRow:
		if len(content) == 0 {
			return fmt.Errorf("%w: %s requires at least one child", ErrInvalidContent, parent)
		}
	case ListItem, TaskItem:
		if len(content) == 0 || content[0].Type != Paragraph {
			return fmt.Errorf("%w: %s must start with a paragraph", ErrInvalidContent, parent)
		}
	case Details:
		if len(content) != 2 || content[0].Type != DetailsSummary || content[1].Type != DetailsContent {
			return fmt.Errorf("%w: details needs a summary followed by content", ErrInvalidContent)
		}
	}

	if parent == Table {
		for _, cell := range content[0].Content {
			if cell.Type != TableHeader {
				return fmt.Errorf("%w: first table row must contain only header cells", ErrInvalidContent)
			}
		}
	}
	return nil
}

// Validate checks node and its whole subtree against the schema.
func (s *Schema) Validate(n *Node) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidContent)
	}
	if n.Type != Text && len(n.Marks) > 0 {
		return fmt.Errorf("%w: marks on %s", ErrInvalidContent, n.Type)
	}
	if err := s.ValidContent(n.Type, n.Content); err != nil {
		return err
	}
	for _, c := range n.Content {
		if err := s.Validate(c); err != nil {
			return err
		}
	}
	return nil
}
