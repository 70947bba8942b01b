package doc

// NodeType identifies the kind of a document node.
// The set is closed: every switch over NodeType in this module handles each member.
type NodeType uint8

// Node types, named after their editor counterparts.
const (
	Doc NodeType = iota
	Paragraph
	Heading
	Blockquote
	BulletList
	OrderedList
	TaskList
	ListItem
	TaskItem
	Image
	Table
	TableRow
	TableCell
	TableHeader
	Text
	HardBreak
	Mathematics
	Youtube
	Details
	DetailsSummary
	DetailsContent
	CodeBlock
	HorizontalRule

	numNodeTypes
)

var nodeTypeNames = [numNodeTypes]string{
	Doc:            "doc",
	Paragraph:      "paragraph",
	Heading:        "heading",
	Blockquote:     "blockquote",
	BulletList:     "bulletList",
	OrderedList:    "orderedList",
	TaskList:       "taskList",
	ListItem:       "listItem",
	TaskItem:       "taskItem",
	Image:          "image",
	Table:          "table",
	TableRow:       "tableRow",
	TableCell:      "tableCell",
	TableHeader:    "tableHeader",
	Text:           "text",
	HardBreak:      "hardBreak",
	Mathematics:    "mathematics",
	Youtube:        "youtube",
	Details:        "details",
	DetailsSummary: "detailsSummary",
	DetailsContent: "detailsContent",
	CodeBlock:      "codeBlock",
	HorizontalRule: "horizontalRule",
}

// String returns the editor name of the node type.
func (t NodeType) String() string {
	if t >= numNodeTypes {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// Valid reports whether t is a member of the closed node type set.
func (t NodeType) Valid() bool {
	return t < numNodeTypes
}

// ParseNodeType maps an editor name back to its NodeType.
func ParseNodeType(name string) (NodeType, bool) {
	for i, n := range nodeTypeNames {
		if n == name {
			return NodeType(i), true
		}
	}
	return 0, false
}

// NodeTypes returns every node type in declaration order.
func NodeTypes() []NodeType {
	types := make([]NodeType, 0, numNodeTypes)
	for t := NodeType(0); t < numNodeTypes; t++ {
		types = append(types, t)
	}
	return types
}

// IsLeaf reports whether nodes of this type never hold content.
func (t NodeType) IsLeaf() bool {
	switch t {
	case Image, HardBreak, Youtube, HorizontalRule, Mathematics:
		return true
	}
	return false
}

// IsTextblock reports whether nodes of this type hold inline content.
func (t NodeType) IsTextblock() bool {
	switch t {
	case Paragraph, Heading, DetailsSummary, CodeBlock:
		return true
	}
	return false
}

// IsInline reports whether nodes of this type live inside textblocks.
func (t NodeType) IsInline() bool {
	return t == Text || t == HardBreak
}

// IsList reports whether t is one of the three list container types.
func (t NodeType) IsList() bool {
	return t == BulletList || t == OrderedList || t == TaskList
}

// MarkType identifies an inline annotation.
//
// Declaration order is the collation order used when several marks cover the
// same run: earlier types open first and close last.
type MarkType uint8

// Mark types in collation order.
const (
	Link MarkType = iota
	TextStyle
	Highlight
	Bold
	Italic
	Underline
	Strike
	Subscript
	Superscript
	Code

	numMarkTypes
)

var markTypeNames = [numMarkTypes]string{
	Link:        "link",
	TextStyle:   "textStyle",
	Highlight:   "highlight",
	Bold:        "bold",
	Italic:      "italic",
	Underline:   "underline",
	Strike:      "strike",
	Subscript:   "subscript",
	Superscript: "superscript",
	Code:        "code",
}

// String returns the editor name of the mark type.
func (t MarkType) String() string {
	if t >= numMarkTypes {
		return "unknown"
	}
	return markTypeNames[t]
}

// Valid reports whether t is a member of the closed mark type set.
func (t MarkType) Valid() bool {
	return t < numMarkTypes
}

// ParseMarkType maps an editor name back to its MarkType.
func ParseMarkType(name string) (MarkType, bool) {
	for i, n := range markTypeNames {
		if n == name {
			return MarkType(i), true
		}
	}
	return 0, false
}

// MarkTypes returns every mark type in collation order.
func MarkTypes() []MarkType {
	types := make([]MarkType, 0, numMarkTypes)
	for t := MarkType(0); t < numMarkTypes; t++ {
		types = append(types, t)
	}
	return types
}
