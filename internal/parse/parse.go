// Package parse turns recognized markdown text into intermediate
// representations consumed by the fragment builder.
package parse

import (
	"regexp"
	"strings"
)

// Precompiled patterns.
var (
	taskItem    = regexp.MustCompile(`^[-*+]\s\[([ x])\]\s(.*)`)
	bulletItem  = regexp.MustCompile(`^[-*+]\s(.*)`)
	orderedItem = regexp.MustCompile(`^\d+\.\s(.*)`)

	imageSpan = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	imageURL  = regexp.MustCompile(`^(\S+)(?:\s+"([^"]*)")?$`)

	headingLine   = regexp.MustCompile(`(?m)^(#{1,6})[ \t]+(\S.*)$`)
	closingHashes = regexp.MustCompile(`(^|[ \t]+)#+[ \t]*$`)
)

// TableIR is a parsed pipe table.
// Rows may be shorter or longer than ColumnCount; the builder normalizes them.
type TableIR struct {
	Headers     []string
	Rows        [][]string
	ColumnCount int
}

// ListKind is the flavor of a list item.
type ListKind uint8

// List kinds.
const (
	Bullet ListKind = iota
	Ordered
	Task
)

func (k ListKind) String() string {
	switch k {
	case Ordered:
		return "ordered"
	case Task:
		return "task"
	}
	return "bullet"
}

// ListItemIR is one parsed list line.
// Level is derived from indentation but the builder does not nest by it.
type ListItemIR struct {
	Kind    ListKind
	Content string
	Checked bool
	Level   int
}

// ImageRef is one ![alt](src "title") span.
type ImageRef struct {
	Alt       string
	Src       string
	Title     string
	HasTitle  bool
	FullMatch string
}

// HeadingRef is one ATX heading line.
type HeadingRef struct {
	Level     int
	Content   string
	FullMatch string
}

// Table parses a pipe table. The separator row is skipped without checking
// its alignment markers.
func Table(text string) (TableIR, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	if len(lines) < 2 {
		return TableIR{}, &StructuralError{Construct: "table", Reason: "minimum 2 lines required"}
	}

	headers := splitRow(lines[0])
	if len(headers) == 0 {
		return TableIR{}, &StructuralError{Construct: "table", Reason: "header row has no cells"}
	}
	ir := TableIR{
		Headers:     headers,
		Rows:        make([][]string, 0, len(lines)-2),
		ColumnCount: len(headers),
	}
	for _, line := range lines[2:] {
		if line == "" {
			continue
		}
		ir.Rows = append(ir.Rows, splitRow(line))
	}
	return ir, nil
}

// splitRow splits a table line on pipes, trims every cell and drops the
// empty cells produced by optional outer pipes. Interior empty cells stay.
func splitRow(line string) []string {
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// List parses list lines into a flat sequence. Blank lines are skipped and
// lines matching no item pattern are ignored.
func List(text string) []ListItemIR {
	var items []ListItemIR
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		level := (len(line) - len(strings.TrimLeft(line, " \t"))) / 2

		if m := taskItem.FindStringSubmatch(trimmed); m != nil {
			items = append(items, ListItemIR{Kind: Task, Content: m[2], Checked: m[1] == "x", Level: level})
			continue
		}
		if m := bulletItem.FindStringSubmatch(trimmed); m != nil {
			items = append(items, ListItemIR{Kind: Bullet, Content: m[1], Level: level})
			continue
		}
		if m := orderedItem.FindStringSubmatch(trimmed); m != nil {
			items = append(items, ListItemIR{Kind: Ordered, Content: m[1], Level: level})
		}
	}
	return items
}

// Images returns every image span whose URL part is a single token with an
// optional quoted title. Other spans are dropped.
func Images(text string) []ImageRef {
	var refs []ImageRef
	for _, m := range imageSpan.FindAllStringSubmatch(text, -1) {
		u := imageURL.FindStringSubmatch(strings.TrimSpace(m[2]))
		if u == nil {
			continue
		}
		refs = append(refs, ImageRef{
			Alt:       m[1],
			Src:       strings.TrimSpace(u[1]),
			Title:     u[2],
			HasTitle:  u[2] != "",
			FullMatch: m[0],
		})
	}
	return refs
}

// Headings returns every ATX heading line. A closing run of '#' is dropped.
func Headings(text string) []HeadingRef {
	var refs []HeadingRef
	for _, m := range headingLine.FindAllStringSubmatch(text, -1) {
		content := strings.TrimSpace(m[2])
		content = strings.TrimSpace(closingHashes.ReplaceAllString(content, ""))
		refs = append(refs, HeadingRef{
			Level:     len(m[1]),
			Content:   content,
			FullMatch: m[0],
		})
	}
	return refs
}
