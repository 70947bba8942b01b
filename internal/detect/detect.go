// Package detect recognizes markdown-shaped plain text.
//
// Table and list predicates classify a whole block; image and heading
// predicates only look for one matching span anywhere in the text.
// Every predicate is total: it returns a boolean for any input.
package detect

import (
	"regexp"
	"strings"
)

// Precompiled patterns.
var (
	tableSeparator = regexp.MustCompile(`^\s*\|?[\s:|-]+\|?\s*$`)

	bulletLine  = regexp.MustCompile(`^[-*+]\s`)
	orderedLine = regexp.MustCompile(`^\d+\.\s`)
	taskLine    = regexp.MustCompile(`^[-*+]\s\[[ x]\]\s`)

	imageSpan   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	headingLine = regexp.MustCompile(`(?m)^#{1,6}[ \t]+\S`)
)

// Construct names the structured shape a pasted block was recognized as.
type Construct uint8

// Constructs in dispatch priority order.
const (
	None Construct = iota
	Table
	List
	Image
	Heading
)

// String returns the lowercase construct name.
func (c Construct) String() string {
	switch c {
	case Table:
		return "table"
	case List:
		return "list"
	case Image:
		return "image"
	case Heading:
		return "heading"
	}
	return "none"
}

// Priority lists the constructs in the order a dispatcher tries them.
var Priority = []Construct{Table, List, Image, Heading}

// Matches reports whether text satisfies the predicate for c.
func Matches(c Construct, text string) bool {
	switch c {
	case Table:
		return IsTable(text)
	case List:
		return IsList(text)
	case Image:
		return HasImages(text)
	case Heading:
		return HasHeadings(text)
	}
	return false
}

// Classify returns the first construct in priority order that text matches.
func Classify(text string) Construct {
	for _, c := range Priority {
		if Matches(c, text) {
			return c
		}
	}
	return None
}

// IsTable reports whether text looks like a pipe table: at least two lines,
// a pipe on every line, and a separator row as the second line.
// Column alignment is not validated.
func IsTable(text string) bool {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return false
	}
	for _, line := range lines {
		if !strings.Contains(line, "|") {
			return false
		}
	}
	return tableSeparator.MatchString(lines[1])
}

// IsList reports whether every non-blank line of text is a bullet, ordered
// or task list item. Text without any item is not a list.
func IsList(text string) bool {
	items := 0
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if !isListLine(trimmed) {
			return false
		}
		items++
	}
	return items > 0
}

func isListLine(trimmed string) bool {
	return bulletLine.MatchString(trimmed) ||
		orderedLine.MatchString(trimmed) ||
		taskLine.MatchString(trimmed)
}

// HasImages reports whether text contains at least one ![alt](src) span.
func HasImages(text string) bool {
	return imageSpan.MatchString(text)
}

// HasHeadings reports whether any line of text is an ATX heading.
func HasHeadings(text string) bool {
	return headingLine.MatchString(text)
}
