package doc

import "sort"

// Mark is an inline annotation attached to a text node.
type Mark struct {
	Type  MarkType
	Attrs Attrs
}

// NewMark creates a mark of type t.
func NewMark(t MarkType, attrs Attrs) Mark {
	return Mark{Type: t, Attrs: attrs}
}

// Equal reports whether two marks have the same type and attributes.
func (m Mark) Equal(o Mark) bool {
	return m.Type == o.Type && m.Attrs.Equal(o.Attrs)
}

// SortMarks returns marks ordered by collation order. A mark type appears at
// most once; a later duplicate replaces the earlier one.
func SortMarks(marks []Mark) []Mark {
	if len(marks) == 0 {
		return nil
	}
	byType := make(map[MarkType]Mark, len(marks))
	for _, m := range marks {
		byType[m.Type] = m
	}
	sorted := make([]Mark, 0, len(byType))
	for _, m := range byType {
		sorted = append(sorted, m)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })
	return sorted
}

// SameMarkSet reports whether a and b contain equal marks, ignoring order.
func SameMarkSet(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := SortMarks(a), SortMarks(b)
	for i := range sa {
		if !sa[i].Equal(sb[i]) {
			return false
		}
	}
	return true
}

// HasMark reports whether marks contains a mark of type t.
func HasMark(marks []Mark, t MarkType) bool {
	for _, m := range marks {
		if m.Type == t {
			return true
		}
	}
	return false
}
