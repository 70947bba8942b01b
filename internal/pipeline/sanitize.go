package pipeline

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	cssColor       = regexp.MustCompile(`^(#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|rgba?\(\s*\d+\s*,\s*\d+\s*,\s*\d+\s*(,\s*[\d.]+\s*)?\)|[a-zA-Z]+)$`)
	highlightClass = regexp.MustCompile(`^[a-z0-9]+( [a-z0-9]+)*$`)
	footnoteClass  = regexp.MustCompile(`^footnote(s|-ref|-backref)?$`)
	footnoteRole   = regexp.MustCompile(`^doc-(noteref|backlink|endnotes)$`)
	checkboxType   = regexp.MustCompile(`^checkbox$`)
)

// Sanitizer strips markup that the document model cannot produce from
// exported HTML. Text colors, collapsible sections, highlight classes and
// task list checkboxes survive; scripts, handlers and unknown styles don't.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer returns a Sanitizer built on bluemonday's UGC policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()

	p.AllowElements("details", "summary", "mark", "u", "sub", "sup")

	p.AllowStyles("color", "background-color").Matching(cssColor).OnElements("span")

	p.AllowAttrs("class").Matching(highlightClass).OnElements("span", "pre", "code")
	p.AllowAttrs("class").Matching(footnoteClass).OnElements("a", "div", "li", "hr")
	p.AllowAttrs("role").Matching(footnoteRole).OnElements("a", "div")

	p.AllowAttrs("type").Matching(checkboxType).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	p.AllowAttrs("start").Matching(regexp.MustCompile(`^\d+$`)).OnElements("ol")

	return &Sanitizer{policy: p}
}

// Sanitize returns htmlContent with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(htmlContent string) string {
	return s.policy.Sanitize(htmlContent)
}
