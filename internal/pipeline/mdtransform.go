package pipeline

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Inline span placeholders use Unicode Private Use Area characters.
// They pass through goldmark and the sanitizer as plain text and are
// turned into tags once the HTML is final.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
	SupStartPlaceholder  = "\uE002"
	SupEndPlaceholder    = "\uE003"
	SubStartPlaceholder  = "\uE004"
	SubEndPlaceholder    = "\uE005"
)

// Precompiled regex patterns.
var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

const byteOrderMark = "\uFEFF"

// NormalizePaste prepares clipboard text for classification: line endings
// become \n, a leading byte order mark is dropped and the text is put in
// Unicode normalization form C so composed and decomposed accents match.
func NormalizePaste(text string) string {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = normalizeLineEndings(text)
	return norm.NFC.String(text)
}

// PrepareMarkdown applies the transformations needed before goldmark sees
// serialized markdown: normalized line endings, inline spans goldmark has
// no syntax for turned into placeholders, and at most one blank line in a
// row.
func PrepareMarkdown(content string) string {
	content = normalizeLineEndings(content)
	content = convertInlineSpans(content)
	return compressBlankLines(content)
}

func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one. Two adjacent
// lists of the same kind are separated by two blank lines in serialized
// markdown; goldmark keeps them apart with a single one as well.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// ConvertPlaceholders turns the placeholders left by PrepareMarkdown into
// <mark>, <sup> and <sub> tags.
func ConvertPlaceholders(content string) string {
	return placeholderTags.Replace(content)
}

var placeholderTags = strings.NewReplacer(
	MarkStartPlaceholder, "<mark>",
	MarkEndPlaceholder, "</mark>",
	SupStartPlaceholder, "<sup>",
	SupEndPlaceholder, "</sup>",
	SubStartPlaceholder, "<sub>",
	SubEndPlaceholder, "</sub>",
)

type inlineSpan struct {
	delim      string
	open       string
	close      string
	allowSpace bool
}

// Checked in order: "==" before the single character delimiters, and "~"
// only when not part of a "~~" strikethrough run.
var inlineSpans = []inlineSpan{
	{delim: "==", open: MarkStartPlaceholder, close: MarkEndPlaceholder, allowSpace: true},
	{delim: "^", open: SupStartPlaceholder, close: SupEndPlaceholder},
	{delim: "~", open: SubStartPlaceholder, close: SubEndPlaceholder},
}

// convertInlineSpans replaces ==highlight==, ^sup^ and ~sub~ spans with
// placeholders. Fenced code blocks, code spans, backslash escapes and link
// destinations are copied verbatim.
func convertInlineSpans(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	inFence := false
	for _, line := range strings.SplitAfter(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			b.WriteString(line)
			continue
		}
		if inFence {
			b.WriteString(line)
			continue
		}
		b.WriteString(convertLine(line))
	}
	return b.String()
}

func convertLine(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line):
			b.WriteString(line[i : i+2])
			i += 2
			continue
		case c == '`':
			end := codeSpanEnd(line, i)
			b.WriteString(line[i:end])
			i = end
			continue
		case c == ']' && strings.HasPrefix(line[i:], "]("):
			end := strings.IndexByte(line[i:], ')')
			if end > 0 {
				b.WriteString(line[i : i+end+1])
				i += end + 1
				continue
			}
		}

		if s, end, ok := matchSpan(line, i); ok {
			inner := line[i+len(s.delim) : end]
			b.WriteString(s.open)
			b.WriteString(convertLine(inner))
			b.WriteString(s.close)
			i = end + len(s.delim)
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String()
}

// codeSpanEnd returns the index just past the code span opening at i, or
// just past the backtick run when it is never closed.
func codeSpanEnd(line string, i int) int {
	n := runLength(line, i, '`')
	for j := i + n; j < len(line); {
		if line[j] != '`' {
			j++
			continue
		}
		m := runLength(line, j, '`')
		if m == n {
			return j + m
		}
		j += m
	}
	return i + n
}

func runLength(line string, i int, c byte) int {
	n := 0
	for i+n < len(line) && line[i+n] == c {
		n++
	}
	return n
}

// matchSpan reports whether an inline span opens at i and returns the
// index of its closing delimiter.
func matchSpan(line string, i int) (inlineSpan, int, bool) {
	for _, s := range inlineSpans {
		if !strings.HasPrefix(line[i:], s.delim) || !singleDelim(line, i, s.delim) {
			continue
		}
		start := i + len(s.delim)
		for j := start + 1; j+len(s.delim) <= len(line); j++ {
			if line[j-1] == '\\' || !strings.HasPrefix(line[j:], s.delim) || !singleDelim(line, j, s.delim) {
				continue
			}
			inner := line[start:j]
			if strings.TrimSpace(inner) != inner || inner == "" || strings.Contains(inner, "\n") {
				break
			}
			if !s.allowSpace && strings.ContainsAny(inner, " \t") {
				break
			}
			return s, j, true
		}
	}
	return inlineSpan{}, 0, false
}

// singleDelim reports whether a one character delimiter at i stands alone
// rather than being part of a longer run such as "~~".
func singleDelim(line string, i int, delim string) bool {
	if len(delim) != 1 {
		return true
	}
	c := delim[0]
	if i > 0 && line[i-1] == c {
		return false
	}
	return i+1 >= len(line) || line[i+1] != c
}
