package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading gets an id",
			input:    "### Title",
			contains: []string{`<h3 id="title">Title</h3>`},
		},
		{
			name:     "pipe table",
			input:    "| a | b |\n| --- | --- |\n| 1 | 2 |",
			contains: []string{"<table>", "<th>a</th>", "<td>2</td>"},
		},
		{
			name:     "task list",
			input:    "- [ ] todo\n- [x] done",
			contains: []string{`type="checkbox"`, "todo", "done"},
		},
		{
			name:     "hard break",
			input:    "a\nb",
			contains: []string{"a<br />"},
		},
		{
			name:     "raw underline passes through",
			input:    "<u>x</u>",
			contains: []string{"<u>x</u>"},
		},
		{
			name:     "highlighted code uses classes",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`class="chroma"`},
		},
	}

	c := NewGoldmarkConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# x")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want %v", err, context.Canceled)
	}
}

// ---------------------------------------------------------------------------
// Sanitizer
// ---------------------------------------------------------------------------

func TestSanitizer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		keep    []string
		dropped []string
	}{
		{
			name:    "script removed",
			input:   "<p>a</p><script>alert(1)</script>",
			keep:    []string{"<p>a</p>"},
			dropped: []string{"<script", "alert"},
		},
		{
			name:    "event handler removed",
			input:   `<p onclick="x()">a</p>`,
			keep:    []string{"<p>a</p>"},
			dropped: []string{"onclick"},
		},
		{
			name:  "text color kept",
			input: `<span style="color: red">a</span>`,
			keep:  []string{"color: red", ">a</span>"},
		},
		{
			name:    "unknown style dropped",
			input:   `<span style="position: fixed">a</span>`,
			dropped: []string{"position"},
		},
		{
			name:  "details kept",
			input: "<details><summary>S</summary><p>x</p></details>",
			keep:  []string{"<details>", "<summary>S</summary>"},
		},
		{
			name:  "inline formatting kept",
			input: "<p><u>a</u><sub>b</sub><sup>c</sup><mark>d</mark></p>",
			keep:  []string{"<u>a</u>", "<sub>b</sub>", "<sup>c</sup>", "<mark>d</mark>"},
		},
		{
			name:  "highlight classes kept",
			input: `<pre class="chroma"><code><span class="kd">func</span></code></pre>`,
			keep:  []string{`class="chroma"`, `class="kd"`},
		},
		{
			name:  "checkbox kept",
			input: `<li><input checked="" disabled="" type="checkbox"/> done</li>`,
			keep:  []string{`type="checkbox"`, "checked"},
		},
		{
			name:  "placeholders survive",
			input: "<p>" + MarkStartPlaceholder + "a" + MarkEndPlaceholder + "</p>",
			keep:  []string{MarkStartPlaceholder + "a" + MarkEndPlaceholder},
		},
	}

	s := NewSanitizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Sanitize(tt.input)
			for _, want := range tt.keep {
				if !strings.Contains(got, want) {
					t.Errorf("Sanitize(%q) = %q, want it to contain %q", tt.input, got, want)
				}
			}
			for _, bad := range tt.dropped {
				if strings.Contains(got, bad) {
					t.Errorf("Sanitize(%q) = %q, want %q removed", tt.input, got, bad)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Minifier
// ---------------------------------------------------------------------------

func TestMinifier(t *testing.T) {
	t.Parallel()

	input := "<html>\n<head>\n<style>\n.a {\n  color: red;\n}\n</style>\n</head>\n<body>\n<p>hello   world</p>\n</body>\n</html>"

	got, err := NewMinifier().Minify(input)
	if err != nil {
		t.Fatalf("Minify() error = %v", err)
	}
	if len(got) >= len(input) {
		t.Errorf("Minify() = %q, want shorter than input", got)
	}
	if !strings.Contains(got, "hello world") {
		t.Errorf("Minify() = %q, want collapsed text %q", got, "hello world")
	}
	if !strings.Contains(got, "color:red") {
		t.Errorf("Minify() = %q, want minified CSS", got)
	}
}
