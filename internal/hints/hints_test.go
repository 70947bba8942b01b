package hints

import (
	"strings"
	"testing"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		paths    []string
		contains string
		absent   string
	}{
		{"empty paths", nil, "--config", "create"},
		{"with user path", []string{"foo.yaml", "/home/u/.config/go-mdinterop/foo.yaml"}, "mdinterop config -o /home/u/.config/go-mdinterop/foo.yaml", ""},
		{"only local paths", []string{"foo.yaml", "foo.yml"}, "--config", "create"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.paths)
			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("ForConfigNotFound() = %q, want hint prefix", hint)
			}
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("ForConfigNotFound() = %q, want it to contain %q", hint, tt.contains)
			}
			if tt.absent != "" && strings.Contains(hint, tt.absent) {
				t.Errorf("ForConfigNotFound() = %q, want no %q", hint, tt.absent)
			}
		})
	}
}

func TestForOutputDirectory(t *testing.T) {
	t.Parallel()

	if hint := ForOutputDirectory(); !strings.Contains(hint, "parent directory") {
		t.Errorf("ForOutputDirectory() = %q, want parent directory mention", hint)
	}
}

func TestForUnknownFormat(t *testing.T) {
	t.Parallel()

	if hint := ForUnknownFormat(nil); hint != "" {
		t.Errorf("ForUnknownFormat(nil) = %q, want empty", hint)
	}
	if hint := ForUnknownFormat([]string{"markdown", "html"}); !strings.Contains(hint, "available: markdown, html") {
		t.Errorf("ForUnknownFormat() = %q, want format list", hint)
	}
}

func TestForUnknownStyle(t *testing.T) {
	t.Parallel()

	if hint := ForUnknownStyle(nil); hint != "" {
		t.Errorf("ForUnknownStyle(nil) = %q, want empty", hint)
	}
	if hint := ForUnknownStyle([]string{"compact", "default"}); !strings.Contains(hint, "page styles: compact, default, none") {
		t.Errorf("ForUnknownStyle() = %q, want style list", hint)
	}
}

func TestForInvalidDocument(t *testing.T) {
	t.Parallel()

	if hint := ForInvalidDocument(); !strings.Contains(hint, `"type":"doc"`) {
		t.Errorf("ForInvalidDocument() = %q, want JSON shape", hint)
	}
}

func TestForNotHandled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		disabled []string
		want     string
	}{
		{"nothing disabled", nil, "\n  hint: drop --strict to paste as plain paragraphs"},
		{"some disabled", []string{"table", "image"}, "\n  hint: drop --strict to paste as plain paragraphs; disabled in config: table, image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ForNotHandled(tt.disabled); got != tt.want {
				t.Errorf("ForNotHandled() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHints(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
}
