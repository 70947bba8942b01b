package detect

import "testing"

func TestIsTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"minimal table", "a|b\n---|---\n1|2", true},
		{"outer pipes", "| a | b |\n| --- | --- |\n| 1 | 2 |", true},
		{"alignment colons", "| a | b |\n|:--|--:|", true},
		{"header only with separator", "a | b\n--|--", true},
		{"surrounding blank lines", "\n\na|b\n-|-\n\n", true},
		{"single line", "a|b", false},
		{"line without pipe", "a|b\n---|---\nplain", false},
		{"second line not separator", "a|b\nc|d", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsTable(tt.input); got != tt.want {
				t.Errorf("IsTable(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"bullets", "- a\n* b\n+ c", true},
		{"ordered", "1. a\n2. b", true},
		{"tasks", "- [ ] a\n- [x] b", true},
		{"blank lines allowed", "- a\n\n- b", true},
		{"indented items", "- a\n  - b", true},
		{"one failing line disqualifies", "- a\nplain\n- b", false},
		{"marker without space", "-a", false},
		{"whitespace only", "   \n  ", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsList(tt.input); got != tt.want {
				t.Errorf("IsList(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHasImagesAndHeadings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantImages   bool
		wantHeadings bool
	}{
		{"image in prose", "see ![a](x.png) here", true, false},
		{"image with title", `![alt](http://x/img.png "t")`, true, false},
		{"empty alt", "![](x.png)", true, false},
		{"heading first line", "# Title\nbody", false, true},
		{"heading later line", "intro\n### Sub", false, true},
		{"seven hashes", "####### nope", false, false},
		{"hash without space", "#tag", false, false},
		{"link is not image", "[a](x)", false, false},
		{"both", "# T\n![a](b)", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasImages(tt.input); got != tt.wantImages {
				t.Errorf("HasImages(%q) = %v, want %v", tt.input, got, tt.wantImages)
			}
			if got := HasHeadings(tt.input); got != tt.wantHeadings {
				t.Errorf("HasHeadings(%q) = %v, want %v", tt.input, got, tt.wantHeadings)
			}
		})
	}
}

func TestPredicatesAreTotal(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"", " ", "\n", "\n\n\n", "|", "||", "-", "#", "!", "![", "![]()", "\x00",
		"\xff\xfe", "| \n |", "1.", "- [", "\r\n", "é|ü\n-|-",
	}
	for _, in := range inputs {
		for _, c := range Priority {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Errorf("Matches(%v, %q) panicked: %v", c, in, r)
					}
				}()
				_ = Matches(c, in)
			}()
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Construct
	}{
		{"table beats heading", "# a | b\n---|---\n1|2", Table},
		{"table swallows image", "![a](b) | c\n---|---", Table},
		{"list beats image", "- ![a](b)\n- c", List},
		{"image beats heading", "# Title\n![a](b)", Image},
		{"heading", "# Title\nbody", Heading},
		{"plain", "just text", None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.input); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
