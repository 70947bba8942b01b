// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and the per-user location among the searched paths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-mdinterop/") {
			hint += " or create " + p + " with 'mdinterop config -o " + p + "'"
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnknownFormat lists the accepted export formats.
func ForUnknownFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnknownStyle lists the embedded page styles.
func ForUnknownStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("page styles: " + strings.Join(append(available, "none"), ", "))
}

// ForInvalidDocument describes the document JSON shape.
func ForInvalidDocument() string {
	return format(`documents are editor JSON: {"type":"doc","content":[...]}`)
}

// ForNotHandled returns hints for a strict paste that was not recognized.
// disabled names the constructs turned off by configuration.
func ForNotHandled(disabled []string) string {
	hints := []string{"drop --strict to paste as plain paragraphs"}
	if len(disabled) > 0 {
		hints = append(hints, "disabled in config: "+strings.Join(disabled, ", "))
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
