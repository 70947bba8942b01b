package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// DefaultStyle is the page style used when none is configured.
const DefaultStyle = "default"

// NoStyle disables the page stylesheet.
const NoStyle = "none"

// LoadStyle returns the embedded stylesheet called name, without the .css
// extension. NoStyle yields an empty stylesheet.
func LoadStyle(name string) (string, error) {
	if name == NoStyle {
		return "", nil
	}
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// Styles lists the embedded style names in order.
func Styles() []string {
	entries, err := fs.ReadDir(styles, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}
