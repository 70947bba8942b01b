// Package config loads the YAML configuration of the mdinterop command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdinterop/internal/fileutil"
	"github.com/alnah/go-mdinterop/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFormat   = errors.New("invalid export format")
	ErrInvalidWorkers  = errors.New("invalid worker count")
)

// Field length limits.
const (
	MaxDirLength   = 4096 // PATH_MAX on Linux
	MaxTitleLength = 200
	MaxStyleLength = 50 // page and chroma style names are short
	MaxWorkers     = 64
)

// Formats accepted by export.format. Kept in sync with mdinterop.ParseFormat.
var validFormats = map[string]bool{
	"markdown": true, "md": true,
	"html": true,
	"text": true, "txt": true,
}

// appDir is the directory under the user config dir searched by name.
const appDir = "go-mdinterop"

// Config holds the configuration of the mdinterop command.
type Config struct {
	Paste  PasteConfig  `yaml:"paste"`
	Export ExportConfig `yaml:"export"`
	Output OutputConfig `yaml:"output"`
}

// PasteConfig toggles the constructs the paste command recognizes.
type PasteConfig struct {
	Table             bool `yaml:"table"`
	List              bool `yaml:"list"`
	Image             bool `yaml:"image"`
	Heading           bool `yaml:"heading"`
	TrailingParagraph bool `yaml:"trailingParagraph"` // empty paragraph after pasted images
}

// ExportConfig defines export defaults.
type ExportConfig struct {
	Format         string `yaml:"format"` // markdown, html or text
	Standalone     bool   `yaml:"standalone"`
	Minify         bool   `yaml:"minify"`
	PageStyle      string `yaml:"pageStyle"`      // embedded page stylesheet, or none
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
	Title          string `yaml:"title"`          // <title> of standalone pages
	Workers        int    `yaml:"workers"`        // 0 = GOMAXPROCS
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// Validate checks field lengths and values.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxDirLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.title", c.Export.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.pageStyle", c.Export.PageStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.highlightStyle", c.Export.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}

	if c.Export.Format != "" && !validFormats[strings.ToLower(c.Export.Format)] {
		return fmt.Errorf("%w: %q (must be markdown, html or text)", ErrInvalidFormat, c.Export.Format)
	}
	if c.Export.Workers < 0 || c.Export.Workers > MaxWorkers {
		return fmt.Errorf("%w: %d (must be 0 to %d)", ErrInvalidWorkers, c.Export.Workers, MaxWorkers)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// every paste construct enabled, markdown export, github highlighting.
func DefaultConfig() *Config {
	return &Config{
		Paste: PasteConfig{Table: true, List: true, Image: true, Heading: true},
		Export: ExportConfig{
			Format:         "markdown",
			PageStyle:      "default",
			HighlightStyle: "github",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys missing from the file keep their DefaultConfig value.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	if err := yamlutil.ReadStrict(f, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchError reports a config name that matched no file. It unwraps to
// ErrConfigNotFound.
type SearchError struct {
	Name  string
	Tried []string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrConfigNotFound, strings.Join(e.Tried, ", "))
}

func (e *SearchError) Unwrap() error { return ErrConfigNotFound }

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-mdinterop/
func resolveConfigPath(name string) (string, error) {
	dirs := []string{""}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(userConfigDir, appDir))
	}

	tried := make([]string, 0, len(dirs)*2)
	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			p := filepath.Join(dir, name+ext)
			if fileutil.FileExists(p) {
				return p, nil
			}
			tried = append(tried, p)
		}
	}
	return "", &SearchError{Name: name, Tried: tried}
}
