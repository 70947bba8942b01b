package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return p
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	p := cfg.Paste
	if !p.Table || !p.List || !p.Image || !p.Heading {
		t.Errorf("Paste = %+v, want every construct enabled", p)
	}
	if p.TrailingParagraph {
		t.Error("Paste.TrailingParagraph = true, want false")
	}
	if cfg.Export.Format != "markdown" {
		t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "markdown")
	}
	if cfg.Export.HighlightStyle != "github" {
		t.Errorf("Export.HighlightStyle = %q, want %q", cfg.Export.HighlightStyle, "github")
	}
	if cfg.Export.PageStyle != "default" {
		t.Errorf("Export.PageStyle = %q, want %q", cfg.Export.PageStyle, "default")
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit is invalid", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"empty format", func(c *Config) { c.Export.Format = "" }, nil},
		{"format alias", func(c *Config) { c.Export.Format = "TXT" }, nil},
		{"html format", func(c *Config) { c.Export.Format = "html" }, nil},
		{"unknown format", func(c *Config) { c.Export.Format = "pdf" }, ErrInvalidFormat},
		{"negative workers", func(c *Config) { c.Export.Workers = -1 }, ErrInvalidWorkers},
		{"too many workers", func(c *Config) { c.Export.Workers = MaxWorkers + 1 }, ErrInvalidWorkers},
		{"max workers", func(c *Config) { c.Export.Workers = MaxWorkers }, nil},
		{"long title", func(c *Config) { c.Export.Title = strings.Repeat("t", MaxTitleLength+1) }, ErrFieldTooLong},
		{"long style", func(c *Config) { c.Export.HighlightStyle = strings.Repeat("s", MaxStyleLength+1) }, ErrFieldTooLong},
		{"long page style", func(c *Config) { c.Export.PageStyle = strings.Repeat("s", MaxStyleLength+1) }, ErrFieldTooLong},
		{"long output dir", func(c *Config) { c.Output.DefaultDir = strings.Repeat("d", MaxDirLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// LoadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "test.yaml", `paste:
  table: false
  list: true
  image: true
  heading: true
  trailingParagraph: true
export:
  format: html
  standalone: true
  minify: true
  pageStyle: none
  highlightStyle: monokai
  title: Notes
  workers: 4
output:
  defaultDir: /tmp/out
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Paste.Table {
			t.Error("Paste.Table = true, want false")
		}
		if !cfg.Paste.TrailingParagraph {
			t.Error("Paste.TrailingParagraph = false, want true")
		}
		want := ExportConfig{Format: "html", Standalone: true, Minify: true, PageStyle: "none", HighlightStyle: "monokai", Title: "Notes", Workers: 4}
		if cfg.Export != want {
			t.Errorf("Export = %+v, want %+v", cfg.Export, want)
		}
		if cfg.Output.DefaultDir != "/tmp/out" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "/tmp/out")
		}
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, "partial.yaml", "export:\n  minify: true\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.Paste.Table || cfg.Export.Format != "markdown" || cfg.Export.HighlightStyle != "github" {
			t.Errorf("LoadConfig() = %+v, want defaults outside export.minify", cfg)
		}
		if !cfg.Export.Minify {
			t.Error("Export.Minify = false, want true")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig("/nonexistent/path/config.yaml"); !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadConfig(writeConfig(t, "invalid.yaml", "export: [unclosed")); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "unknown.yaml", "paste:\n  table: true\n  footnotes: true\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "bad.yaml", "export:\n  format: pdf\n")
		if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("error = %v, want ErrInvalidFormat", err)
		}
	})

	t.Run("directory is not a config file", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir() + string(filepath.Separator)
		_, err := LoadConfig(dir)
		if err == nil {
			t.Fatal("LoadConfig(dir) error = nil, want error")
		}
	})
}

// Not parallel: these tests change the working directory.
func TestLoadConfig_ByName(t *testing.T) {
	t.Run("resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yaml"), []byte("export:\n  format: text\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Export.Format != "text" {
			t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "text")
		}
	})

	t.Run("resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "myconfig.yml"), []byte("export:\n  format: html\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Export.Format != "html" {
			t.Errorf("Export.Format = %q, want %q", cfg.Export.Format, "html")
		}
	})

	t.Run("unknown name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		var se *SearchError
		if !errors.As(err, &se) {
			t.Fatalf("error = %T, want *SearchError", err)
		}
		if se.Name != "missing" || len(se.Tried) < 2 || se.Tried[0] != "missing.yaml" || se.Tried[1] != "missing.yml" {
			t.Errorf("SearchError = %+v, want local yaml then yml first", se)
		}
		if !strings.Contains(err.Error(), "missing.yml") {
			t.Errorf("error = %q, want tried paths listed", err)
		}
	})
}
