package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdinterop/internal/config"
)

func TestRunConfig(t *testing.T) {
	t.Parallel()

	t.Run("prints defaults", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := newTestEnv("")
		if code := runMain([]string{"mdinterop", "config"}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr)
		}
		for _, want := range []string{"paste:\n", "  table: true", "  format: markdown", "  pageStyle: default", "  highlightStyle: github"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, want)
			}
		}
	})

	t.Run("written file loads back", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		src := filepath.Join(dir, "src.yaml")
		if err := os.WriteFile(src, []byte("export:\n  format: html\n  workers: 3\npaste:\n  list: false\n"), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		dst := filepath.Join(dir, "nested", "out.yaml")

		env, _, stderr := newTestEnv("")
		if code := runMain([]string{"mdinterop", "config", "-c", src, "-o", dst}, env); code != ExitSuccess {
			t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, ExitSuccess, stderr)
		}
		if !strings.Contains(stderr.String(), "Created "+dst) {
			t.Errorf("stderr = %q, want created line", stderr)
		}

		want, err := config.LoadConfig(src)
		if err != nil {
			t.Fatalf("LoadConfig(src) error = %v", err)
		}
		got, err := config.LoadConfig(dst)
		if err != nil {
			t.Fatalf("LoadConfig(dst) error = %v", err)
		}
		if *got != *want {
			t.Errorf("LoadConfig(dst) = %+v, want %+v", got, want)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv("")
		if code := runMain([]string{"mdinterop", "config", "extra"}, env); code != ExitUsage {
			t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitUsage, stderr)
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := newTestEnv("")
		code := runMain([]string{"mdinterop", "config", "-c", filepath.Join(t.TempDir(), "none.yaml")}, env)
		if code != ExitUsage {
			t.Errorf("runMain() = %d, want %d\nstderr: %s", code, ExitUsage, stderr)
		}
	})
}
