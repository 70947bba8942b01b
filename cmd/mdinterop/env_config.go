package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alnah/go-mdinterop/internal/config"
)

// envPrefix marks the environment variables read by the command.
const envPrefix = "MDINTEROP_"

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath string // MDINTEROP_CONFIG: config file name or path
	Format     string // MDINTEROP_FORMAT: export format
	Workers    int    // MDINTEROP_WORKERS: parallel export workers
	Minify     *bool  // MDINTEROP_MINIFY: minify HTML exports (nil = unset)
}

// knownEnvVars lists valid MDINTEROP_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDINTEROP_CONFIG":  true,
	"MDINTEROP_FORMAT":  true,
	"MDINTEROP_WORKERS": true,
	"MDINTEROP_MINIFY":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDINTEROP_CONFIG"),
		Format:     strings.TrimSpace(os.Getenv("MDINTEROP_FORMAT")),
	}

	if workers := os.Getenv("MDINTEROP_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if minify := os.Getenv("MDINTEROP_MINIFY"); minify != "" {
		if b, err := strconv.ParseBool(minify); err == nil {
			cfg.Minify = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized MDINTEROP_*
// variable, in name order.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies set environment values over cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" {
		cfg.Export.Format = env.Format
	}
	if env.Workers > 0 {
		cfg.Export.Workers = env.Workers
	}
	if env.Minify != nil {
		cfg.Export.Minify = *env.Minify
	}
}

// resolveConfig loads the config named by the flag, or by MDINTEROP_CONFIG
// when the flag is empty, then applies the environment.
func resolveConfig(flagConfig string) (*config.Config, error) {
	env := loadEnvConfig()

	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return cfg, nil
}
