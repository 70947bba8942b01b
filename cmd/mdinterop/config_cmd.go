package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-mdinterop/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, or writes it to
// --output so it can serve as a starting config file.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: config takes no arguments, got %d", ErrTooManyArgs, len(positional))
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if flags.output != "" && flags.output != "-" {
		if err := os.MkdirAll(filepath.Dir(flags.output), dirPermissions); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	if err := writeOutput(flags.output, string(out), env); err != nil {
		return err
	}
	if flags.output != "" && flags.output != "-" && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", flags.output)
	}
	return nil
}
