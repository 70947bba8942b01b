package main

import "fmt"

// runDetect prints the construct a paste of the input would produce.
func runDetect(args []string, env *Environment) error {
	flags, positional, err := parseDetectFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return err
	}

	raw, err := readInput(positional, env)
	if err != nil {
		return err
	}
	text, _ := splitFrontMatter(raw)

	fmt.Fprintln(env.Stdout, newPaster(cfg, env, flags.common).Classify(text))
	return nil
}
