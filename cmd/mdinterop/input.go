package main

import (
	"strings"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/adrg/frontmatter"
)

// maxInputSize bounds markdown read from files or stdin.
const maxInputSize = 16 << 20

// Sentinel errors for input handling.
var (
	ErrReadInput    = errors.New("failed to read input")
	ErrTooManyArgs  = errors.New("too many arguments")
	ErrInputTooLong = errors.New("input exceeds maximum size")
)

// frontMatter holds the keys of a markdown front matter block the
// command uses.
type frontMatter struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// readInput reads the single positional argument, or stdin when it is
// absent or "-".
func readInput(args []string, env *Environment) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: want at most one input, got %d", ErrTooManyArgs, len(args))
	}

	r := env.Stdin
	name := "stdin"
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		f, err := os.Open(name) // #nosec G304 -- path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadInput, name, err)
	}
	if len(data) > maxInputSize {
		return "", fmt.Errorf("%w: %s (max %d bytes)", ErrInputTooLong, name, maxInputSize)
	}
	return string(data), nil
}

// splitFrontMatter returns the markdown body without its front matter
// block and the metadata it carried. Text whose front matter does not
// parse is returned unchanged.
func splitFrontMatter(text string) (string, frontMatter) {
	var meta frontMatter
	body, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil {
		return text, frontMatter{}
	}
	return string(body), meta
}
