package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	mdinterop "github.com/alnah/go-mdinterop"
	"github.com/alnah/go-mdinterop/internal/config"
	"github.com/alnah/go-mdinterop/internal/fileutil"
)

// Sentinel errors for the paste command.
var (
	ErrNotHandled      = errors.New("text is not markdown the paster handles")
	ErrReadDocument    = errors.New("failed to read document")
	ErrInvalidDocument = errors.New("invalid document")
	ErrWriteOutput     = errors.New("failed to write output")
)

// runPaste applies markdown from the input to a document and prints the
// resulting document.
func runPaste(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePasteFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergePasteFlags(flags, cfg)

	format := flags.format
	if format != "json" {
		if _, err := mdinterop.ParseFormat(format); err != nil {
			return err
		}
	}

	raw, err := readInput(positional, env)
	if err != nil {
		return err
	}
	text, meta := splitFrontMatter(raw)

	tree, err := loadDocument(flags.doc)
	if err != nil {
		return err
	}
	sel, err := pasteSelection(tree, flags.from, flags.to)
	if err != nil {
		return err
	}

	paster := newPaster(cfg, env, flags.common)
	state := mdinterop.State{Doc: tree, Selection: sel}

	start := env.Now()
	tr, ok := paster.HandlePaste(state, text)
	if !ok {
		if flags.strict {
			return &notHandledError{disabled: disabledConstructs(cfg)}
		}
		if tr, err = paster.PastePlain(state, text); err != nil {
			return fmt.Errorf("pasting plain text: %w", err)
		}
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "pasted %s in %d step(s) (%v)\n",
			tr.Construct, len(tr.Steps), env.Now().Sub(start))
	}

	out, err := renderPasted(ctx, tr.Doc, format, cfg, meta.Title)
	if err != nil {
		return err
	}
	return writeOutput(flags.output, out, env)
}

// notHandledError is returned by a strict paste that fell through. It
// unwraps to ErrNotHandled.
type notHandledError struct {
	disabled []string
}

func (e *notHandledError) Error() string { return ErrNotHandled.Error() }

func (e *notHandledError) Unwrap() error { return ErrNotHandled }

// mergePasteFlags merges CLI flags into config. Flags only turn
// constructs off, so a flag never re-enables what the config disabled.
func mergePasteFlags(flags *pasteFlags, cfg *config.Config) {
	if flags.noTable {
		cfg.Paste.Table = false
	}
	if flags.noList {
		cfg.Paste.List = false
	}
	if flags.noImage {
		cfg.Paste.Image = false
	}
	if flags.noHeading {
		cfg.Paste.Heading = false
	}
	if flags.trailingParagraph {
		cfg.Paste.TrailingParagraph = true
	}
}

// newPaster builds a paster from the paste section of cfg.
func newPaster(cfg *config.Config, env *Environment, common commonFlags) *mdinterop.Paster {
	return mdinterop.NewPaster(
		mdinterop.WithLogger(env.logger(common)),
		mdinterop.WithTablePaste(cfg.Paste.Table),
		mdinterop.WithListPaste(cfg.Paste.List),
		mdinterop.WithImagePaste(cfg.Paste.Image),
		mdinterop.WithHeadingPaste(cfg.Paste.Heading),
		mdinterop.WithTrailingParagraph(cfg.Paste.TrailingParagraph),
	)
}

// disabledConstructs names the constructs cfg turns off.
func disabledConstructs(cfg *config.Config) []string {
	var off []string
	for _, c := range []struct {
		name string
		on   bool
	}{
		{"table", cfg.Paste.Table},
		{"list", cfg.Paste.List},
		{"image", cfg.Paste.Image},
		{"heading", cfg.Paste.Heading},
	} {
		if !c.on {
			off = append(off, c.name)
		}
	}
	return off
}

// loadDocument reads the document at path, or returns an empty document
// when path is empty.
func loadDocument(path string) (*mdinterop.Node, error) {
	if path == "" {
		return mdinterop.EmptyDocument(), nil
	}
	f, err := os.Open(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
	}
	defer f.Close()

	tree, err := mdinterop.ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}
	if tree.Type != mdinterop.NodeDoc {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, mdinterop.ErrNotDocument)
	}
	if err := mdinterop.DefaultSchema().Validate(tree); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}
	return tree, nil
}

// pasteSelection resolves the --from and --to flags. A negative from
// means the end of the last textblock, or the end of the document when
// the last block is not a textblock. A negative to means from.
func pasteSelection(tree *mdinterop.Node, from, to int) (mdinterop.Selection, error) {
	if from < 0 {
		from = tree.ContentSize()
		if n := len(tree.Content); n > 0 && tree.Content[n-1].Type.IsTextblock() {
			from--
		}
	}
	if to < 0 {
		to = from
	}
	if from > tree.ContentSize() || to > tree.ContentSize() {
		return mdinterop.Selection{}, fmt.Errorf("%w: selection %d..%d in document of size %d",
			mdinterop.ErrPositionOutOfRange, from, to, tree.ContentSize())
	}
	return mdinterop.NewSelection(from, to), nil
}

// renderPasted renders the pasted document as JSON or an export format.
func renderPasted(ctx context.Context, tree *mdinterop.Node, format string, cfg *config.Config, title string) (string, error) {
	if format == "json" {
		data, err := mdinterop.FormatDocument(tree)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}

	f, err := mdinterop.ParseFormat(format)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = cfg.Export.Title
	}
	out, err := newExporter(cfg, title, "").Export(ctx, tree, f)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// writeOutput writes out to path, or to stdout when path is empty or "-".
func writeOutput(path, out string, env *Environment) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(env.Stdout, out)
		return err
	}
	// #nosec G306 -- outputs are meant to be readable
	if err := fileutil.WriteAtomic(path, []byte(out), filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}
