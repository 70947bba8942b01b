package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Sentinel errors for flag parsing.
var (
	ErrInvalidFlags = errors.New("invalid flags")

	// errHelpShown ends a command after -h printed its usage.
	errHelpShown = errors.New("help shown")
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pasteFlags holds flags for the paste command.
type pasteFlags struct {
	common            commonFlags
	doc               string
	from              int
	to                int
	strict            bool
	format            string
	output            string
	noTable           bool
	noList            bool
	noImage           bool
	noHeading         bool
	trailingParagraph bool

	fs *flag.FlagSet
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common         commonFlags
	output         string
	format         string
	workers        int
	standalone     bool
	title          string
	minify         bool
	pageStyle      string
	highlightStyle string
	css            string

	fs *flag.FlagSet
}

// detectFlags holds flags for the detect command.
type detectFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// newFlagSet returns a FlagSet that reports errors instead of exiting and
// prints usage to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseErr maps pflag errors onto the command's sentinels.
func parseErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return errHelpShown
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
}

// parsePasteFlags parses paste command flags and returns positional args.
func parsePasteFlags(args []string, w io.Writer) (*pasteFlags, []string, error) {
	fs := newFlagSet("paste", w, printPasteUsage)
	f := &pasteFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.doc, "doc", "d", "", "document JSON to paste into (default: empty document)")
	fs.IntVar(&f.from, "from", -1, "selection start (default: end of document)")
	fs.IntVar(&f.to, "to", -1, "selection end (default: --from)")
	fs.BoolVar(&f.strict, "strict", false, "fail instead of pasting plain paragraphs")
	fs.StringVarP(&f.format, "format", "f", "json", "output: json, markdown, html, text")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVar(&f.noTable, "no-table", false, "do not recognize tables")
	fs.BoolVar(&f.noList, "no-list", false, "do not recognize lists")
	fs.BoolVar(&f.noImage, "no-image", false, "do not recognize images")
	fs.BoolVar(&f.noHeading, "no-heading", false, "do not recognize headings")
	fs.BoolVar(&f.trailingParagraph, "trailing-paragraph", false, "add an empty paragraph after images")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string, w io.Writer) (*exportFlags, []string, error) {
	fs := newFlagSet("export", w, printExportUsage)
	f := &exportFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file, directory, or - for stdout")
	fs.StringVarP(&f.format, "format", "f", "", "markdown, html, text (default: config)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.standalone, "standalone", false, "write complete HTML pages")
	fs.StringVar(&f.title, "title", "", "title of standalone pages")
	fs.BoolVar(&f.minify, "minify", false, "minify HTML output")
	fs.StringVar(&f.pageStyle, "page-style", "", "embedded page stylesheet, or none")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for code blocks")
	fs.StringVar(&f.css, "css", "", "stylesheet added to standalone pages")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}

// configFlags holds flags for the config command.
type configFlags struct {
	common commonFlags
	output string

	fs *flag.FlagSet
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string, w io.Writer) (*configFlags, []string, error) {
	fs := newFlagSet("config", w, printConfigUsage)
	f := &configFlags{fs: fs}

	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "write the config to a file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}

// parseDetectFlags parses detect command flags and returns positional args.
func parseDetectFlags(args []string, w io.Writer) (*detectFlags, []string, error) {
	fs := newFlagSet("detect", w, printDetectUsage)
	f := &detectFlags{}

	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}
