package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	mdinterop "github.com/alnah/go-mdinterop"
	"github.com/alnah/go-mdinterop/internal/config"
	"github.com/alnah/go-mdinterop/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// documentExt is the extension of document files found in directories.
const documentExt = ".json"

// Sentinel errors for the export command.
var (
	ErrNoInput       = errors.New("no input specified")
	ErrNoDocuments   = errors.New("no document files found")
	ErrReadCSS       = errors.New("failed to read CSS file")
	ErrStdoutBatch   = errors.New("stdout output needs exactly one input file")
	ErrExportsFailed = errors.New("export(s) failed")
)

// fileToExport represents a single document to process.
type fileToExport struct {
	InputPath  string
	OutputPath string
}

// exportResult holds the outcome of a single export.
type exportResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// documentExporter is the part of *mdinterop.Exporter the batch uses.
type documentExporter interface {
	Export(ctx context.Context, tree *mdinterop.Node, f mdinterop.Format) (string, error)
}

var _ documentExporter = (*mdinterop.Exporter)(nil)

// runExport exports every document named by args.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	format, err := mdinterop.ParseFormat(cfg.Export.Format)
	if err != nil {
		return err
	}
	if err := mdinterop.CheckPageStyle(cfg.Export.PageStyle); err != nil {
		return err
	}

	if len(positional) == 0 {
		return ErrNoInput
	}

	css, err := readCSS(flags.css)
	if err != nil {
		return err
	}
	exporter := newExporter(cfg, cfg.Export.Title, css)

	if flags.output == "-" {
		if len(positional) != 1 || !fileutil.FileExists(positional[0]) {
			return ErrStdoutBatch
		}
		r := exportFile(ctx, exporter, fileToExport{InputPath: positional[0]}, format, env)
		return r.Err
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	files, err := discoverFiles(positional, outputDir, format)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, strings.Join(positional, ", "))
	}

	workers := resolveWorkers(cfg.Export.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	results := exportBatch(ctx, exporter, files, format, workers, env)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d %w", failed, ErrExportsFailed)
	}
	return nil
}

// mergeExportFlags merges explicitly set CLI flags into config.
func mergeExportFlags(flags *exportFlags, cfg *config.Config) {
	if flags.format != "" {
		cfg.Export.Format = flags.format
	}
	if flags.workers != 0 {
		cfg.Export.Workers = flags.workers
	}
	if flags.fs.Changed("standalone") {
		cfg.Export.Standalone = flags.standalone
	}
	if flags.fs.Changed("minify") {
		cfg.Export.Minify = flags.minify
	}
	if flags.title != "" {
		cfg.Export.Title = flags.title
	}
	if flags.pageStyle != "" {
		cfg.Export.PageStyle = flags.pageStyle
	}
	if flags.highlightStyle != "" {
		cfg.Export.HighlightStyle = flags.highlightStyle
	}
}

// newExporter builds an exporter from the export section of cfg.
func newExporter(cfg *config.Config, title, css string) *mdinterop.Exporter {
	return mdinterop.NewExporter(
		mdinterop.WithStandalone(cfg.Export.Standalone),
		mdinterop.WithTitle(title),
		mdinterop.WithPageStyle(cfg.Export.PageStyle),
		mdinterop.WithHighlightStyle(cfg.Export.HighlightStyle),
		mdinterop.WithMinify(cfg.Export.Minify),
		mdinterop.WithCSS(css),
	)
}

// readCSS reads the stylesheet at path, if any.
func readCSS(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(data), nil
}

// resolveOutputDir picks the output directory: flag, then config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// resolveWorkers determines the worker count.
// Priority: explicit value > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(n int) int {
	if n > 0 {
		return min(n, config.MaxWorkers)
	}
	return max(1, min(runtime.GOMAXPROCS(0), config.MaxWorkers))
}

// discoverFiles finds the documents to export. Files are taken as given;
// directories are walked for *.json documents.
func discoverFiles(inputs []string, outputDir string, format mdinterop.Format) ([]fileToExport, error) {
	var files []fileToExport
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrReadDocument, err)
		}

		if !info.IsDir() {
			files = append(files, fileToExport{
				InputPath:  input,
				OutputPath: resolveOutputPath(input, outputDir, "", format),
			})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || filepath.Ext(path) != documentExt {
				return nil
			}
			files = append(files, fileToExport{
				InputPath:  path,
				OutputPath: resolveOutputPath(path, outputDir, input, format),
			})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// resolveOutputPath determines the output path for a document. Without an
// output directory the file lands next to its source; with one, the
// layout below baseInputDir is mirrored.
func resolveOutputPath(inputPath, outputDir, baseInputDir string, format mdinterop.Format) string {
	name := fileutil.ReplaceExt(filepath.Base(inputPath), format.Extension())

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}
	if filepath.Ext(outputDir) == format.Extension() {
		return outputDir
	}
	if baseInputDir != "" {
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			return filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	}
	return filepath.Join(outputDir, name)
}

// exportBatch processes files concurrently with a fixed number of workers.
func exportBatch(ctx context.Context, exporter documentExporter, files []fileToExport, format mdinterop.Format, workers int, env *Environment) []exportResult {
	if len(files) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(files)))

	results := make([]exportResult, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = exportResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = exportFile(ctx, exporter, files[idx], format, env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// exportFile exports a single document. An empty OutputPath writes to
// stdout.
func exportFile(ctx context.Context, exporter documentExporter, f fileToExport, format mdinterop.Format, env *Environment) exportResult {
	start := env.Now()
	result := exportResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) exportResult {
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	tree, err := loadDocument(f.InputPath)
	if err != nil {
		return done(err)
	}

	out, err := exporter.Export(ctx, tree, format)
	if err != nil {
		return done(err)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if f.OutputPath == "" {
		return done(writeOutput("", out, env))
	}
	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return done(fmt.Errorf("creating output directory: %w", err))
	}
	return done(writeOutput(f.OutputPath, out, env))
}

// countResults tallies succeeded and failed exports.
func countResults(results []exportResult) (succeeded, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

// printResults outputs export results and returns the failure count.
func printResults(results []exportResult, quiet, verbose bool, env *Environment) int {
	succeeded, failed := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}
	return failed
}
