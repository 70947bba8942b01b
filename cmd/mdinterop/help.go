package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdinterop <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  paste      Paste markdown into a document")
	fmt.Fprintln(w, "  export     Export documents as markdown, HTML or text")
	fmt.Fprintln(w, "  detect     Show what a paste of the input would be recognized as")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdinterop help <command>' for details on a specific command.")
}

// printPasteUsage prints usage for the paste command.
func printPasteUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdinterop paste [flags] [input|-]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Paste markdown into a document and print the result. Tables, lists,")
	fmt.Fprintln(w, "images and headings become document nodes; other text is pasted as")
	fmt.Fprintln(w, "plain paragraphs. Front matter is stripped. Reads stdin without input.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -d, --doc <path>          Document JSON to paste into (default: empty)")
	fmt.Fprintln(w, "      --from <n>            Selection start (default: end of document)")
	fmt.Fprintln(w, "      --to <n>              Selection end (default: --from)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recognition:")
	fmt.Fprintln(w, "      --no-table            Do not recognize tables")
	fmt.Fprintln(w, "      --no-list             Do not recognize lists")
	fmt.Fprintln(w, "      --no-image            Do not recognize images")
	fmt.Fprintln(w, "      --no-heading          Do not recognize headings")
	fmt.Fprintln(w, "      --trailing-paragraph  Add an empty paragraph after images")
	fmt.Fprintln(w, "      --strict              Fail (exit 4) instead of pasting plain text")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -f, --format <s>          json, markdown, html, text (default: json)")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printExportUsage prints usage for the export command.
func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdinterop export [flags] <doc.json|dir>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export documents. Directories are searched for *.json documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file, directory, or - for stdout")
	fmt.Fprintln(w, "  -f, --format <s>          markdown, html, text (default: markdown)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML:")
	fmt.Fprintln(w, "      --standalone          Write complete HTML pages")
	fmt.Fprintln(w, "      --title <s>           Title of standalone pages")
	fmt.Fprintln(w, "      --minify              Minify HTML output")
	fmt.Fprintln(w, "      --page-style <s>      Page stylesheet: default, compact, none")
	fmt.Fprintln(w, "      --highlight-style <s> Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --css <path>          Stylesheet added to standalone pages")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printDetectUsage prints usage for the detect command.
func printDetectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdinterop detect [flags] [input|-]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print table, list, image, heading or none.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdinterop config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after defaults, config file and environment")
	fmt.Fprintln(w, "are applied. Use --output to start a new config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Write to a file (default: stdout)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment: MDINTEROP_CONFIG, MDINTEROP_FORMAT, MDINTEROP_WORKERS, MDINTEROP_MINIFY")
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "paste":
		printPasteUsage(env.Stdout)
	case "export":
		printExportUsage(env.Stdout)
	case "detect":
		printDetectUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdinterop version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdinterop help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
