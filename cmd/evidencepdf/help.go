package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: evidencepdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Build one labeled exhibit PDF from images or a PDF")
	fmt.Fprintln(w, "  batch      Build every exhibit listed in a manifest")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'evidencepdf help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by every command.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --font <path>         TrueType font for labels")
	fmt.Fprintln(w, "      --log-format <s>      Log format: console, json")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  EVIDENCEPDF_CONFIG        Config used when --config is not given")
	fmt.Fprintln(w, "  EVIDENCEPDF_FONT          Label font tried after --font and config fonts")
	fmt.Fprintln(w, "  A .env file in the working directory is loaded first.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: evidencepdf convert -l <label> [flags] <file>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compose images into one A4 page each, or stamp the first page of a PDF,")
	fmt.Fprintln(w, "with the label boxed in the top-right corner of page one.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  file      Images (jpg, png, gif, bmp, tiff, webp) or one PDF")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -l, --label <s>           Exhibit label, e.g. 原證1")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: <first file stem><label>.pdf)")
	fmt.Fprintln(w, "      --strict              Reject images mixed with PDF documents")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printBatchUsage prints usage for the batch command.
func printBatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: evidencepdf batch [flags] <manifest.yaml>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run every job and numbered series in a manifest. Each job is written")
	fmt.Fprintln(w, "to <output dir>/<job id>.pdf; failed jobs never stop the others.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel jobs (0 = auto)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory for jobs without one")
	fmt.Fprintln(w, "      --strict              Fail jobs that mix images and PDF documents")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "batch":
		printBatchUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: evidencepdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: evidencepdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
