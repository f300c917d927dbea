package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-evidencepdf"
	"github.com/alnah/go-evidencepdf/internal/config"
	"github.com/alnah/go-evidencepdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage        = errors.New("invalid usage")
	ErrMissingLabel = errors.New("missing --label")
	ErrBatchFailed  = errors.New("batch jobs failed")
)

// runMain dispatches the command in args (os.Args layout) and returns the
// process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "batch":
		err = runBatch(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "evidencepdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var imgErr *evidencepdf.ImageProcessingError
	switch {
	case errors.Is(err, evidencepdf.ErrUnsupportedInput):
		return hints.ForUnsupportedInput(evidencepdf.SupportedExtensions())
	case errors.Is(err, evidencepdf.ErrMixedInputs):
		return hints.ForMixedInputs()
	case errors.Is(err, evidencepdf.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.As(err, &imgErr):
		return hints.ForImageDecode()
	case errors.Is(err, config.ErrInvalidManifest), errors.Is(err, config.ErrManifestParse):
		return hints.ForManifest()
	default:
		return ""
	}
}

// warnFontFallback prints how to install the label font when the
// converter fell back to the core font.
func warnFontFallback(conv *evidencepdf.Converter, flags *commonFlags, env *Environment) {
	if conv.FontWarning() == nil || flags.quiet {
		return
	}
	fmt.Fprintf(env.Stderr, "warning: labels use the built-in font and cannot show CJK characters%s\n",
		hints.ForFontFallback())
}
