package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
	font      string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common commonFlags
	label  string
	output string
	strict bool
}

// batchFlags holds all flags for the batch command.
type batchFlags struct {
	common  commonFlags
	workers int
	output  string
	strict  bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: console, json")
	fs.StringVar(&f.font, "font", "", "TrueType font for labels")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.label, "label", "l", "", "exhibit label stamped on the first page")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.BoolVar(&f.strict, "strict", false, "reject images mixed with PDF documents")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBatchFlags parses batch command flags and returns positional args.
func parseBatchFlags(args []string, usage io.Writer) (*batchFlags, []string, error) {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &batchFlags{}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel jobs (0 = auto)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory for jobs without one")
	fs.BoolVar(&f.strict, "strict", false, "fail jobs that mix images and PDF documents")
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBatchUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
