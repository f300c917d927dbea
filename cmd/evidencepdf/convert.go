package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-evidencepdf"
	"github.com/alnah/go-evidencepdf/internal/fileutil"
)

// runConvert builds one labeled PDF from the files in args.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, files, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if flags.label == "" {
		return ErrMissingLabel
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no input files", ErrUsage)
	}

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	log, err := newLogger(&flags.common, cfg, env)
	if err != nil {
		return err
	}

	conv, err := evidencepdf.NewConverter(converterOptions(&flags.common, cfg, log, flags.strict)...)
	if err != nil {
		return err
	}
	warnFontFallback(conv, &flags.common, env)

	output, err := resolveConvertOutput(flags.output, cfg.Output.DefaultDir, files[0], flags.label)
	if err != nil {
		return err
	}

	outPath, err := conv.Convert(ctx, evidencepdf.Input{
		Paths:      files,
		OutputPath: output,
		Label:      flags.label,
	})
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintln(env.Stdout, outPath)
	}
	return nil
}

// resolveConvertOutput picks the output path: the --output flag, else the
// derived name inside the configured default directory, else "" so the
// converter writes next to the first input.
func resolveConvertOutput(flagOutput, defaultDir, first, label string) (string, error) {
	if flagOutput != "" {
		return flagOutput, nil
	}
	if defaultDir == "" {
		return "", nil
	}
	if err := fileutil.EnsureDir(defaultDir); err != nil {
		return "", fmt.Errorf("%w: %w", evidencepdf.ErrWriteOutput, err)
	}
	return filepath.Join(defaultDir, filepath.Base(evidencepdf.DefaultOutputPath(first, label))), nil
}
