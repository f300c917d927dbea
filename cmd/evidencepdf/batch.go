package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-evidencepdf"
	"github.com/alnah/go-evidencepdf/internal/config"
)

// runBatch runs every job of the manifest in args and prints the summary.
// It returns ErrBatchFailed when any job failed.
func runBatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBatchFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: expected one manifest, got %d arguments", ErrUsage, len(positional))
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: --workers must not be negative", ErrUsage)
	}

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	log, err := newLogger(&flags.common, cfg, env)
	if err != nil {
		return err
	}

	manifest, err := config.LoadManifest(positional[0])
	if err != nil {
		return fmt.Errorf("loading manifest: %w", err)
	}

	conv, err := evidencepdf.NewConverter(converterOptions(&flags.common, cfg, log, flags.strict)...)
	if err != nil {
		return err
	}
	warnFontFallback(conv, &flags.common, env)

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Batch.Workers
	}
	workers = evidencepdf.ResolveWorkers(workers)
	log.Debug("batch configured", slog.Int("workers", workers))

	bm := evidencepdf.NewBatchManager(conv,
		evidencepdf.WithWorkers(workers),
		evidencepdf.WithBatchLogger(log))
	addManifestJobs(bm, manifest, log, firstNonEmpty(flags.output, manifest.OutputDir, cfg.Output.DefaultDir))

	var progress evidencepdf.ProgressFunc
	if !flags.common.quiet {
		progress = func(id string, status evidencepdf.JobStatus, current, total int) {
			fmt.Fprintf(env.Stderr, "[%d/%d] %s %s\n", current, total, id, status)
		}
	}
	results := bm.ProcessAllJobs(ctx, progress)

	if !flags.common.quiet {
		fmt.Fprint(env.Stdout, bm.SummaryReport())
	}

	if failed := len(bm.FailedJobs()); failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(results))
	}
	return ctx.Err()
}

// addManifestJobs registers explicit jobs, then numbered series. A job's
// own output directory wins over defaultDir. Series numbers without files
// are skipped.
func addManifestJobs(bm *evidencepdf.BatchManager, m *config.Manifest, log *slog.Logger, defaultDir string) {
	for _, j := range m.Jobs {
		label := j.Label
		if label == "" {
			label = j.ID
		}
		bm.AddJob(j.ID, j.Files, label, firstNonEmpty(j.OutputDir, defaultDir))
	}
	for _, s := range m.Series {
		nums := s.SeriesNumbers()
		if len(nums) == 0 {
			log.Warn("series has no files", slog.String("prefix", s.Prefix))
			continue
		}
		if skipped := s.End - s.Start + 1 - len(nums); skipped > 0 {
			log.Info("series numbers without files skipped",
				slog.String("prefix", s.Prefix),
				slog.Int("skipped", skipped))
		}
		bm.AddNumberedJobs(s.Prefix, nums[0], nums[len(nums)-1], s.Files, firstNonEmpty(s.OutputDir, defaultDir))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
