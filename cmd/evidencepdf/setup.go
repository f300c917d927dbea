package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-evidencepdf"
	"github.com/alnah/go-evidencepdf/internal/config"
	"github.com/alnah/go-evidencepdf/internal/hints"
	"github.com/alnah/go-evidencepdf/internal/logger"
)

// envConfigName names the config used when --config is not given.
const envConfigName = "EVIDENCEPDF_CONFIG"

// loadConfig loads the config named by --config, then EVIDENCEPDF_CONFIG,
// or returns the defaults when neither is set.
func loadConfig(flags *commonFlags, env *Environment) (*config.Config, error) {
	name := flags.config
	if name == "" {
		name = env.Getenv(envConfigName)
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger. --quiet and --verbose override the
// configured level; --log-format overrides the configured format.
func newLogger(flags *commonFlags, cfg *config.Config, env *Environment) (*slog.Logger, error) {
	lc := logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	switch {
	case flags.quiet:
		lc.Level = "error"
	case flags.verbose:
		lc.Level = "debug"
	}
	if flags.logFormat != "" {
		lc.Format = flags.logFormat
	}

	l, err := logger.New(env.Stderr, lc)
	if err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return l, nil
}

// converterOptions maps the config and flags onto library options.
// --font is tried before the configured fonts.
func converterOptions(flags *commonFlags, cfg *config.Config, log *slog.Logger, strict bool) []evidencepdf.Option {
	opts := []evidencepdf.Option{evidencepdf.WithLogger(log)}

	var fontPaths []string
	if flags.font != "" {
		fontPaths = append(fontPaths, flags.font)
	}
	fontPaths = append(fontPaths, cfg.Label.Fonts...)
	if len(fontPaths) > 0 {
		opts = append(opts, evidencepdf.WithFontPaths(fontPaths...))
	}

	if cfg.Label.FontSize > 0 {
		opts = append(opts, evidencepdf.WithFontSize(cfg.Label.FontSize))
	}
	if cfg.Image.JPEGQuality > 0 {
		opts = append(opts, evidencepdf.WithJPEGQuality(cfg.Image.JPEGQuality))
	}
	if strict || cfg.Batch.StrictInputs {
		opts = append(opts, evidencepdf.WithStrictInputs())
	}
	return opts
}
