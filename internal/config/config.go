// Package config loads the YAML configuration and batch manifests of the
// evidencepdf command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength  = 4096
	MaxFontPaths   = 16
	MinFontSize    = 4
	MaxFontSize    = 72
	MaxWorkers     = 32
	MaxLevelLength = 10
)

// ConfigDirName is the directory under the user config dir searched for
// named configs.
const ConfigDirName = "evidencepdf"

// Config holds the settings shared by every command.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Label   LabelConfig   `yaml:"label"`
	Image   ImageConfig   `yaml:"image"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// LabelConfig defines corner label options.
type LabelConfig struct {
	FontSize float64  `yaml:"fontSize"` // Points (default: 16)
	Fonts    []string `yaml:"fonts"`    // TrueType files tried in order before the built-in lookup
}

// ImageConfig defines image staging options.
type ImageConfig struct {
	JPEGQuality int `yaml:"jpegQuality"` // 1-100 (default: 95)
}

// BatchConfig defines batch processing options.
type BatchConfig struct {
	Workers      int  `yaml:"workers"`      // 0 = auto (half of GOMAXPROCS, capped)
	StrictInputs bool `yaml:"strictInputs"` // Reject jobs mixing images and PDFs
}

// LoggingConfig defines log output options.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultConfig returns a configuration with every value left to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Validate checks value ranges and field lengths.
// Zero values mean "use the default" and always pass.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Label.FontSize != 0 && (c.Label.FontSize < MinFontSize || c.Label.FontSize > MaxFontSize) {
		return fmt.Errorf("%w: label.fontSize must be between %d and %d, got %.1f",
			ErrInvalidValue, MinFontSize, MaxFontSize, c.Label.FontSize)
	}
	if len(c.Label.Fonts) > MaxFontPaths {
		return fmt.Errorf("%w: label.fonts has %d entries (max %d)", ErrInvalidValue, len(c.Label.Fonts), MaxFontPaths)
	}
	for i, p := range c.Label.Fonts {
		if err := validateFieldLength(fmt.Sprintf("label.fonts[%d]", i), p, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Image.JPEGQuality != 0 && (c.Image.JPEGQuality < 1 || c.Image.JPEGQuality > 100) {
		return fmt.Errorf("%w: image.jpegQuality must be between 1 and 100, got %d", ErrInvalidValue, c.Image.JPEGQuality)
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Batch.Workers)
	}

	if err := validateFieldLength("logging.level", c.Logging.Level, MaxLevelLength); err != nil {
		return err
	}
	if c.Logging.Format != "" {
		switch strings.ToLower(c.Logging.Format) {
		case "console", "json":
			// valid
		default:
			return fmt.Errorf("%w: logging.format %q (must be console or json)", ErrInvalidValue, c.Logging.Format)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || filepath.Ext(s) != ""
}

// SearchPaths lists where a config name is looked up, in order:
// the current directory, then <user config dir>/evidencepdf/, each with
// .yaml then .yml. A file path is returned as is.
func SearchPaths(name string) []string {
	if isFilePath(name) {
		return []string{name}
	}
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, ConfigDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing entry of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
