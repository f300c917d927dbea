package main

import (
	"errors"
	"os"

	"github.com/alnah/go-evidencepdf"
	"github.com/alnah/go-evidencepdf/internal/config"
	"github.com/alnah/go-evidencepdf/internal/logger"
)

// Exit codes for the evidencepdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Successful conversion
	ExitGeneral    = 1 // General error or failed batch jobs
	ExitUsage      = 2 // Invalid flags, config, manifest, or inputs
	ExitIO         = 3 // File not found, permission denied, output not writable
	ExitConversion = 4 // Image decoding or PDF stamping failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, evidencepdf.ErrWriteOutput) ||
		errors.Is(err, config.ErrManifestNotFound) {
		return ExitIO
	}

	// Conversion errors (exit 4)
	var imgErr *evidencepdf.ImageProcessingError
	var docErr *evidencepdf.DocumentMergeError
	if errors.As(err, &imgErr) || errors.As(err, &docErr) {
		return ExitConversion
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrMissingLabel) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrManifestParse) ||
		errors.Is(err, config.ErrInvalidManifest) ||
		errors.Is(err, logger.ErrUnknownLevel) ||
		errors.Is(err, logger.ErrUnknownFormat) ||
		errors.Is(err, evidencepdf.ErrNoInputs) ||
		errors.Is(err, evidencepdf.ErrUnsupportedInput) ||
		errors.Is(err, evidencepdf.ErrMixedInputs) ||
		errors.Is(err, evidencepdf.ErrInvalidPageFormat) ||
		errors.Is(err, evidencepdf.ErrInvalidFontSize) ||
		errors.Is(err, evidencepdf.ErrInvalidJPEGQuality) {
		return ExitUsage
	}

	return ExitGeneral
}
