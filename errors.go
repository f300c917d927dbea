package evidencepdf

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for library operations.
var (
	// Input classification errors.
	ErrNoInputs         = errors.New("no input files")
	ErrUnsupportedInput = errors.New("no supported input files")
	ErrMixedInputs      = errors.New("images and PDF documents cannot share a job")

	// Option validation errors.
	ErrInvalidPageFormat  = errors.New("invalid page format")
	ErrInvalidFontSize    = errors.New("invalid label font size")
	ErrInvalidJPEGQuality = errors.New("invalid JPEG quality")

	// Rendering errors.
	ErrEmptyDocument   = errors.New("document has no pages")
	ErrWriteOutput     = errors.New("failed to write output")
	ErrEmptyJobName    = errors.New("job id yields an empty file name")
	ErrOutputCollision = errors.New("output path already belongs to another job")
)

// InputError reports a request that cannot be turned into a document.
type InputError struct {
	Paths []string
	Err   error
}

func (e *InputError) Error() string {
	if len(e.Paths) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v: %s", e.Err, strings.Join(e.Paths, ", "))
}

func (e *InputError) Unwrap() error { return e.Err }

// ImageProcessingError reports an image that could not be decoded,
// transformed or embedded.
type ImageProcessingError struct {
	Path string
	Err  error
}

func (e *ImageProcessingError) Error() string {
	return fmt.Sprintf("processing image %s: %v", e.Path, e.Err)
}

func (e *ImageProcessingError) Unwrap() error { return e.Err }

// DocumentMergeError reports a PDF that could not be read or stamped.
type DocumentMergeError struct {
	Path string
	Err  error
}

func (e *DocumentMergeError) Error() string {
	return fmt.Sprintf("merging label into %s: %v", e.Path, e.Err)
}

func (e *DocumentMergeError) Unwrap() error { return e.Err }

// FontResolutionWarning is not fatal: labels are drawn with Fallback.
// Tried lists the font sources in lookup order.
type FontResolutionWarning struct {
	Tried    []string
	Fallback string
	Err      error
}

func (e *FontResolutionWarning) Error() string {
	return fmt.Sprintf("label font unavailable, using %s: %v", e.Fallback, e.Err)
}

func (e *FontResolutionWarning) Unwrap() error { return e.Err }
