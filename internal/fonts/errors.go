package fonts

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for font resolution.
var (
	// ErrNoUsableFont indicates that no configured source produced a font.
	ErrNoUsableFont = errors.New("no usable label font")

	// ErrUnsupportedFontFormat indicates a font that parses but cannot be
	// embedded, such as CFF-flavored OpenType.
	ErrUnsupportedFontFormat = errors.New("unsupported font format")

	// ErrFontTooLarge indicates a font file above the size limit.
	ErrFontTooLarge = errors.New("font file too large")

	// ErrEmptySource indicates a source with no path or data.
	ErrEmptySource = errors.New("empty font source")
)

// ResolutionError reports a fallback to the core font.
// Tried lists the sources in the order they were attempted.
type ResolutionError struct {
	Tried    []string
	Fallback string
	Err      error
}

func (e *ResolutionError) Error() string {
	if len(e.Tried) == 0 {
		return fmt.Sprintf("%v: using %s", ErrNoUsableFont, e.Fallback)
	}
	return fmt.Sprintf("%v (tried %s): using %s", ErrNoUsableFont, strings.Join(e.Tried, ", "), e.Fallback)
}

func (e *ResolutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNoUsableFont}
	}
	return []error{ErrNoUsableFont, e.Err}
}
