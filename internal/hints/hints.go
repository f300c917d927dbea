// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
	"github.com/alnah/go-evidencepdf/internal/fonts"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontFallback returns hints when the label font fell back to Helvetica.
func ForFontFallback() string {
	var hints []string

	if os.Getenv(fonts.EnvFont) == "" {
		hints = append(hints, "set "+fonts.EnvFont+" or --font to a TrueType font with CJK glyphs")
	}
	if IsInContainer() {
		hints = append(hints, "mount the font file into the container")
	} else {
		hints = append(hints, "or place "+fonts.DefaultFontFile+" next to the executable")
	}

	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/evidencepdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForUnsupportedInput lists the accepted extensions.
func ForUnsupportedInput(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("supported: " + strings.Join(extensions, ", "))
}

// ForMixedInputs returns hints for jobs that combine images and PDFs.
func ForMixedInputs() string {
	return format("put images and PDF documents in separate jobs")
}

// ForImageDecode returns hints for images that fail to decode.
func ForImageDecode() string {
	return format("re-export the image as JPEG or PNG")
}

// ForManifest returns hints for invalid batch manifests.
func ForManifest() string {
	return format("each job needs an id and at least one file, e.g. {id: 原證1, files: [scan.jpg]}")
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
