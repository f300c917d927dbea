package fonts

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFontFile is the label font looked up next to the executable and in
// the working directory.
const DefaultFontFile = "kaiu.ttf"

// EnvFont names the environment variable holding a label font path.
const EnvFont = "EVIDENCEPDF_FONT"

// maxFontBytes bounds the size of a font file read from disk.
const maxFontBytes = 64 << 20

// Source yields raw font bytes.
type Source interface {
	// Name describes the source in logs and errors.
	Name() string
	// Load returns the font file contents.
	Load() ([]byte, error)
}

// FileSource loads a font from a path on disk.
type FileSource struct {
	Path string
}

// Name returns the path.
func (s FileSource) Name() string { return s.Path }

// Load reads the file, refusing directories and oversized files.
func (s FileSource) Load() ([]byte, error) {
	if s.Path == "" {
		return nil, ErrEmptySource
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", s.Path)
	}
	if info.Size() > maxFontBytes {
		return nil, fmt.Errorf("%w: %s (%d bytes)", ErrFontTooLarge, s.Path, info.Size())
	}
	data, err := os.ReadFile(s.Path) // #nosec G304 -- font path comes from the operator's configuration
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	return data, nil
}

// BytesSource serves an in-memory font, typically an embedded one.
type BytesSource struct {
	Label string
	Data  []byte
}

// Name returns the label.
func (s BytesSource) Name() string { return s.Label }

// Load returns the data.
func (s BytesSource) Load() ([]byte, error) {
	if len(s.Data) == 0 {
		return nil, ErrEmptySource
	}
	return s.Data, nil
}

// DefaultSources returns the lookup chain: each explicit path, then the
// EnvFont variable, then DefaultFontFile next to the executable and in the
// working directory. getenv is usually os.Getenv.
func DefaultSources(paths []string, getenv func(string) string) []Source {
	sources := make([]Source, 0, len(paths)+3)
	for _, p := range paths {
		if p != "" {
			sources = append(sources, FileSource{Path: p})
		}
	}
	if getenv != nil {
		if p := getenv(EnvFont); p != "" {
			sources = append(sources, FileSource{Path: p})
		}
	}
	if exe, err := os.Executable(); err == nil {
		sources = append(sources, FileSource{Path: filepath.Join(filepath.Dir(exe), DefaultFontFile)})
	}
	if wd, err := os.Getwd(); err == nil {
		sources = append(sources, FileSource{Path: filepath.Join(wd, DefaultFontFile)})
	}
	return sources
}
