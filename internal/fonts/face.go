package fonts

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

// Family names registered with the PDF writer.
const (
	EmbeddedFamily = "EvidenceLabel"
	CoreFamily     = "Helvetica"
)

// Face is a resolved label typeface.
// A Face with nil Data is the core Helvetica font, which needs no embedding.
type Face struct {
	Family string
	Data   []byte
	Source string

	font *sfnt.Font
}

// CoreFace returns the built-in Helvetica fallback.
func CoreFace() *Face {
	return &Face{Family: CoreFamily, Source: "core font " + CoreFamily}
}

// ParseFace validates data as an embeddable TrueType font.
func ParseFace(source string, data []byte) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptySource
	}
	// The PDF writer embeds glyf-based outlines only.
	if bytes.HasPrefix(data, []byte("OTTO")) {
		return nil, fmt.Errorf("%w: %s has CFF outlines", ErrUnsupportedFontFormat, source)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &Face{Family: EmbeddedFamily, Data: data, Source: source, font: f}, nil
}

// IsCore reports whether the face is the built-in fallback.
func (f *Face) IsCore() bool {
	return f.Data == nil
}

// Missing returns the runes of text the face has no glyph for, in order of
// first appearance. The core font covers Latin-1 only.
func (f *Face) Missing(text string) []rune {
	var (
		missing []rune
		seen    = make(map[rune]bool)
		buf     sfnt.Buffer
	)
	for _, r := range text {
		if seen[r] {
			continue
		}
		seen[r] = true
		if !f.has(&buf, r) {
			missing = append(missing, r)
		}
	}
	return missing
}

func (f *Face) has(buf *sfnt.Buffer, r rune) bool {
	if f.font == nil {
		return r <= 0xFF
	}
	idx, err := f.font.GlyphIndex(buf, r)
	return err == nil && idx != 0
}
