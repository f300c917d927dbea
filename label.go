package evidencepdf

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-evidencepdf/internal/fonts"
)

// LabelUnit is one stacked unit and the left end of its baseline.
type LabelUnit struct {
	Text string
	X, Y float64
}

// LabelLayout is the computed placement of a label, in PDF user space.
type LabelLayout struct {
	Box      Rect
	FontSize float64
	Pitch    float64
	Units    []LabelUnit
}

// LabelStamper draws the bordered corner label. It holds no per-document
// state and is safe for concurrent use.
type LabelStamper struct {
	format   PageFormat
	fontSize float64
	face     *fonts.Face
	warning  *FontResolutionWarning
	logger   *slog.Logger
}

// NewLabelStamper resolves the label font and returns a stamper.
// A missing font is not an error: the stamper falls back to Helvetica and
// FontWarning reports why.
func NewLabelStamper(opts ...Option) (*LabelStamper, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}
	return newLabelStamper(cfg), nil
}

func newLabelStamper(cfg *converterConfig) *LabelStamper {
	s := &LabelStamper{
		format:   cfg.format,
		fontSize: cfg.fontSize,
		logger:   cfg.logger,
	}

	face, err := fonts.NewResolver(cfg.fontSources()...).Resolve()
	s.face = face
	if err != nil {
		s.warning = &FontResolutionWarning{Fallback: face.Family, Err: err}
		var resErr *fonts.ResolutionError
		if errors.As(err, &resErr) {
			s.warning.Tried = resErr.Tried
		}
		s.logger.Warn("label font unavailable, falling back",
			slog.String("fallback", face.Family),
			slog.Any("tried", s.warning.Tried))
	} else {
		s.logger.Debug("label font resolved", slog.String("source", face.Source))
	}
	return s
}

// FontWarning returns the *FontResolutionWarning recorded when the font fell
// back, or nil.
func (s *LabelStamper) FontWarning() error {
	if s.warning == nil {
		return nil
	}
	return s.warning
}

// FontSource describes where the label face came from.
func (s *LabelStamper) FontSource() string {
	return s.face.Source
}

// Layout places the units of text inside the label box. width measures a
// unit at the stamper's font size; each unit is centered on its own width.
// The block of units is centered vertically on the box.
func (s *LabelStamper) Layout(text string, width func(string) float64) LabelLayout {
	box := s.format.LabelBox()
	cx, cy := box.Center()
	pitch := s.fontSize * LinePitchFactor

	units := SplitDisplayUnits(text)
	total := pitch * float64(len(units))
	blockTop := cy + total/2

	layout := LabelLayout{
		Box:      box,
		FontSize: s.fontSize,
		Pitch:    pitch,
		Units:    make([]LabelUnit, len(units)),
	}
	for i, u := range units {
		layout.Units[i] = LabelUnit{
			Text: u,
			X:    cx - width(u)/2,
			Y:    blockTop - float64(i)*pitch - s.fontSize,
		}
	}
	return layout
}

// Stamp draws the label onto the current page of surf: a white box, a 1 pt
// black border, then each unit in black.
func (s *LabelStamper) Stamp(surf Surface, text string) error {
	if missing := s.face.Missing(text); len(missing) > 0 {
		s.logger.Warn("label font lacks glyphs",
			slog.String("font", s.face.Source),
			slog.String("missing", string(missing)))
	}

	if err := surf.SetFontSize(s.fontSize); err != nil {
		return fmt.Errorf("selecting label font: %w", err)
	}
	layout := s.Layout(text, surf.StringWidth)

	surf.FillRect(layout.Box, White)
	surf.StrokeRect(layout.Box, Black, LabelBorderWidth)
	for _, u := range layout.Units {
		surf.DrawText(u.X, u.Y, u.Text, Black)
	}
	return nil
}
