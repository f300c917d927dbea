package evidencepdf

import (
	"fmt"
	"math"
)

// Unit conversions to PDF points.
const (
	PointsPerInch = 72.0
	PointsPerCM   = PointsPerInch / 2.54
	PointsPerMM   = PointsPerCM / 10
)

// A4 dimensions and label geometry, in points.
const (
	A4Width          = 210 * PointsPerMM
	A4Height         = 297 * PointsPerMM
	A4Margin         = 0.5 * PointsPerCM
	A4LabelWidth     = 1 * PointsPerCM
	A4LabelHeight    = 3 * PointsPerCM
	DefaultFontSize  = 16.0
	LinePitchFactor  = 1.1
	LabelBorderWidth = 1.0
)

// PageFormat describes the output page and its corner label box, in PDF
// points.
type PageFormat struct {
	Width       float64
	Height      float64
	Margin      float64
	LabelWidth  float64
	LabelHeight float64
}

// A4 returns the default page format.
func A4() PageFormat {
	return PageFormat{
		Width:       A4Width,
		Height:      A4Height,
		Margin:      A4Margin,
		LabelWidth:  A4LabelWidth,
		LabelHeight: A4LabelHeight,
	}
}

// AvailableWidth is the page width minus both margins.
func (f PageFormat) AvailableWidth() float64 {
	return f.Width - 2*f.Margin
}

// AvailableHeight is the page height minus both margins.
func (f PageFormat) AvailableHeight() float64 {
	return f.Height - 2*f.Margin
}

// LabelBox returns the label rectangle, anchored at the top-right margin
// corner.
func (f PageFormat) LabelBox() Rect {
	return Rect{
		X: f.Width - f.LabelWidth - f.Margin,
		Y: f.Height - f.LabelHeight - f.Margin,
		W: f.LabelWidth,
		H: f.LabelHeight,
	}
}

// Validate checks that every size is positive and finite and that the label
// box fits inside the margins.
func (f PageFormat) Validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"width", f.Width},
		{"height", f.Height},
		{"label width", f.LabelWidth},
		{"label height", f.LabelHeight},
	} {
		if v.value <= 0 || math.IsInf(v.value, 0) || math.IsNaN(v.value) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidPageFormat, v.name, v.value)
		}
	}
	if f.Margin < 0 || math.IsNaN(f.Margin) {
		return fmt.Errorf("%w: margin must not be negative, got %v", ErrInvalidPageFormat, f.Margin)
	}
	if f.AvailableWidth() <= 0 || f.AvailableHeight() <= 0 {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidPageFormat)
	}
	if f.LabelWidth > f.AvailableWidth() || f.LabelHeight > f.AvailableHeight() {
		return fmt.Errorf("%w: label box %.1fx%.1f does not fit inside the margins",
			ErrInvalidPageFormat, f.LabelWidth, f.LabelHeight)
	}
	return nil
}

// Rect is an axis-aligned rectangle in PDF user space: (X, Y) is the
// lower-left corner and Y grows upwards.
type Rect struct {
	X, Y, W, H float64
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

// Label colors.
var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Input describes one conversion request.
type Input struct {
	// Paths lists the source files in page order.
	Paths []string
	// OutputPath is the destination. Empty derives it from the first path
	// and the label.
	OutputPath string
	// Label is the corner label text, e.g. "原證1".
	Label string
}
