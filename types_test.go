package evidencepdf

import (
	"errors"
	"math"
	"testing"
)

func TestA4(t *testing.T) {
	t.Parallel()

	f := A4()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"width", f.Width, 595.2756},
		{"height", f.Height, 841.8898},
		{"margin", f.Margin, 14.1732},
		{"label width", f.LabelWidth, 28.3465},
		{"label height", f.LabelHeight, 85.0394},
		{"available width", f.AvailableWidth(), 566.9291},
		{"available height", f.AvailableHeight(), 813.5433},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !approxEqual(tt.got, tt.want) {
				t.Errorf("%s = %.4f, want %.4f", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestPageFormat_LabelBox(t *testing.T) {
	t.Parallel()

	box := A4().LabelBox()

	// Top-right corner, inset by the margin on both sides.
	if !approxEqual(box.X, 552.7559) || !approxEqual(box.Y, 742.6772) {
		t.Errorf("LabelBox origin = (%.4f, %.4f), want (552.7559, 742.6772)", box.X, box.Y)
	}
	if !approxEqual(box.X+box.W, A4Width-A4Margin) {
		t.Errorf("box right edge = %.4f, want %.4f", box.X+box.W, A4Width-A4Margin)
	}
	if !approxEqual(box.Y+box.H, A4Height-A4Margin) {
		t.Errorf("box top edge = %.4f, want %.4f", box.Y+box.H, A4Height-A4Margin)
	}

	cx, cy := box.Center()
	if !approxEqual(cx, box.X+box.W/2) || !approxEqual(cy, box.Y+box.H/2) {
		t.Errorf("Center() = (%.4f, %.4f)", cx, cy)
	}
}

func TestPageFormat_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PageFormat)
		wantErr error
	}{
		{"a4", func(*PageFormat) {}, nil},
		{"zero margin", func(f *PageFormat) { f.Margin = 0 }, nil},
		{"zero width", func(f *PageFormat) { f.Width = 0 }, ErrInvalidPageFormat},
		{"negative height", func(f *PageFormat) { f.Height = -1 }, ErrInvalidPageFormat},
		{"nan label width", func(f *PageFormat) { f.LabelWidth = math.NaN() }, ErrInvalidPageFormat},
		{"negative margin", func(f *PageFormat) { f.Margin = -2 }, ErrInvalidPageFormat},
		{"margins eat the page", func(f *PageFormat) { f.Margin = f.Width }, ErrInvalidPageFormat},
		{"label taller than page", func(f *PageFormat) { f.LabelHeight = f.Height }, ErrInvalidPageFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := A4()
			tt.mutate(&f)
			if err := f.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
