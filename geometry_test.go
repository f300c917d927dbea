package evidencepdf

import "testing"

func TestFitScale(t *testing.T) {
	t.Parallel()

	availW, availH := A4().AvailableWidth(), A4().AvailableHeight()

	tests := []struct {
		name string
		w, h float64
		want float64
	}{
		{"small image is never enlarged", 100, 200, 1},
		{"exact fit", availW, availH, 1},
		{"width bound", 1133.8582, 100, 0.5},
		{"height bound", 100, 1627.0866, 0.5},
		{"scan 3000x4000", 3000, 4000, availW / 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := FitScale(tt.w, tt.h, availW, availH)
			if !approxEqual(got, tt.want) {
				t.Errorf("FitScale(%v, %v) = %.5f, want %.5f", tt.w, tt.h, got, tt.want)
			}
			if tt.w*got > availW+0.001 || tt.h*got > availH+0.001 {
				t.Errorf("scaled %vx%v does not fit %vx%v", tt.w*got, tt.h*got, availW, availH)
			}
		})
	}
}

func TestNeedsRotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
		want bool
	}{
		{"landscape", 4000, 3000, true},
		{"portrait", 3000, 4000, false},
		{"square", 500, 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NeedsRotation(tt.w, tt.h); got != tt.want {
				t.Errorf("NeedsRotation(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
			}
		})
	}
}

func TestPlaceImage(t *testing.T) {
	t.Parallel()

	f := A4()

	t.Run("small image keeps its size and is centered", func(t *testing.T) {
		t.Parallel()

		r := PlaceImage(f, 200, 100)
		if !approxEqual(r.W, 200) || !approxEqual(r.H, 100) {
			t.Errorf("size = %.2fx%.2f, want 200x100", r.W, r.H)
		}
		if !approxEqual(r.X, (f.Width-200)/2) || !approxEqual(r.Y, (f.Height-100)/2) {
			t.Errorf("origin = (%.2f, %.2f), want centered", r.X, r.Y)
		}
	})

	t.Run("large image fits the printable area", func(t *testing.T) {
		t.Parallel()

		r := PlaceImage(f, 3000, 4000)
		if r.H > f.AvailableHeight()+0.001 || r.W > f.AvailableWidth()+0.001 {
			t.Errorf("placed %.2fx%.2f exceeds printable area", r.W, r.H)
		}
		if !approxEqual(r.X+r.W/2, f.Width/2) || !approxEqual(r.Y+r.H/2, f.Height/2) {
			t.Errorf("placed rect %+v is not centered", r)
		}
		if !approxEqual(r.W/r.H, 0.75) {
			t.Errorf("aspect ratio = %.4f, want 0.75", r.W/r.H)
		}
	})
}

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := ResolveWorkers(4); got != 4 {
		t.Errorf("ResolveWorkers(4) = %d, want 4", got)
	}
	if got := ResolveWorkers(1); got != 1 {
		t.Errorf("ResolveWorkers(1) = %d, want 1", got)
	}
	got := ResolveWorkers(0)
	if got < MinWorkers || got > MaxWorkers {
		t.Errorf("ResolveWorkers(0) = %d, want within [%d, %d]", got, MinWorkers, MaxWorkers)
	}
}
