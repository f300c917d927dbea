package evidencepdf

// FitScale returns the factor that fits a w x h image inside availW x availH
// without enlarging it.
func FitScale(w, h, availW, availH float64) float64 {
	return min(availW/w, availH/h, 1)
}

// NeedsRotation reports whether an image is landscape. Landscape images are
// turned 90 degrees counter-clockwise before placement.
func NeedsRotation(w, h int) bool {
	return w > h
}

// PlaceImage returns where a w x h pixel image lands on a page of format f:
// scaled to fit the printable area (1 px = 1 pt) and centered on the full
// page.
func PlaceImage(f PageFormat, w, h int) Rect {
	scale := FitScale(float64(w), float64(h), f.AvailableWidth(), f.AvailableHeight())
	dw := float64(w) * scale
	dh := float64(h) * scale
	return Rect{
		X: (f.Width - dw) / 2,
		Y: (f.Height - dh) / 2,
		W: dw,
		H: dh,
	}
}
