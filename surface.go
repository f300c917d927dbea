package evidencepdf

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-evidencepdf/internal/fonts"
)

// Surface is a drawing target in PDF user space: points, origin at the
// bottom-left corner of the current page.
type Surface interface {
	FillRect(r Rect, c Color)
	StrokeRect(r Rect, c Color, lineWidth float64)
	// SetFontSize selects the label face at size points.
	SetFontSize(size float64) error
	// StringWidth returns the rendered width of s at the current size.
	StringWidth(s string) float64
	// DrawText draws s with its baseline starting at (x, y).
	DrawText(x, y float64, s string, c Color)
}

// pdfSurface draws onto the current page of an fpdf document.
// fpdf measures y from the top, so every y is flipped against pageHeight.
type pdfSurface struct {
	pdf        *fpdf.Fpdf
	face       *fonts.Face
	pageHeight float64
	translate  func(string) string
}

// newPDFSurface registers face with pdf. The core face needs no embedding
// but its text goes through the cp1252 translator.
func newPDFSurface(pdf *fpdf.Fpdf, format PageFormat, face *fonts.Face) (*pdfSurface, error) {
	s := &pdfSurface{
		pdf:        pdf,
		face:       face,
		pageHeight: format.Height,
		translate:  func(s string) string { return s },
	}
	if face.IsCore() {
		s.translate = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		pdf.AddUTF8FontFromBytes(face.Family, "", face.Data)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("registering font %s: %w", face.Source, err)
	}
	return s, nil
}

func (s *pdfSurface) FillRect(r Rect, c Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Rect(r.X, s.pageHeight-r.Y-r.H, r.W, r.H, "F")
}

func (s *pdfSurface) StrokeRect(r Rect, c Color, lineWidth float64) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetLineWidth(lineWidth)
	s.pdf.Rect(r.X, s.pageHeight-r.Y-r.H, r.W, r.H, "D")
}

func (s *pdfSurface) SetFontSize(size float64) error {
	s.pdf.SetFont(s.face.Family, "", size)
	return s.pdf.Error()
}

func (s *pdfSurface) StringWidth(str string) float64 {
	return s.pdf.GetStringWidth(s.translate(str))
}

func (s *pdfSurface) DrawText(x, y float64, str string, c Color) {
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	s.pdf.Text(x, s.pageHeight-y, s.translate(str))
}

var _ Surface = (*pdfSurface)(nil)
