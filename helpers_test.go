package evidencepdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/image/bmp"
)

// fixedNow keeps generated documents reproducible.
func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
}

// testOptions builds components with the core font and a fixed clock, so
// tests never depend on fonts installed on the machine.
func testOptions(extra ...Option) []Option {
	return append([]Option{WithoutFontLookup(), WithNow(fixedNow)}, extra...)
}

func testConfig(t *testing.T, extra ...Option) *converterConfig {
	t.Helper()
	cfg, err := newConverterConfig(testOptions(extra...))
	if err != nil {
		t.Fatalf("newConverterConfig() error = %v", err)
	}
	return cfg
}

// writeTestImage writes a w x h image with a gradient so JPEG staging has
// real content. The extension picks the encoder (.png or .bmp).
func writeTestImage(t testing.TB, dir, name string, w, h int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	var err error
	switch filepath.Ext(name) {
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// writeSourcePDF writes an A4 PDF whose page n shows "SOURCE-PAGE-n".
func writeSourcePDF(t *testing.T, dir, name string, pages int) string {
	t.Helper()

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 24)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(72, 144, fmt.Sprintf("SOURCE-PAGE-%d", i))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("building source PDF: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// pdfPage is the decoded content and media box size of one page.
type pdfPage struct {
	Content       []byte
	Width, Height float64
}

// readPages parses a PDF and returns its pages in order.
func readPages(t *testing.T, data []byte) []pdfPage {
	t.Helper()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), newPDFConfig())
	if err != nil {
		t.Fatalf("reading PDF: %v", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("counting pages: %v", err)
	}

	pages := make([]pdfPage, 0, ctx.PageCount)
	for n := 1; n <= ctx.PageCount; n++ {
		dict, _, inh, err := ctx.PageDict(n, false)
		if err != nil {
			t.Fatalf("page %d dict: %v", n, err)
		}
		content, err := ctx.PageContent(dict, n)
		if err != nil {
			t.Fatalf("page %d content: %v", n, err)
		}
		p := pdfPage{Content: content}
		if inh != nil && inh.MediaBox != nil {
			p.Width = inh.MediaBox.Width()
			p.Height = inh.MediaBox.Height()
		}
		pages = append(pages, p)
	}
	return pages
}

func readPagesFromFile(t *testing.T, path string) []pdfPage {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	return readPages(t, data)
}

func approxEqual(a, b float64) bool {
	const eps = 0.01
	d := a - b
	return d < eps && d > -eps
}

var (
	imageOpRe = regexp.MustCompile(`q ([0-9.]+) 0 0 ([0-9.]+) (-?[0-9.]+) (-?[0-9.]+) cm /I\S* Do Q`)
	formOpRe  = regexp.MustCompile(`q (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) (-?[0-9.]+) cm /\S+ gs /(\S+) Do Q`)
)

// imagePlacements returns the rectangles of the images drawn by content.
func imagePlacements(t *testing.T, content []byte) []Rect {
	t.Helper()

	var rects []Rect
	for _, m := range imageOpRe.FindAllSubmatch(content, -1) {
		v := parseFloats(t, m[1:5])
		rects = append(rects, Rect{X: v[2], Y: v[3], W: v[0], H: v[1]})
	}
	return rects
}

// formPlacement is a form XObject drawn through a graphics state.
type formPlacement struct {
	Name   string
	Matrix []float64
}

// formPlacements returns the form XObjects drawn by content with their
// transformation matrices.
func formPlacements(t *testing.T, content []byte) []formPlacement {
	t.Helper()

	var forms []formPlacement
	for _, m := range formOpRe.FindAllSubmatch(content, -1) {
		forms = append(forms, formPlacement{Name: string(m[7]), Matrix: parseFloats(t, m[1:7])})
	}
	return forms
}

func parseFloats(t *testing.T, fields [][]byte) []float64 {
	t.Helper()

	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(string(f), 64)
		if err != nil {
			t.Fatalf("parsing %q: %v", f, err)
		}
		out[i] = v
	}
	return out
}
