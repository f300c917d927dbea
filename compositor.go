package evidencepdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"codeberg.org/go-pdf/fpdf"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
	"github.com/alnah/go-evidencepdf/internal/raster"
)

// PageCompositor builds a new PDF with one page per image and the label on
// the first page.
type PageCompositor struct {
	format  PageFormat
	stamper *LabelStamper
	quality int
	now     func() time.Time
	logger  *slog.Logger
}

// NewPageCompositor creates a PageCompositor.
func NewPageCompositor(opts ...Option) (*PageCompositor, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}
	return newPageCompositor(cfg, newLabelStamper(cfg)), nil
}

func newPageCompositor(cfg *converterConfig, stamper *LabelStamper) *PageCompositor {
	return &PageCompositor{
		format:  cfg.format,
		stamper: stamper,
		quality: cfg.jpegQuality,
		now:     cfg.now,
		logger:  cfg.logger,
	}
}

// Compose renders paths in order and writes the PDF to w. Nothing is written
// to w unless every page rendered. Image failures are returned as
// *ImageProcessingError.
func (c *PageCompositor) Compose(ctx context.Context, paths []string, label string, w io.Writer) error {
	if len(paths) == 0 {
		return &InputError{Err: ErrNoInputs}
	}

	pdf := newDocument(c.format, c.now())
	surf, err := newPDFSurface(pdf, c.format, c.stamper.face)
	if err != nil {
		return err
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.addImagePage(pdf, path); err != nil {
			return &ImageProcessingError{Path: path, Err: err}
		}
		if i == 0 {
			if err := c.stamper.Stamp(surf, label); err != nil {
				return err
			}
			if err := pdf.Error(); err != nil {
				return fmt.Errorf("stamping label: %w", err)
			}
		}
		c.logger.Debug("page composed", slog.Int("page", i+1), slog.String("source", path))
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// addImagePage decodes path, turns it upright and draws it centered on a new
// page. The staged JPEG is removed before returning.
func (c *PageCompositor) addImagePage(pdf *fpdf.Fpdf, path string) error {
	img, _, err := raster.Load(path)
	if err != nil {
		return err
	}

	rgb := raster.ToRGB(img)
	if b := rgb.Bounds(); NeedsRotation(b.Dx(), b.Dy()) {
		rgb = raster.RotateCCW(rgb)
	}
	b := rgb.Bounds()

	data, err := raster.EncodeJPEG(rgb, c.quality)
	if err != nil {
		return err
	}
	staged, cleanup, err := fileutil.WriteTempFile(data, "jpg")
	if err != nil {
		return err
	}
	defer cleanup()

	place := PlaceImage(c.format, b.Dx(), b.Dy())
	pdf.AddPage()
	pdf.ImageOptions(staged,
		place.X, c.format.Height-place.Y-place.H, place.W, place.H,
		false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	return pdf.Error()
}
