package evidencepdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
)

// overlayPlacement anchors the overlay page on the source page's lower-left
// corner at its natural size, so label coordinates carry over unchanged.
const overlayPlacement = "pos:bl, off:0 0, scale:1 abs, rot:0"

var disableConfigDir sync.Once

// newPDFConfig returns a fresh pdfcpu configuration. pdfcpu mutates the
// configuration it is given, so each call gets its own.
func newPDFConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// DocumentMerger stamps the label onto the first page of an existing PDF.
// Every other page is copied through unchanged.
type DocumentMerger struct {
	format  PageFormat
	stamper *LabelStamper
	now     func() time.Time
	logger  *slog.Logger
}

// NewDocumentMerger creates a DocumentMerger.
func NewDocumentMerger(opts ...Option) (*DocumentMerger, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}
	return newDocumentMerger(cfg, newLabelStamper(cfg)), nil
}

func newDocumentMerger(cfg *converterConfig, stamper *LabelStamper) *DocumentMerger {
	return &DocumentMerger{
		format:  cfg.format,
		stamper: stamper,
		now:     cfg.now,
		logger:  cfg.logger,
	}
}

// Merge reads the PDF at path, stamps label onto page 1 and writes the
// result to w. Failures are returned as *DocumentMergeError.
func (m *DocumentMerger) Merge(ctx context.Context, path, label string, w io.Writer) error {
	if err := m.merge(ctx, path, label, w); err != nil {
		return &DocumentMergeError{Path: path, Err: err}
	}
	return nil
}

func (m *DocumentMerger) merge(ctx context.Context, path, label string, w io.Writer) error {
	src, err := os.ReadFile(path) // #nosec G304 -- caller-supplied input file
	if err != nil {
		return err
	}

	pages, err := api.PageCount(bytes.NewReader(src), newPDFConfig())
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	if pages == 0 {
		return ErrEmptyDocument
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	overlay, err := m.renderOverlay(label)
	if err != nil {
		return fmt.Errorf("rendering label overlay: %w", err)
	}
	overlayPath, cleanup, err := fileutil.WriteTempFile(overlay, "pdf")
	if err != nil {
		return err
	}
	defer cleanup()

	wm, err := pdfcpu.ParsePDFWatermarkDetails(overlayPath, overlayPlacement, true, types.POINTS)
	if err != nil {
		return fmt.Errorf("preparing label overlay: %w", err)
	}

	var out bytes.Buffer
	if err := api.AddWatermarks(bytes.NewReader(src), &out, []string{"1"}, wm, newPDFConfig()); err != nil {
		return fmt.Errorf("stamping first page: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.logger.Debug("document stamped", slog.String("source", path), slog.Int("pages", pages))

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// renderOverlay draws a single transparent page holding only the label.
func (m *DocumentMerger) renderOverlay(label string) ([]byte, error) {
	pdf := newDocument(m.format, m.now())
	surf, err := newPDFSurface(pdf, m.format, m.stamper.face)
	if err != nil {
		return nil, err
	}
	pdf.AddPage()
	if err := m.stamper.Stamp(surf, label); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
