package evidencepdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
)

// Converter turns a request into one labeled PDF. It picks the compositor
// for images or the merger for a PDF document, derives the output path and
// writes the result atomically. A Converter is safe for concurrent use.
type Converter struct {
	cfg        *converterConfig
	stamper    *LabelStamper
	compositor *PageCompositor
	merger     *DocumentMerger
}

// NewConverter creates a Converter. The label font is resolved once here; a
// missing font is logged and reported by FontWarning, not returned.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}

	stamper := newLabelStamper(cfg)
	return &Converter{
		cfg:        cfg,
		stamper:    stamper,
		compositor: newPageCompositor(cfg, stamper),
		merger:     newDocumentMerger(cfg, stamper),
	}, nil
}

// FontWarning returns the *FontResolutionWarning raised while resolving the
// label font, or nil.
func (c *Converter) FontWarning() error {
	return c.stamper.FontWarning()
}

// Convert builds the document described by input and returns the path it
// was written to. Images take precedence: when a request holds both images
// and documents, only the images are composed (or ErrMixedInputs is returned
// under WithStrictInputs). With documents only, the first one is stamped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (outPath string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Paths) == 0 {
		return "", &InputError{Err: ErrNoInputs}
	}

	class := ClassifyInputs(input.Paths)
	if len(class.Images) == 0 && len(class.Documents) == 0 {
		return "", &InputError{Err: ErrUnsupportedInput, Paths: input.Paths}
	}
	if len(class.Unsupported) > 0 {
		c.cfg.logger.Warn("skipping unsupported files", slog.Any("paths", class.Unsupported))
	}
	if len(class.Images) > 0 && len(class.Documents) > 0 {
		if c.cfg.strict {
			return "", &InputError{Err: ErrMixedInputs, Paths: class.DocumentPaths()}
		}
		c.cfg.logger.Warn("images and documents mixed, skipping documents",
			slog.Any("skipped", class.DocumentPaths()))
	}

	outPath = input.OutputPath
	if outPath == "" {
		outPath = DefaultOutputPath(input.Paths[0], input.Label)
	}

	var buf bytes.Buffer
	if len(class.Images) > 0 {
		err = c.compositor.Compose(ctx, class.ImagePaths(), input.Label, &buf)
	} else {
		if len(class.Documents) > 1 {
			c.cfg.logger.Warn("only the first document is stamped",
				slog.Any("skipped", class.DocumentPaths()[1:]))
		}
		err = c.merger.Merge(ctx, class.Documents[0].Path, input.Label, &buf)
	}
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := fileutil.WriteFileAtomic(outPath, buf.Bytes()); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	c.cfg.logger.Info("document written",
		slog.String("output", outPath),
		slog.String("label", input.Label))
	return outPath, nil
}

// DefaultOutputPath names the output after the first input and the label:
// "/in/scan.jpg" with label "原證1" gives "/in/scan原證1.pdf".
func DefaultOutputPath(first, label string) string {
	return filepath.Join(filepath.Dir(first), fileutil.Stem(first)+fileutil.SafeName(label)+".pdf")
}
