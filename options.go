package evidencepdf

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/alnah/go-evidencepdf/internal/fonts"
	"github.com/alnah/go-evidencepdf/internal/raster"
)

// Option configures a Converter and the components it builds.
type Option func(*converterConfig)

// converterConfig holds internal configuration shared by the converter,
// compositor, merger and label stamper.
type converterConfig struct {
	logger      *slog.Logger
	format      PageFormat
	fontSize    float64
	jpegQuality int
	strict      bool
	now         func() time.Time

	fontData     []fonts.Source
	fontPaths    []string
	fontLookup   bool
	lookupGetenv func(string) string
}

func defaultConverterConfig() *converterConfig {
	return &converterConfig{
		logger:       slog.New(slog.DiscardHandler),
		format:       A4(),
		fontSize:     DefaultFontSize,
		jpegQuality:  raster.DefaultJPEGQuality,
		now:          time.Now,
		fontLookup:   true,
		lookupGetenv: os.Getenv,
	}
}

func newConverterConfig(opts []Option) (*converterConfig, error) {
	cfg := defaultConverterConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *converterConfig) validate() error {
	if err := c.format.Validate(); err != nil {
		return err
	}
	if c.fontSize <= 0 || math.IsNaN(c.fontSize) || math.IsInf(c.fontSize, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidFontSize, c.fontSize)
	}
	if c.jpegQuality < 1 || c.jpegQuality > 100 {
		return fmt.Errorf("%w: %d (want 1-100)", ErrInvalidJPEGQuality, c.jpegQuality)
	}
	return nil
}

// fontSources returns the lookup chain: in-memory fonts, explicit paths,
// then the default locations unless lookup is disabled.
func (c *converterConfig) fontSources() []fonts.Source {
	sources := append([]fonts.Source(nil), c.fontData...)
	if c.fontLookup {
		return append(sources, fonts.DefaultSources(c.fontPaths, c.lookupGetenv)...)
	}
	for _, p := range c.fontPaths {
		if p != "" {
			sources = append(sources, fonts.FileSource{Path: p})
		}
	}
	return sources
}

// WithLogger sets the logger. The default discards every record.
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithPageFormat overrides the A4 page format.
func WithPageFormat(f PageFormat) Option {
	return func(c *converterConfig) {
		c.format = f
	}
}

// WithFontPaths puts TrueType files ahead of the default font lookup.
func WithFontPaths(paths ...string) Option {
	return func(c *converterConfig) {
		c.fontPaths = append(c.fontPaths, paths...)
	}
}

// WithFontData puts an in-memory TrueType font ahead of every file source.
// name identifies the font in logs.
func WithFontData(name string, data []byte) Option {
	return func(c *converterConfig) {
		c.fontData = append(c.fontData, fonts.BytesSource{Label: name, Data: data})
	}
}

// WithoutFontLookup skips the EVIDENCEPDF_FONT variable and the kaiu.ttf
// lookup next to the executable and in the working directory. Only fonts
// given through WithFontPaths and WithFontData are tried.
func WithoutFontLookup() Option {
	return func(c *converterConfig) {
		c.fontLookup = false
	}
}

// WithFontSize sets the label font size in points (default 16).
func WithFontSize(size float64) Option {
	return func(c *converterConfig) {
		c.fontSize = size
	}
}

// WithJPEGQuality sets the quality used when staging images (default 95).
func WithJPEGQuality(q int) Option {
	return func(c *converterConfig) {
		c.jpegQuality = q
	}
}

// WithStrictInputs rejects requests that mix images and PDF documents with
// ErrMixedInputs instead of dropping the documents.
func WithStrictInputs() Option {
	return func(c *converterConfig) {
		c.strict = true
	}
}

// WithNow sets the clock used for document creation dates.
func WithNow(now func() time.Time) Option {
	return func(c *converterConfig) {
		if now != nil {
			c.now = now
		}
	}
}
