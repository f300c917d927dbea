// Package raster prepares scanned pages for embedding: it decodes the common
// image formats, flattens them to opaque RGB, turns landscape images upright
// and stages the result as JPEG.
package raster

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DefaultJPEGQuality is the staging quality for embedded pages.
const DefaultJPEGQuality = 95

// Sentinel errors for raster operations.
var (
	ErrEmptyImage     = errors.New("image has no pixels")
	ErrInvalidQuality = errors.New("jpeg quality must be between 1 and 100")
)

// Load decodes the image at path. The format is sniffed from the content.
func Load(path string) (image.Image, string, error) {
	f, err := os.Open(path) // #nosec G304 -- caller-supplied input file
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	img, format, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, "", fmt.Errorf("decoding: %w", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, "", ErrEmptyImage
	}
	return img, format, nil
}

// ToRGB returns an opaque copy of img anchored at the origin.
// Transparent areas are composited onto white.
func ToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// RotateCCW rotates img 90 degrees counter-clockwise. The result is H x W.
func RotateCCW(img image.Image) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))

	// Maps destination (dx, dy) to source (w-1-dy+minX, dx+minY) on pixel
	// centers: source (sx, sy) lands on (sy, w-1-sx).
	s2d := f64.Aff3{
		0, 1, -float64(b.Min.Y),
		-1, 0, float64(w + b.Min.X),
	}
	draw.NearestNeighbor.Transform(dst, s2d, img, b, draw.Src, nil)
	return dst
}

// EncodeJPEG encodes img as JPEG at the given quality.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuality, quality)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
