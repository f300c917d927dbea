package evidencepdf

import (
	"slices"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
)

// SourceFile is a classified input: either a RasterImage or a
// PaginatedDocument.
type SourceFile interface {
	SourcePath() string
	sourceFile()
}

// RasterImage is an image file that becomes one page.
type RasterImage struct {
	Path string
}

// PaginatedDocument is an existing PDF whose first page is stamped.
type PaginatedDocument struct {
	Path string
}

func (r RasterImage) SourcePath() string       { return r.Path }
func (d PaginatedDocument) SourcePath() string { return d.Path }
func (RasterImage) sourceFile()                {}
func (PaginatedDocument) sourceFile()          {}

// imageExtensions lists the accepted image extensions, lowercased.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// documentExtension is the accepted document extension.
const documentExtension = ".pdf"

// SupportedExtensions returns every accepted extension.
func SupportedExtensions() []string {
	return append(slices.Clone(imageExtensions), documentExtension)
}

// ClassifyInput decides the kind of path from its extension, ignoring case.
// ok is false for unsupported files.
func ClassifyInput(path string) (src SourceFile, ok bool) {
	ext := fileutil.Ext(path)
	switch {
	case ext == documentExtension:
		return PaginatedDocument{Path: path}, true
	case slices.Contains(imageExtensions, ext):
		return RasterImage{Path: path}, true
	default:
		return nil, false
	}
}

// Classification groups a request's paths by kind, keeping their order.
type Classification struct {
	Images      []RasterImage
	Documents   []PaginatedDocument
	Unsupported []string
}

// ClassifyInputs classifies every path.
func ClassifyInputs(paths []string) Classification {
	var c Classification
	for _, p := range paths {
		src, ok := ClassifyInput(p)
		if !ok {
			c.Unsupported = append(c.Unsupported, p)
			continue
		}
		switch s := src.(type) {
		case RasterImage:
			c.Images = append(c.Images, s)
		case PaginatedDocument:
			c.Documents = append(c.Documents, s)
		}
	}
	return c
}

// ImagePaths returns the image paths in order.
func (c Classification) ImagePaths() []string {
	paths := make([]string, len(c.Images))
	for i, img := range c.Images {
		paths[i] = img.Path
	}
	return paths
}

// DocumentPaths returns the document paths in order.
func (c Classification) DocumentPaths() []string {
	paths := make([]string, len(c.Documents))
	for i, d := range c.Documents {
		paths[i] = d.Path
	}
	return paths
}
