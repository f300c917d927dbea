package evidencepdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDocumentMerger_Merge - First-page label overlay
// ---------------------------------------------------------------------------

func TestDocumentMerger_Merge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSourcePDF(t, dir, "contract.pdf", 3)
	before := readPagesFromFile(t, src)

	merger, err := NewDocumentMerger(testOptions()...)
	if err != nil {
		t.Fatalf("NewDocumentMerger() error = %v", err)
	}

	var buf bytes.Buffer
	if err := merger.Merge(t.Context(), src, "原證2", &buf); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	after := readPages(t, buf.Bytes())
	if len(after) != 3 {
		t.Fatalf("got %d pages, want 3", len(after))
	}

	// Page 1 keeps its own content and gains the stamp on top.
	if !bytes.Contains(after[0].Content, []byte("SOURCE-PAGE-1")) {
		t.Error("page 1 lost its original content")
	}
	if bytes.Equal(after[0].Content, before[0].Content) {
		t.Error("page 1 was not stamped")
	}

	// The overlay form sits at the page origin at its natural size.
	forms := formPlacements(t, after[0].Content)
	if len(forms) != 1 {
		t.Fatalf("page 1 draws %d forms, want 1", len(forms))
	}
	if forms[0].Name != "Fm0" {
		t.Errorf("overlay form = %q, want Fm0", forms[0].Name)
	}
	identity := []float64{1, 0, 0, 1, 0, 0}
	for i, v := range forms[0].Matrix {
		if !approxEqual(v, identity[i]) {
			t.Errorf("overlay matrix = %v, want %v", forms[0].Matrix, identity)
			break
		}
	}

	// Pages 2 and 3 are untouched and stay in order.
	for i := 1; i < 3; i++ {
		if !bytes.Equal(after[i].Content, before[i].Content) {
			t.Errorf("page %d content changed", i+1)
		}
	}
	if !bytes.Contains(after[2].Content, []byte("SOURCE-PAGE-3")) {
		t.Error("page order changed")
	}
}

// ---------------------------------------------------------------------------
// TestDocumentMerger_Merge_Errors - Unreadable documents
// ---------------------------------------------------------------------------

func TestDocumentMerger_Merge_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.pdf")
	if err := os.WriteFile(corrupt, []byte("%PDF-1.4\nthis is not a pdf body"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	missing := filepath.Join(dir, "missing.pdf")

	merger, err := NewDocumentMerger(testOptions()...)
	if err != nil {
		t.Fatalf("NewDocumentMerger() error = %v", err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{"corrupt document", corrupt, nil},
		{"missing document", missing, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			err := merger.Merge(t.Context(), tt.path, "1", &buf)

			var mergeErr *DocumentMergeError
			if !errors.As(err, &mergeErr) {
				t.Fatalf("Merge() error = %v, want *DocumentMergeError", err)
			}
			if mergeErr.Path != tt.path {
				t.Errorf("Path = %q, want %q", mergeErr.Path, tt.path)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Merge() error = %v, want %v", err, tt.wantErr)
			}
			if buf.Len() != 0 {
				t.Errorf("wrote %d bytes on failure, want none", buf.Len())
			}
		})
	}

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		src := writeSourcePDF(t, t.TempDir(), "one.pdf", 1)
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := merger.Merge(ctx, src, "1", &bytes.Buffer{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Merge() error = %v, want context.Canceled", err)
		}
	})
}
