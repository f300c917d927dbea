//go:build bench

package evidencepdf

import (
	"fmt"
	"io"
	"testing"
)

// BenchmarkResolveWorkers benchmarks batch worker sizing.
func BenchmarkResolveWorkers(b *testing.B) {
	for _, w := range []int{0, 1, 4} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = ResolveWorkers(w)
			}
		})
	}
}

// BenchmarkSplitDisplayUnits benchmarks label splitting.
func BenchmarkSplitDisplayUnits(b *testing.B) {
	for _, label := range []string{"原證1", "被上證15", "Exhibit A-12"} {
		b.Run(label, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = SplitDisplayUnits(label)
			}
		})
	}
}

// BenchmarkCompose benchmarks composing one page, including decode, JPEG
// staging and label stamping.
func BenchmarkCompose(b *testing.B) {
	sizes := []struct{ w, h int }{{200, 300}, {1200, 900}}

	for _, s := range sizes {
		b.Run(fmt.Sprintf("%dx%d", s.w, s.h), func(b *testing.B) {
			dir := b.TempDir()
			img := writeTestImage(b, dir, "scan.png", s.w, s.h)
			comp, err := NewPageCompositor(testOptions()...)
			if err != nil {
				b.Fatalf("NewPageCompositor() error = %v", err)
			}

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := comp.Compose(b.Context(), []string{img}, "原證1", io.Discard); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
