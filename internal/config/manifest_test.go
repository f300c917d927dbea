package config

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "batch.yaml", `
outputDir: out
jobs:
  - id: 原證1
    files: [scans/p1.jpg, /abs/p2.jpg]
  - id: 原證2
    label: 原證2
    files: [contract.pdf]
    outputDir: /elsewhere
series:
  - prefix: 被上證
    start: 1
    end: 3
    files:
      1: [a.pdf]
      3: [c.png]
`)

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}

	if m.OutputDir != filepath.Join(dir, "out") {
		t.Errorf("OutputDir = %q, want resolved against manifest dir", m.OutputDir)
	}
	if len(m.Jobs) != 2 {
		t.Fatalf("len(Jobs) = %d, want 2", len(m.Jobs))
	}
	wantFiles := []string{filepath.Join(dir, "scans", "p1.jpg"), "/abs/p2.jpg"}
	if !slices.Equal(m.Jobs[0].Files, wantFiles) {
		t.Errorf("Jobs[0].Files = %v, want %v", m.Jobs[0].Files, wantFiles)
	}
	if m.Jobs[1].OutputDir != "/elsewhere" {
		t.Errorf("Jobs[1].OutputDir = %q, want /elsewhere", m.Jobs[1].OutputDir)
	}

	if len(m.Series) != 1 {
		t.Fatalf("len(Series) = %d, want 1", len(m.Series))
	}
	s := m.Series[0]
	if got := s.SeriesNumbers(); !slices.Equal(got, []int{1, 3}) {
		t.Errorf("SeriesNumbers() = %v, want [1 3]", got)
	}
	if s.Files[3][0] != filepath.Join(dir, "c.png") {
		t.Errorf("Series files[3] = %v, want resolved path", s.Files[3])
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no jobs", "outputDir: out\n", ErrInvalidManifest},
		{"empty id", "jobs:\n  - files: [a.jpg]\n", ErrInvalidManifest},
		{"duplicate id", "jobs:\n  - id: a\n    files: [a.jpg]\n  - id: a\n    files: [b.jpg]\n", ErrInvalidManifest},
		{"no files", "jobs:\n  - id: a\n    files: []\n", ErrInvalidManifest},
		{"series reversed", "series:\n  - prefix: p\n    start: 5\n    end: 1\n", ErrInvalidManifest},
		{"series number outside", "series:\n  - prefix: p\n    start: 1\n    end: 2\n    files:\n      7: [a.jpg]\n", ErrInvalidManifest},
		{"series without prefix", "series:\n  - start: 1\n    end: 2\n", ErrInvalidManifest},
		{"unknown field", "jobs:\n  - id: a\n    files: [a.jpg]\n    colour: red\n", ErrManifestParse},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, dir, "m"+string(rune('a'+i))+".yaml", tt.content)
			m, err := LoadManifest(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadManifest() error = %v, want %v", err, tt.wantErr)
			}
			if m != nil {
				t.Error("LoadManifest() should return nil on error")
			}
		})
	}
}

func TestLoadManifest_NotFound(t *testing.T) {
	t.Parallel()

	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrManifestNotFound) {
		t.Errorf("LoadManifest() error = %v, want ErrManifestNotFound", err)
	}
}
