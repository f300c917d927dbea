package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// Sentinel errors for manifest operations.
var (
	ErrManifestNotFound = errors.New("manifest file not found")
	ErrManifestParse    = errors.New("failed to parse manifest")
	ErrInvalidManifest  = errors.New("invalid manifest")
)

// MaxManifestJobs bounds the number of jobs a manifest may describe.
const MaxManifestJobs = 10000

// Manifest describes a batch run.
//
//	outputDir: out
//	jobs:
//	  - id: 原證1
//	    files: [scans/p1.jpg, scans/p2.jpg]
//	series:
//	  - prefix: 被上證
//	    start: 1
//	    end: 3
//	    files:
//	      1: [a.pdf]
//	      3: [c.png]
type Manifest struct {
	OutputDir string         `yaml:"outputDir"`
	Jobs      []ManifestJob  `yaml:"jobs"`
	Series    []SeriesConfig `yaml:"series"`
}

// ManifestJob is one explicitly listed job.
type ManifestJob struct {
	ID        string   `yaml:"id"`
	Label     string   `yaml:"label"` // Defaults to ID
	Files     []string `yaml:"files"`
	OutputDir string   `yaml:"outputDir"` // Overrides Manifest.OutputDir
}

// SeriesConfig is a numbered run of jobs labeled Prefix+N for N in
// [Start, End]. Numbers without files are skipped.
type SeriesConfig struct {
	Prefix    string           `yaml:"prefix"`
	Start     int              `yaml:"start"`
	End       int              `yaml:"end"`
	Files     map[int][]string `yaml:"files"`
	OutputDir string           `yaml:"outputDir"`
}

// LoadManifest reads and validates a manifest. Relative file and directory
// paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- manifest path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := unmarshalStrict(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	m.resolvePaths(filepath.Dir(path))
	return &m, nil
}

// Validate checks ids, file lists and series bounds.
func (m *Manifest) Validate() error {
	if len(m.Jobs) == 0 && len(m.Series) == 0 {
		return fmt.Errorf("%w: no jobs or series", ErrInvalidManifest)
	}

	seen := make(map[string]bool, len(m.Jobs))
	for i, j := range m.Jobs {
		if j.ID == "" {
			return fmt.Errorf("%w: jobs[%d].id is empty", ErrInvalidManifest, i)
		}
		if seen[j.ID] {
			return fmt.Errorf("%w: duplicate job id %q", ErrInvalidManifest, j.ID)
		}
		seen[j.ID] = true
		if len(j.Files) == 0 {
			return fmt.Errorf("%w: job %q has no files", ErrInvalidManifest, j.ID)
		}
	}

	total := len(m.Jobs)
	for i, s := range m.Series {
		if s.Prefix == "" {
			return fmt.Errorf("%w: series[%d].prefix is empty", ErrInvalidManifest, i)
		}
		if s.End < s.Start {
			return fmt.Errorf("%w: series[%d] end %d is before start %d", ErrInvalidManifest, i, s.End, s.Start)
		}
		for n := range s.Files {
			if n < s.Start || n > s.End {
				return fmt.Errorf("%w: series[%d] number %d outside %d..%d", ErrInvalidManifest, i, n, s.Start, s.End)
			}
		}
		total += len(s.Files)
	}
	if total > MaxManifestJobs {
		return fmt.Errorf("%w: %d jobs (max %d)", ErrInvalidManifest, total, MaxManifestJobs)
	}

	return nil
}

// SeriesNumbers returns the numbers of s that have files, ascending.
func (s SeriesConfig) SeriesNumbers() []int {
	nums := make([]int, 0, len(s.Files))
	for n, files := range s.Files {
		if len(files) > 0 {
			nums = append(nums, n)
		}
	}
	slices.Sort(nums)
	return nums
}

func (m *Manifest) resolvePaths(base string) {
	m.OutputDir = resolve(base, m.OutputDir)
	for i := range m.Jobs {
		m.Jobs[i].OutputDir = resolve(base, m.Jobs[i].OutputDir)
		for k, f := range m.Jobs[i].Files {
			m.Jobs[i].Files[k] = resolve(base, f)
		}
	}
	for i := range m.Series {
		m.Series[i].OutputDir = resolve(base, m.Series[i].OutputDir)
		for n, files := range m.Series[i].Files {
			for k, f := range files {
				files[k] = resolve(base, f)
			}
			m.Series[i].Files[n] = files
		}
	}
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
