package evidencepdf

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-evidencepdf/internal/fileutil"
)

// JobStatus is the lifecycle state of a batch job.
type JobStatus string

// Job states. Jobs move pending -> processing -> completed or failed.
const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// IsTerminal reports whether s is completed or failed.
func (s JobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobFailed
}

// Job is a snapshot of one batch job.
type Job struct {
	ID         string
	Files      []string
	Label      string
	OutputDir  string // Empty means the directory of Files[0]
	Status     JobStatus
	OutputPath string // Set when completed
	Error      string // Set when failed
}

// DocumentConverter is the conversion contract the batch manager drives.
type DocumentConverter interface {
	Convert(ctx context.Context, input Input) (string, error)
}

// Compile-time interface implementation check.
var _ DocumentConverter = (*Converter)(nil)

// ProgressFunc receives batch progress: the job, its new status, the job's
// 1-based position and the number of jobs. Calls are serialized.
type ProgressFunc func(id string, status JobStatus, current, total int)

// BatchOption configures a BatchManager.
type BatchOption func(*BatchManager)

// WithWorkers runs up to n jobs at once. The default of 1 processes jobs
// strictly one after another.
func WithWorkers(n int) BatchOption {
	return func(m *BatchManager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithBatchLogger sets the logger. The default discards every record.
func WithBatchLogger(l *slog.Logger) BatchOption {
	return func(m *BatchManager) {
		if l != nil {
			m.logger = l
		}
	}
}

// jobEntry pairs a job with the generation it was added in, so that a job
// replaced or removed while running does not receive a stale outcome.
type jobEntry struct {
	job Job
	gen uint64
}

// BatchManager holds a set of jobs and runs them through a converter.
// Each job's failure is recorded on the job and never stops the others.
// A BatchManager is safe for concurrent use.
type BatchManager struct {
	conv    DocumentConverter
	id      string
	workers int
	logger  *slog.Logger

	mu      sync.Mutex
	order   []string
	jobs    map[string]*jobEntry
	outputs map[string]string // output path -> owning job id
	nextGen uint64
}

// NewBatchManager creates an empty manager driving conv.
func NewBatchManager(conv DocumentConverter, opts ...BatchOption) *BatchManager {
	m := &BatchManager{
		conv:    conv,
		id:      uuid.NewString(),
		workers: 1,
		logger:  slog.New(slog.DiscardHandler),
		jobs:    make(map[string]*jobEntry),
		outputs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(slog.String("batch", m.id))
	return m
}

// ID returns the batch identifier attached to log records.
func (m *BatchManager) ID() string {
	return m.id
}

// AddJob registers a pending job. It returns false when id is empty or files
// is empty. Adding an existing id replaces that job with a fresh pending one
// at its original position.
func (m *BatchManager) AddJob(id string, files []string, label, outputDir string) bool {
	if id == "" || len(files) == 0 {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextGen++
	entry := &jobEntry{
		job: Job{
			ID:        id,
			Files:     slices.Clone(files),
			Label:     label,
			OutputDir: outputDir,
			Status:    JobPending,
		},
		gen: m.nextGen,
	}
	if _, exists := m.jobs[id]; !exists {
		m.order = append(m.order, id)
	}
	m.releaseOutputs(id)
	m.jobs[id] = entry
	return true
}

// AddNumberedJobs adds one job per number in [start, end] that has files,
// with id and label prefix+number. It returns the number of jobs added.
func (m *BatchManager) AddNumberedJobs(prefix string, start, end int, files map[int][]string, outputDir string) int {
	added := 0
	for n := start; n <= end; n++ {
		paths, ok := files[n]
		if !ok || len(paths) == 0 {
			continue
		}
		id := prefix + strconv.Itoa(n)
		if m.AddJob(id, paths, id, outputDir) {
			added++
		}
	}
	return added
}

// RemoveJob deletes a job. It returns false for unknown ids.
func (m *BatchManager) RemoveJob(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.jobs[id]; !ok {
		return false
	}
	delete(m.jobs, id)
	m.releaseOutputs(id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return true
}

// Clear deletes every job.
func (m *BatchManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.order = nil
	m.jobs = make(map[string]*jobEntry)
	m.outputs = make(map[string]string)
}

// Len returns the number of jobs.
func (m *BatchManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// JobStatus returns the status of a job.
func (m *BatchManager) JobStatus(id string) (JobStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.jobs[id]
	if !ok {
		return "", false
	}
	return e.job.Status, true
}

// Statuses returns the status of every job.
func (m *BatchManager) Statuses() map[string]JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]JobStatus, len(m.jobs))
	for id, e := range m.jobs {
		out[id] = e.job.Status
	}
	return out
}

// JobDetails returns a copy of a job.
func (m *BatchManager) JobDetails(id string) (Job, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.jobs[id]
	if !ok {
		return Job{}, false
	}
	return copyJob(e.job), true
}

// Jobs returns copies of every job in insertion order.
func (m *BatchManager) Jobs() []Job {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Job, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, copyJob(m.jobs[id].job))
	}
	return out
}

// CompletedJobs returns the ids of completed jobs in insertion order.
func (m *BatchManager) CompletedJobs() []string { return m.idsWithStatus(JobCompleted) }

// FailedJobs returns the ids of failed jobs in insertion order.
func (m *BatchManager) FailedJobs() []string { return m.idsWithStatus(JobFailed) }

// PendingJobs returns the ids of pending jobs in insertion order.
func (m *BatchManager) PendingJobs() []string { return m.idsWithStatus(JobPending) }

func (m *BatchManager) idsWithStatus(status JobStatus) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []string
	for _, id := range m.order {
		if m.jobs[id].job.Status == status {
			ids = append(ids, id)
		}
	}
	return ids
}

// ProcessSingleJob runs a pending job and reports whether it completed.
// It returns false for unknown ids and for jobs already processing. A job
// that already finished is not run again; its recorded outcome is returned.
// Errors are recorded on the job, never returned.
func (m *BatchManager) ProcessSingleJob(ctx context.Context, id string) bool {
	job, gen, ok := m.claim(id)
	if !ok {
		return false
	}
	if job.Status.IsTerminal() {
		return job.Status == JobCompleted
	}

	log := m.logger.With(slog.String("job", id))
	log.Info("job started", slog.Int("files", len(job.Files)))

	outPath, err := m.run(ctx, job)
	if err != nil {
		log.Warn("job failed", slog.Any("error", err))
	} else {
		log.Info("job completed", slog.String("output", outPath))
	}
	m.finish(id, gen, outPath, err)
	return err == nil
}

// claim moves a pending job to processing. Terminal jobs are returned as
// they are, with ok true.
func (m *BatchManager) claim(id string) (Job, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.jobs[id]
	if !ok || e.job.Status == JobProcessing {
		return Job{}, 0, false
	}
	if e.job.Status.IsTerminal() {
		return copyJob(e.job), e.gen, true
	}

	e.job.Status = JobProcessing
	return copyJob(e.job), e.gen, true
}

// finish records the outcome unless the job was replaced or removed while
// it ran.
func (m *BatchManager) finish(id string, gen uint64, outPath string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.jobs[id]
	if !ok || e.gen != gen {
		return
	}
	next := e.job
	if err != nil {
		next.Status = JobFailed
		next.Error = err.Error()
		next.OutputPath = ""
	} else {
		next.Status = JobCompleted
		next.OutputPath = outPath
		next.Error = ""
	}
	e.job = next
}

// run converts one job to <outputDir>/<id>.pdf, recovering from panics.
func (m *BatchManager) run(ctx context.Context, job Job) (outPath string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fileutil.SafeName(job.ID)
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyJobName, job.ID)
	}
	dir := job.OutputDir
	if dir == "" {
		dir = filepath.Dir(job.Files[0])
	}
	outPath = filepath.Join(dir, name+".pdf")
	if err := m.reserveOutput(job.ID, outPath); err != nil {
		return "", err
	}
	if err := fileutil.EnsureDir(dir); err != nil {
		return "", err
	}

	return m.conv.Convert(ctx, Input{
		Paths:      job.Files,
		OutputPath: outPath,
		Label:      job.Label,
	})
}

// reserveOutput claims path for id. Distinct ids can sanitize to the same
// file name; the first job to claim a path keeps it and later ones fail.
func (m *BatchManager) reserveOutput(id, path string) error {
	key := filepath.Clean(path)
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if owner, ok := m.outputs[key]; ok && owner != id {
		return fmt.Errorf("%w: %s is written by job %q", ErrOutputCollision, path, owner)
	}
	m.outputs[key] = id
	return nil
}

// releaseOutputs drops the paths reserved by id. Callers hold m.mu.
func (m *BatchManager) releaseOutputs(id string) {
	for path, owner := range m.outputs {
		if owner == id {
			delete(m.outputs, path)
		}
	}
}

// ProcessAllJobs runs every job in insertion order and returns whether each
// one completed. progress, when not nil, is called with "processing" before
// a job runs and with its final status afterwards; jobs that had already
// finished only get the final call. With WithWorkers(n > 1) up to n jobs run
// at once; results are collected before returning. Once ctx is canceled the
// jobs not yet started fail with the context error.
func (m *BatchManager) ProcessAllJobs(ctx context.Context, progress ProgressFunc) map[string]bool {
	m.mu.Lock()
	ids := slices.Clone(m.order)
	m.mu.Unlock()

	total := len(ids)
	results := make(map[string]bool, total)
	if total == 0 {
		return results
	}

	var (
		progressMu sync.Mutex
		resultsMu  sync.Mutex
	)
	report := func(id string, status JobStatus, current int) {
		if progress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		progress(id, status, current, total)
	}

	processOne := func(idx int) {
		id := ids[idx]
		current := idx + 1

		if status, ok := m.JobStatus(id); ok && status == JobPending {
			report(id, JobProcessing, current)
		}
		ok := m.ProcessSingleJob(ctx, id)

		resultsMu.Lock()
		results[id] = ok
		resultsMu.Unlock()

		final := JobFailed
		if ok {
			final = JobCompleted
		}
		report(id, final, current)
	}

	concurrency := min(m.workers, total)
	if concurrency <= 1 {
		for i := range ids {
			processOne(i)
		}
		m.logSummary(results)
		return results
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i := range ids {
		g.Go(func() error {
			processOne(i)
			return nil
		})
	}
	_ = g.Wait() // processOne records failures on the job and never returns an error

	m.logSummary(results)
	return results
}

func (m *BatchManager) logSummary(results map[string]bool) {
	var failed int
	for _, ok := range results {
		if !ok {
			failed++
		}
	}
	m.logger.Info("batch finished",
		slog.Int("jobs", len(results)),
		slog.Int("failed", failed))
}

func copyJob(j Job) Job {
	j.Files = slices.Clone(j.Files)
	return j
}
