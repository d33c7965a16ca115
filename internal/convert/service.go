package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tunegrab/tunegrab/internal/archive"
	"github.com/tunegrab/tunegrab/internal/model"
	"github.com/tunegrab/tunegrab/internal/platform"
)

// Service defaults
const (
	DefaultJobTTL        = 5 * time.Minute
	DefaultSweepInterval = 30 * time.Second
	DefaultMaxConcurrent = 4
)

// Failure message recorded on the job; worker diagnostics go to the log only
const workerFailureMessage = "Conversion failed"

var (
	// ErrJobNotFound means the job ID is unknown to the registry
	ErrJobNotFound = errors.New("job not found")

	// ErrFileNotFound means the requested result file does not exist for the job
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidURL means the submitted URL is missing or malformed
	ErrInvalidURL = errors.New("a valid http(s) URL is required")
)

// Options configures the conversion service
type Options struct {
	// DownloadsRoot is the directory holding one subdirectory per job
	DownloadsRoot string

	// WorkerCommand is the extraction tool executable; defaults to yt-dlp
	WorkerCommand string

	// JobTTL is how long a job and its files are retained after creation
	JobTTL time.Duration

	// SweepInterval is how often expired jobs are evicted
	SweepInterval time.Duration

	// MaxConcurrent bounds how many worker processes run at once
	MaxConcurrent int64
}

// Service owns the conversion job lifecycle: it creates jobs, supervises one
// worker process per job, folds parsed progress into the registry, and serves
// result lookups.
type Service struct {
	store    *Store
	packager archive.Packager
	logger   *slog.Logger

	downloadsRoot string
	workerCmd     string
	jobTTL        time.Duration
	sweepInterval time.Duration

	sem *semaphore.Weighted

	mu         sync.Mutex
	cancels    map[string]context.CancelFunc
	onComplete func(model.Job)
}

// NewService creates a conversion service backed by the given registry and packager
func NewService(store *Store, packager archive.Packager, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.WorkerCommand == "" {
		opts.WorkerCommand = platform.WorkerCommand
	}
	if opts.JobTTL <= 0 {
		opts.JobTTL = DefaultJobTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = DefaultMaxConcurrent
	}

	return &Service{
		store:         store,
		packager:      packager,
		logger:        logger,
		downloadsRoot: opts.DownloadsRoot,
		workerCmd:     opts.WorkerCommand,
		jobTTL:        opts.JobTTL,
		sweepInterval: opts.SweepInterval,
		sem:           semaphore.NewWeighted(opts.MaxConcurrent),
		cancels:       make(map[string]context.CancelFunc),
	}
}

// SetCompletionCallback registers a function invoked exactly once per job when
// it reaches a terminal state. Intended for tests and notifications.
func (s *Service) SetCompletionCallback(fn func(model.Job)) {
	s.mu.Lock()
	s.onComplete = fn
	s.mu.Unlock()
}

// Create validates the URL, registers a new job, and starts its supervisor in
// the background. It returns the new job ID immediately.
func (s *Service) Create(rawURL string, totalEstimate int) (string, error) {
	if !validURL(rawURL) {
		return "", ErrInvalidURL
	}

	job := s.store.Create(rawURL, totalEstimate)
	if err := platform.CreateDirectoryIfNotExists(s.jobDir(job.ID)); err != nil {
		s.store.Delete(job.ID)
		return "", fmt.Errorf("failed to create job directory: %w", err)
	}

	s.logger.Info("job created", "job", job.ID, "url", rawURL, "estimatedTracks", job.TotalTracks)
	go s.run(job.ID, rawURL)

	return job.ID, nil
}

// Status returns a snapshot of the job's latest known state
func (s *Service) Status(id string) (model.Job, error) {
	job, exists := s.store.Get(id)
	if !exists {
		return model.Job{}, ErrJobNotFound
	}
	return job, nil
}

// Files returns the ordered result filenames produced so far
func (s *Service) Files(id string) ([]string, error) {
	job, exists := s.store.Get(id)
	if !exists {
		return nil, ErrJobNotFound
	}
	return job.Files, nil
}

// ArchivePath returns the path of the job's archive, building it on first
// call. An existing archive is reused. A packaging failure is reported to the
// caller without changing the job's status.
func (s *Service) ArchivePath(id string) (string, error) {
	job, exists := s.store.Get(id)
	if !exists {
		return "", ErrJobNotFound
	}

	zipPath, err := s.packager.BuildOrReuse(s.jobDir(id), job.Files)
	if err != nil {
		return "", err
	}

	s.store.Update(id, func(j *model.Job) {
		j.ZipFile = filepath.Base(zipPath)
	})
	return zipPath, nil
}

// FilePath resolves a result filename to its on-disk path. Filenames that
// would escape the job directory are rejected.
func (s *Service) FilePath(id, filename string) (string, error) {
	if !s.store.Has(id) {
		return "", ErrJobNotFound
	}

	path, err := platform.SafeJoin(s.jobDir(id), filename)
	if err != nil {
		return "", ErrFileNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return "", ErrFileNotFound
	}
	return path, nil
}

// Shutdown terminates all running workers. Jobs are not drained; the service
// is in-memory only and a restart starts clean.
func (s *Service) Shutdown() {
	s.mu.Lock()
	cancels := make([]context.CancelFunc, 0, len(s.cancels))
	for _, cancel := range s.cancels {
		cancels = append(cancels, cancel)
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (s *Service) jobDir(id string) string {
	return filepath.Join(s.downloadsRoot, id)
}

func (s *Service) registerCancel(id string, cancel context.CancelFunc) {
	s.mu.Lock()
	s.cancels[id] = cancel
	s.mu.Unlock()
}

func (s *Service) unregisterCancel(id string) {
	s.mu.Lock()
	delete(s.cancels, id)
	s.mu.Unlock()
}

// cancelJob force-terminates the job's worker if it is still running
func (s *Service) cancelJob(id string) {
	s.mu.Lock()
	cancel, exists := s.cancels[id]
	s.mu.Unlock()
	if exists {
		cancel()
	}
}

func (s *Service) notifyComplete(job model.Job) {
	s.mu.Lock()
	fn := s.onComplete
	s.mu.Unlock()
	if fn != nil {
		fn(job)
	}
}

func validURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
