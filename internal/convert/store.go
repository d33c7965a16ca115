package convert

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tunegrab/tunegrab/internal/model"
)

// Job ID constants
const (
	JobIDPrefix = "job-"
)

// Store is the in-memory registry of jobs keyed by job ID. It is an explicit
// dependency of the conversion service so tests can instantiate isolated
// stores. Reads return snapshots; mutations go through Update, which holds the
// write lock, so concurrent status readers interleave safely with the one
// supervisor writing per job.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// NewStore creates an empty job registry
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*model.Job),
	}
}

// Create inserts a new job in the starting state and returns its snapshot.
// totalEstimate is the client-supplied track count; the worker's own count
// overrides it later.
func (s *Store) Create(url string, totalEstimate int) model.Job {
	if totalEstimate < 1 {
		totalEstimate = 1
	}

	job := &model.Job{
		ID:          generateJobID(),
		URL:         url,
		Status:      model.JobStatusStarting,
		TotalTracks: totalEstimate,
		Files:       []string{},
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	return job.Clone()
}

// Get returns a snapshot of the job, or false if the ID is unknown
func (s *Store) Get(id string) (model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	if !exists {
		return model.Job{}, false
	}
	return job.Clone(), true
}

// Has reports whether a job with this ID exists
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.jobs[id]
	return exists
}

// Update applies fn to the job under the write lock. Returns false if the ID
// is unknown.
func (s *Store) Update(id string, fn func(*model.Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return false
	}
	fn(job)
	return true
}

// Delete removes the job from the registry
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// Len returns the number of registered jobs
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// ForEach calls fn with a snapshot of every job. Used by the expiry sweep.
func (s *Store) ForEach(fn func(model.Job)) {
	s.mu.RLock()
	snapshots := make([]model.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		snapshots = append(snapshots, job.Clone())
	}
	s.mu.RUnlock()

	for _, snapshot := range snapshots {
		fn(snapshot)
	}
}

// generateJobID generates a unique job ID using UUID v7 for better uniqueness
// and time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
