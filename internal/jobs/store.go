package jobs

import (
	"fmt"
	"sync"
	"time"
)

// Store is a concurrency-safe map of job ID to job state. It is the only
// state shared between encode workers and status readers; all access goes
// through its atomic operations and Get returns copies, never live
// references.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewStore creates an empty job store.
func NewStore() *Store {
	return &Store{
		jobs: make(map[string]*Job),
	}
}

// Create inserts a new job. Duplicate IDs are an error; generated IDs are
// collision-resistant so this indicates a caller bug.
func (s *Store) Create(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("job %s already exists", job.ID)
	}

	j := job
	s.jobs[job.ID] = &j
	return nil
}

// Get returns a snapshot of the job's current state. A reader sees either
// the pre- or post-update state of a concurrent mutation, never a torn
// record.
func (s *Store) Get(id string) (Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *j, true
}

// Update applies an atomic read-modify-write to the job. Terminal states
// are absorbing: once a job is done or failed the mutator is not invoked.
// Returns false when the job does not exist.
func (s *Store) Update(id string, fn func(*Job)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return false
	}
	if j.Status.Terminal() {
		return true
	}

	fn(j)
	return true
}

// Delete removes a job. Used when a submission is rejected before it ever
// ran and by the retention sweeper.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

// Len returns the number of stored jobs.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Sweep evicts terminal jobs that finished before the cutoff and returns
// how many were removed. Jobs that are still queued or running are never
// touched.
func (s *Store) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, j := range s.jobs {
		if j.Status.Terminal() && !j.Finished.IsZero() && j.Finished.Before(cutoff) {
			delete(s.jobs, id)
			removed++
		}
	}
	return removed
}
