package jobs

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"video-annotator/internal/logging"
	"video-annotator/internal/metrics"
	"video-annotator/internal/probe"
	"video-annotator/internal/transcoder"

	"github.com/google/uuid"
)

// ErrOverloaded is returned by Submit when the encode queue is full.
var ErrOverloaded = errors.New("transcode queue is full")

// task carries the per-job inputs from submission to an encode worker.
type task struct {
	id        string
	inPath    string
	outPath   string
	resultURL string
}

// Manager owns the job store and a fixed pool of encode workers fed by a
// bounded queue, so concurrent ffmpeg processes never exceed the worker
// count no matter how many uploads arrive.
type Manager struct {
	store *Store
	enc   *transcoder.Transcoder

	queue chan task
	wg    sync.WaitGroup

	retention time.Duration
	sweepStop chan struct{}

	closeMu sync.RWMutex
	closed  bool
}

// NewManager creates a manager running the given number of encode workers
// with a bounded submission queue. Terminal jobs older than retention are
// evicted by a background sweeper; retention <= 0 disables eviction.
func NewManager(enc *transcoder.Transcoder, workers, queueSize int, retention time.Duration) *Manager {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	m := &Manager{
		store:     NewStore(),
		enc:       enc,
		queue:     make(chan task, queueSize),
		retention: retention,
		sweepStop: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}

	if retention > 0 {
		go m.sweepLoop()
	}

	logging.Info("Job manager started: %d encode workers, queue size %d", workers, queueSize)
	return m
}

// Store exposes the job store for status reads.
func (m *Manager) Store() *Store {
	return m.store
}

// NewID returns a collision-resistant job or artifact token.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Submit registers a new transcode job for the temporary input at inPath,
// producing outPath, and schedules it on the worker pool. It returns the
// job ID immediately; the caller never blocks on the encode.
//
// durationHint is the client-supplied media length in seconds (hasHint
// false when absent; the runner will probe it instead). On ErrOverloaded
// the input file is removed and no job is retained.
func (m *Manager) Submit(inPath, outPath, resultURL string, durationHint float64, hasHint bool) (string, error) {
	m.closeMu.RLock()
	defer m.closeMu.RUnlock()

	if m.closed {
		return "", ErrOverloaded
	}

	id := NewID()
	job := Job{
		ID:          id,
		Status:      StatusQueued,
		Duration:    durationHint,
		HasDuration: hasHint,
		Created:     time.Now(),
	}
	if err := m.store.Create(job); err != nil {
		return "", err
	}

	select {
	case m.queue <- task{id: id, inPath: inPath, outPath: outPath, resultURL: resultURL}:
	default:
		m.store.Delete(id)
		removeQuietly(inPath)
		metrics.JobsRejectedTotal.Inc()
		return "", ErrOverloaded
	}

	metrics.JobsSubmittedTotal.Inc()
	metrics.JobQueueDepth.Set(float64(len(m.queue)))
	return id, nil
}

// Close stops accepting submissions, waits for in-flight encodes to
// finish, and stops the retention sweeper.
func (m *Manager) Close() {
	m.closeMu.Lock()
	if m.closed {
		m.closeMu.Unlock()
		return
	}
	m.closed = true
	close(m.queue)
	m.closeMu.Unlock()

	m.wg.Wait()
	if m.retention > 0 {
		close(m.sweepStop)
	}
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for t := range m.queue {
		metrics.JobQueueDepth.Set(float64(len(m.queue)))
		m.run(t)
	}
}

// run executes one job end-to-end. The temporary input's lifetime is
// exactly this function: the deferred removal fires on success, encode
// failure, and panic alike.
func (m *Manager) run(t task) {
	defer removeQuietly(t.inPath)

	metrics.JobsActive.Inc()
	defer metrics.JobsActive.Dec()

	ctx := context.Background()
	start := time.Now()

	snap, ok := m.store.Get(t.id)
	if !ok {
		return
	}

	// Resolve the duration before encoding when the client supplied no
	// hint. Failure is non-fatal; progress degrades to the heuristic.
	duration := snap.Duration
	hasDuration := snap.HasDuration
	if !hasDuration {
		duration, hasDuration = probe.Duration(ctx, t.inPath)
	}

	m.store.Update(t.id, func(j *Job) {
		j.Status = StatusRunning
		j.Progress = 0.0
		j.Duration = duration
		j.HasDuration = hasDuration
	})

	encDuration := 0.0
	if hasDuration {
		encDuration = duration
	}

	err := m.enc.Encode(ctx, t.inPath, t.outPath, encDuration, func(f float64) {
		m.store.Update(t.id, func(j *Job) {
			j.Progress = f
		})
	})

	metrics.EncodeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		m.fail(t.id, err)
		return
	}

	m.store.Update(t.id, func(j *Job) {
		j.Status = StatusDone
		j.Progress = 1.0
		j.ResultPath = t.resultURL
		j.Finished = time.Now()
	})
	metrics.JobsCompletedTotal.WithLabelValues("done").Inc()
	logging.Info("Transcode job %s done in %v", t.id, time.Since(start).Round(time.Millisecond))
}

func (m *Manager) fail(id string, err error) {
	message := err.Error()

	var exitErr *transcoder.ExitError
	switch {
	case errors.Is(err, transcoder.ErrFFmpegNotFound):
		logging.Error("Transcode job %s failed: ffmpeg not installed", id)
	case errors.As(err, &exitErr):
		logging.Error("Transcode job %s failed: ffmpeg exit code %d", id, exitErr.Code)
	default:
		logging.Error("Transcode job %s failed: %v", id, err)
	}

	m.store.Update(id, func(j *Job) {
		j.Status = StatusError
		j.Message = message
		j.Finished = time.Now()
	})
	metrics.JobsCompletedTotal.WithLabelValues("error").Inc()
}

func (m *Manager) sweepLoop() {
	interval := m.retention / 4
	if interval < 30*time.Second {
		interval = 30 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := m.store.Sweep(time.Now().Add(-m.retention))
			if removed > 0 {
				logging.Debug("Evicted %d finished transcode jobs", removed)
			}
			metrics.JobsStored.Set(float64(m.store.Len()))
		case <-m.sweepStop:
			return
		}
	}
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove temp input %s: %v", path, err)
	}
}
