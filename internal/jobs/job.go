package jobs

import "time"

// Status is the lifecycle state of a transcode job.
type Status string

const (
	// StatusQueued means the job is waiting for an encode worker.
	StatusQueued Status = "queued"
	// StatusRunning means the encode is in progress.
	StatusRunning Status = "running"
	// StatusDone means the encode finished and the result is available.
	StatusDone Status = "done"
	// StatusError means the encode failed; Message carries the diagnostic.
	StatusError Status = "error"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// Job is the tracked state of one submitted transcode. Values handed out
// by the store are snapshot copies; only the owning runner mutates the
// stored entry.
type Job struct {
	ID       string
	Status   Status
	Progress float64

	// Message is empty until the job fails, then holds a bounded
	// human-readable diagnostic.
	Message string

	// ResultPath is the URL path of the produced artifact, set only on
	// successful completion.
	ResultPath string

	// Duration is the probed or client-supplied media length in seconds.
	// It only feeds progress normalization; HasDuration is false when it
	// could not be determined.
	Duration    float64
	HasDuration bool

	Created  time.Time
	Finished time.Time
}
