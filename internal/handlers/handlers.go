package handlers

import (
	"time"

	"video-annotator/internal/annotations"
	"video-annotator/internal/jobs"
	"video-annotator/internal/startup"
	"video-annotator/internal/transcoder"
)

// Handlers bundles the HTTP endpoint implementations with their
// collaborators.
type Handlers struct {
	jobs        *jobs.Manager
	transcoder  *transcoder.Transcoder
	annotations *annotations.Store
	config      *startup.Config
	startTime   time.Time
}

// New creates the handler set.
func New(manager *jobs.Manager, trans *transcoder.Transcoder, store *annotations.Store, config *startup.Config) *Handlers {
	return &Handlers{
		jobs:        manager,
		transcoder:  trans,
		annotations: store,
		config:      config,
		startTime:   time.Now(),
	}
}
