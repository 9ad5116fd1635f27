// Package jobs implements the asynchronous transcode job manager.
//
// A submission registers a job in the in-memory store and enqueues it on
// a fixed-size pool of encode workers; the submitting request returns the
// job ID immediately and clients poll the store for progress until the
// job reaches a terminal state (done or error). Progress flows from the
// ffmpeg process through the store one atomic update at a time, so a
// status reader always observes a consistent snapshot.
//
// Jobs live only for the lifetime of the process. A background sweeper
// evicts terminal jobs past a retention window to keep the store bounded.
package jobs
