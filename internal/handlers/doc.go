// Package handlers implements the HTTP endpoints of the video annotator
// service: asynchronous transcode submission and status polling, the
// synchronous one-shot transcode, media duration probing, the annotation
// store API, and the health and version surface.
package handlers
