package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"video-annotator/internal/jobs"
	"video-annotator/internal/logging"
	"video-annotator/internal/probe"
	"video-annotator/internal/transcoder"
)

// StatusResponse is the snapshot returned to a polling client.
type StatusResponse struct {
	Status   string   `json:"status"`
	Progress float64  `json:"progress"`
	Message  string   `json:"message"`
	URL      string   `json:"url,omitempty"`
	Duration *float64 `json:"duration,omitempty"`
}

// TranscodeStart accepts a media upload and starts an asynchronous
// transcode job, returning the job identifier immediately.
// POST /api/transcode-start
func (h *Handlers) TranscodeStart(w http.ResponseWriter, r *http.Request) {
	inPath, err := h.saveUpload(w, r)
	if err != nil {
		writeJSONError(w, "bad_request", err.Error(), http.StatusBadRequest)
		return
	}

	// Optional client-supplied duration hint, e.g. from a prior probe
	var hint float64
	var hasHint bool
	if v := r.FormValue("duration"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil && d > 0 {
			hint, hasHint = d, true
		}
	}

	outName := jobs.NewID() + ".mp4"
	outPath := filepath.Join(h.config.TranscodeDir, outName)

	id, err := h.jobs.Submit(inPath, outPath, "/transcoded/"+outName, hint, hasHint)
	if err != nil {
		if errors.Is(err, jobs.ErrOverloaded) {
			writeJSONError(w, "overloaded", "too many transcodes in progress, try again later", http.StatusServiceUnavailable)
			return
		}
		logging.Error("Failed to submit transcode job: %v", err)
		writeJSONError(w, "internal", "failed to start transcode", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"job": id})
}

// TranscodeStatus returns a snapshot of a job's state.
// GET /api/transcode-status?job=<id>
func (h *Handlers) TranscodeStatus(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("job")
	if id == "" {
		writeJSONError(w, "bad_request", "job parameter required", http.StatusBadRequest)
		return
	}

	job, ok := h.jobs.Store().Get(id)
	if !ok {
		writeJSONError(w, "not_found", "job not found", http.StatusNotFound)
		return
	}

	resp := StatusResponse{
		Status:   string(job.Status),
		Progress: job.Progress,
		Message:  job.Message,
		URL:      job.ResultPath,
	}
	if job.HasDuration {
		d := job.Duration
		resp.Duration = &d
	}

	writeJSON(w, resp)
}

// Transcode performs a synchronous one-shot transcode of an uploaded
// file, blocking until the encode finishes.
// POST /api/transcode
func (h *Handlers) Transcode(w http.ResponseWriter, r *http.Request) {
	inPath, err := h.saveUpload(w, r)
	if err != nil {
		writeJSONError(w, "bad_request", err.Error(), http.StatusBadRequest)
		return
	}
	defer h.removeInput(inPath)

	outName := jobs.NewID() + ".mp4"
	outPath := filepath.Join(h.config.TranscodeDir, outName)

	if err := h.transcoder.Encode(r.Context(), inPath, outPath, 0, nil); err != nil {
		var exitErr *transcoder.ExitError
		switch {
		case errors.Is(err, transcoder.ErrFFmpegNotFound):
			writeJSONError(w, "ffmpeg_missing", err.Error(), http.StatusNotImplemented)
		case errors.As(err, &exitErr):
			writeJSONError(w, "ffmpeg_failed", exitErr.Error(), http.StatusBadRequest)
		default:
			logging.Error("Synchronous transcode failed: %v", err)
			writeJSONError(w, "internal", "transcode failed", http.StatusInternalServerError)
		}
		return
	}

	payload := map[string]interface{}{"url": "/transcoded/" + outName}
	if d, ok := probe.Duration(context.Background(), outPath); ok {
		payload["duration"] = d
	}
	writeJSON(w, payload)
}

func (h *Handlers) removeInput(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("failed to remove temp input %s: %v", path, err)
	}
}
