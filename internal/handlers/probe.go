package handlers

import (
	"errors"
	"net/http"

	"video-annotator/internal/logging"
	"video-annotator/internal/probe"
)

// ProbeDuration accepts a media upload and returns its duration in
// seconds without transcoding it.
// POST /api/probe-duration
func (h *Handlers) ProbeDuration(w http.ResponseWriter, r *http.Request) {
	inPath, err := h.saveUpload(w, r)
	if err != nil {
		writeJSONError(w, "bad_request", err.Error(), http.StatusBadRequest)
		return
	}
	defer h.removeInput(inPath)

	result, err := probe.Inspect(r.Context(), inPath)
	if err != nil {
		var probeErr *probe.ProbeError
		switch {
		case errors.Is(err, probe.ErrToolNotFound):
			writeJSONError(w, "ffprobe_missing", err.Error(), http.StatusNotImplemented)
		case errors.As(err, &probeErr):
			writeJSONError(w, "ffprobe_failed", probeErr.Tail, http.StatusBadRequest)
		default:
			logging.Error("Probe failed: %v", err)
			writeJSONError(w, "internal", "probe failed", http.StatusInternalServerError)
		}
		return
	}

	duration, ok := result.DurationSeconds()
	if !ok {
		writeJSONError(w, "no_duration", "duration not found in media", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]float64{"duration": duration})
}
