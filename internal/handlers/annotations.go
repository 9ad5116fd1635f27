package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"video-annotator/internal/annotations"
	"video-annotator/internal/logging"
)

// annotationDocument is the minimal shape the server cares about; the
// rest of the document is opaque client state.
type annotationDocument struct {
	VideoID string `json:"videoId"`
}

// GetAnnotations returns the stored annotation document for a video, or
// an empty object when none exists.
// GET /api/annotations?video_id=<id>
func (h *Handlers) GetAnnotations(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("video_id")
	if videoID == "" {
		writeJSONError(w, "bad_request", "video_id required", http.StatusBadRequest)
		return
	}

	data, err := h.annotations.Get(videoID)
	if err != nil {
		if errors.Is(err, annotations.ErrInvalidVideoID) {
			writeJSONError(w, "bad_request", err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("Failed to read annotations: %v", err)
		writeJSONError(w, "internal", "failed to read annotations", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		logging.Error("failed to write annotation response: %v", err)
	}
}

// PutAnnotations stores the annotation document carried in the request
// body, keyed by its videoId field.
// POST /api/annotations
func (h *Handlers) PutAnnotations(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSONError(w, "bad_request", "invalid json", http.StatusBadRequest)
		return
	}

	var doc annotationDocument
	if err := json.Unmarshal(raw, &doc); err != nil || doc.VideoID == "" {
		writeJSONError(w, "bad_request", "videoId required", http.StatusBadRequest)
		return
	}

	if err := h.annotations.Put(doc.VideoID, raw); err != nil {
		if errors.Is(err, annotations.ErrInvalidVideoID) {
			writeJSONError(w, "bad_request", err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("Failed to write annotations: %v", err)
		writeJSONError(w, "internal", "failed to write annotations", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]bool{"ok": true})
}
