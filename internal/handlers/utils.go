package handlers

import (
	"encoding/json"
	"net/http"

	"video-annotator/internal/logging"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status
// code. The error field is a stable machine-readable token; message is
// the human-readable detail.
func writeJSONError(w http.ResponseWriter, errCode, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errCode,
		"message": message,
	}); err != nil {
		logging.Error("failed to encode JSON error response: %v", err)
	}
}
