package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"video-annotator/internal/logging"
	"video-annotator/internal/metrics"
)

// saveUpload persists the multipart "file" field to a temporary file in
// the upload directory and returns its path. The original filename's
// extension is kept as a suffix hint for ffmpeg's format detection.
// The caller owns the returned file and must remove it.
func (h *Handlers) saveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.UploadErrorsTotal.Inc()
		return "", fmt.Errorf("file field missing or malformed: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close upload stream: %v", err)
		}
	}()

	suffix := filepath.Ext(header.Filename)
	tmp, err := os.CreateTemp(h.config.UploadDir, "upload-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	written, err := io.Copy(tmp, file)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil {
			logging.Warn("failed to remove partial upload %s: %v", tmp.Name(), rmErr)
		}
		metrics.UploadErrorsTotal.Inc()
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	metrics.UploadBytesTotal.Add(float64(written))
	logging.Debug("Stored upload %s (%d bytes, original %q)", tmp.Name(), written, header.Filename)
	return tmp.Name(), nil
}
