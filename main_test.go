package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"video-annotator/internal/annotations"
	"video-annotator/internal/handlers"
	"video-annotator/internal/jobs"
	"video-annotator/internal/startup"
	"video-annotator/internal/transcoder"
)

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()

	webDir := t.TempDir()
	config := &startup.Config{
		WebDir:        webDir,
		DataDir:       t.TempDir(),
		UploadDir:     t.TempDir(),
		TranscodeDir:  filepath.Join(webDir, "transcoded"),
		MaxUploadSize: 1 << 20,
	}
	if err := os.MkdirAll(config.TranscodeDir, 0o755); err != nil {
		t.Fatalf("failed to create transcode dir: %v", err)
	}

	store, err := annotations.New(config.DataDir)
	if err != nil {
		t.Fatalf("failed to create annotation store: %v", err)
	}

	trans := transcoder.New()
	manager := jobs.NewManager(trans, 1, 1, 0)
	t.Cleanup(manager.Close)

	h := handlers.New(manager, trans, store, config)
	return setupRouter(h, webDir), webDir
}

// TestSetupRouterRoutes verifies all expected routes are registered with
// the right methods.
func TestSetupRouterRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"health check", http.MethodGet, "/health", http.StatusOK},
		{"healthz alias", http.MethodGet, "/healthz", http.StatusOK},
		{"liveness", http.MethodGet, "/livez", http.StatusOK},
		{"readiness", http.MethodGet, "/readyz", http.StatusOK},
		{"version", http.MethodGet, "/version", http.StatusOK},
		{"transcode status without job", http.MethodGet, "/api/transcode-status", http.StatusBadRequest},
		{"transcode status unknown job", http.MethodGet, "/api/transcode-status?job=x", http.StatusNotFound},
		{"annotations without video_id", http.MethodGet, "/api/annotations", http.StatusBadRequest},
		{"transcode start wrong method", http.MethodGet, "/api/transcode-start", http.StatusMethodNotAllowed},
		{"probe wrong method", http.MethodGet, "/api/probe-duration", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.wantStatus, rec.Code)
			}
		})
	}
}

// TestSetupRouterServesStaticFiles verifies the catch-all file server
// serves the web app and transcoded artifacts.
func TestSetupRouterServesStaticFiles(t *testing.T) {
	router, webDir := newTestRouter(t)

	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write index.html: %v", err)
	}
	artifactDir := filepath.Join(webDir, "transcoded")
	if err := os.WriteFile(filepath.Join(artifactDir, "abc.mp4"), []byte("mp4"), 0o644); err != nil {
		t.Fatalf("failed to write artifact: %v", err)
	}

	for _, path := range []string{"/", "/transcoded/abc.mp4"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}
