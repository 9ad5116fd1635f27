package handlers

import (
	"net/http"
	"runtime"
	"time"

	"video-annotator/internal/startup"
)

const statusHealthy = "healthy"

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Job pipeline
	JobsStored int  `json:"jobsStored"`
	FFmpeg     bool `json:"ffmpeg"`
	FFprobe    bool `json:"ffprobe"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	response := HealthResponse{
		Status:       statusHealthy,
		Version:      startup.Version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		JobsStored:   h.jobs.Store().Len(),
		FFmpeg:       h.config.FFmpegAvailable,
		FFprobe:      h.config.FFprobeAvailable,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	writeJSON(w, response)
}

// LivenessCheck is a minimal liveness probe
func (h *Handlers) LivenessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "alive"})
}

// ReadinessCheck reports whether the service can accept work
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ready"})
}
