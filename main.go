package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-annotator/internal/annotations"
	"video-annotator/internal/handlers"
	"video-annotator/internal/jobs"
	"video-annotator/internal/logging"
	"video-annotator/internal/metrics"
	"video-annotator/internal/middleware"
	"video-annotator/internal/startup"
	"video-annotator/internal/transcoder"

	"github.com/gorilla/mux"
)

func main() {
	startTime := time.Now()

	// Load configuration
	config, err := startup.LoadConfig()
	if err != nil {
		startup.LogFatal("Configuration error: %v", err)
	}

	// Initialize annotation store
	store, err := annotations.New(config.DataDir)
	if err != nil {
		startup.LogFatal("Failed to initialize annotation store: %v", err)
	}

	// Initialize transcoder and job manager
	trans := transcoder.New()
	manager := jobs.NewManager(trans, config.EncodeWorkers, config.QueueSize, config.JobRetention)

	// Initialize handlers
	h := handlers.New(manager, trans, store, config)

	// Setup router
	router := setupRouter(h, config.WebDir)

	// Apply middleware: CORS innermost, then metrics, then logging
	handler := middleware.CORS()(router)
	handler = middleware.Metrics(middleware.DefaultMetricsConfig())(handler)

	loggingConfig := middleware.DefaultLoggingConfig()
	loggingConfig.LogStaticFiles = config.LogStaticFiles
	loggingConfig.LogHealthChecks = config.LogHealthChecks
	handler = middleware.Logger(loggingConfig)(handler)

	// Metrics server on its own port
	var metricsSrv *http.Server
	if config.MetricsEnabled {
		metrics.InitializeMetrics()
		metricsSrv = metrics.StartServer(config.MetricsPort)
	}

	// Create server. WriteTimeout is disabled because synchronous
	// transcodes legitimately hold the connection open.
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      handler,
		ReadTimeout:  0,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// Start graceful shutdown handler
	go handleShutdown(srv, metricsSrv, manager, trans)

	// Start server
	startup.LogServerStarted(config.Port, config.MetricsPort, config.MetricsEnabled, time.Since(startTime))
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		startup.LogFatal("Server error: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, webDir string) *mux.Router {
	r := mux.NewRouter()

	// Health check and version routes
	r.HandleFunc("/health", h.HealthCheck).Methods("GET")
	r.HandleFunc("/healthz", h.HealthCheck).Methods("GET")
	r.HandleFunc("/livez", h.LivenessCheck).Methods("GET")
	r.HandleFunc("/readyz", h.ReadinessCheck).Methods("GET")
	r.HandleFunc("/version", h.GetVersion).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/transcode-start", h.TranscodeStart).Methods("POST")
	api.HandleFunc("/transcode-status", h.TranscodeStatus).Methods("GET")
	api.HandleFunc("/transcode", h.Transcode).Methods("POST")
	api.HandleFunc("/probe-duration", h.ProbeDuration).Methods("POST")
	api.HandleFunc("/annotations", h.GetAnnotations).Methods("GET")
	api.HandleFunc("/annotations", h.PutAnnotations).Methods("POST")

	// Static web app and transcoded artifacts
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(webDir)))

	return r
}

func handleShutdown(srv, metricsSrv *http.Server, manager *jobs.Manager, trans *transcoder.Transcoder) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	startup.LogShutdownInitiated(sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startup.LogShutdownStep("Stopping encode processes")
	trans.Cleanup()
	startup.LogShutdownStepComplete("Encode processes stopped")

	startup.LogShutdownStep("Draining job manager")
	manager.Close()
	startup.LogShutdownStepComplete("Job manager drained")

	if metricsSrv != nil {
		startup.LogShutdownStep("Shutting down metrics server")
		if err := metricsSrv.Shutdown(ctx); err != nil {
			logging.Warn("Metrics server shutdown error: %v", err)
		} else {
			startup.LogShutdownStepComplete("Metrics server stopped")
		}
	}

	startup.LogShutdownStep("Shutting down HTTP server")
	if err := srv.Shutdown(ctx); err != nil {
		logging.Warn("Server shutdown error: %v", err)
	} else {
		startup.LogShutdownStepComplete("HTTP server stopped")
	}

	startup.LogShutdownComplete()
}
