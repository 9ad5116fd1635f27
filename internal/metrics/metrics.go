package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_annotator_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "video_annotator_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_annotator_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Transcode job metrics
var (
	JobsSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_annotator_jobs_submitted_total",
			Help: "Total number of transcode jobs accepted",
		},
	)

	JobsRejectedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_annotator_jobs_rejected_total",
			Help: "Total number of transcode jobs rejected because the queue was full",
		},
	)

	JobsCompletedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_annotator_jobs_completed_total",
			Help: "Total number of transcode jobs reaching a terminal state",
		},
		[]string{"outcome"}, // "done", "error"
	)

	JobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_annotator_jobs_active",
			Help: "Number of encodes currently running",
		},
	)

	JobQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_annotator_job_queue_depth",
			Help: "Number of transcode jobs waiting for a worker",
		},
	)

	JobsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "video_annotator_jobs_stored",
			Help: "Number of jobs currently retained in the store",
		},
	)

	EncodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "video_annotator_encode_duration_seconds",
			Help:    "Wall-clock duration of ffmpeg encodes in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		},
	)
)

// Upload metrics
var (
	UploadBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_annotator_upload_bytes_total",
			Help: "Total bytes of media received in uploads",
		},
	)

	UploadErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "video_annotator_upload_errors_total",
			Help: "Total number of uploads rejected as malformed",
		},
	)
)

// Annotation store metrics
var (
	AnnotationOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_annotator_annotation_ops_total",
			Help: "Total number of annotation store operations",
		},
		[]string{"operation", "status"}, // operation: "read", "write"
	)
)

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, outcome := range []string{"done", "error"} {
		JobsCompletedTotal.WithLabelValues(outcome)
	}

	for _, op := range []string{"read", "write"} {
		AnnotationOpsTotal.WithLabelValues(op, "success")
		AnnotationOpsTotal.WithLabelValues(op, "error")
	}
}
