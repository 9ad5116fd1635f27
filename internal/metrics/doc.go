// Package metrics declares the Prometheus instrumentation for the video
// annotator service.
//
// Metrics are registered with the default registry using promauto and
// exposed by a dedicated metrics server (see StartServer) on a separate
// port from the application. Counters and gauges cover the HTTP surface,
// the transcode job pipeline (submissions, rejections, terminal outcomes,
// queue depth, encode duration), uploads, and the annotation store.
//
// Call InitializeMetrics once at startup so labeled series exist from the
// first scrape.
package metrics
