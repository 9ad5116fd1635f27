// Package startup handles application configuration and startup logging.
//
// Configuration is loaded from environment variables:
//   - WEB_DIR: static web app directory (default: ./webapp)
//   - DATA_DIR: annotation storage directory (default: ./annotations)
//   - UPLOAD_DIR: temporary upload directory (default: system temp)
//   - PORT: application HTTP port (default: 8000)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: enable or disable the metrics server (default: true)
//   - ENCODE_WORKERS: concurrent ffmpeg encodes (default: CPU count, max 8)
//   - ENCODE_QUEUE_SIZE: pending transcode submissions (default: 16)
//   - JOB_RETENTION: how long finished jobs stay pollable (default: 1h)
//   - MAX_UPLOAD_SIZE: upload size cap in bytes (default: 2 GiB)
//   - LOG_STATIC_FILES, LOG_HEALTH_CHECKS, LOG_LEVEL, DEBUG
//
// Transcoded artifacts are written to <WEB_DIR>/transcoded so the static
// file server picks them up. ffmpeg and ffprobe availability is checked
// once here and reported in the startup log.
package startup
