// Package probe inspects media files with ffprobe.
//
// It exposes two levels of access: Inspect returns the decoded ffprobe
// JSON document for callers that need stream details, and Duration is the
// best-effort helper the transcode job runner uses to normalize progress.
// Duration never fails; when ffprobe is unavailable or the file carries no
// duration metadata it simply reports the duration as unknown and the
// caller degrades to heuristic progress.
package probe
