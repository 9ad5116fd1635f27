package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"video-annotator/internal/logging"
)

// ErrToolNotFound indicates the ffprobe binary is not installed.
var ErrToolNotFound = errors.New("ffprobe not found. Please install ffmpeg.")

// diagnosticTailBytes bounds how much of ffprobe's stderr is kept for
// user-facing error messages.
const diagnosticTailBytes = 4000

// Result is the decoded ffprobe JSON payload.
type Result struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Stream describes a single stream in the media container.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Duration  string `json:"duration"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// Format captures container-level metadata.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
}

// ProbeError carries the bounded stderr tail from a failed ffprobe run.
type ProbeError struct {
	Tail string
}

func (e *ProbeError) Error() string {
	if e.Tail == "" {
		return "ffprobe failed"
	}
	return fmt.Sprintf("ffprobe failed: %s", e.Tail)
}

// Inspect runs ffprobe against path and decodes its JSON output.
// Returns ErrToolNotFound when the binary is missing and a *ProbeError
// carrying the stderr tail when the file cannot be inspected.
func Inspect(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrToolNotFound
		}
		return nil, &ProbeError{Tail: tail(stderr.Bytes(), diagnosticTailBytes)}
	}

	var result Result
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		return nil, &ProbeError{Tail: fmt.Sprintf("unparsable ffprobe output: %v", err)}
	}

	return &result, nil
}

// Duration returns the media duration of path in seconds. It is
// best-effort: any failure (missing tool, unreadable file, no duration
// field) reports ok=false and is never an error, since duration only
// feeds progress normalization.
func Duration(ctx context.Context, path string) (seconds float64, ok bool) {
	result, err := Inspect(ctx, path)
	if err != nil {
		logging.Debug("duration probe failed for %s: %v", path, err)
		return 0, false
	}
	return result.DurationSeconds()
}

// DurationSeconds extracts a duration from the decoded probe result,
// preferring format.duration and falling back to the longest stream.
func (r *Result) DurationSeconds() (seconds float64, ok bool) {
	if d, err := strconv.ParseFloat(r.Format.Duration, 64); err == nil && d >= 0 {
		return d, true
	}

	found := false
	var max float64
	for _, st := range r.Streams {
		d, err := strconv.ParseFloat(st.Duration, 64)
		if err != nil || d < 0 {
			continue
		}
		if !found || d > max {
			max = d
			found = true
		}
	}
	return max, found
}

// tail returns the last n bytes of b as a string.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
