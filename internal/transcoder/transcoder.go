package transcoder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"

	"video-annotator/internal/logging"
)

// ErrFFmpegNotFound indicates the ffmpeg binary is not installed.
var ErrFFmpegNotFound = errors.New("ffmpeg not found. Please install ffmpeg.")

// diagnosticTailBytes bounds how much of ffmpeg's stderr is retained for
// error reporting.
const diagnosticTailBytes = 4000

// ExitError reports a non-zero ffmpeg exit along with the bounded tail of
// its error stream.
type ExitError struct {
	Code int
	Tail string
}

func (e *ExitError) Error() string {
	if e.Tail == "" {
		return fmt.Sprintf("ffmpeg exit code %d", e.Code)
	}
	return e.Tail
}

// Transcoder runs fixed-profile ffmpeg encodes and tracks the processes it
// spawns so they can be killed on shutdown.
type Transcoder struct {
	processes map[string]*exec.Cmd
	processMu sync.Mutex
}

// New creates a new Transcoder instance.
func New() *Transcoder {
	return &Transcoder{
		processes: make(map[string]*exec.Cmd),
	}
}

// Encode transcodes inPath into a browser-playable H.264/AAC MP4 at
// outPath. The profile is fixed: main-profile H.264 with yuv420p pixel
// format at CRF 23, 128k AAC audio, and faststart layout for progressive
// download.
//
// Progress is read from ffmpeg's machine-readable stream and reported
// through onProgress as a fraction in [0, 1]. duration is the known media
// length in seconds; pass 0 when unknown and a capped heuristic fraction
// is reported instead. onProgress may be nil.
//
// Returns ErrFFmpegNotFound when the binary is missing and an *ExitError
// when the process exits non-zero. The input file is left in place; its
// removal is the caller's responsibility.
func (t *Transcoder) Encode(ctx context.Context, inPath, outPath string, duration float64, onProgress func(float64)) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", inPath,
		"-movflags", "+faststart",
		"-c:v", "libx264", "-profile:v", "main", "-pix_fmt", "yuv420p", "-preset", "veryfast", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		"-progress", "pipe:1", "-nostats",
		outPath,
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr := newTailBuffer(diagnosticTailBytes)
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return ErrFFmpegNotFound
		}
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	t.track(outPath, cmd)
	defer t.untrack(outPath)

	// The progress stream is a one-shot line sequence bound to the
	// process lifetime; it must be drained before Wait closes the pipe.
	scanProgress(stdout, duration, onProgress)

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode(), Tail: stderr.String()}
		}
		return fmt.Errorf("ffmpeg wait: %w", err)
	}

	return nil
}

func (t *Transcoder) track(key string, cmd *exec.Cmd) {
	t.processMu.Lock()
	t.processes[key] = cmd
	t.processMu.Unlock()
}

func (t *Transcoder) untrack(key string) {
	t.processMu.Lock()
	delete(t.processes, key)
	t.processMu.Unlock()
}

// Cleanup stops all active encoding processes.
func (t *Transcoder) Cleanup() {
	t.processMu.Lock()
	defer t.processMu.Unlock()

	for path, cmd := range t.processes {
		if cmd.Process != nil {
			logging.Info("Killing encode process for: %s", path)
			if err := cmd.Process.Kill(); err != nil {
				logging.Warn("failed to kill encode process for %s: %v", path, err)
			}
		}
	}
}
