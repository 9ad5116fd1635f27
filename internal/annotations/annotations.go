package annotations

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"video-annotator/internal/metrics"
)

// ErrInvalidVideoID rejects identifiers that could escape the data
// directory or collide with other files.
var ErrInvalidVideoID = errors.New("invalid video id")

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Store persists one JSON annotation document per video identifier as a
// flat file. Documents are read and written whole; there is no partial
// update.
type Store struct {
	dir string
}

// New creates an annotation store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create annotations directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Get returns the raw annotation document for videoID, or an empty JSON
// object when none has been stored yet.
func (s *Store) Get(videoID string) ([]byte, error) {
	if !videoIDPattern.MatchString(videoID) {
		return nil, ErrInvalidVideoID
	}

	data, err := os.ReadFile(s.path(videoID))
	if err != nil {
		if os.IsNotExist(err) {
			metrics.AnnotationOpsTotal.WithLabelValues("read", "success").Inc()
			return []byte("{}"), nil
		}
		metrics.AnnotationOpsTotal.WithLabelValues("read", "error").Inc()
		return nil, fmt.Errorf("failed to read annotations for %s: %w", videoID, err)
	}

	metrics.AnnotationOpsTotal.WithLabelValues("read", "success").Inc()
	return data, nil
}

// Put stores the annotation document for videoID, replacing any previous
// version. The document must be valid JSON.
func (s *Store) Put(videoID string, doc json.RawMessage) error {
	if !videoIDPattern.MatchString(videoID) {
		return ErrInvalidVideoID
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		metrics.AnnotationOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("invalid annotation document: %w", err)
	}

	if err := os.WriteFile(s.path(videoID), pretty, 0o644); err != nil {
		metrics.AnnotationOpsTotal.WithLabelValues("write", "error").Inc()
		return fmt.Errorf("failed to write annotations for %s: %w", videoID, err)
	}

	metrics.AnnotationOpsTotal.WithLabelValues("write", "success").Inc()
	return nil
}

func (s *Store) path(videoID string) string {
	return filepath.Join(s.dir, videoID+".json")
}
