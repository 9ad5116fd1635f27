package workers

import (
	"runtime"
	"testing"
)

func TestCountDefaults(t *testing.T) {
	t.Setenv("ENCODE_WORKERS", "")

	got := Count(1.0, 0)
	if got < 1 {
		t.Errorf("Expected at least 1 worker, got %d", got)
	}
	if got != runtime.GOMAXPROCS(0) {
		t.Errorf("Expected %d workers for multiplier 1.0, got %d", runtime.GOMAXPROCS(0), got)
	}
}

func TestCountLimit(t *testing.T) {
	t.Setenv("ENCODE_WORKERS", "")

	if got := Count(8.0, 3); got != 3 {
		t.Errorf("Expected limit of 3 applied, got %d", got)
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("ENCODE_WORKERS", "5")

	if got := Count(1.0, 0); got != 5 {
		t.Errorf("Expected override of 5, got %d", got)
	}
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Expected limit to cap override, got %d", got)
	}
}

func TestCountInvalidOverride(t *testing.T) {
	t.Setenv("ENCODE_WORKERS", "banana")

	if got := Count(1.0, 0); got != runtime.GOMAXPROCS(0) {
		t.Errorf("Expected invalid override ignored, got %d", got)
	}
}

func TestForCPU(t *testing.T) {
	t.Setenv("ENCODE_WORKERS", "")

	if got := ForCPU(1); got != 1 {
		t.Errorf("Expected cap of 1, got %d", got)
	}
}
