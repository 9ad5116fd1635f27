package startup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetBuildInfo(t *testing.T) {
	info := GetBuildInfo()

	if info.Version == "" {
		t.Error("Expected non-empty version")
	}
	if info.GoVersion == "" {
		t.Error("Expected non-empty Go version")
	}
	if info.OS == "" || info.Arch == "" {
		t.Error("Expected OS and Arch to be set")
	}
}

func TestGetEnvDefaults(t *testing.T) {
	t.Setenv("STARTUP_TEST_SET", "value")

	if got := getEnv("STARTUP_TEST_SET", "fallback"); got != "value" {
		t.Errorf("Expected set value, got %q", got)
	}
	if got := getEnv("STARTUP_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Expected fallback, got %q", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		expected bool
	}{
		{"true", false, true},
		{"false", true, false},
		{"1", false, true},
		{"0", true, false},
		{"notabool", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STARTUP_TEST_BOOL", tt.value)
			if got := getEnvBool("STARTUP_TEST_BOOL", tt.fallback); got != tt.expected {
				t.Errorf("getEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.expected)
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		value    string
		fallback int
		expected int
	}{
		{"4", 2, 4},
		{"", 2, 2},
		{"zero", 2, 2},
		{"0", 2, 2},
		{"-3", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("STARTUP_TEST_INT", tt.value)
			if got := getEnvInt("STARTUP_TEST_INT", tt.fallback); got != tt.expected {
				t.Errorf("getEnvInt(%q, %d) = %d, want %d", tt.value, tt.fallback, got, tt.expected)
			}
		})
	}
}

func TestEnsureDirectoryCreates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")

	if err := ensureDirectory(dir, "test"); err != nil {
		t.Fatalf("ensureDirectory failed: %v", err)
	}
	if err := testWriteAccess(dir); err != nil {
		t.Errorf("expected created directory to be writable: %v", err)
	}
}

func TestEnsureDirectoryRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plainfile")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ensureDirectory(file, "test"); err == nil {
		t.Error("expected error when path is a file")
	}
}
