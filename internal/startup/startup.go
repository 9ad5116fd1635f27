package startup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"video-annotator/internal/logging"
	"video-annotator/internal/workers"
)

// Build-time variables (injected via -ldflags)
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetBuildInfo returns the current build information
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// Config holds all application configuration
type Config struct {
	WebDir        string
	DataDir       string
	UploadDir     string
	Port          string
	MetricsPort   string
	EncodeWorkers int
	QueueSize     int
	JobRetention  time.Duration
	MaxUploadSize int64

	LogStaticFiles  bool
	LogHealthChecks bool
	MetricsEnabled  bool

	// Derived paths
	TranscodeDir string

	// Tool availability, checked once at startup
	FFmpegAvailable  bool
	FFprobeAvailable bool
}

// LoadConfig loads and validates configuration from environment variables
func LoadConfig() (*Config, error) {
	printBanner()
	logSystemInfo()

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	webDir := getEnv("WEB_DIR", "./webapp")
	dataDir := getEnv("DATA_DIR", "./annotations")
	uploadDir := getEnv("UPLOAD_DIR", os.TempDir())
	port := getEnv("PORT", "8000")
	metricsPort := getEnv("METRICS_PORT", "9090")
	encodeWorkers := getEnvInt("ENCODE_WORKERS", workers.ForCPU(8))
	queueSize := getEnvInt("ENCODE_QUEUE_SIZE", 16)
	retentionStr := getEnv("JOB_RETENTION", "1h")
	maxUploadSize := getEnvInt64("MAX_UPLOAD_SIZE", 2<<30)
	logStaticFiles := getEnvBool("LOG_STATIC_FILES", false)
	logHealthChecks := getEnvBool("LOG_HEALTH_CHECKS", true)
	metricsEnabled := getEnvBool("METRICS_ENABLED", true)

	logging.Info("  WEB_DIR:             %s", webDir)
	logging.Info("  DATA_DIR:            %s", dataDir)
	logging.Info("  UPLOAD_DIR:          %s", uploadDir)
	logging.Info("  PORT:                %s", port)
	logging.Info("  METRICS_PORT:        %s", metricsPort)
	logging.Info("  METRICS_ENABLED:     %v", metricsEnabled)
	logging.Info("  ENCODE_WORKERS:      %d", encodeWorkers)
	logging.Info("  ENCODE_QUEUE_SIZE:   %d", queueSize)
	logging.Info("  JOB_RETENTION:       %s", retentionStr)
	logging.Info("  MAX_UPLOAD_SIZE:     %d", maxUploadSize)
	logging.Info("  LOG_STATIC_FILES:    %v", logStaticFiles)
	logging.Info("  LOG_HEALTH_CHECKS:   %v", logHealthChecks)
	logging.Info("  LOG_LEVEL:           %s", logging.GetLevel())

	retention, err := time.ParseDuration(retentionStr)
	if err != nil {
		logging.Warn("  Invalid JOB_RETENTION, using default: 1h")
		retention = time.Hour
	}

	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("DIRECTORY SETUP")
	logging.Info("------------------------------------------------------------")

	webDir, err = filepath.Abs(webDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve web directory path: %w", err)
	}
	logging.Info("  Web directory (absolute): %s", webDir)

	dataDir, err = filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	logging.Info("  Data directory (absolute): %s", dataDir)

	config := &Config{
		WebDir:          webDir,
		DataDir:         dataDir,
		UploadDir:       uploadDir,
		Port:            port,
		MetricsPort:     metricsPort,
		EncodeWorkers:   encodeWorkers,
		QueueSize:       queueSize,
		JobRetention:    retention,
		MaxUploadSize:   maxUploadSize,
		LogStaticFiles:  logStaticFiles,
		LogHealthChecks: logHealthChecks,
		MetricsEnabled:  metricsEnabled,
		TranscodeDir:    filepath.Join(webDir, "transcoded"),
	}

	// Annotation and transcode output directories must be writable
	for _, dir := range []struct{ path, name string }{
		{config.DataDir, "data"},
		{config.TranscodeDir, "transcode"},
		{config.UploadDir, "upload"},
	} {
		if err := ensureDirectory(dir.path, dir.name); err != nil {
			return nil, fmt.Errorf("%s directory error: %w", dir.name, err)
		}
		if err := testWriteAccess(dir.path); err != nil {
			return nil, fmt.Errorf("%s directory is not writable: %w", dir.name, err)
		}
		logging.Info("  [OK] %s directory is writable", dir.name)
	}

	checkTools(config)

	logging.Info("")
	logging.Info("  Feature availability:")
	logging.Info("    Transcoding:      %s", availableString(config.FFmpegAvailable))
	logging.Info("    Duration probing: %s", availableString(config.FFprobeAvailable))
	logging.Info("    Metrics:          %s", availableString(config.MetricsEnabled))

	return config, nil
}

// checkTools probes for the external binaries once so degraded modes can
// be reported at startup rather than discovered per request.
func checkTools(config *Config) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("EXTERNAL TOOLS")
	logging.Info("------------------------------------------------------------")

	if err := checkTool("ffmpeg"); err != nil {
		logging.Warn("  ffmpeg check failed: %v", err)
		logging.Warn("  Transcode jobs will fail until ffmpeg is installed")
	} else {
		config.FFmpegAvailable = true
		logging.Info("  [OK] ffmpeg is available")
	}

	if err := checkTool("ffprobe"); err != nil {
		logging.Warn("  ffprobe check failed: %v", err)
		logging.Warn("  Progress will use the heuristic fallback")
	} else {
		config.FFprobeAvailable = true
		logging.Info("  [OK] ffprobe is available")
	}
}

func availableString(ok bool) string {
	if ok {
		return "AVAILABLE"
	}
	return "UNAVAILABLE"
}

// LogServerStarted logs successful server start with endpoint information
func LogServerStarted(port, metricsPort string, metricsEnabled bool, startupDuration time.Duration) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SERVER STARTED")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Startup time:    %v", startupDuration)
	logging.Info("")
	logging.Info("  Endpoints:")
	logging.Info("    Application:   http://localhost:%s", port)
	if metricsEnabled {
		logging.Info("    Metrics:       http://localhost:%s/metrics", metricsPort)
	} else {
		logging.Info("    Metrics:       DISABLED")
	}
	logging.Info("")
	logging.Info("  Press Ctrl+C to stop the server")
	logging.Info("------------------------------------------------------------")
	logging.Info("")
}

// LogShutdownInitiated logs shutdown start
func LogShutdownInitiated(signal string) {
	logging.Info("")
	logging.Info("------------------------------------------------------------")
	logging.Info("SHUTDOWN INITIATED (received %s)", signal)
	logging.Info("------------------------------------------------------------")
}

// LogShutdownStep logs a shutdown step
func LogShutdownStep(step string) {
	logging.Debug("  %s...", step)
}

// LogShutdownStepComplete logs a completed shutdown step
func LogShutdownStepComplete(step string) {
	logging.Info("  [OK] %s", step)
}

// LogShutdownComplete logs shutdown completion
func LogShutdownComplete() {
	logging.Info("  [OK] Shutdown complete")
}

// LogFatal logs a fatal error and exits
func LogFatal(format string, args ...interface{}) {
	logging.Fatal(format, args...)
}

// Helper functions

func printBanner() {
	banner := `
------------------------------------------------------------
 _   ___     __             ___                  __       __
| | / (_)__/ /__ ___       / _ |___  ___  ___  / /____ _/ /____  ____
| |/ / / _  / -_) _ \     / __ / _ \/ _ \/ _ \/ __/ _ '/ __/ _ \/ __/
|___/_/\_,_/\__/\___/    /_/ |_\___/_//_/\___/\__/\_,_/\__/\___/_/

------------------------------------------------------------`
	fmt.Println(banner)
	logging.Info("  Version:    %s", Version)
	logging.Info("  Commit:     %s", Commit)
	logging.Info("  Build Time: %s", BuildTime)
	logging.Info("  Started:    %s", time.Now().Format(time.RFC1123))
	logging.Info("")
}

func logSystemInfo() {
	logging.Info("------------------------------------------------------------")
	logging.Info("SYSTEM INFORMATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  Go version:      %s", runtime.Version())
	logging.Info("  OS/Arch:         %s/%s", runtime.GOOS, runtime.GOARCH)
	logging.Info("  CPUs available:  %d", runtime.NumCPU())
	logging.Info("  GOMAXPROCS:      %d", runtime.GOMAXPROCS(0))

	if runtime.GOMAXPROCS(0) < runtime.NumCPU() {
		logging.Info("  (Container CPU limit detected)")
	}

	logging.Info("")
}

func ensureDirectory(path, name string) error {
	logging.Debug("  Checking %s directory: %s", name, path)

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		logging.Debug("    Directory does not exist, creating...")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		logging.Debug("    [OK] Created directory: %s", path)
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path exists but is not a directory")
	}

	logging.Debug("    [OK] Directory exists")
	return nil
}

func testWriteAccess(dir string) error {
	testFile := filepath.Join(dir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o644); err != nil {
		return err
	}
	if err := os.Remove(testFile); err != nil {
		logging.Warn("failed to remove write test file %s: %v", testFile, err)
		// Write access was confirmed regardless
	}
	return nil
}

func checkTool(name string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("%s not found in PATH", name)
	}
	logging.Debug("  %s path: %s", name, path)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, "-version")
	output, err := cmd.Output()
	if err != nil {
		return fmt.Errorf("failed to get %s version: %w", name, err)
	}

	lines := strings.Split(string(output), "\n")
	if len(lines) > 0 {
		logging.Debug("  %s version: %s", name, strings.TrimSpace(lines[0]))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		logging.Warn("Invalid boolean value for %s: %q, using default: %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 1 {
		logging.Warn("Invalid value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed < 1 {
		logging.Warn("Invalid value for %s: %q, using default: %d", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
