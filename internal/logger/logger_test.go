package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupTestLogger creates a temp log file and initializes the logger with it.
func setupTestLogger(t *testing.T) string {
	t.Helper()
	Reset()

	logPath := filepath.Join(t.TempDir(), "test-debug.log")
	if err := Init(logPath); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(Reset)
	return logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	return string(content)
}

func TestInit_WritesHeader(t *testing.T) {
	logPath := setupTestLogger(t)

	if !strings.Contains(readLog(t, logPath), "Logger initialized") {
		t.Error("log file should contain the initialization line")
	}
}

func TestInit_SecondCallIsNoop(t *testing.T) {
	logPath := setupTestLogger(t)

	other := filepath.Join(t.TempDir(), "other.log")
	if err := Init(other); err != nil {
		t.Fatalf("second Init returned error: %v", err)
	}
	if _, err := os.Stat(other); !os.IsNotExist(err) {
		t.Error("second Init should not open a new file")
	}

	Get().Info("still-first-file")
	if !strings.Contains(readLog(t, logPath), "still-first-file") {
		t.Error("messages should keep going to the first log file")
	}
}

func TestInit_BadPath(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	err := Init(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

func TestSetDebug_FiltersDebugMessages(t *testing.T) {
	logPath := setupTestLogger(t)

	Get().Debug("hidden-debug-line")
	SetDebug(true)
	Get().Debug("visible-debug-line")
	SetDebug(false)

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden-debug-line") {
		t.Error("debug message should be filtered at info level")
	}
	if !strings.Contains(content, "visible-debug-line") {
		t.Error("debug message should be written at debug level")
	}
}

func TestWithComponent(t *testing.T) {
	logPath := setupTestLogger(t)

	WithComponent("backend").Info("component-line")

	content := readLog(t, logPath)
	if !strings.Contains(content, "component=backend") {
		t.Errorf("expected component attribute in log, got:\n%s", content)
	}
}

func TestWithConversation(t *testing.T) {
	logPath := setupTestLogger(t)

	WithConversation("conv-123").Warn("conversation-line")

	content := readLog(t, logPath)
	if !strings.Contains(content, "conversationID=conv-123") {
		t.Errorf("expected conversationID attribute in log, got:\n%s", content)
	}
	if !strings.Contains(content, "level=WARN") {
		t.Errorf("expected WARN level in log, got:\n%s", content)
	}
}

func TestClose_GetFallsBackToDefault(t *testing.T) {
	setupTestLogger(t)

	Close()
	if Get() == nil {
		t.Error("Get should never return nil")
	}
}

func TestLogLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(42), "INFO"},
	}
	for _, tt := range tests {
		if got := tt.level.toSlogLevel().String(); got != tt.want {
			t.Errorf("LogLevel(%d).toSlogLevel() = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestPath(t *testing.T) {
	logPath := setupTestLogger(t)

	if got := Path(); got != logPath {
		t.Errorf("Path() = %q, want %q", got, logPath)
	}

	Reset()
	if got := Path(); got != "" {
		t.Errorf("Path() after Reset = %q, want empty", got)
	}
}
