// Package logger writes structured debug logs for cazechat to a file.
//
// The TUI owns the terminal, so nothing may be printed to stdout or stderr
// while it runs. All diagnostics go to DefaultLogPath (or the path passed to
// Init) through a log/slog text handler whose level can change at runtime.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// LogLevel represents the severity of a log message
type LogLevel int

const (
	// LevelDebug is for verbose debugging information
	LevelDebug LogLevel = iota
	// LevelInfo is for general operational information
	LevelInfo
	// LevelWarn is for warning conditions
	LevelWarn
	// LevelError is for error conditions
	LevelError
)

func (l LogLevel) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultLogPath is the log file used when Init is not called.
const DefaultLogPath = "/tmp/cazechat-debug.log"

// StubLogPath is the log file used by the stub backend command.
const StubLogPath = "/tmp/cazechat-stub.log"

var (
	slogLogger   *slog.Logger
	levelVar     = new(slog.LevelVar)
	logFile      *os.File
	mu           sync.Mutex
	initDone     bool
	logPath      string
	currentLevel LogLevel = LevelInfo
)

// SetLevel sets the minimum log level to output
func SetLevel(level LogLevel) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	levelVar.Set(level.toSlogLevel())
}

// SetDebug enables debug level logging
func SetDebug(enabled bool) {
	if enabled {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// Init opens path for appending and routes all subsequent logging there.
// Calling Init after the logger is already open is a no-op.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	return openLocked(path)
}

func openLocked(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logFile = f
	logPath = path
	levelVar.Set(currentLevel.toSlogLevel())
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

// ensureInit opens DefaultLogPath on first use. Caller must hold mu.
func ensureInit() {
	if initDone {
		return
	}
	if err := openLocked(DefaultLogPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		// Mark done anyway so we don't retry (and warn) on every call.
		initDone = true
	}
}

// Get returns the process logger. It never returns nil: when the log file
// could not be opened the slog default logger is returned instead.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if slogLogger == nil {
		return slog.Default()
	}
	return slogLogger
}

// WithComponent returns a logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.WithComponent("backend")
//	log.Info("request sent", "endpoint", url)
func WithComponent(component string) *slog.Logger {
	return Get().With(slog.String("component", component))
}

// WithConversation returns a logger scoped to one conversation.
func WithConversation(conversationID string) *slog.Logger {
	return Get().With(slog.String("conversationID", conversationID))
}

// Path returns the file the logger writes to, or "" before first use.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = ""
	slogLogger = nil
	currentLevel = LevelInfo
	levelVar = new(slog.LevelVar)
}

// LogFiles lists the cazechat log files in /tmp.
func LogFiles() ([]string, error) {
	return filepath.Glob("/tmp/cazechat-*.log")
}

// ClearLogs removes the cazechat log files from /tmp and reports how many
// were deleted.
func ClearLogs() (int, error) {
	count := 0
	paths, err := LogFiles()
	if err != nil {
		return count, err
	}
	for _, p := range paths {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}
