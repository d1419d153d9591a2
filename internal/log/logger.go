package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LogLevel represents the logging level
type LogLevel string

const (
	LevelError LogLevel = "error"
	LevelWarn  LogLevel = "warn"
	LevelInfo  LogLevel = "info"
	LevelDebug LogLevel = "debug"
)

var (
	mu sync.RWMutex

	// Current logger instance
	logger *slog.Logger

	// Current log level
	currentLevel slog.Level

	// Destination for formatted records
	output io.Writer = os.Stderr
)

func init() {
	SetLevel(LevelInfo)
}

// SetLevel configures the logging level
func SetLevel(level LogLevel) error {
	lvl, err := toSlog(level)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	currentLevel = lvl
	logger = slog.New(NewHandler(output, currentLevel))
	return nil
}

// SetOutput redirects formatted records, mainly for tests
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = slog.New(NewHandler(output, currentLevel))
}

// SetLogger replaces the package logger, e.g. with a callback logger
// while a TUI owns the terminal.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// Logger returns the current package logger
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// ParseLevel converts a string to LogLevel
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(s))
	if _, err := toSlog(level); err != nil {
		return "", err
	}
	return level, nil
}

func toSlog(level LogLevel) (slog.Level, error) {
	switch level {
	case LevelError:
		return slog.LevelError, nil
	case LevelWarn:
		return slog.LevelWarn, nil
	case LevelInfo:
		return slog.LevelInfo, nil
	case LevelDebug:
		return slog.LevelDebug, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// IsDebugEnabled returns true if debug logging is enabled
func IsDebugEnabled() bool {
	return GetCurrentLevel() <= slog.LevelDebug
}

// GetCurrentLevel returns the current log level
func GetCurrentLevel() slog.Level {
	mu.RLock()
	defer mu.RUnlock()
	return currentLevel
}
