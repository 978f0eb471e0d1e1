// Package logging provides categorized file-based logging for jamjudge.
// Logs are written to <data dir>/logs/ with one file per category. When
// debug mode is off only warnings and errors are written, so a judging
// session leaves no log noise behind by default.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/subsystem.
type Category string

const (
	CategoryBoot  Category = "boot"  // Startup, config loading
	CategoryStore Category = "store" // Local evaluation store
	CategoryAgent Category = "agent" // Evaluation agent calls
	CategoryUI    Category = "ui"    // Shell and page events
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

// Logger wraps a standard logger with a category and file output.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex
	logsDir   string
	logLevel  = LevelWarn
)

// Initialize sets up the logging directory. Should be called once at
// startup with the data directory path. Debug mode drops the threshold to
// LevelDebug and is controlled by the logging section of the config file.
func Initialize(dataDir string, debug bool) error {
	if dataDir == "" {
		return fmt.Errorf("data directory required")
	}

	logsDir = filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	if debug {
		logLevel = LevelDebug
	} else {
		logLevel = LevelWarn
	}
	return nil
}

// Get returns the logger for a category, creating it on first use. Before
// Initialize is called (or if the log file cannot be opened) the logger
// discards output rather than failing the caller.
func Get(category Category) *Logger {
	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	l := &Logger{category: category}
	if logsDir != "" {
		path := filepath.Join(logsDir, string(category)+".log")
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			l.file = f
			l.logger = log.New(f, "", 0)
		}
	}
	loggers[category] = l
	return l
}

func (l *Logger) write(level int, levelName, format string, args ...interface{}) {
	if l.logger == nil || level < logLevel {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05.000")
	l.logger.Printf("%s [%s] %s", ts, levelName, fmt.Sprintf(format, args...))
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.write(LevelDebug, "DEBUG", format, args...)
}

// Info logs at info level.
func (l *Logger) Info(format string, args ...interface{}) {
	l.write(LevelInfo, "INFO", format, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.write(LevelWarn, "WARN", format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...interface{}) {
	l.write(LevelError, "ERROR", format, args...)
}

// Convenience helpers mirroring the category set.

// Store logs an info message to the store category.
func Store(format string, args ...interface{}) { Get(CategoryStore).Info(format, args...) }

// StoreDebug logs a debug message to the store category.
func StoreDebug(format string, args ...interface{}) { Get(CategoryStore).Debug(format, args...) }

// Agent logs an info message to the agent category.
func Agent(format string, args ...interface{}) { Get(CategoryAgent).Info(format, args...) }

// AgentDebug logs a debug message to the agent category.
func AgentDebug(format string, args ...interface{}) { Get(CategoryAgent).Debug(format, args...) }

// UI logs an info message to the ui category.
func UI(format string, args ...interface{}) { Get(CategoryUI).Info(format, args...) }

// Boot logs an info message to the boot category.
func Boot(format string, args ...interface{}) { Get(CategoryBoot).Info(format, args...) }

// Close flushes and closes all open log files.
func Close() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}
