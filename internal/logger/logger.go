// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	globalLogger *slog.Logger
	debugEnabled bool
	mu           sync.RWMutex
)

// Setup installs a text logger on stderr at info level, or debug level when debug is set
func Setup(debug bool) *slog.Logger {
	return SetupWithWriter(os.Stderr, debug)
}

// SetupWithWriter is Setup with an explicit destination
func SetupWithWriter(w io.Writer, debug bool) *slog.Logger {
	l := newTextLogger(w, debug)
	SetGlobal(l, debug)
	return l
}

// SetGlobal sets the global logger and debug state
func SetGlobal(logger *slog.Logger, debug bool) {
	mu.Lock()
	defer mu.Unlock()
	globalLogger = logger
	debugEnabled = debug
}

// Get returns the global logger, or a stderr logger when none was installed
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if globalLogger == nil {
		return newTextLogger(os.Stderr, debugEnabled)
	}
	return globalLogger
}

// ForTable returns the global logger scoped to one table
func ForTable(schema, table string) *slog.Logger {
	return Get().With("schema", schema, "table", table)
}

// IsDebug returns whether debug mode is enabled
func IsDebug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return debugEnabled
}

func newTextLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
