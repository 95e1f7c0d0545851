// Package tlog provides a lightweight thread-safe logging facility using
// structured logging (slog) with JSON output. It offers a singleton logger
// instance with a level configurable through an environment variable and
// convenience methods for logging Tessera's own structured errors.
package tlog

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var logger *slog.Logger
var loggerMutex sync.Mutex

// Log returns a thread-safe singleton *slog.Logger configured for JSON
// output. The first call initializes it with the level from Level();
// subsequent calls return the same instance.
func Log() *slog.Logger {
	loggerMutex.Lock()
	defer loggerMutex.Unlock()

	if logger != nil {
		return logger
	}

	opts := &slog.HandlerOptions{
		Level: Level(),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger = slog.New(handler)
	return logger
}

// Level returns the logging level for Tessera components, read from
// TESSERA_LOG_LEVEL (case-insensitive: DEBUG, INFO, WARN, ERROR). Falls
// back to slog.LevelWarn if unset or unrecognized.
func Level() slog.Level {
	level := strings.ToUpper(os.Getenv("TESSERA_LOG_LEVEL"))

	switch level {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
