// Package logging configures structured logging for the extension host
// using log/slog.
package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

// DebugEnvVar toggles verbose debug output. It is consulted at every Debug
// call, not cached, so it can be flipped without restarting the host.
const DebugEnvVar = "EXTHOST_DEBUG"

// Level allows runtime log level changes.
var Level slog.LevelVar

// Setup initialises the default slog logger from environment variables:
//
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, text (default: text)
//
// The standard library "log" package is bridged so third-party libraries
// using log.Printf land in structured output.
func Setup() {
	SetupWithConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"), os.Stderr)
}

// SetupWithConfig configures slog with explicit parameters (useful for
// testing).
func SetupWithConfig(levelStr, formatStr string, w io.Writer) {
	Level.Set(ParseLevel(levelStr))

	opts := &slog.HandlerOptions{Level: envLeveler{}}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(formatStr)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	log.SetOutput(slogWriter{logger: logger})
	log.SetFlags(0)
}

// ParseLevel converts a string to slog.Level. Defaults to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envLeveler is the handler's effective level: the configured level, or
// debug while the env toggle is set. Consulted per record, so flipping the
// toggle takes effect without restarting the host.
type envLeveler struct{}

func (envLeveler) Level() slog.Level {
	if DebugEnabled() {
		return slog.LevelDebug
	}
	return Level.Level()
}

// DebugEnabled reads the debug toggle from the environment. Not cached.
func DebugEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(DebugEnvVar)))
	return v != "" && v != "0" && v != "false"
}

// Debug emits msg only while the debug env toggle is set.
func Debug(msg string, args ...any) {
	if DebugEnabled() {
		slog.Info(msg, args...)
	}
}

// slogWriter adapts the stdlib log package onto slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.logger.Info(strings.TrimRight(string(p), "\n"), "source", "stdlib")
	return len(p), nil
}
