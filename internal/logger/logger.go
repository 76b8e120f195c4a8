// Package logger provides structured logging for the lenk CLI.
// Messages go to stderr through a log/slog text handler. Warnings are
// always shown; debug and info messages appear with --verbose or when
// LENK_LOG_LEVEL asks for them.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// LevelEnv names the environment variable that sets the log level.
const LevelEnv = "LENK_LOG_LEVEL"

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	level             = new(slog.LevelVar)
	log               = build()
)

func init() {
	level.Set(levelFromEnv())
}

func build() *slog.Logger {
	return slog.New(slog.NewTextHandler(writer{}, &slog.HandlerOptions{Level: level}))
}

// writer forwards to the current output so SetOutput takes effect
// without rebuilding loggers handed out earlier.
type writer struct{}

func (writer) Write(p []byte) (int, error) {
	mu.RLock()
	defer mu.RUnlock()
	return output.Write(p)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv(LevelEnv)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	verbose = v
	mu.Unlock()

	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(levelFromEnv())
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Logger returns the shared structured logger.
func Logger() *slog.Logger {
	return log
}

// With returns a logger that adds a component attribute to every record.
func With(component string) *slog.Logger {
	return log.With("component", component)
}

// Debug logs msg with key/value attributes at debug level.
func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

// Info logs msg with key/value attributes at info level.
func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

// Warn logs msg with key/value attributes at warn level.
func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

// Error logs msg with key/value attributes at error level.
func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

// Section marks the start of a named phase at debug level.
func Section(name string) {
	log.Log(context.Background(), slog.LevelDebug, "=== "+name+" ===")
}
