// Package logger is the harness's logging front end. The overlay core never logs.
//
// With NVOVERLAY_DEBUG=1 the level drops to Debug and every line is also
// appended to nvoverlay-debug.log in the working directory.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvDebug enables debug level and the debug log file when set to "1".
const EnvDebug = "NVOVERLAY_DEBUG"

const debugFile = "nvoverlay-debug.log"

var (
	mu       sync.Mutex
	debug    bool
	log      *slog.Logger
	file     *os.File
	initOnce sync.Once
)

func initLogger() {
	initOnce.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		if log != nil {
			return // Setup ran first
		}
		debug = os.Getenv(EnvDebug) == "1"

		var w io.Writer = os.Stderr
		if debug {
			dir, _ := os.Getwd()
			if dir == "" {
				dir = os.TempDir()
			}
			f, err := os.OpenFile(filepath.Join(dir, debugFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err == nil {
				file = f
				w = io.MultiWriter(os.Stderr, f)
			}
		}
		log = newLogger(w, debug)
	})
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
}

// Setup replaces the environment-driven logger, e.g. to capture output in tests.
func Setup(w io.Writer, debugLevel bool) {
	initOnce.Do(func() {})
	mu.Lock()
	defer mu.Unlock()
	debug = debugLevel
	log = newLogger(w, debugLevel)
}

func current() *slog.Logger {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	return log
}

// IsDebug returns whether debug logging is enabled.
func IsDebug() bool {
	initLogger()
	mu.Lock()
	defer mu.Unlock()
	return debug
}

// With returns a logger tagged with a component name.
func With(component string) *slog.Logger {
	return current().With("component", component)
}

// Debug logs at Debug level. Keys must be string; values can be any type.
func Debug(msg string, keyvals ...any) { current().Debug(msg, keyvals...) }

// Info logs at Info level.
func Info(msg string, keyvals ...any) { current().Info(msg, keyvals...) }

// Warn logs at Warn level.
func Warn(msg string, keyvals ...any) { current().Warn(msg, keyvals...) }

// Error logs at Error level.
func Error(msg string, keyvals ...any) { current().Error(msg, keyvals...) }

// Close closes the debug log file if one was opened.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		_ = file.Close()
		file = nil
	}
}
