// Package log wraps zerolog with the CLI's logging defaults.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     zerolog.Logger
	loggerLock sync.RWMutex
)

func init() {
	Setup(os.Stderr, false)
}

// Setup configures the global logger to write human-readable lines to w.
// Only warnings and above are written unless debug is set.
func Setup(w io.Writer, debug bool) {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	loggerLock.Lock()
	defer loggerLock.Unlock()
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.Kitchen,
		NoColor:    true,
	}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// SetLevel sets the global log level at runtime
func SetLevel(levelStr string) {
	level := parseLogLevel(levelStr)
	loggerLock.Lock()
	logger = logger.Level(level)
	loggerLock.Unlock()
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// Logger returns the global logger.
func Logger() zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	return logger
}

// GetLogger returns the global logger tagged with a module name.
func GetLogger(module string) zerolog.Logger {
	return Logger().With().Str("module", module).Logger()
}

// Debug logs a debug message
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Warn logs a warning message
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}
