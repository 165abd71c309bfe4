// Package logging configures the charmbracelet/log loggers used by gotslint
// and carries them through a context.
package logging

import (
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Environment variables read when the default logger is first used.
const (
	EnvLevel  = "GOTSLINT_LOG_LEVEL"
	EnvFormat = "GOTSLINT_LOG_FORMAT"
)

//nolint:gochecknoglobals // process-wide default logger
var defaultLogger atomic.Pointer[log.Logger]

// New returns a stderr logger at level. Unknown levels mean info.
func New(level string) *log.Logger {
	return NewWriter(os.Stderr, level)
}

// NewWriter returns a logger writing to w at level.
func NewWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{})
	logger.SetLevel(ParseLevel(level))
	return logger
}

// ParseLevel maps a level name to a log.Level. "warning" is accepted as an
// alias of "warn"; anything unrecognised is info.
func ParseLevel(level string) log.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		level = "warn"
	}
	parsed, err := log.ParseLevel(level)
	if err != nil || level == "" {
		return log.InfoLevel
	}
	return parsed
}

// ParseFormatter maps "json" and "logfmt" to their formatters; anything
// else is the human-readable text formatter.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// fromEnv builds the default logger from GOTSLINT_LOG_LEVEL and
// GOTSLINT_LOG_FORMAT.
func fromEnv() *log.Logger {
	logger := New(os.Getenv(EnvLevel))
	logger.SetFormatter(ParseFormatter(os.Getenv(EnvFormat)))
	return logger
}

// Default returns the process-wide logger, creating it from the
// environment on first use.
func Default() *log.Logger {
	if logger := defaultLogger.Load(); logger != nil {
		return logger
	}
	defaultLogger.CompareAndSwap(nil, fromEnv())
	return defaultLogger.Load()
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *log.Logger) {
	defaultLogger.Store(logger)
}

// SetLevel changes the level of the process-wide logger.
func SetLevel(level string) {
	Default().SetLevel(ParseLevel(level))
}

// NewInteractive returns the info-level stderr logger used for command
// output such as the init and rules commands. It ignores the environment
// format so messages stay readable.
func NewInteractive() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.InfoLevel})
}
