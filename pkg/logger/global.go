package logger

import (
	"io"
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default logger stored atomically.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(New())
}

// Default returns the global default logger.
func Default() *charm.Logger {
	return defaultLogger.Load().(*charm.Logger)
}

// SetDefault sets a new global default logger.
func SetDefault(logger *charm.Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a logger writing to stderr with the tool's styles.
func New() *charm.Logger {
	return NewWithOutput(os.Stderr)
}

// NewWithOutput creates a logger writing to w with the tool's styles.
func NewWithOutput(w io.Writer) *charm.Logger {
	l := charm.NewWithOptions(w, charm.Options{
		Level:           charm.InfoLevel,
		ReportTimestamp: false,
	})
	l.SetStyles(getLogStyles())
	return l
}

// SetLevel sets the level of the global default logger.
func SetLevel(level charm.Level) {
	Default().SetLevel(level)
}

// Trace logs at TraceLevel.
func Trace(msg interface{}, keyvals ...interface{}) {
	Default().Log(TraceLevel, msg, keyvals...)
}

// Debug logs at DebugLevel.
func Debug(msg interface{}, keyvals ...interface{}) {
	Default().Debug(msg, keyvals...)
}

// Info logs at InfoLevel.
func Info(msg interface{}, keyvals ...interface{}) {
	Default().Info(msg, keyvals...)
}

// Warn logs at WarnLevel.
func Warn(msg interface{}, keyvals ...interface{}) {
	Default().Warn(msg, keyvals...)
}

// Error logs at ErrorLevel.
func Error(msg interface{}, keyvals ...interface{}) {
	Default().Error(msg, keyvals...)
}
