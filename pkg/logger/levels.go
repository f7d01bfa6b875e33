package logger

import (
	"fmt"
	"strings"

	charm "github.com/charmbracelet/log"

	errUtils "github.com/hostsuite/hostsuite/errors"
)

// TraceLevel is one step more verbose than charm's DebugLevel.
const TraceLevel = charm.DebugLevel - 1

// Log level names accepted in the log_level option.
const (
	LevelTrace   = "trace"
	LevelVerbose = "verbose"
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelNotify  = "notify"
	LevelWarn    = "warn"
)

// ParseLogLevel maps a log_level option value to a charm level.
// An empty value means info.
func ParseLogLevel(level string) (charm.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case LevelTrace:
		return TraceLevel, nil
	case LevelVerbose, LevelDebug:
		return charm.DebugLevel, nil
	case "", LevelInfo, LevelNotify:
		return charm.InfoLevel, nil
	case LevelWarn:
		return charm.WarnLevel, nil
	default:
		return charm.InfoLevel, fmt.Errorf("%w '%s'. Supported log levels are trace, verbose, debug, info, notify, warn",
			errUtils.ErrInvalidLogLevel, level)
	}
}
