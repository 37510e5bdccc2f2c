// Package clog provides operational logging for cmdguard.
// This is distinct from user-facing output (see internal/term) and from the
// decision audit trail (see internal/audit).
//
// Log levels:
//   - Debug: analysis internals, only with --debug
//   - Info: normal operational events
//   - Warn: unexpected conditions that don't prevent analysis
//   - Error: failures that affect a decision
//
// Output destinations:
//   - File: all messages at or above the configured level
//   - Stderr: Warn and Error by default; everything at or above the
//     configured level in verbose mode
package clog

import "strings"

// Level represents the severity of a log message.
type Level int

const (
	// LevelDebug is for verbose diagnostic information.
	LevelDebug Level = iota
	// LevelInfo is for normal operational events.
	LevelInfo
	// LevelWarn is for unexpected conditions that don't prevent operation.
	LevelWarn
	// LevelError is for failures that affect functionality.
	LevelError
)

var levelNames = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the uppercase name of the level.
func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// LookupLevel parses a level name (case-insensitive). It accepts the names
// debug, info, warn, and error, plus the aliases warning and err.
func LookupLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error", "err":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// ParseLevel is LookupLevel with LevelInfo for anything unrecognized.
func ParseLevel(s string) Level {
	level, _ := LookupLevel(s)
	return level
}
