// Package danger statically assesses shell command lines for risk before
// they are executed.
//
// A command line is parsed into a syntax tree and walked in document order.
// Each simple command is classified by name against a Policy, the walk tracks
// the directory a cd would leave the shell in, and every path-like argument
// produces an Atom carrying the command's level and the resolved target. A
// dangerous command whose target resolves outside the project root is
// escalated to Destructive.
//
// Levels:
//   - Safe: known read-only command
//   - Unknown: command in neither policy set
//   - Dangerous: command that can modify the filesystem or system
//   - Destructive: dangerous command whose target is outside the project root
//
// The analyzer is advisory. It does not expand variables or globs and does not
// evaluate substitutions, so it is not a security boundary on its own.
package danger

import (
	"fmt"
	"strings"
)

// Level is the ordered risk classification of one command effect.
type Level int

const (
	// Safe is a command known to be read-only.
	Safe Level = iota
	// Unknown is a command absent from the policy.
	Unknown
	// Dangerous is a command that can modify the filesystem.
	Dangerous
	// Destructive is a dangerous command aimed outside the project root.
	Destructive
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case Safe:
		return "safe"
	case Unknown:
		return "unknown"
	case Dangerous:
		return "dangerous"
	case Destructive:
		return "destructive"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel parses a level name (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return Safe, nil
	case "unknown":
		return Unknown, nil
	case "dangerous":
		return Dangerous, nil
	case "destructive":
		return Destructive, nil
	default:
		return Unknown, fmt.Errorf("invalid danger level %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if l < Safe || l > Destructive {
		return nil, fmt.Errorf("invalid danger level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
