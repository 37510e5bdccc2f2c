// Package gate turns a danger report into an execution decision.
package gate

import (
	"fmt"
	"strings"
)

// Action is what the caller should do with a command line.
type Action int

const (
	// Allow runs the command without asking.
	Allow Action = iota
	// Confirm asks the user first.
	Confirm
	// Block refuses to run the command.
	Block
)

// String returns the lowercase name of an Action.
func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Confirm:
		return "confirm"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// ParseAction parses an action name (case-insensitive).
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "confirm":
		return Confirm, nil
	case "block":
		return Block, nil
	default:
		return Allow, fmt.Errorf("invalid action %q (must be allow, confirm, or block)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if a < Allow || a > Block {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
