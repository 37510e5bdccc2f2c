package gate

import (
	"fmt"

	"github.com/xdg/cmdguard/internal/danger"
)

// Config holds caller policy for turning levels into actions.
type Config struct {
	Unknown Action   // action for commands in neither table
	Allow   []string // regexes that auto-approve non-destructive lines
	Deny    []string // regexes that always block
}

// DefaultConfig asks for confirmation on unknown commands and has no patterns.
func DefaultConfig() Config {
	return Config{Unknown: Confirm}
}

// Decision is the result of gating one command line.
type Decision struct {
	Action  Action       `json:"action"`
	Level   danger.Level `json:"level"`
	Reason  string       `json:"reason"`
	Pattern string       `json:"pattern,omitempty"`
}

// Gate decides what to do with analyzed command lines. It is safe for
// concurrent use.
type Gate struct {
	unknown Action
	matcher *RegexMatcher
}

// New builds a Gate from cfg.
func New(cfg Config) *Gate {
	return &Gate{
		unknown: cfg.Unknown,
		matcher: NewRegexMatcher(cfg.Allow, cfg.Deny),
	}
}

// Decide applies caller policy to the analysis of line.
//
// Deny patterns win over everything. The effective level is the highest of
// all atoms and invocations, so a dangerous command without path operands is
// still gated. Allow patterns never approve a destructive line.
func (g *Gate) Decide(line string, r *danger.Report) Decision {
	m := g.matcher.Match(line)
	if m.Deny {
		return Decision{
			Action:  Block,
			Level:   r.MaxLevel(),
			Reason:  "matches deny pattern",
			Pattern: m.Pattern,
		}
	}

	level := r.MaxLevel()
	if m.Allow && level < danger.Destructive {
		return Decision{
			Action:  Allow,
			Level:   level,
			Reason:  "matches allow pattern",
			Pattern: m.Pattern,
		}
	}

	return Decision{
		Action: g.forLevel(level),
		Level:  level,
		Reason: reason(r, level),
	}
}

func (g *Gate) forLevel(level danger.Level) Action {
	switch level {
	case danger.Safe:
		return Allow
	case danger.Unknown:
		return g.unknown
	case danger.Dangerous:
		return Confirm
	default:
		return Block
	}
}

// reason names the first atom or invocation responsible for level.
func reason(r *danger.Report, level danger.Level) string {
	if level == danger.Safe {
		return "only safe commands"
	}
	for _, a := range r.Atoms {
		if a.Level != level {
			continue
		}
		if level == danger.Destructive {
			return fmt.Sprintf("%q touches %s outside the project", a.Name, a.Path)
		}
		return fmt.Sprintf("%q touches %s", a.Name, a.Path)
	}
	for _, inv := range r.Invocations {
		if inv.Level == level {
			return fmt.Sprintf("%q is %s", inv.Name, level)
		}
	}
	return level.String()
}
