// Package audit provides structured logging for gating decisions.
// Log entries follow a key=value format suitable for parsing and analysis.
package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/gate"
)

// EventType represents the type of decision event.
type EventType string

// Event types for command checks.
const (
	EventAllow   EventType = "ALLOW"
	EventConfirm EventType = "CONFIRM"
	EventApprove EventType = "APPROVE"
	EventDecline EventType = "DECLINE"
	EventBlock   EventType = "BLOCK"
	EventError   EventType = "ERROR"
)

// Event represents one audit log entry.
type Event struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Type is the event type (ALLOW, BLOCK, etc.)
	Type EventType

	// ID identifies the check; a CONFIRM and the APPROVE or DECLINE that
	// follows it share one ID.
	ID string

	// Project is the project root the command was checked against.
	Project string

	// Cmd is the command line being checked.
	Cmd string

	// Level is the effective danger level (empty for ERROR events).
	Level string

	// Pattern is the matched allow or deny pattern, if any.
	Pattern string

	// Reason explains the decision, or holds the error for ERROR events.
	Reason string

	// Duration is the analysis time (zero if not measured).
	Duration time.Duration
}

// NewID returns a fresh check identifier.
func NewID() string {
	return uuid.NewString()
}

// Format returns the log entry as a formatted string.
// Format: 2024-01-15T14:32:05Z CHECK BLOCK id=... project="/src/app" cmd="rm -rf /" level=destructive reason="..."
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" CHECK ")
	b.WriteString(string(e.Type))

	b.WriteString(" id=")
	b.WriteString(e.ID)
	b.WriteString(" project=")
	b.WriteString(quoteValue(e.Project))
	b.WriteString(" cmd=")
	b.WriteString(quoteValue(e.Cmd))

	if e.Level != "" {
		b.WriteString(" level=")
		b.WriteString(e.Level)
	}
	writeOptionalField(&b, "pattern", e.Pattern)
	writeOptionalField(&b, "reason", e.Reason)
	if e.Duration > 0 {
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	}

	return b.String()
}

// writeOptionalField appends " key=quoted_value" to the builder if value is non-empty.
func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

// quoteValue returns a quoted string value.
// Values are always quoted for consistency and to handle spaces/special chars.
func quoteValue(s string) string {
	return fmt.Sprintf("%q", s)
}

// formatDuration formats a duration as a human-readable string (e.g., "850µs", "2.3ms").
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return d.Round(time.Microsecond).String()
	}
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// eventForAction maps a gate action to its event type.
func eventForAction(a gate.Action) EventType {
	switch a {
	case gate.Allow:
		return EventAllow
	case gate.Confirm:
		return EventConfirm
	default:
		return EventBlock
	}
}

// Logger writes audit events to an io.Writer. A nil Logger discards events.
type Logger struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewLogger creates a new audit logger that writes to the given writer.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w}
}

// OpenFile creates a logger appending to the file at path, creating parent
// directories as needed.
func OpenFile(path string) (*Logger, error) {
	f, err := clog.OpenLogFile(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return &Logger{w: f, closer: f}, nil
}

// Close closes the underlying file, if the logger owns one.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

// Log writes an event to the audit log.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	line := e.Format() + "\n"
	_, err := l.w.Write([]byte(line))
	if err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

// LogDecision logs the gate's decision for a command line.
func (l *Logger) LogDecision(id, project, cmd string, d gate.Decision, elapsed time.Duration) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      eventForAction(d.Action),
		ID:        id,
		Project:   project,
		Cmd:       cmd,
		Level:     d.Level.String(),
		Pattern:   d.Pattern,
		Reason:    d.Reason,
		Duration:  elapsed,
	})
}

// LogConfirmation logs the user's answer to a confirmation prompt.
func (l *Logger) LogConfirmation(id, project, cmd string, approved bool) error {
	typ := EventDecline
	if approved {
		typ = EventApprove
	}
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      typ,
		ID:        id,
		Project:   project,
		Cmd:       cmd,
	})
}

// LogError logs a command line that could not be analyzed.
func (l *Logger) LogError(id, project, cmd string, err error) error {
	return l.Log(&Event{
		Timestamp: time.Now(),
		Type:      EventError,
		ID:        id,
		Project:   project,
		Cmd:       cmd,
		Reason:    err.Error(),
	})
}
