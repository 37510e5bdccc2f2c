// Package prompt provides interactive confirmation prompts, designed for
// testability with mock implementations.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompter defines the interface for presenting options to a user and
// getting their selection.
type Prompter interface {
	// Prompt displays a prompt with numbered options and returns the
	// zero-based index of the selected option. If the user presses Enter
	// without input, defaultIdx is returned. Returns an error if the
	// selection is invalid or input cannot be read.
	Prompt(prompt string, options []string, defaultIdx int) (int, error)
}

// StdinPrompter implements Prompter using a reader and writer, normally the
// controlling terminal.
type StdinPrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewStdinPrompter creates a StdinPrompter that reads from r and writes to w.
func NewStdinPrompter(r io.Reader, w io.Writer) *StdinPrompter {
	return &StdinPrompter{In: r, Out: w}
}

// Prompt displays the prompt and options, then reads user input.
// Options are displayed as a numbered list (1-indexed for user display).
// The default option is marked with "(default)".
func (p *StdinPrompter) Prompt(prompt string, options []string, defaultIdx int) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("no options provided")
	}
	if defaultIdx < 0 || defaultIdx >= len(options) {
		return 0, fmt.Errorf("default index %d out of range [0, %d)", defaultIdx, len(options))
	}

	_, _ = fmt.Fprintln(p.Out, prompt)
	for i, opt := range options {
		suffix := ""
		if i == defaultIdx {
			suffix = " (default)"
		}
		_, _ = fmt.Fprintf(p.Out, "  %d. %s%s\n", i+1, opt, suffix)
	}
	_, _ = fmt.Fprintf(p.Out, "Enter selection [%d]: ", defaultIdx+1)

	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return defaultIdx, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid selection %q: must be a number", input)
	}

	idx := selection - 1
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("selection %d out of range (1-%d)", selection, len(options))
	}

	return idx, nil
}

// MockPrompter implements Prompter for testing, returning pre-configured responses.
type MockPrompter struct {
	// Responses is a queue of responses to return for successive calls.
	Responses []int
	// Errors is a queue of errors to return for successive calls.
	// If non-nil, the error is returned instead of the response.
	Errors []error
	// Calls records all calls made to Prompt for verification.
	Calls []MockPrompterCall

	callIndex int
}

// MockPrompterCall records a single call to Prompt.
type MockPrompterCall struct {
	Prompt     string
	Options    []string
	DefaultIdx int
}

// NewMockPrompter creates a MockPrompter with the given responses.
func NewMockPrompter(responses ...int) *MockPrompter {
	return &MockPrompter{Responses: responses}
}

// Prompt returns the next pre-configured response or error.
func (m *MockPrompter) Prompt(prompt string, options []string, defaultIdx int) (int, error) {
	m.Calls = append(m.Calls, MockPrompterCall{
		Prompt:     prompt,
		Options:    options,
		DefaultIdx: defaultIdx,
	})

	i := m.callIndex
	m.callIndex++

	if i < len(m.Errors) && m.Errors[i] != nil {
		return 0, m.Errors[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return defaultIdx, nil
}

// Answer is the user's response to a confirmation.
type Answer int

const (
	// Decline means the command must not run.
	Decline Answer = iota
	// ApproveOnce runs the command this time.
	ApproveOnce
	// ApproveAlways runs the command and remembers the approval for the project.
	ApproveAlways
)

// String returns the lowercase name of an Answer.
func (a Answer) String() string {
	switch a {
	case ApproveOnce:
		return "approve"
	case ApproveAlways:
		return "always"
	default:
		return "decline"
	}
}

// answers[i] is the Answer for confirmOptions[i].
var (
	confirmOptions = []string{"Run it once", "Always allow this exact command in this project", "Don't run it"}
	answers        = []Answer{ApproveOnce, ApproveAlways, Decline}
)

// Confirm asks whether to run line. The default, and the answer on any
// input error, is Decline.
func Confirm(p Prompter, line, reason string) (Answer, error) {
	msg := fmt.Sprintf("Run %q?\n  (%s)", line, reason)
	idx, err := p.Prompt(msg, confirmOptions, len(confirmOptions)-1)
	if err != nil {
		return Decline, err
	}
	if idx < 0 || idx >= len(answers) {
		return Decline, fmt.Errorf("selection %d out of range", idx+1)
	}
	return answers[idx], nil
}

// IsInteractive reports whether f is a terminal a user can answer from.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
