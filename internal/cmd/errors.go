package cmd

import (
	"errors"
	"fmt"

	"github.com/xdg/cmdguard/internal/danger"
	"github.com/xdg/cmdguard/internal/gate"
	"github.com/xdg/cmdguard/internal/project"
)

// Exit codes reported by cmdguard check.
const (
	ExitAllow   = 0
	ExitError   = 1
	ExitConfirm = 2
	ExitBlock   = 3
)

// ExitCodeError carries a process exit code through cobra's error return.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError returns an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// exitCode maps a gate action to its exit code.
func exitCode(a gate.Action) int {
	switch a {
	case gate.Allow:
		return ExitAllow
	case gate.Confirm:
		return ExitConfirm
	default:
		return ExitBlock
	}
}

// severity orders exit codes for batch checks: a line that could not be
// analyzed outranks a confirmation but not a block.
func severity(code int) int {
	switch code {
	case ExitAllow:
		return 0
	case ExitConfirm:
		return 1
	case ExitError:
		return 2
	default:
		return 3
	}
}

// exitError returns nil for ExitAllow and an ExitCodeError otherwise.
func exitError(code int) error {
	if code == ExitAllow {
		return nil
	}
	return NewExitCodeError(code)
}

// analysisError rewrites analyzer errors into user-facing messages.
func analysisError(err error) error {
	var parseErr *danger.ParseError
	switch {
	case errors.As(err, &parseErr):
		return fmt.Errorf("cannot parse command line: %w", err)
	case errors.Is(err, danger.ErrInputTooLong), errors.Is(err, danger.ErrNestingTooDeep):
		return fmt.Errorf("command line rejected: %w", err)
	default:
		return err
	}
}

// gitDetectionError handles git errors from project root detection.
// Returns nil if the error is not a git detection error.
func gitDetectionError(err error) error {
	var gitErr *project.GitError
	if errors.As(err, &gitErr) {
		return fmt.Errorf("failed to detect project root (use --project-dir): %w", err)
	}
	return nil
}
