// Package project locates the project root that command lines are checked
// against.
package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/xdg/cmdguard/internal/clog"
)

// ErrNotGitRepo indicates the path is not within a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// ErrGitNotInstalled indicates git is not installed or not in PATH.
var ErrGitNotInstalled = errors.New("git is not installed or not in PATH")

// GitError represents a failed git command with stderr output.
type GitError struct {
	Command string
	Args    []string
	Stderr  string
	Err     error
}

func (e *GitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("git %s failed: %v\nstderr: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("git %s failed: %v", e.Command, e.Err)
}

func (e *GitError) Unwrap() error {
	return e.Err
}

// runGit executes a git command in the specified directory and returns stdout.
// If dir is empty, uses the current working directory.
func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", ErrGitNotInstalled
		}

		cmdName := ""
		if len(args) > 0 {
			cmdName = args[0]
		}

		stderrStr := stderr.String()
		if strings.Contains(stderrStr, "not a git repository") {
			return "", ErrNotGitRepo
		}

		return "", &GitError{
			Command: cmdName,
			Args:    args,
			Stderr:  stderrStr,
			Err:     err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}

// DetectGitRoot finds the git repository root from a given path.
// If path is empty, uses the current working directory.
// Returns the absolute path to the git repository root.
func DetectGitRoot(ctx context.Context, path string) (string, error) {
	out, err := runGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(out)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// Root returns the project root for dir: the enclosing git repository's
// root, or dir itself when dir is not inside a repository or git is
// unavailable. An empty dir means the current working directory.
func Root(ctx context.Context, dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("project directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project directory %q is not a directory", dir)
	}

	root, err := DetectGitRoot(ctx, dir)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, ErrNotGitRepo) && !errors.Is(err, ErrGitNotInstalled) {
		return "", err
	}
	clog.Debug("project: %s: %v, using directory as root", dir, err)

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return abs, nil
}
