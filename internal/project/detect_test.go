package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// initRepo creates a git repository in a temp directory and returns its
// symlink-resolved path.
func initRepo(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := runGit(context.Background(), dir, "init", "-q"); err != nil {
		if errors.Is(err, ErrGitNotInstalled) {
			t.Skip("git not installed")
		}
		t.Fatalf("git init failed: %v", err)
	}
	return dir
}

// plainDir returns a symlink-resolved temp directory outside any repository.
func plainDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DetectGitRoot(context.Background(), dir); err == nil {
		t.Skip("temp directory is inside a git repository")
	}
	return dir
}

func TestDetectGitRoot(t *testing.T) {
	repo := initRepo(t)
	sub := filepath.Join(repo, "internal", "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{repo, sub} {
		root, err := DetectGitRoot(context.Background(), dir)
		if err != nil {
			t.Fatalf("DetectGitRoot(%q) error = %v", dir, err)
		}
		if root != repo {
			t.Errorf("DetectGitRoot(%q) = %q, want %q", dir, root, repo)
		}
	}
}

func TestDetectGitRoot_NotGitRepo(t *testing.T) {
	dir := plainDir(t)

	_, err := DetectGitRoot(context.Background(), dir)
	if errors.Is(err, ErrGitNotInstalled) {
		t.Skip("git not installed")
	}
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("expected ErrNotGitRepo, got %v", err)
	}
}

func TestRoot(t *testing.T) {
	t.Run("git subdirectory", func(t *testing.T) {
		repo := initRepo(t)
		sub := filepath.Join(repo, "src")
		if err := os.Mkdir(sub, 0o755); err != nil {
			t.Fatal(err)
		}

		root, err := Root(context.Background(), sub)
		if err != nil {
			t.Fatalf("Root() error = %v", err)
		}
		if root != repo {
			t.Errorf("Root() = %q, want %q", root, repo)
		}
	})

	t.Run("plain directory", func(t *testing.T) {
		dir := plainDir(t)

		root, err := Root(context.Background(), dir)
		if err != nil {
			t.Fatalf("Root() error = %v", err)
		}
		if root != dir {
			t.Errorf("Root() = %q, want %q", root, dir)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := Root(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
			t.Error("Root() expected error for missing directory")
		}
	})

	t.Run("file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "f")
		if err := os.WriteFile(file, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := Root(context.Background(), file)
		if err == nil || !strings.Contains(err.Error(), "not a directory") {
			t.Errorf("Root() error = %v, want not a directory", err)
		}
	})

	t.Run("working directory", func(t *testing.T) {
		dir := plainDir(t)
		t.Chdir(dir)

		root, err := Root(context.Background(), "")
		if err != nil {
			t.Fatalf("Root() error = %v", err)
		}
		if root != dir {
			t.Errorf("Root(\"\") = %q, want %q", root, dir)
		}
	})
}

func TestGitError_Error(t *testing.T) {
	tests := []struct {
		name     string
		gitErr   GitError
		contains []string
	}{
		{
			name: "with stderr",
			gitErr: GitError{
				Command: "rev-parse",
				Args:    []string{"rev-parse", "--show-toplevel"},
				Stderr:  "fatal: bad object",
				Err:     errors.New("exit status 128"),
			},
			contains: []string{"git rev-parse failed", "exit status 128", "stderr:", "bad object"},
		},
		{
			name: "without stderr",
			gitErr: GitError{
				Command: "status",
				Err:     errors.New("exit status 1"),
			},
			contains: []string{"git status failed", "exit status 1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.gitErr.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q should contain %q", msg, s)
				}
			}
		})
	}
}

func TestGitError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	gitErr := &GitError{Command: "test", Err: underlying}

	if !errors.Is(gitErr, underlying) {
		t.Error("GitError should unwrap to underlying error")
	}
}

func TestRunGit_Failure(t *testing.T) {
	repo := initRepo(t)

	_, err := runGit(context.Background(), repo, "rev-parse", "--verify", "no-such-ref")
	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		t.Fatalf("expected *GitError, got %v", err)
	}
	if gitErr.Command != "rev-parse" {
		t.Errorf("Command = %q, want rev-parse", gitErr.Command)
	}
}
