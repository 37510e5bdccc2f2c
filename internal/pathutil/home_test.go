package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with subpath",
			input:    "~/Documents",
			expected: filepath.Join(home, "Documents"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/bin",
			expected: "/usr/local/bin",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde without slash unchanged",
			input:    "~user",
			expected: "~user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandHome(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExpandHomeDir(t *testing.T) {
	tests := []struct {
		name  string
		input string
		home  string
		want  string
	}{
		{"tilde only", "~", "/home/alice", "/home/alice"},
		{"tilde with subpath", "~/src/app", "/home/alice", "/home/alice/src/app"},
		{"empty home leaves tilde", "~/src", "", "~/src"},
		{"tilde in middle unchanged", "a/~/b", "/home/alice", "a/~/b"},
		{"other user unchanged", "~bob/x", "/home/alice", "~bob/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandHomeDir(tt.input, tt.home); got != tt.want {
				t.Errorf("ExpandHomeDir(%q, %q) = %q, want %q", tt.input, tt.home, got, tt.want)
			}
		})
	}
}
