package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// Approvals holds command lines the user chose to remember when confirming
// them, keyed by project root. They are stored under the config directory,
// outside any project tree.
type Approvals struct {
	Projects map[string][]string `yaml:"projects,omitempty"`
}

// LoadApprovals loads remembered approvals from ApprovalsPath().
// If the file doesn't exist, it returns an empty Approvals (not an error).
// If the file exists but has invalid YAML, it returns an error.
func LoadApprovals() (*Approvals, error) {
	return loadApprovals(ApprovalsPath())
}

func loadApprovals(path string) (*Approvals, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Approvals{}, nil
		}
		return nil, fmt.Errorf("read approvals %q: %w", path, err)
	}

	var approvals Approvals
	if err := strictUnmarshal(data, &approvals); err != nil {
		return nil, fmt.Errorf("parse approvals %q: %w", path, err)
	}
	return &approvals, nil
}

// Lines returns the remembered command lines for a project root.
func (a *Approvals) Lines(root string) []string {
	return a.Projects[root]
}

// Add records line for root. It reports false if it was already present.
func (a *Approvals) Add(root, line string) bool {
	if slices.Contains(a.Projects[root], line) {
		return false
	}
	if a.Projects == nil {
		a.Projects = make(map[string][]string)
	}
	a.Projects[root] = append(a.Projects[root], line)
	return true
}

// Patterns converts remembered lines into anchored literal regexes
// suitable for the gate's allow list.
func (a *Approvals) Patterns(root string) []string {
	lines := a.Lines(root)
	if len(lines) == 0 {
		return nil
	}
	patterns := make([]string, 0, len(lines))
	for _, line := range lines {
		patterns = append(patterns, "^"+regexp.QuoteMeta(line)+"$")
	}
	return patterns
}

// RememberApproval adds line to the approvals for root and saves the file.
func RememberApproval(root, line string) error {
	approvals, err := LoadApprovals()
	if err != nil {
		return err
	}
	if !approvals.Add(root, line) {
		return nil
	}
	return WriteApprovals(approvals)
}

// WriteApprovals writes approvals atomically to ApprovalsPath().
// The config directory is created if it doesn't exist.
func WriteApprovals(approvals *Approvals) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return writeApprovalsAtomic(ApprovalsPath(), approvals)
}

func writeApprovalsAtomic(path string, approvals *Approvals) error {
	data, err := yaml.Marshal(approvals)
	if err != nil {
		return fmt.Errorf("marshal approvals: %w", err)
	}

	// Write to a temp file in the same directory, then rename.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".approvals-*.yaml.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
