package config

import (
	"os"
	"reflect"
	"regexp"
	"testing"
)

func TestApprovals_AddAndPatterns(t *testing.T) {
	var a Approvals

	if !a.Add("/p", "rm build") {
		t.Error("Add() = false for new line")
	}
	if a.Add("/p", "rm build") {
		t.Error("Add() = true for duplicate line")
	}
	a.Add("/p", "rm -f a.out (1).txt")

	patterns := a.Patterns("/p")
	if len(patterns) != 2 {
		t.Fatalf("Patterns() = %v, want 2 entries", patterns)
	}
	for i, line := range a.Lines("/p") {
		re := regexp.MustCompile(patterns[i])
		if !re.MatchString(line) {
			t.Errorf("pattern %q does not match its line %q", patterns[i], line)
		}
		if re.MatchString(line + " /etc") {
			t.Errorf("pattern %q should be anchored", patterns[i])
		}
	}

	if a.Patterns("/other") != nil {
		t.Error("Patterns() for unknown project should be nil")
	}
}

func TestLoadApprovals_Missing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	a, err := LoadApprovals()
	if err != nil {
		t.Fatalf("LoadApprovals() error = %v", err)
	}
	if len(a.Projects) != 0 {
		t.Errorf("expected empty approvals, got %v", a.Projects)
	}
}

func TestRememberApproval_RoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, line := range []string{"rm build", "make clean", "rm build"} {
		if err := RememberApproval("/proj", line); err != nil {
			t.Fatalf("RememberApproval(%q) error = %v", line, err)
		}
	}

	a, err := LoadApprovals()
	if err != nil {
		t.Fatalf("LoadApprovals() error = %v", err)
	}
	if want := []string{"rm build", "make clean"}; !reflect.DeepEqual(a.Lines("/proj"), want) {
		t.Errorf("Lines() = %v, want %v", a.Lines("/proj"), want)
	}

	info, err := os.Stat(ApprovalsPath())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("approvals file mode = %o, want 600", perm)
	}
}

func TestLoadApprovals_Invalid(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := EnsureDir(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ApprovalsPath(), []byte("patterns: [x]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadApprovals(); err == nil {
		t.Error("LoadApprovals() expected error for unknown field")
	}
}
