package cmd

import (
	"strings"
	"testing"
)

func TestPolicyCmd_HasSubcommands(t *testing.T) {
	expected := map[string]bool{"list": false, "classify": false}
	for _, c := range policyCmd.Commands() {
		if _, ok := expected[c.Name()]; ok {
			expected[c.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("missing subcommand: %s", name)
		}
	}
}

func TestPolicyClassify(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCommand(t, "", "policy", "classify", "--project-dir", env.project, "ls", "rm", "go", "cat")
	if err != nil {
		t.Fatalf("policy classify error = %v", err)
	}

	want := map[string]string{"ls": "safe", "rm": "dangerous", "go": "unknown", "cat": "safe"}
	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), stdout)
	}
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Errorf("malformed line %q", line)
			continue
		}
		if want[fields[0]] != fields[1] {
			t.Errorf("%s classified %s, want %s", fields[0], fields[1], want[fields[0]])
		}
	}
}

func TestPolicyClassify_RequiresName(t *testing.T) {
	newTestEnv(t)

	_, _, err := executeCommand(t, "", "policy", "classify")
	if err == nil {
		t.Error("expected error without names")
	}
}

func TestPolicyList(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		want    []string
		notWant []string
	}{
		{"safe", "safe", []string{"ls\n", "cat\n"}, []string{"rm\n"}},
		{"dangerous", "dangerous", []string{"rm\n"}, []string{"ls\n", "cat\n"}},
		{"all levels", "", []string{"safe\tls\n", "dangerous\trm\n"}, []string{"dangerous\tcat\n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			args := []string{"policy", "list", "--project-dir", env.project}
			if tt.level != "" {
				args = append(args, "--level", tt.level)
			}
			stdout, _, err := executeCommand(t, "", args...)
			if err != nil {
				t.Fatalf("policy list error = %v", err)
			}
			for _, s := range tt.want {
				if !strings.Contains(stdout, s) {
					t.Errorf("output missing %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains("\n"+stdout, "\n"+s) {
					t.Errorf("output should not contain %q", s)
				}
			}
		})
	}
}

func TestPolicyList_InvalidLevel(t *testing.T) {
	newTestEnv(t)

	_, stderr, err := executeCommand(t, "", "policy", "list", "--level", "destructive")
	if err == nil {
		t.Fatal("expected error for --level destructive")
	}
	if !strings.Contains(stderr, "must be safe or dangerous") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestPolicyList_IncludesConfiguredNames(t *testing.T) {
	env := newTestEnv(t)
	env.writeGlobalConfig(t, "policy:\n  safe:\n    - mytool\n")
	env.writeProjectConfig(t, "policy:\n  unsafe:\n    - terraform\n")

	stdout, _, err := executeCommand(t, "", "policy", "list", "--project-dir", env.project)
	if err != nil {
		t.Fatalf("policy list error = %v", err)
	}
	for _, want := range []string{"safe\tmytool\n", "dangerous\tterraform\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q", want)
		}
	}
}
