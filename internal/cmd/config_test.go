package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/xdg/cmdguard/internal/config"
)

func TestConfigCmd_HasSubcommands(t *testing.T) {
	expected := map[string]bool{
		"show": false,
		"edit": false,
		"path": false,
		"init": false,
	}
	for _, c := range configCmd.Commands() {
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

func TestConfigPath_PrintsPaths(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCommand(t, "", "config", "path", "--project-dir", env.project)
	if err != nil {
		t.Fatalf("config path error = %v", err)
	}

	for _, want := range []string{
		filepath.Join(env.configHome, "cmdguard", "config.yaml"),
		filepath.Join(env.configHome, "cmdguard", "approvals.yaml"),
		filepath.Join(env.project, ".cmdguard.yaml"),
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q\nGot: %s", want, stdout)
		}
	}
}

func TestConfigInit_CreatesFile(t *testing.T) {
	env := newTestEnv(t)

	stdout, _, err := executeCommand(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}

	configPath := filepath.Join(env.configHome, "cmdguard", "config.yaml")
	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("config file should not be empty")
	}
	if !strings.Contains(stdout, configPath) {
		t.Errorf("output should name the config path, got: %s", stdout)
	}
}

func TestConfigInit_KeepsExistingFile(t *testing.T) {
	env := newTestEnv(t)
	env.writeGlobalConfig(t, "gate:\n  unknown: block\n")

	if _, _, err := executeCommand(t, "", "config", "init"); err != nil {
		t.Fatalf("config init error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(env.configHome, "cmdguard", "config.yaml"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "gate:\n  unknown: block\n" {
		t.Errorf("existing config was overwritten:\n%s", data)
	}
}

func TestConfigShow_PrintsEffectiveConfig(t *testing.T) {
	env := newTestEnv(t)
	env.writeGlobalConfig(t, "gate:\n  unknown: block\n  deny:\n    - '^sudo '\n")
	env.writeProjectConfig(t, "gate:\n  deny:\n    - '^curl '\n")

	stdout, _, err := executeCommand(t, "", "config", "show", "--project-dir", env.project)
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}

	var cfg config.EffectiveConfig
	if err := yaml.Unmarshal([]byte(stdout), &cfg); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, stdout)
	}
	if cfg.Unknown != "block" {
		t.Errorf("unknown = %q, want block", cfg.Unknown)
	}
	if strings.Join(cfg.Deny, ",") != "^sudo ,^curl " {
		t.Errorf("deny = %q, want global then project patterns", cfg.Deny)
	}
	if cfg.ProjectRoot != env.project {
		t.Errorf("project_root = %q, want %q", cfg.ProjectRoot, env.project)
	}
}

func TestConfigShow_CreatesDefaultConfig(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := executeCommand(t, "", "config", "show", "--project-dir", env.project); err != nil {
		t.Fatalf("config show error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.configHome, "cmdguard", "config.yaml")); err != nil {
		t.Errorf("default config not created: %v", err)
	}
}

func TestConfigEdit_RunsEditor(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("EDITOR", "true")

	if _, _, err := executeCommand(t, "", "config", "edit"); err != nil {
		t.Fatalf("config edit error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.configHome, "cmdguard", "config.yaml")); err != nil {
		t.Errorf("config file not created before editing: %v", err)
	}
}
