package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xdg/cmdguard/internal/pathutil"
)

// ProjectConfigFile is the name of the per-project configuration file.
const ProjectConfigFile = ".cmdguard.yaml"

// Dir returns the cmdguard configuration directory path.
// By default, this is ~/.config/cmdguard/. If the XDG_CONFIG_HOME
// environment variable is set, it uses $XDG_CONFIG_HOME/cmdguard/ instead.
// The returned path always has a trailing slash.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return pathutil.ExpandHome(base) + "/cmdguard/"
}

// EnsureDir creates the cmdguard configuration directory if it
// doesn't exist, with user-only permissions.
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() string {
	return Dir() + "config.yaml"
}

// ApprovalsPath returns the path of the remembered approvals file.
func ApprovalsPath() string {
	return Dir() + "approvals.yaml"
}

// ProjectConfigPath returns the path of the project configuration file
// under root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ProjectConfigFile)
}
