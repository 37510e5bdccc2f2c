package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/pathutil"
)

// LoadGlobalConfig loads the global configuration from the default config path.
// If the config file doesn't exist, it writes the default file and returns
// DefaultGlobalConfig(). If the file exists but cannot be read, parsed, or
// validated, it returns an error. Unset fields are filled from the defaults
// and paths containing ~ are expanded.
func LoadGlobalConfig() (*GlobalConfig, error) {
	path := GlobalConfigPath()
	clog.Debug("config: loading global config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			clog.Debug("config: file not found, creating defaults")
			if writeErr := WriteDefaultConfig(); writeErr != nil {
				clog.Warn("config: failed to create default config: %v", writeErr)
			}
			cfg := DefaultGlobalConfig()
			expandGlobalPaths(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read global config: %w", err)
	}

	cfg, err := ParseGlobalConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	if err := ValidateGlobalConfig(cfg); err != nil {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	applyDefaults(cfg)
	expandGlobalPaths(cfg)
	return cfg, nil
}

// LoadProjectConfig loads the project configuration under root.
// If the file doesn't exist, it returns DefaultProjectConfig().
// If the file exists but cannot be read, parsed, or validated, it returns
// an error. Callers gating commands must treat that as fatal.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	path := ProjectConfigPath(root)
	clog.Debug("config: loading project config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultProjectConfig(), nil
		}
		return nil, fmt.Errorf("read project config %q: %w", path, err)
	}

	cfg, err := ParseProjectConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load project config %q: %w", path, err)
	}

	if err := ValidateProjectConfig(cfg); err != nil {
		return nil, fmt.Errorf("load project config %q: %w", path, err)
	}

	return cfg, nil
}

// expandGlobalPaths expands ~ to the home directory in all path fields
// of the global configuration.
func expandGlobalPaths(cfg *GlobalConfig) {
	cfg.Log.File = pathutil.ExpandHome(cfg.Log.File)
	cfg.Audit.File = pathutil.ExpandHome(cfg.Audit.File)
}
