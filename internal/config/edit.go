package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/xdg/cmdguard/internal/clog"
)

// EditGlobalConfig opens the global configuration file in the user's editor.
// If the configuration file doesn't exist, it creates the default one first.
// The editor is determined by the EDITOR environment variable, falling back to "vi".
// After the editor exits, the configuration is loaded and validated. If validation
// fails, a warning is logged but the function returns nil.
func EditGlobalConfig() error {
	path := GlobalConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteDefaultConfig(); err != nil {
			return fmt.Errorf("create default config: %w", err)
		}
	}

	if err := openEditor(path); err != nil {
		return err
	}

	if _, err := LoadGlobalConfig(); err != nil {
		clog.Warn("global config has errors after edit: %v", err)
	}

	return nil
}

// openEditor opens the specified file in the user's editor.
func openEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}

	return nil
}
