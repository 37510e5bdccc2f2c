package config

import (
	"errors"
	"fmt"
	"os"
)

// defaultConfigTemplate is written by WriteDefaultConfig. Every setting is
// shown commented out at its default value.
const defaultConfigTemplate = `# cmdguard global configuration
#
# The built-in command tables always apply. The policy section only adds to
# them; a name listed as unsafe is never treated as safe.
#
# Project-level additions go in <project>/.cmdguard.yaml and may only use
# policy.unsafe and gate.deny.

# policy:
#   safe: []
#   unsafe: []

# gate:
#   # Action for commands in neither table: allow, confirm, or block.
#   unknown: confirm
#   # Regexes matched against the whole command line. A matching allow
#   # pattern approves any line that touches nothing outside the project.
#   allow: []
#   # A matching deny pattern always blocks.
#   deny: []

# analysis:
#   # Treat output redirection targets as writes.
#   track_redirects: true
#   max_input_bytes: 65536
#   max_depth: 200

# log:
#   file: ~/.local/state/cmdguard/cmdguard.log
#   level: info

# audit:
#   enabled: true
#   file: ~/.local/state/cmdguard/audit.log
`

// WriteDefaultConfig creates the default global configuration file with helpful comments.
// If the config file already exists, it returns nil without overwriting.
// The config directory is created if it doesn't exist.
// The file is written with 0600 permissions (user read/write only).
func WriteDefaultConfig() error {
	path := GlobalConfigPath()

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(defaultConfigTemplate), 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
