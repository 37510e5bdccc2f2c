package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/gate"
)

// ValidateGlobalConfig validates a parsed GlobalConfig. It checks:
//   - Gate.Unknown is one of allow, confirm, block (if non-empty)
//   - Regex patterns in Gate.Allow and Gate.Deny compile
//   - Command names are bare names
//   - Analysis limits are non-negative
//   - Log.Level is one of: debug, info, warn, error (if non-empty)
func ValidateGlobalConfig(cfg *GlobalConfig) error {
	if err := validateNames(cfg.Policy.Safe, "policy.safe"); err != nil {
		return err
	}
	if err := validateNames(cfg.Policy.Unsafe, "policy.unsafe"); err != nil {
		return err
	}

	if cfg.Gate.Unknown != "" {
		if _, err := gate.ParseAction(cfg.Gate.Unknown); err != nil {
			return fmt.Errorf("gate.unknown: %w", err)
		}
	}
	if err := validatePatterns(cfg.Gate.Allow, "gate.allow"); err != nil {
		return err
	}
	if err := validatePatterns(cfg.Gate.Deny, "gate.deny"); err != nil {
		return err
	}

	if cfg.Analysis.MaxInputBytes < 0 {
		return fmt.Errorf("analysis.max_input_bytes: must be non-negative, got %d", cfg.Analysis.MaxInputBytes)
	}
	if cfg.Analysis.MaxDepth < 0 {
		return fmt.Errorf("analysis.max_depth: must be non-negative, got %d", cfg.Analysis.MaxDepth)
	}

	if cfg.Log.Level != "" {
		if _, ok := clog.LookupLevel(cfg.Log.Level); !ok {
			return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
		}
	}

	return nil
}

// ValidateProjectConfig validates a parsed ProjectConfig.
func ValidateProjectConfig(cfg *ProjectConfig) error {
	if err := validateNames(cfg.Policy.Unsafe, "policy.unsafe"); err != nil {
		return err
	}
	return validatePatterns(cfg.Gate.Deny, "gate.deny")
}

// validateNames checks that each entry is a non-empty command name without
// a path separator or whitespace.
func validateNames(names []string, field string) error {
	for i, name := range names {
		if name == "" || strings.ContainsAny(name, "/ \t\n") {
			return fmt.Errorf("%s[%d]: invalid command name %q", field, i, name)
		}
	}
	return nil
}

func validatePatterns(patterns []string, field string) error {
	for i, p := range patterns {
		if err := validateRegex(p, fmt.Sprintf("%s[%d]", field, i)); err != nil {
			return err
		}
	}
	return nil
}

// validateRegex validates that a pattern compiles as a valid regular expression.
// Empty patterns are rejected since they match every line.
func validateRegex(pattern, field string) error {
	if pattern == "" {
		return fmt.Errorf("%s: empty pattern", field)
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%s: invalid regex %q: %v", field, pattern, err)
	}
	return nil
}
