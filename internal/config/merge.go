package config

import (
	"fmt"

	"github.com/xdg/cmdguard/internal/danger"
	"github.com/xdg/cmdguard/internal/gate"
)

// EffectiveConfig is the merged configuration for checking commands in one
// project. It combines global settings, project additions, and remembered
// approvals.
type EffectiveConfig struct {
	// Policy additions
	Safe   []string `yaml:"safe,omitempty"`
	Unsafe []string `yaml:"unsafe,omitempty"` // Merged

	// Gate settings
	Unknown string   `yaml:"unknown"`
	Allow   []string `yaml:"allow,omitempty"` // Global + remembered approvals
	Deny    []string `yaml:"deny,omitempty"`  // Merged

	// Analyzer settings
	TrackRedirects bool `yaml:"track_redirects"`
	MaxInputBytes  int  `yaml:"max_input_bytes"`
	MaxDepth       int  `yaml:"max_depth"`

	// Logging
	LogFile      string `yaml:"log_file"`
	LogLevel     string `yaml:"log_level"`
	AuditEnabled bool   `yaml:"audit_enabled"`
	AuditFile    string `yaml:"audit_file,omitempty"`

	// Project-specific (if applicable)
	ProjectRoot string `yaml:"project_root,omitempty"`
}

// MergeStrings combines global and project entries.
// Project entries ADD to global (don't replace).
// Entries are deduplicated, keeping first occurrence order.
func MergeStrings(global, project []string) []string {
	if len(global) == 0 && len(project) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(global)+len(project))
	result := make([]string, 0, len(global)+len(project))

	for _, list := range [][]string{global, project} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}

	return result
}

// ResolveConfig loads and merges the global configuration, the project
// configuration under projectRoot, and the approvals remembered for
// projectRoot. If projectRoot is empty, only the global config is used.
func ResolveConfig(projectRoot string) (*EffectiveConfig, error) {
	global, err := LoadGlobalConfig()
	if err != nil {
		return nil, err
	}

	effective := Merge(global, nil)
	if projectRoot == "" {
		return effective, nil
	}

	project, err := LoadProjectConfig(projectRoot)
	if err != nil {
		return nil, err
	}
	approvals, err := LoadApprovals()
	if err != nil {
		return nil, err
	}

	effective = Merge(global, project)
	effective.ProjectRoot = projectRoot
	effective.Allow = MergeStrings(effective.Allow, approvals.Patterns(projectRoot))
	return effective, nil
}

// Merge builds an EffectiveConfig from a loaded global config and an
// optional project config. The project config can only add unsafe names
// and deny patterns.
func Merge(global *GlobalConfig, project *ProjectConfig) *EffectiveConfig {
	effective := &EffectiveConfig{
		Safe:    global.Policy.Safe,
		Unsafe:  global.Policy.Unsafe,
		Unknown: global.Gate.Unknown,
		Allow:   global.Gate.Allow,
		Deny:    global.Gate.Deny,

		TrackRedirects: global.Analysis.TrackRedirects == nil || *global.Analysis.TrackRedirects,
		MaxInputBytes:  global.Analysis.MaxInputBytes,
		MaxDepth:       global.Analysis.MaxDepth,

		LogFile:      global.Log.File,
		LogLevel:     global.Log.Level,
		AuditEnabled: global.Audit.Enabled == nil || *global.Audit.Enabled,
		AuditFile:    global.Audit.File,
	}

	if project != nil {
		effective.Unsafe = MergeStrings(global.Policy.Unsafe, project.Policy.Unsafe)
		effective.Deny = MergeStrings(global.Gate.Deny, project.Gate.Deny)
	}

	return effective
}

// AnalyzerOptions returns danger.Options for this configuration. home is
// used for ~ expansion and bare cd.
func (e *EffectiveConfig) AnalyzerOptions(home string) danger.Options {
	opts := danger.Options{
		HomeDir:         home,
		IgnoreRedirects: !e.TrackRedirects,
		MaxInputBytes:   e.MaxInputBytes,
		MaxDepth:        e.MaxDepth,
	}
	if len(e.Safe) > 0 || len(e.Unsafe) > 0 {
		opts.Policy = danger.DefaultPolicy().With(e.Safe, e.Unsafe)
	}
	return opts
}

// GateConfig returns the gate.Config for this configuration.
func (e *EffectiveConfig) GateConfig() (gate.Config, error) {
	cfg := gate.DefaultConfig()
	if e.Unknown != "" {
		unknown, err := gate.ParseAction(e.Unknown)
		if err != nil {
			return gate.Config{}, fmt.Errorf("gate.unknown: %w", err)
		}
		cfg.Unknown = unknown
	}
	cfg.Allow = e.Allow
	cfg.Deny = e.Deny
	return cfg, nil
}
