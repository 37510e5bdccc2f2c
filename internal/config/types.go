// Package config provides configuration types for cmdguard global and
// per-project settings. These types map to YAML configuration files.
package config

// GlobalConfig represents the user's global configuration.
// It is typically stored at ~/.config/cmdguard/config.yaml.
type GlobalConfig struct {
	Policy   PolicyConfig   `yaml:"policy,omitempty"`
	Gate     GateConfig     `yaml:"gate,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Log      LogConfig      `yaml:"log,omitempty"`
	Audit    AuditConfig    `yaml:"audit,omitempty"`
}

// PolicyConfig extends the built-in command tables.
type PolicyConfig struct {
	Safe   []string `yaml:"safe,omitempty"`
	Unsafe []string `yaml:"unsafe,omitempty"`
}

// GateConfig controls how danger levels become actions.
type GateConfig struct {
	// Unknown is the action for commands in neither table: allow, confirm, or block.
	Unknown string   `yaml:"unknown,omitempty"`
	Allow   []string `yaml:"allow,omitempty"`
	Deny    []string `yaml:"deny,omitempty"`
}

// AnalysisConfig contains analyzer settings.
type AnalysisConfig struct {
	TrackRedirects *bool `yaml:"track_redirects,omitempty"`
	MaxInputBytes  int   `yaml:"max_input_bytes,omitempty"`
	MaxDepth       int   `yaml:"max_depth,omitempty"`
}

// LogConfig contains operational logging settings.
type LogConfig struct {
	File  string `yaml:"file,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// AuditConfig contains decision audit log settings.
type AuditConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// ProjectConfig represents per-project configuration, stored at
// <project>/.cmdguard.yaml. The file lives inside the tree an agent may
// write to, so it can only tighten the global configuration.
type ProjectConfig struct {
	Policy ProjectPolicyConfig `yaml:"policy,omitempty"`
	Gate   ProjectGateConfig   `yaml:"gate,omitempty"`
}

// ProjectPolicyConfig lists extra command names to treat as dangerous.
type ProjectPolicyConfig struct {
	Unsafe []string `yaml:"unsafe,omitempty"`
}

// ProjectGateConfig lists extra patterns that always block.
type ProjectGateConfig struct {
	Deny []string `yaml:"deny,omitempty"`
}
