package config

import (
	"path/filepath"

	"github.com/xdg/cmdguard/internal/clog"
	"github.com/xdg/cmdguard/internal/danger"
)

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// DefaultGlobalConfig returns a GlobalConfig with all defaults populated.
// The policy tables are empty because the built-in tables always apply;
// configuration only extends them.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Gate: GateConfig{
			Unknown: "confirm",
		},
		Analysis: AnalysisConfig{
			TrackRedirects: boolPtr(true),
			MaxInputBytes:  danger.DefaultMaxInputBytes,
			MaxDepth:       danger.DefaultMaxDepth,
		},
		Log: LogConfig{
			File:  clog.DefaultLogPath(),
			Level: "info",
		},
		Audit: AuditConfig{
			Enabled: boolPtr(true),
			File:    filepath.Join(clog.StateDir(), "audit.log"),
		},
	}
}

// applyDefaults fills fields left unset in cfg from DefaultGlobalConfig.
// List fields are never defaulted.
func applyDefaults(cfg *GlobalConfig) {
	def := DefaultGlobalConfig()
	if cfg.Gate.Unknown == "" {
		cfg.Gate.Unknown = def.Gate.Unknown
	}
	if cfg.Analysis.TrackRedirects == nil {
		cfg.Analysis.TrackRedirects = def.Analysis.TrackRedirects
	}
	if cfg.Analysis.MaxInputBytes == 0 {
		cfg.Analysis.MaxInputBytes = def.Analysis.MaxInputBytes
	}
	if cfg.Analysis.MaxDepth == 0 {
		cfg.Analysis.MaxDepth = def.Analysis.MaxDepth
	}
	if cfg.Log.File == "" {
		cfg.Log.File = def.Log.File
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Audit.Enabled == nil {
		cfg.Audit.Enabled = def.Audit.Enabled
	}
	if cfg.Audit.File == "" {
		cfg.Audit.File = def.Audit.File
	}
}

// DefaultProjectConfig returns an empty ProjectConfig.
func DefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{}
}
