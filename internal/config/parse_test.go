package config

import (
	"strings"
	"testing"
)

func TestParseGlobalConfig_Empty(t *testing.T) {
	cfg, err := ParseGlobalConfig(nil)
	if err != nil {
		t.Fatalf("ParseGlobalConfig(nil) error = %v", err)
	}
	if cfg.Gate.Unknown != "" || cfg.Analysis.TrackRedirects != nil {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestParseGlobalConfig_TypeMismatch(t *testing.T) {
	_, err := ParseGlobalConfig([]byte("analysis:\n  max_depth: deep\n"))
	if err == nil {
		t.Fatal("ParseGlobalConfig() expected error")
	}
	if !strings.Contains(err.Error(), "parse global config") {
		t.Errorf("error = %v, want wrapped parse error", err)
	}
}

func TestParseProjectConfig_UnknownField(t *testing.T) {
	_, err := ParseProjectConfig([]byte("gate:\n  allow: ['^rm ']\n"))
	if err == nil {
		t.Fatal("ParseProjectConfig() expected error for allow")
	}
	if !strings.Contains(err.Error(), "field allow not found") {
		t.Errorf("error = %v", err)
	}
}
