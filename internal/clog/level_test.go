package clog

import "testing"

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"err", LevelError},
		{"", LevelInfo},
		{"invalid", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookupLevel(t *testing.T) {
	for _, name := range []string{"debug", "Info", "warn", "warning", "error", "err"} {
		if _, ok := LookupLevel(name); !ok {
			t.Errorf("LookupLevel(%q) should be recognized", name)
		}
	}
	for _, name := range []string{"", "trace", "fatal"} {
		if level, ok := LookupLevel(name); ok || level != LevelInfo {
			t.Errorf("LookupLevel(%q) = %v, %v; want LevelInfo, false", name, level, ok)
		}
	}
}
