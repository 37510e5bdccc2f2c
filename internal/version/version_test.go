package version

import (
	"runtime/debug"
	"testing"
)

func TestIsDev(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"dev", true},
		{"0.1.0-dev", true},
		{"", true},
		{"v1.0.0", false},
		{"v1.0.0-rc1", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := IsDev(tt.version); got != tt.want {
				t.Errorf("IsDev(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	originalVersion, originalRead := Version, readBuildInfo
	defer func() { Version, readBuildInfo = originalVersion, originalRead }()

	buildInfo := func(v string) func() (*debug.BuildInfo, bool) {
		return func() (*debug.BuildInfo, bool) {
			return &debug.BuildInfo{Main: debug.Module{Version: v}}, true
		}
	}

	tests := []struct {
		name    string
		version string
		read    func() (*debug.BuildInfo, bool)
		want    string
	}{
		{"ldflags version wins", "v1.2.3", buildInfo("v9.9.9"), "v1.2.3"},
		{"module version for go install", "dev", buildInfo("v0.4.0"), "v0.4.0"},
		{"devel build stays dev", "dev", buildInfo("(devel)"), "dev"},
		{"no build info", "dev", func() (*debug.BuildInfo, bool) { return nil, false }, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, readBuildInfo = tt.version, tt.read
			if got := Get(); got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}
}
