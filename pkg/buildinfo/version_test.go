package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "3b8c0e7a9f0d1c2b3a4e5f60718293a4b5c6d7e8"},
			{Key: "vcs.time", Value: "2024-10-20T01:15:00Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			name: "ldflags win",
			in:   Info{Version: "v1.0.0", Commit: "abc1234", Date: "2024-01-01T00:00:00Z"},
			bi:   stamped,
			want: Info{Version: "v1.0.0", Commit: "abc1234", Date: "2024-01-01T00:00:00Z"},
		},
		{
			name: "go install",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:   stamped,
			want: Info{Version: "v0.3.0", Commit: "3b8c0e7", Date: "2024-10-20T01:15:00Z"},
		},
		{
			name: "local build",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: Info{Version: "dev", Commit: "none", Date: "unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromBuildInfo(tt.in, tt.bi); got != tt.want {
				t.Errorf("fromBuildInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} ") || !strings.HasSuffix(got, "\n") {
		t.Errorf("Template() = %q", got)
	}
}
