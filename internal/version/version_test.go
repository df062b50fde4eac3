package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, dirty, date string) {
	t.Helper()
	old := [4]string{Version, Commit, Dirty, BuildDate}
	Version, Commit, Dirty, BuildDate = version, commit, dirty, date
	t.Cleanup(func() {
		Version, Commit, Dirty, BuildDate = old[0], old[1], old[2], old[3]
	})
}

func TestResolve(t *testing.T) {
	installed := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name  string
		ld    [4]string
		bi    *debug.BuildInfo
		want  Info
		label string
	}{
		{
			name:  "unstamped without build info",
			ld:    [4]string{"dev", "", "", ""},
			want:  Info{Version: "dev", Commit: "unknown", BuildDate: "unknown"},
			label: "dev",
		},
		{
			name:  "unstamped uses build info",
			ld:    [4]string{"dev", "", "", ""},
			bi:    installed,
			want:  Info{Version: "1.4.0", Commit: "0123456789abcdef", Dirty: true, BuildDate: "2026-01-02T03:04:05Z"},
			label: "1.4.0-dirty",
		},
		{
			name:  "ldflags win",
			ld:    [4]string{"2.0.0", "abc", "false", "2026-05-06"},
			bi:    installed,
			want:  Info{Version: "2.0.0", Commit: "abc", BuildDate: "2026-05-06"},
			label: "2.0.0",
		},
		{
			name:  "devel module version ignored",
			ld:    [4]string{"dev", "", "", ""},
			bi:    &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want:  Info{Version: "dev", Commit: "unknown", BuildDate: "unknown"},
			label: "dev",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp(t, tt.ld[0], tt.ld[1], tt.ld[2], tt.ld[3])
			got := resolve(tt.bi)
			if got.Version != tt.want.Version || got.Commit != tt.want.Commit ||
				got.Dirty != tt.want.Dirty || got.BuildDate != tt.want.BuildDate {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.label {
				t.Errorf("String() = %q, want %q", got.String(), tt.label)
			}
			if got.GoVersion == "" || !strings.Contains(got.Platform, "/") {
				t.Errorf("expected runtime details, got %+v", got)
			}
		})
	}
}

func TestFull(t *testing.T) {
	out := Full()
	if !strings.HasPrefix(out, "pmrt "+String()+"\n") {
		t.Errorf("unexpected first line in %q", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected trailing newline in %q", out)
	}
	for _, key := range []string{"commit", "built", "go"} {
		if !strings.Contains(out, "  "+key+" ") {
			t.Errorf("expected %q line in %q", key, out)
		}
	}
}
