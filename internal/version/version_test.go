package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() {
		Version, Commit = origVersion, origCommit
	}()

	tests := []struct {
		name    string
		version string
		commit  string
		want    string
	}{
		{"unknown commit", "1.0.0", "unknown", "1.0.0"},
		{"short commit", "1.0.0", "abc", "1.0.0"},
		{"seven chars", "2.0.0", "1234567", "2.0.0"},
		{"full hash", "1.0.0", "abc1234567890", "1.0.0 (abc1234)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit = tt.version, tt.commit
			if got := Info(); got != tt.want {
				t.Errorf("Info() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFull(t *testing.T) {
	out := Full()
	for _, want := range []string{"coderecon " + Version, "commit: ", "built: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Full() = %q, missing %q", out, want)
		}
	}
}
