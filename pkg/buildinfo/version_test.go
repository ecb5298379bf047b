package buildinfo

import (
	"strings"
	"testing"
)

// stamp overrides the build variables for one test. resolve runs first so
// it cannot overwrite the stamped values later.
func stamp(t *testing.T, version, commit string) {
	t.Helper()
	resolve()
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })
	Version, Commit = version, commit
}

func TestTemplate(t *testing.T) {
	stamp(t, "v0.3.0", "abc123")
	tmpl := Template()
	for _, want := range []string{"{{.Name}}", "version v0.3.0", "commit: abc123"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
	if !strings.HasPrefix(String(), "version: v0.3.0\n") {
		t.Errorf("String() = %q", String())
	}
}

func TestCacheScope(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"dev", "abc", "dev-abc:"},
		{"v1.2.0", "abc", "v1.2.0:"},
	}
	for _, tt := range tests {
		stamp(t, tt.version, tt.commit)
		if got := CacheScope(); got != tt.want {
			t.Errorf("CacheScope() with %s@%s = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}
