package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2024-01-15T10:30:00Z" {
		t.Fatalf("overrides not applied: %q %q %q", Version, GitCommit, BuildDate)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	color.NoColor = true
	tests := []string{"0.1.0-dev", "1.2.3", "2.0.0-beta.1", "dev", "1.2", "1..3"}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) without colour = %q", v, got)
		}
	}

	color.NoColor = false
	got := Colored("1.2.3-rc")
	if got == "1.2.3-rc" {
		t.Fatalf("Colored did not add colour codes")
	}
	want := majorColor.Sprint("1") + "." + minorColor.Sprint("2") + "." + patchColor.Sprint("3") + "-rc"
	if got != want {
		t.Fatalf("Colored = %q, want %q", got, want)
	}
	if !strings.HasPrefix(got, "\x1b[33;1m1\x1b[") {
		t.Fatalf("major component = %q", got)
	}
	if Colored("dev") != "dev" {
		t.Fatalf("non-semver input changed")
	}
}
