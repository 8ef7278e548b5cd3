package version

import (
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}

	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate

	// Simulate build-time ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"

	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2026-01-15T10:30:00Z")
	}

	Version = origVersion
	GitCommit = origGitCommit
	BuildDate = origBuildDate
}

func TestVersion_EmptyOptionalFields(t *testing.T) {
	origGitCommit := GitCommit
	origBuildDate := BuildDate

	GitCommit = ""
	BuildDate = ""

	if GitCommit != "" {
		t.Errorf("GitCommit should be empty, got %q", GitCommit)
	}
	if BuildDate != "" {
		t.Errorf("BuildDate should be empty, got %q", BuildDate)
	}

	GitCommit = origGitCommit
	BuildDate = origBuildDate
}
