package version

import "testing"

func TestString(t *testing.T) {
	Version, Commit, Date = "1.2.0", "abc123", "2024-05-15"
	t.Cleanup(func() { Version, Commit, Date = "dev", "unknown", "unknown" })

	if got, want := String(), "1.2.0 (commit abc123, built 2024-05-15)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
