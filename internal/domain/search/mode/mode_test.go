package mode

import "testing"

func TestIsValid(t *testing.T) {
	valid := []Mode{All, Any}
	for _, m := range valid {
		if !m.IsValid() {
			t.Errorf("%q.IsValid() = false, want true", m)
		}
	}

	invalid := []Mode{"", "hybrid", "ALL", "some"}
	for _, m := range invalid {
		if m.IsValid() {
			t.Errorf("%q.IsValid() = true, want false", m)
		}
	}
}

func TestConstants(t *testing.T) {
	if All != "all" {
		t.Errorf("All = %q", All)
	}
	if Any != "any" {
		t.Errorf("Any = %q", Any)
	}
}
