package blob

import "testing"

func TestNew_DefaultContentType(t *testing.T) {
	b := New([]byte("abc"), " ")
	if b.ContentType != DefaultContentType {
		t.Errorf("expected default content type, got %q", b.ContentType)
	}
	if b.Length != 3 {
		t.Errorf("expected length 3, got %d", b.Length)
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"A2003.001/transcript.pdf", false},
		{"headshot.jpg", false},
		{"", true},
		{"  ", true},
		{"a:b", true},
		{"a*", true},
		{"..", true},
		{"x/../y", true},
	}
	for _, tt := range tests {
		err := ValidateName("blob", tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
