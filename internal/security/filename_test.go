package security

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain run id", "11111111-2222-3333-4444-555555555555", "11111111-2222-3333-4444-555555555555"},
		{"path separators", "../../etc/passwd", "etc_passwd"},
		{"spaces and symbols", "run id #1!", "run_id_1"},
		{"repeated bad runs collapse", "a///b", "a_b"},
		{"empty", "", "unknown"},
		{"only bad characters", "///", "unknown"},
		{"leading dot trimmed", ".hidden", "hidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilename(tt.input); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilenameLength(t *testing.T) {
	long := strings.Repeat("a", 500)
	if got := SanitizeFilename(long); len(got) > 128 {
		t.Errorf("sanitized length = %d, want <= 128", len(got))
	}
}
