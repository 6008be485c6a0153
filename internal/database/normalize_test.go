package database

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Alice", "alice"},
		{"diacritics", "Jan Novák", "jan novak"},
		{"dashes", "jan-novak", "jan novak"},
		{"mixed", "Jiří-Åström", "jiri astrom"},
		{"extra whitespace", "  Bob   Smith ", "bob smith"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeName(tc.input); got != tc.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
