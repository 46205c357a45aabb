package services

import "testing"

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"marie", "Marie"},
		{"MARIE", "MARIE"},
		{"  jean  pierre  ", "Jean Pierre"},
		{"ana maria", "Ana Maria"},
		{"élise", "Élise"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"06 12 34 56 78", "06 12 34 56 78"},
		{"  06  12   34 ", "06 12 34"},
		{"+33\t6 12", "+33 6 12"},
		{"0612345678", "0612345678"},
	}

	for _, tt := range tests {
		if got := normalizePhone(tt.in); got != tt.want {
			t.Errorf("normalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
