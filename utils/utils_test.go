package utils

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pikachu ex", "pikachu ex"},
		{"  Charizard   VMAX!! ", "charizard vmax"},
		{"N's Zorua", "ns zorua"},
		{"Iono's Bellibolt ex #183", "ionos bellibolt ex 183"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRandString(t *testing.T) {
	s := RandString(16)
	if len(s) != 16 {
		t.Errorf("len = %d, want 16", len(s))
	}
}

func TestStampConversions(t *testing.T) {
	if Stamp2str(0) != "" {
		t.Error("zero timestamp should format to empty string")
	}
	if Str2stamp("not a time") != 0 {
		t.Error("unparseable string should map to 0")
	}
	if Str2stamp("2026-03-01 10:30:00") == 0 {
		t.Error("valid string should produce a timestamp")
	}
}
