package http

import "testing"

func TestFormatRupees(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "₹0"},
		{100, "₹1"},
		{150, "₹1.50"},
		{105, "₹1.05"},
		{500000, "₹5,000"},
		{123456789, "₹12,34,567.89"},
		{100000000000, "₹1,00,00,00,000"},
		{-25050, "-₹250.50"},
	}
	for _, tt := range tests {
		if got := formatRupees(tt.cents); got != tt.want {
			t.Errorf("formatRupees(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestGroupIndian(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"100000", "1,00,000"},
		{"12345678", "1,23,45,678"},
	}
	for _, tt := range tests {
		if got := groupIndian(tt.in); got != tt.want {
			t.Errorf("groupIndian(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate(" 2025-06-15 ")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2025 || d.Month() != 6 || d.Day() != 15 {
		t.Fatalf("parsed %v", d)
	}
	if _, err := parseDate("15/06/2025"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b", "ab"},
		{"line1\nline2", "line1\nline2"},
		{"tab\there", "tab\there"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
