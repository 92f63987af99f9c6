package core

import (
	"encoding/json"
	"testing"
)

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"12.34", 1234},
		{"12,34", 1234},
		{"12.345", 1234}, // rounds down
		{"12.346", 1235}, // rounds up
		{"0.5", 50},
		{"6000", 600000},
		{".99", 99},
		{"+7", 700},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"-5", 0},
		{"1.2.3", 0},
		{"12a.34", 0},
		{"0", 0},
	}
	for i, tc := range cases {
		if got := ParseAmountToCents(tc.in); got != tc.want {
			t.Fatalf("case %d (%q): got %d, want %d", i, tc.in, got, tc.want)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{12.34, 1234},
		{0, 0},
		{-7, 0},
		{6000, 600000},
	}
	for i, tc := range cases {
		if got := MoneyFromFloat(tc.in).Cents; got != tc.want {
			t.Fatalf("case %d (%v): got %d, want %d", i, tc.in, got, tc.want)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{500000, "5000"},
		{1234, "12.34"},
		{50, "0.50"},
		{0, "0"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	// Whole amounts serialize without a fractional part.
	b, err := json.Marshal(Money{Cents: 600000})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "6000" {
		t.Fatalf("got %s, want 6000", b)
	}

	cases := []struct {
		in   string
		want int64
	}{
		{"6000", 600000},
		{"12.34", 1234},
		{"-5", 0},        // negative coerces to zero
		{`"broken"`, 0},  // malformed coerces to zero
	}
	for i, tc := range cases {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("case %d: unexpected error: %v", i, err)
		}
		if m.Cents != tc.want {
			t.Fatalf("case %d (%s): got %d, want %d", i, tc.in, m.Cents, tc.want)
		}
	}
}
