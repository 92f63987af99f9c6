// Package core holds the domain model: money, expenses, the ledger and
// its derived summaries.
//
// This file contains money parsing and formatting. Amounts are kept as
// integer paise (hundredths of a rupee) and only converted to floats at
// the display and serialization edges.
package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode"
)

type Money struct {
	Cents int64
}

// ParseAmountToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. Both dot and comma separators are
// accepted. Unlike a strict parser it never fails: non-numeric, negative
// or empty input coerces to zero, matching the form behavior where a bad
// amount becomes a zero expense rather than an error.
//
// Examples:
//
//	ParseAmountToCents("12.34")  -> 1234
//	ParseAmountToCents("12,346") -> 1235 (rounds up)
//	ParseAmountToCents("-5")     -> 0
//	ParseAmountToCents("abc")    -> 0
func ParseAmountToCents(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if strings.HasPrefix(s, "-") {
		return 0
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents
}

// MoneyFromFloat converts a rupee amount to Money, coercing anything
// non-finite or negative to zero.
func MoneyFromFloat(rupees float64) Money {
	if math.IsNaN(rupees) || math.IsInf(rupees, 0) || rupees < 0 {
		return Money{}
	}
	return Money{Cents: int64(math.Round(rupees * 100))}
}

// Rupees returns the rupee value as a float64 for display and
// serialization. Use cents for calculations.
func (m Money) Rupees() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the plain decimal rupee value without grouping or
// currency sign, e.g. "5000" or "120.50". Whole amounts drop the
// fractional part, matching how the limit appears in the alert text.
func (m Money) String() string {
	if m.Cents%100 == 0 {
		return strconv.FormatInt(m.Cents/100, 10)
	}
	return strconv.FormatFloat(m.Rupees(), 'f', 2, 64)
}

// MarshalJSON stores the amount as a plain rupee number, the shape the
// persisted documents use.
func (m Money) MarshalJSON() ([]byte, error) {
	if m.Cents%100 == 0 {
		return json.Marshal(m.Cents / 100)
	}
	return json.Marshal(m.Rupees())
}

// UnmarshalJSON reads a rupee number, coercing malformed or negative
// values to zero instead of failing the whole document.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		m.Cents = 0
		return nil
	}
	*m = MoneyFromFloat(v)
	return nil
}
