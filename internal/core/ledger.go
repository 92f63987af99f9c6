package core

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RetentionMonths is the rolling window applied when the ledger is
// loaded. Entries at or before the cutoff are dropped on load, never on
// add.
const RetentionMonths = 2

// Prune keeps only expenses dated strictly after now minus two calendar
// months, preserving order. Entries with unparseable (zero) dates fall
// before any cutoff and are dropped too.
func Prune(ledger []Expense, now time.Time) []Expense {
	cutoff := now.AddDate(0, -RetentionMonths, 0)
	out := make([]Expense, 0, len(ledger))
	for _, e := range ledger {
		if e.Date.After(cutoff) {
			out = append(out, e)
		}
	}
	return out
}

// Add fills a full record from the partial input and prepends it, so the
// ledger stays most-recent-first. Missing fields take their documented
// defaults: zero amount, DefaultCategory, empty description, the current
// instant. The created record is returned for the limit check.
func Add(ledger []Expense, p PartialExpense, now time.Time) ([]Expense, Expense) {
	e := Expense{
		ID:          uuid.NewString(),
		Amount:      p.Amount,
		Category:    strings.TrimSpace(p.Category),
		Description: p.Description,
		Date:        p.Date,
	}
	if e.Amount.Cents < 0 {
		e.Amount = Money{}
	}
	if e.Category == "" {
		e.Category = DefaultCategory
	}
	if e.Date.IsZero() {
		e.Date = Date{Time: now}
	}

	out := make([]Expense, 0, len(ledger)+1)
	out = append(out, e)
	out = append(out, ledger...)
	return out, e
}

// Total sums the amounts over the whole ledger.
func Total(ledger []Expense) Money {
	var sum int64
	for _, e := range ledger {
		sum += e.Amount.Cents
	}
	return Money{Cents: sum}
}

// TotalSince sums only expenses dated strictly after the cutoff. Used by
// the opt-in rolling limit window.
func TotalSince(ledger []Expense, cutoff time.Time) Money {
	var sum int64
	for _, e := range ledger {
		if e.Date.After(cutoff) {
			sum += e.Amount.Cents
		}
	}
	return Money{Cents: sum}
}

// CheckLimit sums the entire in-memory ledger and returns the alert text
// when the sum strictly exceeds the weekly limit. Summing everything
// rather than a calendar week is the inherited contract; see
// CheckLimitRolling for the corrected alternative. The "SMS sent"
// wording is presentational; no message leaves the process.
func CheckLimit(ledger []Expense, limit Money, phone string) (string, bool) {
	return alertIfExceeded(Total(ledger), limit, phone)
}

// CheckLimitRolling is the opt-in variant scoping the sum to the
// trailing seven days.
func CheckLimitRolling(ledger []Expense, limit Money, phone string, now time.Time) (string, bool) {
	return alertIfExceeded(TotalSince(ledger, now.AddDate(0, 0, -7)), limit, phone)
}

func alertIfExceeded(total, limit Money, phone string) (string, bool) {
	if total.Cents <= limit.Cents {
		return "", false
	}
	return fmt.Sprintf("ALERT: Weekly limit of ₹%s exceeded! SMS sent to %s", limit, phone), true
}
