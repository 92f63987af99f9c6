package core

import (
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func expenseOn(t time.Time, cents int64) Expense {
	return Expense{ID: "x", Amount: Money{Cents: cents}, Category: "Food", Date: Date{Time: t}}
}

func TestPruneRetentionWindow(t *testing.T) {
	cutoff := testNow.AddDate(0, -2, 0)
	ledger := []Expense{
		expenseOn(testNow.AddDate(0, 0, -5), 100),  // 5 days old, kept
		expenseOn(testNow.AddDate(0, -3, 0), 200),  // 3 months old, dropped
		expenseOn(cutoff, 300),                     // exactly on cutoff, dropped (strictly after)
		expenseOn(cutoff.Add(time.Second), 400),    // just inside, kept
		{ID: "bad", Amount: Money{Cents: 500}},     // zero date, dropped
	}

	got := Prune(ledger, testNow)
	if len(got) != 2 {
		t.Fatalf("kept %d entries, want 2", len(got))
	}
	for _, e := range got {
		if !e.Date.After(cutoff) {
			t.Fatalf("entry dated %v survived cutoff %v", e.Date.Time, cutoff)
		}
	}
	// Order of survivors is preserved.
	if got[0].Amount.Cents != 100 || got[1].Amount.Cents != 400 {
		t.Fatalf("order not preserved: %v", got)
	}
}

func TestPruneIdempotent(t *testing.T) {
	ledger := []Expense{
		expenseOn(testNow.AddDate(0, 0, -5), 100),
		expenseOn(testNow.AddDate(0, -3, 0), 200),
	}
	first := Prune(ledger, testNow)
	second := Prune(first, testNow)
	if len(first) != len(second) {
		t.Fatalf("second prune changed length: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("entry %d changed", i)
		}
	}
}

func TestPruneEmpty(t *testing.T) {
	if got := Prune(nil, testNow); len(got) != 0 {
		t.Fatalf("got %d entries from nil ledger", len(got))
	}
}

func TestAddDefaults(t *testing.T) {
	ledger, created := Add(nil, PartialExpense{}, testNow)
	if len(ledger) != 1 {
		t.Fatalf("ledger length %d, want 1", len(ledger))
	}
	if created.ID == "" {
		t.Fatal("missing id")
	}
	if created.Amount.Cents != 0 {
		t.Fatalf("amount %d, want 0", created.Amount.Cents)
	}
	if created.Category != DefaultCategory {
		t.Fatalf("category %q, want %q", created.Category, DefaultCategory)
	}
	if created.Description != "" {
		t.Fatalf("description %q, want empty", created.Description)
	}
	if !created.Date.Equal(testNow) {
		t.Fatalf("date %v, want %v", created.Date.Time, testNow)
	}
}

func TestAddPrependsAndKeepsFields(t *testing.T) {
	existing, _ := Add(nil, PartialExpense{Amount: Money{Cents: 100}}, testNow)

	p := PartialExpense{
		Amount:      Money{Cents: 600000},
		Category:    "Food",
		Description: "groceries",
		Date:        NewDate(2025, 6, 10),
	}
	ledger, created := Add(existing, p, testNow)

	if len(ledger) != 2 {
		t.Fatalf("ledger length %d, want 2", len(ledger))
	}
	if ledger[0].ID != created.ID {
		t.Fatal("new record not prepended")
	}
	if created.Amount.Cents != 600000 || created.Category != "Food" ||
		created.Description != "groceries" || created.Date.Day() != 10 {
		t.Fatalf("fields not carried over: %+v", created)
	}
	// The input slice is untouched.
	if len(existing) != 1 {
		t.Fatalf("existing mutated: length %d", len(existing))
	}
}

func TestAddUniqueIDs(t *testing.T) {
	var ledger []Expense
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		var created Expense
		ledger, created = Add(ledger, PartialExpense{}, testNow)
		if seen[created.ID] {
			t.Fatalf("duplicate id %q at iteration %d", created.ID, i)
		}
		seen[created.ID] = true
	}
}

func TestCheckLimit(t *testing.T) {
	limit := Money{Cents: 500000} // 5000
	phone := "+91 9876543210"

	cases := []struct {
		name      string
		cents     []int64
		wantAlert bool
	}{
		{"empty ledger", nil, false},
		{"under limit", []int64{10000}, false},
		{"exactly at limit", []int64{250000, 250000}, false}, // strict >
		{"over limit", []int64{600000}, true},
		{"cumulative over limit", []int64{300000, 250000}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ledger []Expense
			for _, c := range tc.cents {
				ledger, _ = Add(ledger, PartialExpense{Amount: Money{Cents: c}}, testNow)
			}
			msg, ok := CheckLimit(ledger, limit, phone)
			if ok != tc.wantAlert {
				t.Fatalf("alert=%v, want %v", ok, tc.wantAlert)
			}
			if !ok {
				if msg != "" {
					t.Fatalf("unexpected message %q", msg)
				}
				return
			}
			if !strings.Contains(msg, "5000") {
				t.Fatalf("alert %q does not mention the limit", msg)
			}
			if !strings.Contains(msg, phone) {
				t.Fatalf("alert %q does not mention the phone number", msg)
			}
		})
	}
}

func TestCheckLimitRolling(t *testing.T) {
	limit := Money{Cents: 500000}
	// 6000 spent, but 8 days ago: outside the rolling window, inside the
	// full-ledger contract.
	ledger := []Expense{expenseOn(testNow.AddDate(0, 0, -8), 600000)}

	if _, ok := CheckLimit(ledger, limit, "p"); !ok {
		t.Fatal("full-ledger check should alert")
	}
	if _, ok := CheckLimitRolling(ledger, limit, "p", testNow); ok {
		t.Fatal("rolling check should not alert for week-old spend")
	}

	recent := []Expense{expenseOn(testNow.AddDate(0, 0, -2), 600000)}
	if _, ok := CheckLimitRolling(recent, limit, "p", testNow); !ok {
		t.Fatal("rolling check should alert for recent spend")
	}
}

func TestTotal(t *testing.T) {
	ledger := []Expense{
		expenseOn(testNow, 100),
		expenseOn(testNow, 250),
	}
	if got := Total(ledger).Cents; got != 350 {
		t.Fatalf("total %d, want 350", got)
	}
	if got := Total(nil).Cents; got != 0 {
		t.Fatalf("empty total %d, want 0", got)
	}
}
