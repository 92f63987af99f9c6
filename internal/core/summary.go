package core

import "time"

// WeeklyData is one row of the dashboard's weekday breakdown.
type WeeklyData struct {
	Day    string
	Amount Money
}

// MonthSummary is one row of the dashboard's month table. Savings is
// derived, not stored: the monthly budget baseline is four times the
// weekly limit, and savings is that baseline minus the month's total,
// floored at zero.
type MonthSummary struct {
	Month   string
	Total   Money
	Savings Money
}

// WeeklyBreakdown buckets the trailing seven days (today included) by
// weekday label. Rows come back in Monday..Sunday order, zero rows
// included, recomputed from the ledger on every render.
func WeeklyBreakdown(ledger []Expense, now time.Time) []WeeklyData {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)

	byDay := make(map[string]int64, len(DaysOfWeek))
	for _, e := range ledger {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		byDay[e.Date.Weekday().String()] += e.Amount.Cents
	}

	out := make([]WeeklyData, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		out = append(out, WeeklyData{Day: day, Amount: Money{Cents: byDay[day]}})
	}
	return out
}

// MonthlySummary buckets the ledger by calendar month, newest first.
func MonthlySummary(ledger []Expense, weeklyLimit Money) []MonthSummary {
	budget := Money{Cents: 4 * weeklyLimit.Cents}

	type monthKey struct {
		year  int
		month time.Month
	}
	totals := make(map[monthKey]int64)
	var order []monthKey
	for _, e := range ledger {
		if e.Date.IsZero() {
			continue
		}
		k := monthKey{year: e.Date.Year(), month: e.Date.Month()}
		if _, seen := totals[k]; !seen {
			order = append(order, k)
		}
		totals[k] += e.Amount.Cents
	}

	// Newest month first, independent of ledger order.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0; j-- {
			a, b := order[j-1], order[j]
			if a.year > b.year || (a.year == b.year && a.month >= b.month) {
				break
			}
			order[j-1], order[j] = b, a
		}
	}

	out := make([]MonthSummary, 0, len(order))
	for _, k := range order {
		total := Money{Cents: totals[k]}
		savings := Money{Cents: budget.Cents - total.Cents}
		if savings.Cents < 0 {
			savings = Money{}
		}
		out = append(out, MonthSummary{
			Month:   time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006"),
			Total:   total,
			Savings: savings,
		})
	}
	return out
}
