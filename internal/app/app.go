// Package app owns the application state: the registered profile, the
// expense ledger and the settings, loaded from and persisted to the
// snapshot store as one unit.
package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"spendwise/internal/core"
	"spendwise/internal/store"
)

// Persisted keys, one serialized document each.
const (
	UserKey     = "spendwise_user_v1"
	LedgerKey   = "spendwise_data_v1"
	SettingsKey = "spendwise_settings_v1"
)

// LimitWindow selects what the limit check sums over. FullWindow (the
// default) sums the whole in-memory ledger, matching the reference
// behavior; RollingWindow is the documented alternative scoped to the
// trailing seven days.
type LimitWindow string

const (
	FullWindow    LimitWindow = "full"
	RollingWindow LimitWindow = "rolling"
)

func (w LimitWindow) IsValid() bool {
	return w == FullWindow || w == RollingWindow
}

// Options tune the controller. Zero values give production behavior.
type Options struct {
	Now         func() time.Time
	LimitWindow LimitWindow
}

// App is the single-writer state controller. All mutation happens under
// one mutex in direct response to a user action; persistence is
// fire-and-forget and the in-memory state stays authoritative when a
// write fails.
type App struct {
	mu          sync.Mutex
	store       store.Store
	now         func() time.Time
	limitWindow LimitWindow

	user          *core.UserProfile
	expenses      []core.Expense
	settings      core.AppSettings
	notifications []string
}

func New(st store.Store, opts Options) *App {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	window := opts.LimitWindow
	if window == "" {
		window = FullWindow
	}
	return &App{
		store:       st,
		now:         now,
		limitWindow: window,
		settings:    core.DefaultSettings(),
	}
}

// Load reads the three documents, applies the two-month retention filter
// to the ledger and writes the pruned state back. Absent or malformed
// data degrades to defaults; nothing here is fatal or user-visible.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = nil
	if raw, ok := a.read(ctx, UserKey); ok {
		var u core.UserProfile
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			slog.WarnContext(ctx, "Malformed profile document, ignoring", "error", err)
		} else if u.Name != "" {
			a.user = &u
		}
	}

	a.expenses = nil
	if raw, ok := a.read(ctx, LedgerKey); ok {
		var ledger []core.Expense
		if err := json.Unmarshal([]byte(raw), &ledger); err != nil {
			slog.WarnContext(ctx, "Malformed ledger document, starting empty", "error", err)
		} else {
			a.expenses = core.Prune(ledger, a.now())
		}
	}

	a.settings = core.DefaultSettings()
	if raw, ok := a.read(ctx, SettingsKey); ok {
		var s core.AppSettings
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			slog.WarnContext(ctx, "Malformed settings document, using defaults", "error", err)
		} else {
			a.settings = s
		}
	}

	a.persist(ctx)
}

// Registered reports whether a profile exists yet.
func (a *App) Registered() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) Profile() (core.UserProfile, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return core.UserProfile{}, false
	}
	return *a.user, true
}

// Register validates the input, creates the one-time profile and derives
// the notification number into the settings.
func (a *App) Register(ctx context.Context, name, mobile string) error {
	profile, err := core.NewProfile(name, mobile)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = &profile
	a.settings.PhoneNumber = profile.NotificationNumber()
	a.persist(ctx)
	return nil
}

// AddExpense appends a record built from the partial input, runs the
// limit check on the ledger including the new record, and persists. The
// alert text is returned when the check fires.
func (a *App) AddExpense(ctx context.Context, p core.PartialExpense) (core.Expense, string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	ledger, created := core.Add(a.expenses, p, now)
	a.expenses = ledger

	var msg string
	var exceeded bool
	switch a.limitWindow {
	case RollingWindow:
		msg, exceeded = core.CheckLimitRolling(ledger, a.settings.WeeklyLimit, a.settings.PhoneNumber, now)
	default:
		msg, exceeded = core.CheckLimit(ledger, a.settings.WeeklyLimit, a.settings.PhoneNumber)
	}
	if exceeded {
		a.notifications = append([]string{msg}, a.notifications...)
	}

	a.persist(ctx)
	return created, msg, exceeded
}

// Expenses returns a copy of the ledger, most-recent-first.
func (a *App) Expenses() []core.Expense {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.Expense, len(a.expenses))
	copy(out, a.expenses)
	return out
}

func (a *App) Settings() core.AppSettings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// UpdateWeeklyLimit changes the limit; the phone number is read-only and
// only ever set by registration.
func (a *App) UpdateWeeklyLimit(ctx context.Context, limit core.Money) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if limit.Cents < 0 {
		limit = core.Money{}
	}
	a.settings.WeeklyLimit = limit
	a.persist(ctx)
}

// WeeklyBreakdown projects the trailing week by weekday.
func (a *App) WeeklyBreakdown() []core.WeeklyData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return core.WeeklyBreakdown(a.expenses, a.now())
}

// MonthlySummary projects per-month totals and derived savings.
func (a *App) MonthlySummary() []core.MonthSummary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return core.MonthlySummary(a.expenses, a.settings.WeeklyLimit)
}

// Notification surfaces only the newest unacknowledged alert.
func (a *App) Notification() (string, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.notifications) == 0 {
		return "", false
	}
	return a.notifications[0], true
}

// DismissNotifications clears every pending alert, not just the
// displayed one.
func (a *App) DismissNotifications() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notifications = nil
}

// Reset clears all three persisted keys and returns the application to
// its pre-registration state.
func (a *App) Reset(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, key := range []string{UserKey, LedgerKey, SettingsKey} {
		if err := a.store.Delete(ctx, key); err != nil {
			slog.WarnContext(ctx, "Failed clearing store key", "key", key, "error", err)
		}
	}

	a.user = nil
	a.expenses = nil
	a.settings = core.DefaultSettings()
	a.notifications = nil
}

func (a *App) read(ctx context.Context, key string) (string, bool) {
	raw, found, err := a.store.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "Store read failed, treating as absent", "key", key, "error", err)
		return "", false
	}
	return raw, found
}

// persist rewrites all three documents. Callers hold the mutex. Write
// failures are logged and swallowed: the session keeps running on the
// in-memory state.
func (a *App) persist(ctx context.Context) {
	if a.user != nil {
		a.write(ctx, UserKey, a.user)
	}
	a.write(ctx, LedgerKey, a.ledgerForWrite())
	a.write(ctx, SettingsKey, a.settings)
}

func (a *App) ledgerForWrite() []core.Expense {
	if a.expenses == nil {
		return []core.Expense{}
	}
	return a.expenses
}

func (a *App) write(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.WarnContext(ctx, "Failed serializing store document", "key", key, "error", err)
		return
	}
	if err := a.store.Set(ctx, key, string(data)); err != nil {
		slog.WarnContext(ctx, "Store write failed, keeping in-memory state", "key", key, "error", err)
	}
}
