package core

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"
)

// DefaultCategory is assigned when an expense is created without one.
const DefaultCategory = "Other"

// Categories is the fixed set offered by the expense form. Free-form
// categories from the scanner are accepted as-is; empty falls back to
// DefaultCategory.
var Categories = []string{
	"Food", "Transport", "Utilities", "Shopping", "Entertainment", "Health", "Other",
}

// DaysOfWeek orders the weekly breakdown rows.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

type (
	Date struct {
		time.Time
	}

	// UserProfile is created once at registration and never edited.
	UserProfile struct {
		Name   string `json:"name"`
		Mobile string `json:"mobile"`
	}

	AppSettings struct {
		WeeklyLimit Money  `json:"weeklyLimit"`
		PhoneNumber string `json:"phoneNumber"`
	}

	Expense struct {
		ID          string `json:"id"`
		Amount      Money  `json:"amount"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Date        Date   `json:"date"`
	}

	// PartialExpense is the producer-side shape: both the manual form and
	// the bill scanner hand one of these to Add, which fills the gaps.
	PartialExpense struct {
		Amount      Money
		Category    string
		Description string
		Date        Date
	}
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrInvalidMobile = errors.New("invalid mobile number")
)

// Indian mobile numbers: ten digits, first digit 6-9.
var mobilePattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// DefaultSettings returns the first-run settings: a 5000 rupee weekly
// limit and no notification number until a profile is registered.
func DefaultSettings() AppSettings {
	return AppSettings{WeeklyLimit: Money{Cents: 500000}}
}

// NewProfile validates registration input and builds the profile.
func NewProfile(name, mobile string) (UserProfile, error) {
	p := UserProfile{
		Name:   strings.TrimSpace(name),
		Mobile: strings.TrimSpace(mobile),
	}
	if err := p.Validate(); err != nil {
		return UserProfile{}, err
	}
	return p, nil
}

func (p UserProfile) Validate() error {
	if len(strings.TrimSpace(p.Name)) == 0 {
		return ErrEmptyName
	}
	if !mobilePattern.MatchString(p.Mobile) {
		return ErrInvalidMobile
	}
	return nil
}

// NotificationNumber derives the settings phone number from the profile
// mobile at registration time.
func (p UserProfile) NotificationNumber() string {
	return "+91 " + p.Mobile
}

// NewDate builds a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON encodes the date in RFC 3339, the stored ISO form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// UnmarshalJSON accepts both full RFC 3339 timestamps and bare
// YYYY-MM-DD dates. Anything else leaves the date zero, which the
// retention filter then drops.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		d.Time = t
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	return nil
}
