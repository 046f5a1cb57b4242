package core

import (
	"fmt"
	"time"
)

// Month keys are "YYYY-MM" strings, day keys "YYYY-MM-DD". Lexicographic
// order on these keys matches calendar order, which the month filter and
// date grouping rely on.

const (
	monthKeyLayout = "2006-01"
	dayKeyLayout   = "2006-01-02"
)

// CurrentMonthKey returns the month key for the local calendar date.
func CurrentMonthKey() string {
	return time.Now().Format(monthKeyLayout)
}

// TodayKey returns the day key for the local calendar date.
func TodayKey() string {
	return time.Now().Format(dayKeyLayout)
}

// ParseMonthKey parses a "YYYY-MM" key into its year and month.
func ParseMonthKey(month string) (int, time.Month, error) {
	t, err := time.Parse(monthKeyLayout, month)
	if err != nil {
		return 0, 0, fmt.Errorf("parse month key %q: %w", month, err)
	}
	return t.Year(), t.Month(), nil
}

// PreviousMonthKey returns the month key one calendar month before the
// given one, rolling the year at January.
func PreviousMonthKey(month string) (string, error) {
	return shiftMonth(month, -1)
}

// NextMonthKey returns the month key one calendar month after the given
// one, rolling the year at December.
func NextMonthKey(month string) (string, error) {
	return shiftMonth(month, 1)
}

func shiftMonth(month string, delta int) (string, error) {
	year, m, err := ParseMonthKey(month)
	if err != nil {
		return "", err
	}
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, delta, 0).Format(monthKeyLayout), nil
}

// FormatMonth renders a month key as "January 2006" for display. An
// unparseable key is returned unchanged; this is a display helper, not a
// validator.
func FormatMonth(month string) string {
	t, err := time.Parse(monthKeyLayout, month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// FormatDate renders a day key as "Jan 2, 2006" for display. An
// unparseable key is returned unchanged.
func FormatDate(dateKey string) string {
	t, err := time.Parse(dayKeyLayout, dateKey)
	if err != nil {
		return dateKey
	}
	return t.Format("Jan 2, 2006")
}
