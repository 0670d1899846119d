package calendar

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the canonical YYYY-MM-DD form of a calendar day.
const Layout = "2006-01-02"

// ErrInvalidDate is wrapped by every function that rejects a malformed date.
var ErrInvalidDate = errors.New("invalid date (must be YYYY-MM-DD)")

var now = time.Now

var weekdayLabels = [7]string{"S", "M", "T", "W", "T", "F", "S"}

// Today returns the current calendar day in the local timezone of the process.
func Today() string {
	return Format(now())
}

// Format renders t in the canonical form.
func Format(t time.Time) string {
	return t.Format(Layout)
}

// Parse validates a canonical date and returns it as midnight UTC.
// Arithmetic on the result is pure civil-date arithmetic, so DST transitions
// of the local zone never shift a day.
func Parse(date string) (time.Time, error) {
	if len(date) != len(Layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	t, err := time.ParseInLocation(Layout, date, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

// Valid reports whether date is a real day in the canonical form.
func Valid(date string) bool {
	_, err := Parse(date)
	return err == nil
}

// AddDays returns the date delta days after date. A negative delta moves backward.
func AddDays(date string, delta int) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return Format(t.AddDate(0, 0, delta)), nil
}

// LastNDays returns the trailing window of n days ending today, oldest first.
func LastNDays(n int) []string {
	t := now()
	return window(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), n)
}

// LastNDaysFrom is LastNDays anchored at an explicit day.
func LastNDaysFrom(today string, n int) ([]string, error) {
	end, err := Parse(today)
	if err != nil {
		return nil, err
	}
	return window(end, n), nil
}

// window lists the n days ending at end, a UTC midnight.
func window(end time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}

	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, Format(end.AddDate(0, 0, -i)))
	}
	return days
}

// DayLabel maps a date to a one-letter weekday label, Sunday first.
func DayLabel(date string) (string, error) {
	t, err := Parse(date)
	if err != nil {
		return "", err
	}
	return weekdayLabels[t.Weekday()], nil
}

// IsToday reports whether date is the current local day.
func IsToday(date string) bool {
	return date == Today()
}
