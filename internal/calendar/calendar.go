// Package calendar handles calendar days ("YYYY-MM-DD") and the clock used to decide "today".
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the wire and storage format of a calendar day
const DayLayout = "2006-01-02"

// Clock returns the current instant
type Clock func() time.Time

// System returns a clock reading wall time in loc
func System(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return func() time.Time { return time.Now().In(loc) }
}

// Fixed returns a clock frozen at t (tests and seeding)
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today formats the clock's current day
func (c Clock) Today() string {
	return FormatDay(c())
}

// ParseDay parses a strict YYYY-MM-DD day
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// IsValidDay reports whether s is a well-formed calendar day
func IsValidDay(s string) bool {
	_, err := ParseDay(s)
	return err == nil
}

// FormatDay formats t as YYYY-MM-DD in t's location
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Sunday=0 in Go, ISO treats it as 7
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// WeekBounds returns the first and last day of the week containing day
func WeekBounds(day string) (string, string, error) {
	t, err := ParseDay(day)
	if err != nil {
		return "", "", err
	}
	monday, sunday := WeekRange(t)
	return FormatDay(monday), FormatDay(sunday), nil
}

// Within reports whether day lies in [start, end]. Days compare lexicographically.
func Within(day, start, end string) bool {
	return day >= start && day <= end
}

// IsFuture reports whether day comes strictly after today
func IsFuture(day, today string) bool {
	return day > today
}
