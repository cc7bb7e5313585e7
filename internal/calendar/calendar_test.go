package calendar_test

import (
	"testing"
	"time"

	"github.com/timesheet-api/internal/calendar"
)

func TestWeekRange(t *testing.T) {
	// 2025-08-07 is a Thursday.
	thu := time.Date(2025, 8, 7, 15, 30, 0, 0, time.UTC)
	monday, sunday := calendar.WeekRange(thu)

	if got := calendar.FormatDay(monday); got != "2025-08-04" {
		t.Errorf("WeekRange monday = %s, want 2025-08-04", got)
	}
	if got := calendar.FormatDay(sunday); got != "2025-08-10" {
		t.Errorf("WeekRange sunday = %s, want 2025-08-10", got)
	}
}

func TestWeekRange_Sunday(t *testing.T) {
	sun := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	monday, _ := calendar.WeekRange(sun)
	if got := calendar.FormatDay(monday); got != "2025-08-04" {
		t.Errorf("Sunday should belong to the week starting 2025-08-04, got %s", got)
	}
}

func TestWeekBounds(t *testing.T) {
	start, end, err := calendar.WeekBounds("2025-08-04")
	if err != nil {
		t.Fatalf("WeekBounds failed: %v", err)
	}
	if start != "2025-08-04" || end != "2025-08-10" {
		t.Errorf("WeekBounds = %s..%s", start, end)
	}

	if _, _, err := calendar.WeekBounds("08/07/2025"); err == nil {
		t.Error("Expected error for malformed day")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2025-08-07", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-8-7", false},
		{"", false},
		{"2025-08-07T00:00:00Z", false},
	}
	for _, tt := range tests {
		if got := calendar.IsValidDay(tt.in); got != tt.valid {
			t.Errorf("IsValidDay(%q) = %v, want %v", tt.in, got, tt.valid)
		}
	}
}

func TestClockToday(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	instant := time.Date(2025, 8, 7, 20, 0, 0, 0, time.UTC)
	clock := calendar.Fixed(instant.In(loc))

	if got := clock.Today(); got != "2025-08-08" {
		t.Errorf("Today() = %s, want 2025-08-08", got)
	}
}

func TestIsFutureAndWithin(t *testing.T) {
	if !calendar.IsFuture("2025-08-08", "2025-08-07") {
		t.Error("Tomorrow should be in the future")
	}
	if calendar.IsFuture("2025-08-07", "2025-08-07") {
		t.Error("Today should not be in the future")
	}
	if !calendar.Within("2025-08-10", "2025-08-04", "2025-08-10") {
		t.Error("End bound should be inclusive")
	}
	if calendar.Within("2025-08-11", "2025-08-04", "2025-08-10") {
		t.Error("Day after end should be outside")
	}
}
