package models

import (
	"time"
)

// EntryState is the lifecycle state of the entry for a (task, user) pair
type EntryState string

const (
	EntryStateNone      EntryState = "none"
	EntryStateDraft     EntryState = "draft"
	EntryStateSubmitted EntryState = "submitted"
)

// TimesheetEntry records the hours an associate logged against a task
type TimesheetEntry struct {
	ID          string     `json:"id" db:"id"`
	TaskID      string     `json:"task_id" db:"task_id"`
	UserID      string     `json:"user_id" db:"user_id"`
	Date        string     `json:"date" db:"date"` // calendar day, YYYY-MM-DD
	ActualHours float64    `json:"actual_hours" db:"actual_hours"`
	Notes       string     `json:"notes,omitempty" db:"notes"`
	Submitted   bool       `json:"submitted" db:"submitted"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty" db:"submitted_at"`
}

// State derives the lifecycle state of the entry; a nil entry has no state yet
func (e *TimesheetEntry) State() EntryState {
	switch {
	case e == nil:
		return EntryStateNone
	case e.Submitted:
		return EntryStateSubmitted
	default:
		return EntryStateDraft
	}
}

// LogHoursRequest creates or overwrites the caller's draft for a task
type LogHoursRequest struct {
	TaskID      string  `json:"task_id" binding:"required"`
	ActualHours float64 `json:"actual_hours" binding:"required"`
	Notes       string  `json:"notes"`
}

// SubmittedEntry is a row of the manager timesheet review
type SubmittedEntry struct {
	TimesheetEntry
	EmployeeName    string `json:"employee_name"`
	TaskDescription string `json:"task_description"`
}
