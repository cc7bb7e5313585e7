package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MaxNotesLength bounds the free-text notes of an entry
const MaxNotesLength = 2000

// ValidationError represents a single field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateLogin validates login credentials. The password is required but never compared.
func ValidateLogin(email, password string) []ValidationError {
	var errors []ValidationError

	if email == "" {
		errors = append(errors, ValidationError{Field: "email", Message: "email is required"})
	} else if !emailRegex.MatchString(email) {
		errors = append(errors, ValidationError{Field: "email", Message: "please enter a valid email address", Value: email})
	}

	if password == "" {
		errors = append(errors, ValidationError{Field: "password", Message: "password is required"})
	}

	return errors
}

// ValidateCreateTask validates the fields of a new task
func ValidateCreateTask(req *models.CreateTaskRequest) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(req.Description) == "" {
		errors = append(errors, ValidationError{Field: "description", Message: "task description is required"})
	}

	if err := ValidateHours("estimated_hours", req.EstimatedHours); err != nil {
		errors = append(errors, *err)
	}

	if req.Date == "" {
		errors = append(errors, ValidationError{Field: "date", Message: "date is required"})
	} else if !calendar.IsValidDay(req.Date) {
		errors = append(errors, ValidationError{Field: "date", Message: "date must be YYYY-MM-DD", Value: req.Date})
	}

	if req.AssigneeID == "" {
		errors = append(errors, ValidationError{Field: "assignee_id", Message: "please select an assignee"})
	}

	return errors
}

// ValidateLogHours validates an hours log request
func ValidateLogHours(req *models.LogHoursRequest) []ValidationError {
	var errors []ValidationError

	if req.TaskID == "" {
		errors = append(errors, ValidationError{Field: "task_id", Message: "task_id is required"})
	}

	if err := ValidateHours("actual_hours", req.ActualHours); err != nil {
		errors = append(errors, *err)
	}

	if len(req.Notes) > MaxNotesLength {
		errors = append(errors, ValidationError{
			Field:   "notes",
			Message: fmt.Sprintf("notes exceed maximum of %d characters", MaxNotesLength),
		})
	}

	return errors
}

// ValidateHours checks that an hour amount is finite and at least models.MinHours
func ValidateHours(field string, hours float64) *ValidationError {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return &ValidationError{Field: field, Message: "hours must be a finite number"}
	}
	if hours < models.MinHours {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("hours must be at least %.1f", models.MinHours),
			Value:   hours,
		}
	}
	return nil
}

// ToError folds validation errors into a single domain error, or nil when there are none
func ToError(errors []ValidationError) error {
	if len(errors) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(errors))
	for _, e := range errors {
		msgs = append(msgs, e.Message)
	}
	return models.NewValidationError(errors[0].Field, strings.Join(msgs, "; "))
}
