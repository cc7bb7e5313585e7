package models

import (
	"time"
)

// MinHours is the smallest estimate or logged amount accepted, in hours
const MinHours = 0.1

// Task is a unit of work a manager assigns to an associate
type Task struct {
	ID             string    `json:"id" db:"id"`
	Description    string    `json:"description" db:"description"`
	EstimatedHours float64   `json:"estimated_hours" db:"estimated_hours"`
	Date           string    `json:"date" db:"date"` // calendar day, YYYY-MM-DD
	AssigneeID     string    `json:"assignee_id" db:"assignee_id"`
	ManagerID      string    `json:"manager_id" db:"manager_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// CreateTaskRequest represents a task creation request
type CreateTaskRequest struct {
	Description    string  `json:"description" binding:"required"`
	EstimatedHours float64 `json:"estimated_hours" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	AssigneeID     string  `json:"assignee_id" binding:"required"`
}

// TaskView selects the date window of a task listing
type TaskView string

const (
	TaskViewDaily  TaskView = "daily"
	TaskViewWeekly TaskView = "weekly"
)

// TaskStatus is the progress label shown to managers
type TaskStatus string

const (
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOverTime   TaskStatus = "Over Time"
	TaskStatusInProgress TaskStatus = "In Progress"
)

// TaskProgress aggregates the logged hours of a task
type TaskProgress struct {
	TaskID      string     `json:"task_id"`
	ActualHours float64    `json:"actual_hours"`
	Submitted   bool       `json:"submitted"`
	Status      TaskStatus `json:"status"`
}

// TaskOverview is a row of the manager task overview
type TaskOverview struct {
	Task
	AssigneeName string       `json:"assignee_name"`
	Progress     TaskProgress `json:"progress"`
}
