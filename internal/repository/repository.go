package repository

import (
	"context"
	"errors"
	"time"

	"github.com/timesheet-api/internal/database"
	"github.com/timesheet-api/internal/models"
)

// ErrDuplicateEntry is returned by TimesheetRepository.Create when the (task, user) pair already has an entry
var ErrDuplicateEntry = errors.New("timesheet entry already exists for task and user")

// ErrDuplicateEmail is returned by UserRepository.Create when the email is taken
var ErrDuplicateEmail = errors.New("user email already exists")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	ListByRole(ctx context.Context, role models.Role) ([]*models.User, error)
}

// TaskRepository defines the interface for task data operations.
// Tasks are append-only.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id string) (*models.Task, error)
	List(ctx context.Context) ([]*models.Task, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]*models.Task, error)
}

// TimesheetRepository defines the interface for timesheet entry operations
type TimesheetRepository interface {
	Create(ctx context.Context, entry *models.TimesheetEntry) error
	GetByID(ctx context.Context, id string) (*models.TimesheetEntry, error)
	FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.TimesheetEntry, error)
	List(ctx context.Context) ([]*models.TimesheetEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*models.TimesheetEntry, error)
	ListByTask(ctx context.Context, taskID string) ([]*models.TimesheetEntry, error)
	ListSubmitted(ctx context.Context) ([]*models.TimesheetEntry, error)
	// UpdateDraft overwrites hours and notes only while the entry is unsubmitted.
	// It reports false when the entry is missing or already submitted.
	UpdateDraft(ctx context.Context, id string, actualHours float64, notes string) (bool, error)
	// MarkSubmitted atomically flips submitted from false to true.
	// It reports false when the entry is missing or was already submitted.
	MarkSubmitted(ctx context.Context, id string, at time.Time) (bool, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Task      TaskRepository
	Timesheet TimesheetRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		User:      NewUserRepo(db),
		Task:      NewTaskRepo(db),
		Timesheet: NewTimesheetRepo(db),
	}
}
