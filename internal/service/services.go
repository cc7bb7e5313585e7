package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/auth"
	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
)

// AuthService defines the interface for login and token checks
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Authenticate(ctx context.Context, token string) (models.Caller, error)
}

// UserService defines role-scoped user lookups
type UserService interface {
	Get(ctx context.Context, caller models.Caller, id string) (*models.User, error)
	Associates(ctx context.Context, caller models.Caller) ([]*models.User, error)
}

// TaskService defines task creation and role-scoped task queries
type TaskService interface {
	CreateTask(ctx context.Context, caller models.Caller, req *models.CreateTaskRequest) (*models.Task, error)
	TasksForAssignee(ctx context.Context, caller models.Caller, userID string) ([]*models.Task, error)
	TasksAll(ctx context.Context, caller models.Caller) ([]*models.Task, error)
	ListTasksFor(ctx context.Context, caller models.Caller) ([]*models.Task, error)
	TasksInRange(ctx context.Context, caller models.Caller, view models.TaskView, day string) ([]*models.Task, error)
}

// TimesheetService defines the entry lifecycle and role-scoped entry queries
type TimesheetService interface {
	LogHours(ctx context.Context, caller models.Caller, req *models.LogHoursRequest) (*models.TimesheetEntry, error)
	Submit(ctx context.Context, caller models.Caller, entryID string) (*models.TimesheetEntry, error)
	EntriesForUser(ctx context.Context, caller models.Caller, userID string) ([]*models.TimesheetEntry, error)
	EntriesAll(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error)
	ListEntriesFor(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error)
	FindEntry(ctx context.Context, caller models.Caller, taskID, userID string) (*models.TimesheetEntry, error)
}

// ReportService defines the manager views derived from tasks and entries
type ReportService interface {
	TaskProgress(ctx context.Context, caller models.Caller, taskID string) (*models.TaskProgress, error)
	Overview(ctx context.Context, caller models.Caller) ([]*models.TaskOverview, error)
	SubmittedEntries(ctx context.Context, caller models.Caller) ([]*models.SubmittedEntry, error)
}

// Services holds all service interfaces
type Services struct {
	Auth      AuthService
	User      UserService
	Task      TaskService
	Timesheet TimesheetService
	Report    ReportService
}

// Deps are the collaborators shared by all services
type Deps struct {
	Repos   *repository.Repositories
	Tokens  *auth.TokenManager
	Clock   calendar.Clock
	Metrics metrics.MetricsCollector
	Log     zerolog.Logger
}

// NewServices creates all services over one store
func NewServices(d Deps) *Services {
	if d.Clock == nil {
		d.Clock = calendar.System(nil)
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}

	return &Services{
		Auth:      newAuthService(d),
		User:      newUserService(d),
		Task:      newTaskService(d),
		Timesheet: newTimesheetService(d),
		Report:    newReportService(d),
	}
}
