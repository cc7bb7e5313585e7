package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
	"github.com/timesheet-api/internal/validation"
)

// taskService is the concrete implementation of TaskService
type taskService struct {
	users   repository.UserRepository
	tasks   repository.TaskRepository
	clock   calendar.Clock
	metrics metrics.MetricsCollector
	log     zerolog.Logger
}

func newTaskService(d Deps) *taskService {
	return &taskService{
		users:   d.Repos.User,
		tasks:   d.Repos.Task,
		clock:   d.Clock,
		metrics: d.Metrics,
		log:     d.Log.With().Str("service", "task").Logger(),
	}
}

// CreateTask stores a new task assigned by a manager to an associate
func (s *taskService) CreateTask(ctx context.Context, caller models.Caller, req *models.CreateTaskRequest) (*models.Task, error) {
	if err := requireManager(caller, "create tasks"); err != nil {
		return nil, reject(s.metrics, "create_task", err)
	}

	// The token role is not enough: the manager must exist in the store.
	manager, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	if !manager.IsManager() {
		return nil, reject(s.metrics, "create_task", models.NewAuthorizationError("only managers may create tasks"))
	}

	if err := validation.ToError(validation.ValidateCreateTask(req)); err != nil {
		return nil, reject(s.metrics, "create_task", err)
	}

	assignee, err := s.users.GetByID(ctx, req.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignee: %w", err)
	}
	if assignee == nil {
		return nil, reject(s.metrics, "create_task", models.NewValidationError("assignee_id", "assignee does not exist"))
	}
	if assignee.Role != models.RoleAssociate {
		return nil, reject(s.metrics, "create_task", models.NewValidationError("assignee_id", "tasks can only be assigned to associates"))
	}

	task := &models.Task{
		ID:             uuid.New().String(),
		Description:    strings.TrimSpace(req.Description),
		EstimatedHours: req.EstimatedHours,
		Date:           req.Date,
		AssigneeID:     assignee.ID,
		ManagerID:      manager.ID,
		CreatedAt:      s.clock().UTC(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.metrics.RecordTaskCreated()
	s.log.Info().
		Str("task_id", task.ID).
		Str("manager_id", task.ManagerID).
		Str("assignee_id", task.AssigneeID).
		Float64("estimated_hours", task.EstimatedHours).
		Str("date", task.Date).
		Msg("Task created")

	return task, nil
}

// TasksForAssignee lists the tasks assigned to userID. Unknown users yield an empty list.
func (s *taskService) TasksForAssignee(ctx context.Context, caller models.Caller, userID string) ([]*models.Task, error) {
	if err := requireSelfOrManager(caller, userID); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// TasksAll lists every task
func (s *taskService) TasksAll(ctx context.Context, caller models.Caller) ([]*models.Task, error) {
	if err := requireManager(caller, "list all tasks"); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListTasksFor returns own tasks for associates and all tasks for managers
func (s *taskService) ListTasksFor(ctx context.Context, caller models.Caller) ([]*models.Task, error) {
	if caller.IsManager() {
		return s.TasksAll(ctx, caller)
	}
	return s.TasksForAssignee(ctx, caller, caller.UserID)
}

// TasksInRange narrows ListTasksFor to one day or to the Monday-Sunday week around day.
// An empty day means today.
func (s *taskService) TasksInRange(ctx context.Context, caller models.Caller, view models.TaskView, day string) ([]*models.Task, error) {
	if day == "" {
		day = s.clock.Today()
	}
	if !calendar.IsValidDay(day) {
		return nil, models.NewValidationError("date", "date must be YYYY-MM-DD")
	}

	start, end := day, day
	switch view {
	case models.TaskViewDaily, "":
	case models.TaskViewWeekly:
		start, end, _ = calendar.WeekBounds(day)
	default:
		return nil, models.NewValidationError("view", "view must be one of: daily, weekly")
	}

	tasks, err := s.ListTasksFor(ctx, caller)
	if err != nil {
		return nil, err
	}

	filtered := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if calendar.Within(t.Date, start, end) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}
