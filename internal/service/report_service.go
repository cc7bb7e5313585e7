package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
)

const (
	unknownEmployee = "Unknown"
	unknownTask     = "Unknown Task"
)

// ComputeProgress sums the hours of all entries for task. Entries of other tasks are ignored.
func ComputeProgress(task *models.Task, entries []*models.TimesheetEntry) models.TaskProgress {
	p := models.TaskProgress{TaskID: task.ID}
	for _, e := range entries {
		if e.TaskID != task.ID {
			continue
		}
		p.ActualHours += e.ActualHours
		if e.Submitted {
			p.Submitted = true
		}
	}
	p.Status = DeriveStatus(task.EstimatedHours, p.ActualHours, p.Submitted)
	return p
}

// DeriveStatus labels progress. Completed wins over Over Time.
func DeriveStatus(estimated, actual float64, submitted bool) models.TaskStatus {
	switch {
	case submitted:
		return models.TaskStatusCompleted
	case actual > estimated:
		return models.TaskStatusOverTime
	default:
		return models.TaskStatusInProgress
	}
}

// reportService is the concrete implementation of ReportService
type reportService struct {
	users   repository.UserRepository
	tasks   repository.TaskRepository
	entries repository.TimesheetRepository
	log     zerolog.Logger
}

func newReportService(d Deps) *reportService {
	return &reportService{
		users:   d.Repos.User,
		tasks:   d.Repos.Task,
		entries: d.Repos.Timesheet,
		log:     d.Log.With().Str("service", "report").Logger(),
	}
}

// TaskProgress aggregates the entries of one task
func (s *reportService) TaskProgress(ctx context.Context, caller models.Caller, taskID string) (*models.TaskProgress, error) {
	if err := requireManager(caller, "view task progress"); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, models.NewNotFoundError("task", taskID)
	}

	entries, err := s.entries.ListByTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	p := ComputeProgress(task, entries)
	return &p, nil
}

// Overview returns every task with its assignee name and progress
func (s *reportService) Overview(ctx context.Context, caller models.Caller) ([]*models.TaskOverview, error) {
	if err := requireManager(caller, "view the task overview"); err != nil {
		return nil, err
	}

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	byTask := make(map[string][]*models.TimesheetEntry, len(tasks))
	for _, e := range entries {
		byTask[e.TaskID] = append(byTask[e.TaskID], e)
	}

	rows := make([]*models.TaskOverview, 0, len(tasks))
	for _, t := range tasks {
		name, ok := names[t.AssigneeID]
		if !ok {
			name = unknownEmployee
		}
		rows = append(rows, &models.TaskOverview{
			Task:         *t,
			AssigneeName: name,
			Progress:     ComputeProgress(t, byTask[t.ID]),
		})
	}
	return rows, nil
}

// SubmittedEntries returns submitted entries joined with employee and task names
func (s *reportService) SubmittedEntries(ctx context.Context, caller models.Caller) ([]*models.SubmittedEntry, error) {
	if err := requireManager(caller, "review timesheets"); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListSubmitted(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list submitted entries: %w", err)
	}
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	names, err := s.userNames(ctx)
	if err != nil {
		return nil, err
	}

	descriptions := make(map[string]string, len(tasks))
	for _, t := range tasks {
		descriptions[t.ID] = t.Description
	}

	rows := make([]*models.SubmittedEntry, 0, len(entries))
	for _, e := range entries {
		row := &models.SubmittedEntry{
			TimesheetEntry:  *e,
			EmployeeName:    unknownEmployee,
			TaskDescription: unknownTask,
		}
		if name, ok := names[e.UserID]; ok {
			row.EmployeeName = name
		}
		if desc, ok := descriptions[e.TaskID]; ok {
			row.TaskDescription = desc
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *reportService) userNames(ctx context.Context) (map[string]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names, nil
}
