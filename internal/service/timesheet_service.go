package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
	"github.com/timesheet-api/internal/validation"
)

var errEntrySubmitted = models.NewConflictError("entry already submitted, cannot modify")

// timesheetService is the concrete implementation of TimesheetService.
// It drives the NoEntry -> Draft -> Submitted lifecycle of an entry.
type timesheetService struct {
	tasks   repository.TaskRepository
	entries repository.TimesheetRepository
	clock   calendar.Clock
	metrics metrics.MetricsCollector
	log     zerolog.Logger
}

func newTimesheetService(d Deps) *timesheetService {
	return &timesheetService{
		tasks:   d.Repos.Task,
		entries: d.Repos.Timesheet,
		clock:   d.Clock,
		metrics: d.Metrics,
		log:     d.Log.With().Str("service", "timesheet").Logger(),
	}
}

// LogHours creates the caller's draft for a task or overwrites it in place
func (s *timesheetService) LogHours(ctx context.Context, caller models.Caller, req *models.LogHoursRequest) (*models.TimesheetEntry, error) {
	if err := requireCaller(caller); err != nil {
		return nil, reject(s.metrics, "log_hours", err)
	}
	if err := validation.ToError(validation.ValidateLogHours(req)); err != nil {
		return nil, reject(s.metrics, "log_hours", err)
	}

	task, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, reject(s.metrics, "log_hours", models.NewNotFoundError("task", req.TaskID))
	}
	if task.AssigneeID != caller.UserID {
		return nil, reject(s.metrics, "log_hours", models.NewAuthorizationError("task is not assigned to you"))
	}

	entry, created, err := s.logOnce(ctx, task, caller.UserID, req)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		// Lost a create race for the same pair: the winner's entry is now the draft.
		entry, created, err = s.logOnce(ctx, task, caller.UserID, req)
	}
	if err != nil {
		return nil, reject(s.metrics, "log_hours", err)
	}

	s.metrics.RecordHoursLogged(entry.ActualHours, created)
	s.log.Info().
		Str("entry_id", entry.ID).
		Str("task_id", task.ID).
		Str("user_id", caller.UserID).
		Float64("actual_hours", entry.ActualHours).
		Bool("created", created).
		Msg("Hours logged")

	return entry, nil
}

// logOnce applies one log transition from whatever state the pair is in
func (s *timesheetService) logOnce(ctx context.Context, task *models.Task, userID string, req *models.LogHoursRequest) (*models.TimesheetEntry, bool, error) {
	existing, err := s.entries.FindByTaskAndUser(ctx, task.ID, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to find entry: %w", err)
	}

	switch existing.State() {
	case models.EntryStateSubmitted:
		return nil, false, errEntrySubmitted

	case models.EntryStateDraft:
		ok, err := s.entries.UpdateDraft(ctx, existing.ID, req.ActualHours, req.Notes)
		if err != nil {
			return nil, false, fmt.Errorf("failed to update entry: %w", err)
		}
		if !ok {
			// Submitted between the lookup and the update
			return nil, false, errEntrySubmitted
		}
		existing.ActualHours = req.ActualHours
		existing.Notes = req.Notes
		return existing, false, nil
	}

	today := s.clock.Today()
	if calendar.IsFuture(task.Date, today) {
		return nil, false, models.NewValidationError("task_id", "task not yet due")
	}

	entry := &models.TimesheetEntry{
		ID:          uuid.New().String(),
		TaskID:      task.ID,
		UserID:      userID,
		Date:        today,
		ActualHours: req.ActualHours,
		Notes:       req.Notes,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("failed to create entry: %w", err)
	}
	return entry, true, nil
}

// Submit moves the caller's draft to submitted. Only one concurrent submit can win.
func (s *timesheetService) Submit(ctx context.Context, caller models.Caller, entryID string) (*models.TimesheetEntry, error) {
	if err := requireCaller(caller); err != nil {
		return nil, reject(s.metrics, "submit", err)
	}

	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry == nil {
		return nil, reject(s.metrics, "submit", models.NewNotFoundError("entry", entryID))
	}
	if entry.UserID != caller.UserID {
		return nil, reject(s.metrics, "submit", models.NewAuthorizationError("only the owner may submit an entry"))
	}
	if entry.Submitted {
		return nil, reject(s.metrics, "submit", models.NewConflictError("entry already submitted"))
	}

	at := s.clock().UTC()
	ok, err := s.entries.MarkSubmitted(ctx, entryID, at)
	if err != nil {
		return nil, fmt.Errorf("failed to submit entry: %w", err)
	}
	if !ok {
		return nil, reject(s.metrics, "submit", models.NewConflictError("entry already submitted"))
	}

	entry.Submitted = true
	entry.SubmittedAt = &at

	s.metrics.RecordEntrySubmitted()
	s.log.Info().
		Str("entry_id", entry.ID).
		Str("task_id", entry.TaskID).
		Str("user_id", entry.UserID).
		Msg("Entry submitted")

	return entry, nil
}

// EntriesForUser lists the entries logged by userID
func (s *timesheetService) EntriesForUser(ctx context.Context, caller models.Caller, userID string) ([]*models.TimesheetEntry, error) {
	if err := requireSelfOrManager(caller, userID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// EntriesAll lists every entry
func (s *timesheetService) EntriesAll(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error) {
	if err := requireManager(caller, "list all timesheets"); err != nil {
		return nil, err
	}

	entries, err := s.entries.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// ListEntriesFor returns own entries for associates and all entries for managers
func (s *timesheetService) ListEntriesFor(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error) {
	if caller.IsManager() {
		return s.EntriesAll(ctx, caller)
	}
	return s.EntriesForUser(ctx, caller, caller.UserID)
}

// FindEntry returns the entry of a (task, user) pair, or nil when none was logged yet
func (s *timesheetService) FindEntry(ctx context.Context, caller models.Caller, taskID, userID string) (*models.TimesheetEntry, error) {
	if err := requireSelfOrManager(caller, userID); err != nil {
		return nil, err
	}

	entry, err := s.entries.FindByTaskAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry: %w", err)
	}
	return entry, nil
}
