package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/database"
	"github.com/timesheet-api/internal/models"
)

// timesheetRepo is the concrete implementation of TimesheetRepository
type timesheetRepo struct {
	db *database.DB
}

// NewTimesheetRepo creates a new timesheet repository
func NewTimesheetRepo(db *database.DB) TimesheetRepository {
	return &timesheetRepo{db: db}
}

const entryColumns = `id, task_id, user_id, date, actual_hours, notes, submitted, submitted_at`

// Create inserts a new entry; the unique (task_id, user_id) index rejects a second one
func (r *timesheetRepo) Create(ctx context.Context, entry *models.TimesheetEntry) error {
	query := `
		INSERT INTO timesheet_entries (id, task_id, user_id, date, actual_hours, notes, submitted, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.TaskID, entry.UserID, entry.Date, entry.ActualHours,
		entry.Notes, entry.Submitted, entry.SubmittedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

// GetByID retrieves an entry by ID
func (r *timesheetRepo) GetByID(ctx context.Context, id string) (*models.TimesheetEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM timesheet_entries WHERE id = $1`, id)
	return scanEntry(row)
}

// FindByTaskAndUser retrieves the entry for a (task, user) pair
func (r *timesheetRepo) FindByTaskAndUser(ctx context.Context, taskID, userID string) (*models.TimesheetEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM timesheet_entries WHERE task_id = $1 AND user_id = $2`, taskID, userID)
	return scanEntry(row)
}

// List returns every entry in insertion order
func (r *timesheetRepo) List(ctx context.Context) ([]*models.TimesheetEntry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM timesheet_entries ORDER BY seq`)
}

// ListByUser returns the entries of userID
func (r *timesheetRepo) ListByUser(ctx context.Context, userID string) ([]*models.TimesheetEntry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM timesheet_entries WHERE user_id = $1 ORDER BY seq`, userID)
}

// ListByTask returns the entries logged against taskID
func (r *timesheetRepo) ListByTask(ctx context.Context, taskID string) ([]*models.TimesheetEntry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM timesheet_entries WHERE task_id = $1 ORDER BY seq`, taskID)
}

// ListSubmitted returns submitted entries
func (r *timesheetRepo) ListSubmitted(ctx context.Context) ([]*models.TimesheetEntry, error) {
	return r.query(ctx, `SELECT `+entryColumns+` FROM timesheet_entries WHERE submitted ORDER BY seq`)
}

// UpdateDraft overwrites hours and notes of an unsubmitted entry
func (r *timesheetRepo) UpdateDraft(ctx context.Context, id string, actualHours float64, notes string) (bool, error) {
	query := `
		UPDATE timesheet_entries SET actual_hours = $1, notes = $2
		WHERE id = $3 AND submitted = false
	`
	result, err := r.db.ExecContext(ctx, query, actualHours, notes, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// MarkSubmitted atomically marks a draft entry as submitted
func (r *timesheetRepo) MarkSubmitted(ctx context.Context, id string, at time.Time) (bool, error) {
	query := `
		UPDATE timesheet_entries SET submitted = true, submitted_at = $1
		WHERE id = $2 AND submitted = false
	`
	result, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return false, err
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (r *timesheetRepo) query(ctx context.Context, query string, args ...any) ([]*models.TimesheetEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.TimesheetEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row rowScanner) (*models.TimesheetEntry, error) {
	var entry models.TimesheetEntry
	var day time.Time
	var submittedAt sql.NullTime

	err := row.Scan(
		&entry.ID, &entry.TaskID, &entry.UserID, &day, &entry.ActualHours,
		&entry.Notes, &entry.Submitted, &submittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entry.Date = calendar.FormatDay(day)
	if submittedAt.Valid {
		entry.SubmittedAt = &submittedAt.Time
	}
	return &entry, nil
}
