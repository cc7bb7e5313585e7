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

// taskRepo is the concrete implementation of TaskRepository
type taskRepo struct {
	db *database.DB
}

// NewTaskRepo creates a new task repository
func NewTaskRepo(db *database.DB) TaskRepository {
	return &taskRepo{db: db}
}

const taskColumns = `id, description, estimated_hours, date, assignee_id, manager_id, created_at`

// Create inserts a new task
func (r *taskRepo) Create(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, description, estimated_hours, date, assignee_id, manager_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.Description, task.EstimatedHours, task.Date,
		task.AssigneeID, task.ManagerID, task.CreatedAt,
	)
	return err
}

// GetByID retrieves a task by ID
func (r *taskRepo) GetByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// List returns every task in insertion order
func (r *taskRepo) List(ctx context.Context) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListByAssignee returns the tasks assigned to assigneeID in insertion order
func (r *taskRepo) ListByAssignee(ctx context.Context, assigneeID string) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE assignee_id = $1 ORDER BY seq`, assigneeID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	var day time.Time
	err := row.Scan(
		&task.ID, &task.Description, &task.EstimatedHours, &day,
		&task.AssigneeID, &task.ManagerID, &task.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	task.Date = calendar.FormatDay(day)
	return &task, nil
}

func collectTasks(rows *sql.Rows) ([]*models.Task, error) {
	defer rows.Close()

	tasks := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
