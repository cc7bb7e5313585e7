package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/timesheet-api/internal/models"
)

// DemoData is the dataset loaded by SeedDemo
type DemoData struct {
	Users   []*models.User
	Tasks   []*models.Task
	Entries []*models.TimesheetEntry
}

// Demo returns one manager, two associates, three tasks and one submitted entry
func Demo() DemoData {
	at := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	submittedAt := at("2025-08-07T17:30:00Z")

	return DemoData{
		Users: []*models.User{
			{ID: "1", Email: "manager@company.com", Name: "John Manager", Role: models.RoleManager, CreatedAt: at("2025-08-01T08:00:00Z")},
			{ID: "2", Email: "associate1@company.com", Name: "Alice Associate", Role: models.RoleAssociate, CreatedAt: at("2025-08-01T08:01:00Z")},
			{ID: "3", Email: "associate2@company.com", Name: "Bob Associate", Role: models.RoleAssociate, CreatedAt: at("2025-08-01T08:02:00Z")},
		},
		Tasks: []*models.Task{
			{ID: "1", Description: "Fix Bug A in authentication module", EstimatedHours: 4, Date: "2025-08-07", AssigneeID: "2", ManagerID: "1", CreatedAt: at("2025-08-07T09:00:00Z")},
			{ID: "2", Description: "Implement user dashboard", EstimatedHours: 8, Date: "2025-08-07", AssigneeID: "3", ManagerID: "1", CreatedAt: at("2025-08-07T09:30:00Z")},
			{ID: "3", Description: "Code review for API endpoints", EstimatedHours: 2, Date: "2025-08-08", AssigneeID: "2", ManagerID: "1", CreatedAt: at("2025-08-07T10:00:00Z")},
		},
		Entries: []*models.TimesheetEntry{
			{
				ID:          "1",
				TaskID:      "1",
				UserID:      "2",
				Date:        "2025-08-07",
				ActualHours: 3.5,
				Notes:       "Fixed authentication bug, took less time than expected",
				Submitted:   true,
				SubmittedAt: &submittedAt,
			},
		},
	}
}

// SeedDemo inserts the demo dataset. It is a no-op when the demo manager already exists.
func SeedDemo(ctx context.Context, repos *Repositories) error {
	data := Demo()

	existing, err := repos.User.GetByID(ctx, data.Users[0].ID)
	if err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if existing != nil {
		return nil
	}

	for _, u := range data.Users {
		if err := repos.User.Create(ctx, u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.ID, err)
		}
	}
	for _, t := range data.Tasks {
		if err := repos.Task.Create(ctx, t); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", t.ID, err)
		}
	}
	for _, e := range data.Entries {
		if err := repos.Timesheet.Create(ctx, e); err != nil {
			return fmt.Errorf("failed to seed entry %s: %w", e.ID, err)
		}
	}
	return nil
}
