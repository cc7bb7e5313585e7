package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/repository"
)

func seeded(t *testing.T) *repository.Repositories {
	t.Helper()
	repos := repository.NewMemory()
	if err := repository.SeedDemo(context.Background(), repos); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	return repos
}

func TestSeedDemo_Idempotent(t *testing.T) {
	repos := seeded(t)
	if err := repository.SeedDemo(context.Background(), repos); err != nil {
		t.Fatalf("second SeedDemo failed: %v", err)
	}

	users, _ := repos.User.List(context.Background())
	if len(users) != 3 {
		t.Errorf("Expected 3 users after reseeding, got %d", len(users))
	}
}

func TestMemoryUsers(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()

	u, err := repos.User.GetByEmail(ctx, "Manager@Company.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if u == nil || u.ID != "1" {
		t.Fatalf("Expected manager by case-insensitive email, got %+v", u)
	}

	associates, _ := repos.User.ListByRole(ctx, models.RoleAssociate)
	if len(associates) != 2 || associates[0].ID != "2" || associates[1].ID != "3" {
		t.Errorf("Expected associates 2,3 in insertion order, got %+v", associates)
	}

	err = repos.User.Create(ctx, &models.User{ID: "9", Email: "manager@company.com", Role: models.RoleManager})
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Errorf("Expected ErrDuplicateEmail, got %v", err)
	}

	missing, err := repos.User.GetByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("Expected nil, nil for unknown user, got %v, %v", missing, err)
	}
}

func TestMemoryTasks_InsertionOrder(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()

	tasks, _ := repos.Task.ListByAssignee(ctx, "2")
	if len(tasks) != 2 || tasks[0].ID != "1" || tasks[1].ID != "3" {
		t.Errorf("Expected tasks 1,3 for associate 2, got %+v", tasks)
	}

	none, _ := repos.Task.ListByAssignee(ctx, "unknown")
	if none == nil || len(none) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", none)
	}
}

func TestMemoryReadsReturnCopies(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()

	task, _ := repos.Task.GetByID(ctx, "1")
	task.Description = "tampered"

	again, _ := repos.Task.GetByID(ctx, "1")
	if again.Description == "tampered" {
		t.Error("Mutating a returned task must not change the store")
	}

	entry, _ := repos.Timesheet.GetByID(ctx, "1")
	*entry.SubmittedAt = time.Time{}
	stored, _ := repos.Timesheet.GetByID(ctx, "1")
	if stored.SubmittedAt.IsZero() {
		t.Error("Mutating a returned submitted_at must not change the store")
	}
}

func TestMemoryTimesheet_DuplicatePair(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()

	err := repos.Timesheet.Create(ctx, &models.TimesheetEntry{ID: "x", TaskID: "1", UserID: "2", ActualHours: 1})
	if !errors.Is(err, repository.ErrDuplicateEntry) {
		t.Errorf("Expected ErrDuplicateEntry, got %v", err)
	}
}

func TestMemoryTimesheet_DraftTransitions(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()

	draft := &models.TimesheetEntry{ID: "d1", TaskID: "3", UserID: "2", Date: "2025-08-08", ActualHours: 1}
	if err := repos.Timesheet.Create(ctx, draft); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := repos.Timesheet.UpdateDraft(ctx, "d1", 2.5, "halfway")
	if err != nil || !ok {
		t.Fatalf("UpdateDraft = %v, %v", ok, err)
	}

	at := time.Date(2025, 8, 8, 18, 0, 0, 0, time.UTC)
	ok, _ = repos.Timesheet.MarkSubmitted(ctx, "d1", at)
	if !ok {
		t.Fatal("Expected first MarkSubmitted to succeed")
	}
	ok, _ = repos.Timesheet.MarkSubmitted(ctx, "d1", at.Add(time.Hour))
	if ok {
		t.Error("Expected second MarkSubmitted to fail")
	}
	ok, _ = repos.Timesheet.UpdateDraft(ctx, "d1", 9, "late edit")
	if ok {
		t.Error("Expected UpdateDraft on submitted entry to fail")
	}

	stored, _ := repos.Timesheet.GetByID(ctx, "d1")
	if stored.ActualHours != 2.5 || stored.Notes != "halfway" {
		t.Errorf("Submitted entry changed: %+v", stored)
	}
	if stored.SubmittedAt == nil || !stored.SubmittedAt.Equal(at) {
		t.Errorf("Expected submitted_at %v, got %v", at, stored.SubmittedAt)
	}

	submitted, _ := repos.Timesheet.ListSubmitted(ctx)
	if len(submitted) != 2 {
		t.Errorf("Expected 2 submitted entries, got %d", len(submitted))
	}

	ok, _ = repos.Timesheet.MarkSubmitted(ctx, "missing", at)
	if ok {
		t.Error("Expected MarkSubmitted on unknown id to fail")
	}
}

func TestMemoryTimesheet_ConcurrentSubmit(t *testing.T) {
	repos := seeded(t)
	ctx := context.Background()
	repos.Timesheet.Create(ctx, &models.TimesheetEntry{ID: "c1", TaskID: "2", UserID: "3", ActualHours: 4})

	const workers = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, _ := repos.Timesheet.MarkSubmitted(ctx, "c1", time.Now())
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("Expected exactly one successful submit, got %d", wins)
	}
}
