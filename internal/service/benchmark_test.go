package service_test

import (
	"context"
	"testing"

	"github.com/timesheet-api/internal/models"
)

func BenchmarkLogHours_Overwrite(b *testing.B) {
	svc, _ := setup(b)
	ctx := context.Background()
	req := &models.LogHoursRequest{TaskID: "2", ActualHours: 2, Notes: "bench"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Timesheet.LogHours(ctx, bob, req); err != nil {
			b.Fatalf("LogHours failed: %v", err)
		}
	}
}

func BenchmarkOverview(b *testing.B) {
	svc, _ := setup(b)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		if _, err := svc.Task.CreateTask(ctx, manager, &models.CreateTaskRequest{
			Description:    "Bench task",
			EstimatedHours: 2,
			Date:           "2025-08-07",
			AssigneeID:     "3",
		}); err != nil {
			b.Fatalf("CreateTask failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Report.Overview(ctx, manager); err != nil {
			b.Fatalf("Overview failed: %v", err)
		}
	}
}
