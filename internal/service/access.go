package service

import (
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
)

// requireCaller rejects an empty or unknown-role identity
func requireCaller(caller models.Caller) error {
	if caller.UserID == "" || !models.ValidRoles[caller.Role] {
		return models.NewAuthorizationError("caller identity is required")
	}
	return nil
}

// requireManager guards manager-only operations
func requireManager(caller models.Caller, action string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if !caller.IsManager() {
		return models.NewAuthorizationError("only managers may " + action)
	}
	return nil
}

// requireSelfOrManager lets associates see only their own records
func requireSelfOrManager(caller models.Caller, userID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if caller.IsManager() || caller.UserID == userID {
		return nil
	}
	return models.NewAuthorizationError("associates may only access their own records")
}

// reject records a domain refusal and passes err through
func reject(m metrics.MetricsCollector, operation string, err error) error {
	if kind := models.KindOf(err); kind != "" {
		m.RecordRejected(operation, string(kind))
	}
	return err
}
