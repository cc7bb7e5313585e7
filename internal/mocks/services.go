package mocks

import (
	"context"

	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
// Authenticate maps tokens through Tokens unless AuthenticateFunc is set.
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password string) (*models.LoginResult, error)
	AuthenticateFunc func(ctx context.Context, token string) (models.Caller, error)
	Tokens           map[string]models.Caller
}

// Verify interface compliance
var _ service.AuthService = (*MockAuthService)(nil)

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{Tokens: make(map[string]models.Caller)}
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, models.NewAuthenticationError("invalid credentials")
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (models.Caller, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, token)
	}
	caller, ok := m.Tokens[token]
	if !ok {
		return models.Caller{}, models.NewAuthenticationError("invalid token")
	}
	return caller, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users      map[string]*models.User
	Associated []*models.User
	Err        error
}

// Verify interface compliance
var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make(map[string]*models.User)}
}

func (m *MockUserService) Get(ctx context.Context, caller models.Caller, id string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, models.NewNotFoundError("user", id)
	}
	return u, nil
}

func (m *MockUserService) Associates(ctx context.Context, caller models.Caller) ([]*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Associated, nil
}

// MockTaskService is a mock implementation of TaskService
type MockTaskService struct {
	CreateFunc  func(ctx context.Context, caller models.Caller, req *models.CreateTaskRequest) (*models.Task, error)
	RangeFunc   func(ctx context.Context, caller models.Caller, view models.TaskView, day string) ([]*models.Task, error)
	Tasks       []*models.Task
	Err         error
	CreatedReqs []*models.CreateTaskRequest
}

// Verify interface compliance
var _ service.TaskService = (*MockTaskService)(nil)

func NewMockTaskService() *MockTaskService {
	return &MockTaskService{Tasks: make([]*models.Task, 0)}
}

func (m *MockTaskService) CreateTask(ctx context.Context, caller models.Caller, req *models.CreateTaskRequest) (*models.Task, error) {
	m.CreatedReqs = append(m.CreatedReqs, req)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, caller, req)
	}
	task := &models.Task{
		ID:             "test-task-id",
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		Date:           req.Date,
		AssigneeID:     req.AssigneeID,
		ManagerID:      caller.UserID,
	}
	return task, nil
}

func (m *MockTaskService) TasksForAssignee(ctx context.Context, caller models.Caller, userID string) ([]*models.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.Task, 0)
	for _, t := range m.Tasks {
		if t.AssigneeID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MockTaskService) TasksAll(ctx context.Context, caller models.Caller) ([]*models.Task, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tasks, nil
}

func (m *MockTaskService) ListTasksFor(ctx context.Context, caller models.Caller) ([]*models.Task, error) {
	if caller.IsManager() {
		return m.TasksAll(ctx, caller)
	}
	return m.TasksForAssignee(ctx, caller, caller.UserID)
}

func (m *MockTaskService) TasksInRange(ctx context.Context, caller models.Caller, view models.TaskView, day string) ([]*models.Task, error) {
	if m.RangeFunc != nil {
		return m.RangeFunc(ctx, caller, view, day)
	}
	return m.ListTasksFor(ctx, caller)
}

// MockTimesheetService is a mock implementation of TimesheetService
type MockTimesheetService struct {
	LogFunc    func(ctx context.Context, caller models.Caller, req *models.LogHoursRequest) (*models.TimesheetEntry, error)
	SubmitFunc func(ctx context.Context, caller models.Caller, entryID string) (*models.TimesheetEntry, error)
	Entries    []*models.TimesheetEntry
	Err        error
}

// Verify interface compliance
var _ service.TimesheetService = (*MockTimesheetService)(nil)

func NewMockTimesheetService() *MockTimesheetService {
	return &MockTimesheetService{Entries: make([]*models.TimesheetEntry, 0)}
}

func (m *MockTimesheetService) LogHours(ctx context.Context, caller models.Caller, req *models.LogHoursRequest) (*models.TimesheetEntry, error) {
	if m.LogFunc != nil {
		return m.LogFunc(ctx, caller, req)
	}
	entry := &models.TimesheetEntry{
		ID:          "test-entry-id",
		TaskID:      req.TaskID,
		UserID:      caller.UserID,
		ActualHours: req.ActualHours,
		Notes:       req.Notes,
	}
	m.Entries = append(m.Entries, entry)
	return entry, nil
}

func (m *MockTimesheetService) Submit(ctx context.Context, caller models.Caller, entryID string) (*models.TimesheetEntry, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, caller, entryID)
	}
	for _, e := range m.Entries {
		if e.ID == entryID {
			if e.Submitted {
				return nil, models.NewConflictError("entry already submitted")
			}
			e.Submitted = true
			return e, nil
		}
	}
	return nil, models.NewNotFoundError("entry", entryID)
}

func (m *MockTimesheetService) EntriesForUser(ctx context.Context, caller models.Caller, userID string) ([]*models.TimesheetEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]*models.TimesheetEntry, 0)
	for _, e := range m.Entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MockTimesheetService) EntriesAll(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Entries, nil
}

func (m *MockTimesheetService) ListEntriesFor(ctx context.Context, caller models.Caller) ([]*models.TimesheetEntry, error) {
	if caller.IsManager() {
		return m.EntriesAll(ctx, caller)
	}
	return m.EntriesForUser(ctx, caller, caller.UserID)
}

func (m *MockTimesheetService) FindEntry(ctx context.Context, caller models.Caller, taskID, userID string) (*models.TimesheetEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, e := range m.Entries {
		if e.TaskID == taskID && e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	Progress  map[string]*models.TaskProgress
	Rows      []*models.TaskOverview
	Submitted []*models.SubmittedEntry
	Err       error
}

// Verify interface compliance
var _ service.ReportService = (*MockReportService)(nil)

func NewMockReportService() *MockReportService {
	return &MockReportService{Progress: make(map[string]*models.TaskProgress)}
}

func (m *MockReportService) TaskProgress(ctx context.Context, caller models.Caller, taskID string) (*models.TaskProgress, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Progress[taskID]
	if !ok {
		return nil, models.NewNotFoundError("task", taskID)
	}
	return p, nil
}

func (m *MockReportService) Overview(ctx context.Context, caller models.Caller) ([]*models.TaskOverview, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Rows, nil
}

func (m *MockReportService) SubmittedEntries(ctx context.Context, caller models.Caller) ([]*models.SubmittedEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Submitted, nil
}
