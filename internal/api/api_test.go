package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/api"
	"github.com/timesheet-api/internal/config"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/mocks"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
)

const (
	managerToken   = "manager-token"
	associateToken = "associate-token"
)

type testMocks struct {
	auth      *mocks.MockAuthService
	users     *mocks.MockUserService
	tasks     *mocks.MockTaskService
	timesheet *mocks.MockTimesheetService
	reports   *mocks.MockReportService
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Auth:   config.AuthConfig{LoginRatePerMin: 60, LoginBurst: 3},
	}
}

func setupTestRouter() (*gin.Engine, *testMocks) {
	gin.SetMode(gin.TestMode)

	m := &testMocks{
		auth:      mocks.NewMockAuthService(),
		users:     mocks.NewMockUserService(),
		tasks:     mocks.NewMockTaskService(),
		timesheet: mocks.NewMockTimesheetService(),
		reports:   mocks.NewMockReportService(),
	}
	m.auth.Tokens[managerToken] = models.Caller{UserID: "1", Role: models.RoleManager}
	m.auth.Tokens[associateToken] = models.Caller{UserID: "2", Role: models.RoleAssociate}

	services := &service.Services{
		Auth:      m.auth,
		User:      m.users,
		Task:      m.tasks,
		Timesheet: m.timesheet,
		Report:    m.reports,
	}

	router := api.NewRouter(services, testConfig(), zerolog.Nop())
	return router, m
}

func do(router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorDetail {
	t.Helper()
	var resp api.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", w.Body.String(), err)
	}
	return resp.Error
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(router, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)

	if response["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got %v", response["status"])
	}
	if response["service"] != "timesheet-api" {
		t.Errorf("Expected service name, got %v", response["service"])
	}
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	_, m := setupTestRouter()
	services := &service.Services{Auth: m.auth, User: m.users, Task: m.tasks, Timesheet: m.timesheet, Report: m.reports}
	router := api.NewRouter(services, testConfig(), zerolog.Nop(), api.WithHealthCheck(func(ctx context.Context) error {
		return errors.New("connection refused")
	}))

	w := do(router, "GET", "/health", "", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	router, _ := setupTestRouter()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer "},
		{"unknown token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
			if code := decodeError(t, w).Code; code != "authentication" {
				t.Errorf("Expected authentication code, got %q", code)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	router, m := setupTestRouter()
	m.auth.LoginFunc = func(ctx context.Context, email, password string) (*models.LoginResult, error) {
		if email != "manager@company.com" {
			return nil, models.NewAuthenticationError("invalid credentials")
		}
		return &models.LoginResult{User: &models.User{ID: "1", Role: models.RoleManager}, Token: "jwt"}, nil
	}

	w := do(router, "POST", "/v1/auth/login", "", map[string]string{"email": "manager@company.com", "password": "x"})
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var result models.LoginResult
	json.Unmarshal(w.Body.Bytes(), &result)
	if result.Token != "jwt" || result.User.ID != "1" {
		t.Errorf("Unexpected login result: %+v", result)
	}

	w = do(router, "POST", "/v1/auth/login", "", map[string]string{"email": "other@company.com", "password": "x"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", w.Code)
	}

	w = do(router, "POST", "/v1/auth/login", "", map[string]string{"email": "manager@company.com"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for missing password, got %d", w.Code)
	}
}

func TestLoginRateLimit(t *testing.T) {
	router, _ := setupTestRouter()
	body := map[string]string{"email": "x@y.com", "password": "p"}

	// Burst is 3 in the test config
	for i := 0; i < 3; i++ {
		if w := do(router, "POST", "/v1/auth/login", "", body); w.Code == http.StatusTooManyRequests {
			t.Fatalf("Request %d was rate limited too early", i+1)
		}
	}

	w := do(router, "POST", "/v1/auth/login", "", body)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", models.NewValidationError("actual_hours", "hours must be at least 0.1"), http.StatusBadRequest, "validation"},
		{"authorization", models.NewAuthorizationError("task is not assigned to you"), http.StatusForbidden, "authorization"},
		{"not found", models.NewNotFoundError("task", "9"), http.StatusNotFound, "not_found"},
		{"conflict", models.NewConflictError("entry already submitted, cannot modify"), http.StatusConflict, "conflict"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, m := setupTestRouter()
			m.timesheet.LogFunc = func(ctx context.Context, caller models.Caller, req *models.LogHoursRequest) (*models.TimesheetEntry, error) {
				return nil, tt.err
			}

			w := do(router, "PUT", "/v1/timesheets", associateToken, map[string]interface{}{"task_id": "1", "actual_hours": 2})
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
			detail := decodeError(t, w)
			if detail.Code != tt.code {
				t.Errorf("Expected code %q, got %q", tt.code, detail.Code)
			}
			if strings.Contains(detail.Message, "connection refused") {
				t.Error("Internal error details leaked to the client")
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	router, m := setupTestRouter()
	m.tasks.Tasks = []*models.Task{
		{ID: "1", AssigneeID: "2", Date: "2025-08-07"},
		{ID: "2", AssigneeID: "3", Date: "2025-08-07"},
	}

	var resp struct {
		Tasks []*models.Task `json:"tasks"`
		Count int            `json:"count"`
	}

	w := do(router, "GET", "/v1/tasks", associateToken, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if w.Code != http.StatusOK || resp.Count != 1 || resp.Tasks[0].ID != "1" {
		t.Errorf("Expected only own task, got %d %+v", w.Code, resp)
	}

	w = do(router, "GET", "/v1/tasks", managerToken, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 {
		t.Errorf("Expected all tasks for manager, got %+v", resp)
	}

	var gotView models.TaskView
	var gotDay string
	m.tasks.RangeFunc = func(ctx context.Context, caller models.Caller, view models.TaskView, day string) ([]*models.Task, error) {
		gotView, gotDay = view, day
		return []*models.Task{}, nil
	}
	do(router, "GET", "/v1/tasks?view=weekly&date=2025-08-07", associateToken, nil)
	if gotView != models.TaskViewWeekly || gotDay != "2025-08-07" {
		t.Errorf("Expected weekly view for 2025-08-07, got %q %q", gotView, gotDay)
	}
}

func TestCreateTask(t *testing.T) {
	router, m := setupTestRouter()

	body := map[string]interface{}{
		"description":     "Fix Bug A",
		"estimated_hours": 4,
		"date":            "2025-08-07",
		"assignee_id":     "2",
	}
	w := do(router, "POST", "/v1/tasks", managerToken, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(m.tasks.CreatedReqs) != 1 || m.tasks.CreatedReqs[0].Description != "Fix Bug A" {
		t.Errorf("Unexpected create requests: %+v", m.tasks.CreatedReqs)
	}

	w = do(router, "POST", "/v1/tasks", managerToken, map[string]interface{}{"description": "no hours"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for incomplete body, got %d", w.Code)
	}
}

func TestSubmitEntry(t *testing.T) {
	router, m := setupTestRouter()
	m.timesheet.Entries = []*models.TimesheetEntry{{ID: "e1", TaskID: "1", UserID: "2"}}

	w := do(router, "POST", "/v1/timesheets/e1/submit", associateToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = do(router, "POST", "/v1/timesheets/e1/submit", associateToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409 on double submit, got %d", w.Code)
	}

	w = do(router, "POST", "/v1/timesheets/missing/submit", associateToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestGetEntryForTask(t *testing.T) {
	router, m := setupTestRouter()
	m.timesheet.Entries = []*models.TimesheetEntry{{ID: "e1", TaskID: "1", UserID: "2", ActualHours: 3}}

	w := do(router, "GET", "/v1/tasks/1/entry", associateToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	w = do(router, "GET", "/v1/tasks/1/entry?user_id=2", managerToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("Expected manager to read associate entry, got %d", w.Code)
	}

	w = do(router, "GET", "/v1/tasks/2/entry", associateToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 when nothing logged, got %d", w.Code)
	}
}

func TestReportsEndpoints(t *testing.T) {
	router, m := setupTestRouter()
	m.reports.Progress["1"] = &models.TaskProgress{TaskID: "1", ActualHours: 3.5, Submitted: true, Status: models.TaskStatusCompleted}
	m.reports.Submitted = []*models.SubmittedEntry{{EmployeeName: "Alice Associate", TaskDescription: "Fix Bug A"}}

	w := do(router, "GET", "/v1/tasks/1/progress", managerToken, nil)
	var progress models.TaskProgress
	json.Unmarshal(w.Body.Bytes(), &progress)
	if w.Code != http.StatusOK || progress.Status != models.TaskStatusCompleted {
		t.Errorf("Unexpected progress response: %d %+v", w.Code, progress)
	}

	w = do(router, "GET", "/v1/reports/submitted", managerToken, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Alice Associate") {
		t.Errorf("Unexpected review response: %d %s", w.Code, w.Body.String())
	}

	m.reports.Err = models.NewAuthorizationError("only managers may view the task overview")
	w = do(router, "GET", "/v1/reports/overview", associateToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", w.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	router, _ := setupTestRouter()

	req := httptest.NewRequest("OPTIONS", "/v1/timesheets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204 for OPTIONS, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Authorization") {
		t.Errorf("Expected Authorization in allowed headers, got %q", w.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	m := mocks.NewMockAuthService()
	services := &service.Services{
		Auth:      m,
		User:      mocks.NewMockUserService(),
		Task:      mocks.NewMockTaskService(),
		Timesheet: mocks.NewMockTimesheetService(),
		Report:    mocks.NewMockReportService(),
	}
	router := api.NewRouter(services, testConfig(), zerolog.Nop(), api.WithMetrics(reg, collector))

	do(router, "GET", "/health", "", nil)

	w := do(router, "GET", "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `timesheet_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Errorf("Expected request counter for /health, got:\n%s", w.Body.String())
	}
}
