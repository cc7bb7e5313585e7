package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
)

// TaskHandler handles task endpoints
type TaskHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(services *service.Services, log zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		services: services,
		log:      log.With().Str("handler", "task").Logger(),
	}
}

// ListTasks handles GET /v1/tasks
// Without view or date it returns every visible task, otherwise a daily or weekly window.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	ctx := c.Request.Context()
	caller := callerFrom(c)
	view := models.TaskView(c.Query("view"))
	date := c.Query("date")

	var (
		tasks []*models.Task
		err   error
	)
	if view == "" && date == "" {
		tasks, err = h.services.Task.ListTasksFor(ctx, caller)
	} else {
		tasks, err = h.services.Task.TasksInRange(ctx, caller, view, date)
	}
	if err != nil {
		respondError(c, h.log, err, "Failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// CreateTask handles POST /v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "description, estimated_hours, date and assignee_id are required")
		return
	}

	task, err := h.services.Task.CreateTask(c.Request.Context(), callerFrom(c), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to create task")
		return
	}

	c.JSON(http.StatusCreated, task)
}
