package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
)

// TimesheetHandler handles timesheet entry endpoints
type TimesheetHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewTimesheetHandler creates a new TimesheetHandler
func NewTimesheetHandler(services *service.Services, log zerolog.Logger) *TimesheetHandler {
	return &TimesheetHandler{
		services: services,
		log:      log.With().Str("handler", "timesheet").Logger(),
	}
}

// ListEntries handles GET /v1/timesheets
func (h *TimesheetHandler) ListEntries(c *gin.Context) {
	entries, err := h.services.Timesheet.ListEntriesFor(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// LogHours handles PUT /v1/timesheets
func (h *TimesheetHandler) LogHours(c *gin.Context) {
	var req models.LogHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "task_id and actual_hours are required")
		return
	}

	entry, err := h.services.Timesheet.LogHours(c.Request.Context(), callerFrom(c), &req)
	if err != nil {
		respondError(c, h.log, err, "Failed to log hours")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// Submit handles POST /v1/timesheets/:entry_id/submit
func (h *TimesheetHandler) Submit(c *gin.Context) {
	entryID := c.Param("entry_id")

	entry, err := h.services.Timesheet.Submit(c.Request.Context(), callerFrom(c), entryID)
	if err != nil {
		respondError(c, h.log, err, "Failed to submit entry")
		return
	}

	c.JSON(http.StatusOK, entry)
}

// GetEntryForTask handles GET /v1/tasks/:task_id/entry
// Managers may pass ?user_id= to look at an associate's entry.
func (h *TimesheetHandler) GetEntryForTask(c *gin.Context) {
	caller := callerFrom(c)
	taskID := c.Param("task_id")
	userID := c.DefaultQuery("user_id", caller.UserID)

	entry, err := h.services.Timesheet.FindEntry(c.Request.Context(), caller, taskID, userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to find entry")
		return
	}
	if entry == nil {
		abortWithError(c, models.NewNotFoundError("entry for task", taskID))
		return
	}

	c.JSON(http.StatusOK, entry)
}
