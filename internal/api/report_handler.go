package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/service"
)

// ReportHandler handles manager report endpoints
type ReportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(services *service.Services, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		services: services,
		log:      log.With().Str("handler", "report").Logger(),
	}
}

// TaskProgress handles GET /v1/tasks/:task_id/progress
func (h *ReportHandler) TaskProgress(c *gin.Context) {
	progress, err := h.services.Report.TaskProgress(c.Request.Context(), callerFrom(c), c.Param("task_id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to get task progress")
		return
	}

	c.JSON(http.StatusOK, progress)
}

// Overview handles GET /v1/reports/overview
func (h *ReportHandler) Overview(c *gin.Context) {
	rows, err := h.services.Report.Overview(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to build overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": rows,
		"count": len(rows),
	})
}

// Submitted handles GET /v1/reports/submitted
func (h *ReportHandler) Submitted(c *gin.Context) {
	rows, err := h.services.Report.SubmittedEntries(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to list submitted entries")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": rows,
		"count":   len(rows),
	})
}
