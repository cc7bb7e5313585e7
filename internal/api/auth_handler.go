package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
)

// AuthHandler handles login and identity endpoints
type AuthHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(services *service.Services, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		services: services,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}

	result, err := h.services.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me handles GET /v1/me
func (h *AuthHandler) Me(c *gin.Context) {
	caller := callerFrom(c)

	user, err := h.services.User.Get(c.Request.Context(), caller, caller.UserID)
	if err != nil {
		respondError(c, h.log, err, "Failed to get current user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// Associates handles GET /v1/users/associates
func (h *AuthHandler) Associates(c *gin.Context) {
	users, err := h.services.User.Associates(c.Request.Context(), callerFrom(c))
	if err != nil {
		respondError(c, h.log, err, "Failed to list associates")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
	})
}
