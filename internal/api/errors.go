package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/models"
)

// ErrorDetail is the payload of an error response
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// statusFor maps a domain error kind to its HTTP status
func statusFor(kind models.ErrorKind) int {
	switch kind {
	case models.KindValidation:
		return http.StatusBadRequest
	case models.KindAuthentication:
		return http.StatusUnauthorized
	case models.KindAuthorization:
		return http.StatusForbidden
	case models.KindNotFound:
		return http.StatusNotFound
	case models.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as an error response. Non-domain errors are hidden behind a generic message.
func abortWithError(c *gin.Context, err error) {
	de, ok := asDomainError(err)
	if !ok {
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("internal", "internal server error"))
		return
	}
	c.AbortWithStatusJSON(statusFor(de.Kind), ErrorResponse{Error: ErrorDetail{
		Code:    string(de.Kind),
		Message: de.Message,
		Field:   de.Field,
	}})
}

func asDomainError(err error) (*models.DomainError, bool) {
	var de *models.DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// respondError logs infrastructure failures before writing err
func respondError(c *gin.Context, log zerolog.Logger, err error, msg string) {
	if _, ok := asDomainError(err); !ok {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg(msg)
	}
	abortWithError(c, err)
}

// badRequest reports a body or query that could not be bound
func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody(string(models.KindValidation), message))
}
