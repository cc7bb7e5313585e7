package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/models"
	"github.com/timesheet-api/internal/service"
	"golang.org/x/time/rate"
)

// callerKey is the gin context key holding the authenticated models.Caller
const callerKey = "caller"

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody("internal", "internal server error"))
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests and records their metrics by route template
func loggingMiddleware(log zerolog.Logger, collector metrics.MetricsCollector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.RecordHTTPRequest(c.Request.Method, route, statusCode, duration)

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// authMiddleware resolves the Bearer token into a caller
func authMiddleware(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, models.NewAuthenticationError("authorization header is required"))
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortWithError(c, models.NewAuthenticationError("invalid authorization header format, use: Bearer <token>"))
			return
		}

		caller, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(callerKey, caller)
		c.Next()
	}
}

// callerFrom returns the caller set by authMiddleware
func callerFrom(c *gin.Context) models.Caller {
	if v, ok := c.Get(callerKey); ok {
		if caller, ok := v.(models.Caller); ok {
			return caller
		}
	}
	return models.Caller{}
}

// loginLimiter throttles login attempts per client IP
type loginLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration

	mu       sync.Mutex
	limiters map[string]*ipLimiter
}

type ipLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newLoginLimiter(perMinute, burst int) *loginLimiter {
	return &loginLimiter{
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
		idle:     10 * time.Minute,
		limiters: make(map[string]*ipLimiter),
	}
}

// get returns the limiter of ip, dropping idle ones whenever a new client shows up
func (l *loginLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if il, ok := l.limiters[ip]; ok {
		il.lastAccess = now
		return il.limiter
	}

	for key, il := range l.limiters {
		if now.Sub(il.lastAccess) > l.idle {
			delete(l.limiters, key)
		}
	}

	il := &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst), lastAccess: now}
	l.limiters[ip] = il
	return il.limiter
}

func (l *loginLimiter) middleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !l.get(ip).Allow() {
			log.Warn().Str("client_ip", ip).Msg("Login rate limit exceeded")
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorBody("rate_limited", "too many login attempts, try again later"))
			return
		}
		c.Next()
	}
}
