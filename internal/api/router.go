package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/timesheet-api/internal/config"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/service"
	"github.com/timesheet-api/pkg/logger"
)

// Option customises the router
type Option func(*routerOptions)

type routerOptions struct {
	gatherer  prometheus.Gatherer
	collector metrics.MetricsCollector
	health    func(ctx context.Context) error
}

// WithMetrics exposes gatherer on /metrics and records request metrics into collector
func WithMetrics(gatherer prometheus.Gatherer, collector metrics.MetricsCollector) Option {
	return func(o *routerOptions) {
		o.gatherer = gatherer
		if collector != nil {
			o.collector = collector
		}
	}
}

// WithHealthCheck makes /health report unhealthy when check fails
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(o *routerOptions) {
		o.health = check
	}
}

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger, opts ...Option) *gin.Engine {
	o := routerOptions{collector: metrics.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log, o.collector))
	router.Use(corsMiddleware())

	// Handlers
	authHandler := NewAuthHandler(services, log)
	taskHandler := NewTaskHandler(services, log)
	timesheetHandler := NewTimesheetHandler(services, log)
	reportHandler := NewReportHandler(services, log)

	requireAuth := authMiddleware(services.Auth)
	limiter := newLoginLimiter(cfg.Auth.LoginRatePerMin, cfg.Auth.LoginBurst)

	router.GET("/health", healthCheck(o.health))
	if o.gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(o.gatherer)))
	}

	// API v1
	v1 := router.Group("/v1")
	{
		v1.POST("/auth/login", limiter.middleware(log), authHandler.Login)

		authed := v1.Group("", requireAuth)
		{
			authed.GET("/me", authHandler.Me)
			authed.GET("/users/associates", authHandler.Associates)

			tasks := authed.Group("/tasks")
			{
				tasks.GET("", taskHandler.ListTasks)
				tasks.POST("", taskHandler.CreateTask)
				tasks.GET("/:task_id/progress", reportHandler.TaskProgress)
				tasks.GET("/:task_id/entry", timesheetHandler.GetEntryForTask)
			}

			timesheets := authed.Group("/timesheets")
			{
				timesheets.GET("", timesheetHandler.ListEntries)
				timesheets.PUT("", timesheetHandler.LogHours)
				timesheets.POST("/:entry_id/submit", timesheetHandler.Submit)
			}

			reports := authed.Group("/reports")
			{
				reports.GET("/overview", reportHandler.Overview)
				reports.GET("/submitted", reportHandler.Submitted)
			}
		}
	}

	return router
}

// healthCheck returns the health status, including the store when a check is configured
func healthCheck(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				status, code = "unhealthy", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   logger.ServiceName,
		})
	}
}
