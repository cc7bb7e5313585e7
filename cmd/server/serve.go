package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/timesheet-api/internal/api"
	"github.com/timesheet-api/internal/auth"
	"github.com/timesheet-api/internal/calendar"
	"github.com/timesheet-api/internal/config"
	"github.com/timesheet-api/internal/database"
	"github.com/timesheet-api/internal/metrics"
	"github.com/timesheet-api/internal/repository"
	"github.com/timesheet-api/internal/service"
	"github.com/timesheet-api/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("store", cfg.Store.Driver).Msg("Starting Timesheet API server...")

	repos, health, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if cfg.Store.SeedDemo {
		if err := repository.SeedDemo(context.Background(), repos); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
		log.Info().Msg("Demo data loaded")
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	// Services
	services := service.NewServices(service.Deps{
		Repos:   repos,
		Tokens:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL),
		Clock:   calendar.System(cfg.Timezone),
		Metrics: collector,
		Log:     log,
	})

	opts := []api.Option{api.WithMetrics(reg, collector)}
	if health != nil {
		opts = append(opts, api.WithHealthCheck(health))
	}
	router := api.NewRouter(services, cfg, log, opts...)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}

// openStore returns the repositories for the configured driver, an optional health check and a closer
func openStore(cfg *config.Config, log zerolog.Logger) (*repository.Repositories, func(context.Context) error, func(), error) {
	if cfg.Store.Driver == config.DriverMemory {
		return repository.NewMemory(), nil, func() {}, nil
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.MigrateOnStart {
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
	}

	return repository.New(db), db.HealthCheck, func() { db.Close() }, nil
}
