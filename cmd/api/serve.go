package main

import (
	"computer-maintenance-api/internal/config"
	"computer-maintenance-api/internal/database"
	"computer-maintenance-api/internal/handler"
	"computer-maintenance-api/internal/metrics"
	"computer-maintenance-api/internal/repository"
	"computer-maintenance-api/internal/router"
	"computer-maintenance-api/internal/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cmd.Context(), db, logger); err != nil {
			return err
		}
	}

	store := repository.NewStore(db)
	handlers := router.Handlers{
		Computers:    handler.NewComputerHandler(service.NewComputerService(store, logger), logger),
		Employees:    handler.NewEmployeeHandler(service.NewEmployeeService(store, logger), logger),
		Problems:     handler.NewProblemHandler(service.NewProblemService(store, logger), logger),
		Parts:        handler.NewPartHandler(service.NewPartService(store, logger), logger),
		Maintenances: handler.NewMaintenanceHandler(service.NewMaintenanceService(store, logger), service.NewReportService(store, logger), logger),
		Health:       handler.NewHealthHandler(store, logger),
	}

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        router.NewRouter(handlers, cfg, logger),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	var metricsServer *http.Server
	if cfg.Server.EnableMetrics {
		metricsServer = newMetricsServer(cfg)
		go func() {
			logger.Info("metrics server listening", zap.String("addr", metricsServer.Addr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
	}

	// Channel to listen for interrupt signal to gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.Int("rate_limit_rps", cfg.Security.RateLimitRPS),
			zap.Int("rate_limit_burst", cfg.Security.RateLimitBurst),
			zap.Bool("cors", cfg.Security.EnableCORS),
			zap.Duration("request_timeout", cfg.Security.RequestTimeout))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-done:
		logger.Info("server is shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Warn("metrics server forced to shutdown", zap.Error(err))
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

func newMetricsServer(cfg *config.Config) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler:     mux,
		ReadTimeout: cfg.Server.ReadTimeout,
	}
}
