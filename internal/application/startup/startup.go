// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/application/container"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/database"
	leadrepo "github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/presentation/http/server"
	"github.com/mwdesignstudio/leadpulse-go/pkg/config"
)

// Initialize performs the complete startup sequence: logging, database,
// schema, dependency container, HTTP server, graceful shutdown.
func Initialize() error {
	start := time.Now()

	logger, err := buildLogger()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("LeadPulse starting")

	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig(), logger)

	db, err := database.Open(logger)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := leadrepo.NewSQLLeadRepository(db, logger)
	if err := repo.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	c := container.NewContainer(db, logger, perfTracker)

	srv := server.New(config.ServerPort, c)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Startup().Info("Startup complete", "port", config.ServerPort, "duration", time.Since(start))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case sig := <-quit:
		logger.Shutdown().Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Shutdown().Info("Shutdown complete")
	return nil
}

func buildLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.LogDirectory = config.LogDirectory
	cfg.OutputToFile = config.LogToFile
	cfg.JSONFormat = config.LogJSON

	switch config.LogDefaultLevel {
	case "debug":
		cfg.DefaultLevel = slog.LevelDebug
	case "warn":
		cfg.DefaultLevel = slog.LevelWarn
	case "error":
		cfg.DefaultLevel = slog.LevelError
	default:
		cfg.DefaultLevel = slog.LevelInfo
	}

	return logging.NewChanneledLogger(cfg)
}
