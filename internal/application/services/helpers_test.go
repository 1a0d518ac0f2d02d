package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
	"github.com/stretchr/testify/require"
)

// testAsOf pins the report clock so every window boundary is deterministic.
var testAsOf = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()
	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.DefaultLevel = slog.LevelError
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}

func testTracker(t *testing.T) *performance.Tracker {
	t.Helper()
	return performance.NewTracker(performance.DefaultTrackerConfig(), nil)
}

func makeLead(id, status string, createdAt time.Time) *lead.Lead {
	return &lead.Lead{
		ID:           id,
		BusinessName: "Business " + id,
		Status:       status,
		CreatedAt:    createdAt,
	}
}

func withUpdated(l *lead.Lead, updatedAt time.Time) *lead.Lead {
	l.UpdatedAt = &updatedAt
	return l
}
