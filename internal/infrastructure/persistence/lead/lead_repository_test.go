package lead

import (
	"log/slog"
	"testing"
	"time"

	domain "github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *SQLLeadRepository {
	t.Helper()

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.DefaultLevel = slog.LevelError
	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)

	db, err := database.NewConnection("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSQLLeadRepository(db, logger)
	require.NoError(t, repo.EnsureSchema())
	return repo
}

func TestStoreAndFindAllRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	updated := created.AddDate(0, 0, 3)
	full := &domain.Lead{
		ID:           "lead-1",
		BusinessName: "Acme Studio",
		Website:      "https://acme.example",
		BrandStory:   "story",
		USP:          "usp",
		Demographics: "demo",
		BrandVoice:   "voice",
		Competitors:  "competitors",
		Budget:       domain.Budget5kTo10k,
		Platforms:    []string{"Instagram", "TikTok"},
		Timeline:     "Immediately",
		Status:       domain.StatusWon,
		Priority:     "High",
		Notes:        "notes",
		CreatedAt:    created,
		UpdatedAt:    &updated,
	}
	require.NoError(t, repo.Store(full))

	minimal := &domain.Lead{
		ID:           "lead-2",
		BusinessName: "Minimal Co",
		Status:       domain.StatusNew,
		CreatedAt:    created.AddDate(0, 0, 1),
	}
	require.NoError(t, repo.Store(minimal))

	leads, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, leads, 2)

	got := leads[0]
	assert.Equal(t, "lead-1", got.ID)
	assert.Equal(t, []string{"Instagram", "TikTok"}, got.Platforms)
	assert.Equal(t, created, got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, updated, *got.UpdatedAt)

	// A lead stored without platforms comes back with an empty list.
	assert.Empty(t, leads[1].Platforms)
	assert.Nil(t, leads[1].UpdatedAt)
}

func TestStoreMintsIDWhenMissing(t *testing.T) {
	repo := newTestRepository(t)

	l := &domain.Lead{
		BusinessName: "No ID Yet",
		Status:       domain.StatusNew,
		CreatedAt:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Store(l))
	assert.Len(t, l.ID, 26)

	leads, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, l.ID, leads[0].ID)
}

func TestFindByCreatedRange(t *testing.T) {
	repo := newTestRepository(t)

	for i, day := range []int{1, 5, 10} {
		require.NoError(t, repo.Store(&domain.Lead{
			ID:           string(rune('a' + i)),
			BusinessName: "Biz",
			Status:       domain.StatusNew,
			CreatedAt:    time.Date(2024, 3, day, 12, 0, 0, 0, time.UTC),
		}))
	}

	leads, err := repo.FindByCreatedRange(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, "a", leads[0].ID)
	assert.Equal(t, "b", leads[1].ID)
}

func TestCountByStatus(t *testing.T) {
	repo := newTestRepository(t)

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, status := range []string{domain.StatusNew, domain.StatusNew, domain.StatusWon} {
		require.NoError(t, repo.Store(&domain.Lead{
			ID:           string(rune('a' + i)),
			BusinessName: "Biz",
			Status:       status,
			CreatedAt:    created,
		}))
	}

	count, err := repo.CountByStatus(domain.StatusNew)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountByStatus(domain.StatusLost)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCountByCreatedRangeAndStatus(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(&domain.Lead{
		ID: "in", BusinessName: "Biz", Status: domain.StatusWon,
		CreatedAt: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, repo.Store(&domain.Lead{
		ID: "out", BusinessName: "Biz", Status: domain.StatusWon,
		CreatedAt: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
	}))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	count, err := repo.CountByCreatedRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountByCreatedRangeAndStatus(start, end, domain.StatusWon)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.CountByCreatedRangeAndStatus(start, end, domain.StatusLost)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUpdateStatus(t *testing.T) {
	repo := newTestRepository(t)

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Store(&domain.Lead{
		ID: "lead-1", BusinessName: "Biz", Status: domain.StatusNew, CreatedAt: created,
	}))

	closedAt := created.AddDate(0, 0, 7)
	require.NoError(t, repo.UpdateStatus("lead-1", domain.StatusWon, closedAt))

	leads, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, domain.StatusWon, leads[0].Status)
	require.NotNil(t, leads[0].UpdatedAt)
	assert.Equal(t, closedAt, *leads[0].UpdatedAt)

	assert.Error(t, repo.UpdateStatus("missing", domain.StatusWon, closedAt))
}
