package services

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	svc := NewExportService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	full := makeLead("lead-1", lead.StatusWon, created)
	full.Website = "https://example.com"
	full.Budget = lead.Budget5kTo10k
	full.Platforms = []string{"Instagram", "TikTok"}
	full = withUpdated(full, created.AddDate(0, 0, 3))

	snapshot := []*lead.Lead{
		full,
		makeLead("lead-2", lead.StatusNew, created),
	}

	out, err := svc.ExportCSV(snapshot, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "ID", records[0][0])
	assert.Equal(t, "Platforms", records[0][len(records[0])-1])

	assert.Equal(t, "lead-1", records[1][0])
	assert.Equal(t, "2024-05-01 09:30:00", records[1][7])
	assert.Equal(t, "2024-05-04 09:30:00", records[1][8])
	assert.Equal(t, "Instagram, TikTok", records[1][11])

	// Open lead has no updated timestamp.
	assert.Equal(t, "", records[2][8])
}

func TestExportCSVFiltersByID(t *testing.T) {
	svc := NewExportService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	snapshot := []*lead.Lead{
		makeLead("a", lead.StatusNew, created),
		makeLead("b", lead.StatusNew, created),
		makeLead("c", lead.StatusNew, created),
	}

	out, err := svc.ExportCSV(snapshot, []string{"c", "a"})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Snapshot order wins over the requested id order.
	assert.Equal(t, "a", records[1][0])
	assert.Equal(t, "c", records[2][0])
}

func TestExportCSVEmptySnapshot(t *testing.T) {
	svc := NewExportService(testLogger(t), testTracker(t))

	out, err := svc.ExportCSV(nil, nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
