package services

import (
	"testing"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/stretchr/testify/assert"
)

func closedLead(id, status string, created time.Time, openFor time.Duration) *lead.Lead {
	return withUpdated(makeLead(id, status, created), created.Add(openFor))
}

func TestComputeTeamPerformance(t *testing.T) {
	svc := NewTeamPerformanceService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	snapshot := []*lead.Lead{
		closedLead("quick", lead.StatusWon, created, 2*24*time.Hour),
		closedLead("slow", lead.StatusWon, created, 10*24*time.Hour),
		closedLead("lost", lead.StatusLost, created, 6*24*time.Hour),
		// Open leads and closed leads without updated_at never count.
		makeLead("open", lead.StatusContacted, created),
		makeLead("no-timestamp", lead.StatusWon, created),
	}

	tp := svc.ComputeTeamPerformance(snapshot)

	// (2 + 10 + 6) / 3 = 6.
	assert.Equal(t, 6, tp.AvgResolutionTime)
	// Only the 2-day close beats the 3-day cutoff: 1/3 rounds to 33.
	assert.Equal(t, 33, tp.QuickResponseRate)
	assert.Equal(t, StatusDistribution{
		WonCount:    2,
		WonAvgTime:  6,
		LostCount:   1,
		LostAvgTime: 6,
	}, tp.StatusDistribution)
}

func TestComputeTeamPerformanceTruncatesToWholeDays(t *testing.T) {
	svc := NewTeamPerformanceService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	snapshot := []*lead.Lead{
		// 23 hours truncates to zero days, counting as a quick response.
		closedLead("same-day", lead.StatusWon, created, 23*time.Hour),
		// 3 days 20 hours truncates to 3, still within the cutoff.
		closedLead("edge", lead.StatusLost, created, 3*24*time.Hour+20*time.Hour),
	}

	tp := svc.ComputeTeamPerformance(snapshot)

	// (0 + 3) / 2 = 1.5 rounds to 2.
	assert.Equal(t, 2, tp.AvgResolutionTime)
	assert.Equal(t, 100, tp.QuickResponseRate)
	assert.Equal(t, 1, tp.StatusDistribution.WonCount)
	assert.Equal(t, 0, tp.StatusDistribution.WonAvgTime)
	assert.Equal(t, 1, tp.StatusDistribution.LostCount)
	assert.Equal(t, 3, tp.StatusDistribution.LostAvgTime)
}

func TestComputeTeamPerformanceClampsNegativeDurations(t *testing.T) {
	svc := NewTeamPerformanceService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	snapshot := []*lead.Lead{
		withUpdated(makeLead("backwards", lead.StatusWon, created), created.AddDate(0, 0, -2)),
	}

	tp := svc.ComputeTeamPerformance(snapshot)

	assert.Equal(t, 0, tp.AvgResolutionTime)
	assert.Equal(t, 100, tp.QuickResponseRate)
}

func TestComputeTeamPerformanceNoClosedLeads(t *testing.T) {
	svc := NewTeamPerformanceService(testLogger(t), testTracker(t))

	snapshot := []*lead.Lead{
		makeLead("1", lead.StatusNew, time.Now()),
		makeLead("2", lead.StatusContacted, time.Now()),
	}

	tp := svc.ComputeTeamPerformance(snapshot)

	assert.Zero(t, tp.AvgResolutionTime)
	assert.Zero(t, tp.QuickResponseRate)
	assert.Equal(t, StatusDistribution{}, tp.StatusDistribution)
}

func TestAvgTimeToClose(t *testing.T) {
	svc := NewTeamPerformanceService(testLogger(t), testTracker(t))

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	snapshot := []*lead.Lead{
		closedLead("1", lead.StatusWon, created, 4*24*time.Hour),
		closedLead("2", lead.StatusLost, created, 8*24*time.Hour),
		makeLead("open", lead.StatusNew, created),
	}

	assert.Equal(t, 6, svc.AvgTimeToClose(snapshot))
	assert.Equal(t, 0, svc.AvgTimeToClose(nil))
}
