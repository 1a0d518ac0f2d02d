package services

import (
	"testing"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFunnelCounts(t *testing.T) {
	svc := NewFunnelAnalyticsService(testLogger(t), testTracker(t))

	created := testAsOf.AddDate(0, 0, -10)
	snapshot := []*lead.Lead{
		makeLead("1", lead.StatusNew, created),
		makeLead("2", lead.StatusNew, created),
		makeLead("3", lead.StatusContacted, created),
		makeLead("4", lead.StatusProposalSent, created),
		makeLead("5", lead.StatusWon, created),
		makeLead("6", lead.StatusWon, created),
		makeLead("7", lead.StatusLost, created),
		makeLead("8", "Archived", created),
	}

	funnel := svc.ComputeFunnel(snapshot)

	assert.Equal(t, 7, funnel.TotalLeads)
	assert.Equal(t, 1, funnel.Unrecognized)
	assert.Equal(t, map[string]int{
		"new":           2,
		"contacted":     1,
		"proposal_sent": 1,
		"won":           2,
		"lost":          1,
	}, funnel.FunnelCounts)

	// Stage counts always sum back to the recognized total.
	sum := 0
	for _, c := range funnel.FunnelCounts {
		sum += c
	}
	assert.Equal(t, funnel.TotalLeads, sum)
}

func TestComputeFunnelCumulativeRates(t *testing.T) {
	svc := NewFunnelAnalyticsService(testLogger(t), testTracker(t))

	created := testAsOf.AddDate(0, 0, -10)
	// 10 leads: 4 new, 2 contacted, 2 proposal, 1 won, 1 lost.
	var snapshot []*lead.Lead
	statuses := []string{
		lead.StatusNew, lead.StatusNew, lead.StatusNew, lead.StatusNew,
		lead.StatusContacted, lead.StatusContacted,
		lead.StatusProposalSent, lead.StatusProposalSent,
		lead.StatusWon,
		lead.StatusLost,
	}
	for i, status := range statuses {
		snapshot = append(snapshot, makeLead(string(rune('a'+i)), status, created))
	}

	funnel := svc.ComputeFunnel(snapshot)
	require.Equal(t, 10, funnel.TotalLeads)

	// Rates measure cumulative reach over all leads, not stage-to-stage.
	assert.InDelta(t, 50.0, funnel.ConversionRates["new_to_contacted"], 0.001)
	assert.InDelta(t, 30.0, funnel.ConversionRates["contacted_to_proposal"], 0.001)
	assert.InDelta(t, 10.0, funnel.ConversionRates["proposal_to_won"], 0.001)
}

func TestComputeFunnelEmptySnapshot(t *testing.T) {
	svc := NewFunnelAnalyticsService(testLogger(t), testTracker(t))

	funnel := svc.ComputeFunnel(nil)

	assert.Equal(t, 0, funnel.TotalLeads)
	assert.Equal(t, 0, funnel.Unrecognized)
	assert.Empty(t, funnel.ConversionRates)
	for _, key := range []string{"new", "contacted", "proposal_sent", "won", "lost"} {
		assert.Contains(t, funnel.FunnelCounts, key)
		assert.Zero(t, funnel.FunnelCounts[key])
	}
}

func TestComputeFunnelOnlyUnrecognized(t *testing.T) {
	svc := NewFunnelAnalyticsService(testLogger(t), testTracker(t))

	snapshot := []*lead.Lead{
		makeLead("1", "Spam", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		makeLead("2", "", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}

	funnel := svc.ComputeFunnel(snapshot)

	assert.Equal(t, 0, funnel.TotalLeads)
	assert.Equal(t, 2, funnel.Unrecognized)
	assert.Empty(t, funnel.ConversionRates)
}
