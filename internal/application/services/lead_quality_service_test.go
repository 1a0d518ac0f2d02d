package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullProfileLead(id, status string) *lead.Lead {
	l := makeLead(id, status, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	l.Website = "https://example.com"
	l.Budget = lead.Budget25kPlus
	l.Platforms = []string{"Instagram", "TikTok", "YouTube"}
	l.Timeline = "Immediately"
	l.BrandStory = "story"
	l.USP = "usp"
	l.Demographics = "demo"
	return l
}

func TestScoreLead(t *testing.T) {
	t.Run("maximum score", func(t *testing.T) {
		assert.Equal(t, 100, ScoreLead(fullProfileLead("1", lead.StatusNew)))
	})

	t.Run("empty lead scores zero", func(t *testing.T) {
		assert.Equal(t, 0, ScoreLead(makeLead("1", lead.StatusNew, time.Now())))
	})

	t.Run("mid budget scores twenty", func(t *testing.T) {
		l := makeLead("1", lead.StatusNew, time.Now())
		l.Budget = lead.Budget5kTo10k
		assert.Equal(t, 20, ScoreLead(l))
	})

	t.Run("low budget scores nothing", func(t *testing.T) {
		l := makeLead("1", lead.StatusNew, time.Now())
		l.Budget = lead.Budget1kTo5k
		assert.Equal(t, 0, ScoreLead(l))
	})

	t.Run("two platforms miss the multi-platform bonus", func(t *testing.T) {
		l := makeLead("1", lead.StatusNew, time.Now())
		l.Platforms = []string{"Instagram", "TikTok"}
		assert.Equal(t, 0, ScoreLead(l))
	})

	t.Run("within one month counts as urgent", func(t *testing.T) {
		l := makeLead("1", lead.StatusNew, time.Now())
		l.Timeline = "Within 1 month"
		assert.Equal(t, 15, ScoreLead(l))
	})

	t.Run("two profile fields miss the completeness bonus", func(t *testing.T) {
		l := makeLead("1", lead.StatusNew, time.Now())
		l.BrandStory = "story"
		l.USP = "usp"
		assert.Equal(t, 0, ScoreLead(l))
	})
}

func TestComputeLeadQuality(t *testing.T) {
	svc := NewLeadQualityService(testLogger(t), testTracker(t))

	websiteOnly := makeLead("site", lead.StatusNew, time.Now())
	websiteOnly.Website = "https://site.example"

	snapshot := []*lead.Lead{
		fullProfileLead("high-won", lead.StatusWon),
		fullProfileLead("high-lost", lead.StatusLost),
		websiteOnly,
		makeLead("bare", lead.StatusNew, time.Now()),
	}

	lq := svc.ComputeLeadQuality(snapshot)

	require.Len(t, lq.LeadScores, 4)
	assert.Equal(t, "high-won", lq.LeadScores[0].ID)
	assert.Equal(t, 100, lq.LeadScores[0].Score)
	assert.Equal(t, "bare", lq.LeadScores[3].ID)
	assert.Equal(t, 0, lq.LeadScores[3].Score)

	assert.Equal(t, QualityIndicators{
		HasWebsite:        3,
		HighBudget:        2,
		MultiplePlatforms: 2,
		ImmediateTimeline: 2,
		CompleteProfile:   2,
	}, lq.QualityIndicators)

	// (100 + 100 + 20 + 0) / 4 = 55.
	assert.Equal(t, 55, lq.AvgLeadScore)

	// One of the two 70+ leads converted.
	assert.Equal(t, 50, lq.QualityConversionRate)
}

func TestComputeLeadQualityTopTwenty(t *testing.T) {
	svc := NewLeadQualityService(testLogger(t), testTracker(t))

	var snapshot []*lead.Lead
	for i := 0; i < 25; i++ {
		snapshot = append(snapshot, fullProfileLead(fmt.Sprintf("%d", i), lead.StatusNew))
	}

	lq := svc.ComputeLeadQuality(snapshot)

	assert.Len(t, lq.LeadScores, 20)
	// Equal scores keep snapshot order.
	assert.Equal(t, "0", lq.LeadScores[0].ID)
	assert.Equal(t, "19", lq.LeadScores[19].ID)
}

func TestComputeLeadQualityEmptySnapshot(t *testing.T) {
	svc := NewLeadQualityService(testLogger(t), testTracker(t))

	lq := svc.ComputeLeadQuality(nil)

	assert.Empty(t, lq.LeadScores)
	assert.Zero(t, lq.AvgLeadScore)
	assert.Zero(t, lq.QualityConversionRate)
	assert.Equal(t, QualityIndicators{}, lq.QualityIndicators)
}
