package services

import (
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// budgetEstimates maps each intake budget band to a representative deal
// value. Bands outside this table contribute zero everywhere.
var budgetEstimates = map[string]int{
	lead.Budget1kTo5k:   3000,
	lead.Budget5kTo10k:  7500,
	lead.Budget10kTo25k: 17500,
	lead.Budget25kPlus:  35000,
}

// RevenueAnalytics summarizes estimated revenue by pipeline outcome.
type RevenueAnalytics struct {
	PipelineValue      int            `json:"pipeline_value"`
	WonRevenue         int            `json:"won_revenue"`
	LostRevenue        int            `json:"lost_revenue"`
	AvgDealSize        int            `json:"avg_deal_size"`
	BudgetDistribution map[string]int `json:"budget_distribution"`
	RevenueByMonth     map[string]int `json:"revenue_by_month"`
}

// RevenueAnalyticsService estimates revenue from qualitative budget bands.
type RevenueAnalyticsService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewRevenueAnalyticsService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *RevenueAnalyticsService {
	return &RevenueAnalyticsService{logger: logger, perfTracker: perfTracker}
}

// BudgetEstimate returns the point value for a budget band, 0 if unknown.
func BudgetEstimate(budget string) int {
	return budgetEstimates[budget]
}

// ComputeRevenue walks the snapshot once, attributing each recognized
// budget to won, lost, or open pipeline by the lead's current stage.
func (s *RevenueAnalyticsService) ComputeRevenue(snapshot []*lead.Lead) *RevenueAnalytics {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_revenue_analytics")
	defer marker.Complete()

	pipelineValue := 0
	wonRevenue := 0
	lostRevenue := 0
	wonCount := 0

	budgetDistribution := make(map[string]int)
	revenueByMonth := make(map[string]int)

	for _, l := range snapshot {
		if l.Status == lead.StatusWon {
			wonCount++
		}

		value, ok := budgetEstimates[l.Budget]
		if !ok {
			continue
		}
		budgetDistribution[l.Budget]++

		switch {
		case l.Status == lead.StatusWon:
			wonRevenue += value
			monthKey := l.CreatedAt.UTC().Format("2006-01")
			revenueByMonth[monthKey] += value
		case l.Status == lead.StatusLost:
			lostRevenue += value
		case lead.IsActive(l.Status):
			pipelineValue += value
		}
	}

	avgDealSize := 0
	if wonCount > 0 {
		avgDealSize = roundInt(float64(wonRevenue) / float64(wonCount))
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed revenue analytics", "wonRevenue", wonRevenue, "pipelineValue", pipelineValue, "duration", time.Since(start))

	return &RevenueAnalytics{
		PipelineValue:      pipelineValue,
		WonRevenue:         wonRevenue,
		LostRevenue:        lostRevenue,
		AvgDealSize:        avgDealSize,
		BudgetDistribution: budgetDistribution,
		RevenueByMonth:     revenueByMonth,
	}
}

// ComputePipelineValue totals budget estimates over open-pipeline leads.
// The overview section reports this as active_pipeline_value.
func (s *RevenueAnalyticsService) ComputePipelineValue(snapshot []*lead.Lead) int {
	total := 0
	for _, l := range snapshot {
		if lead.IsActive(l.Status) {
			total += budgetEstimates[l.Budget]
		}
	}
	return total
}
