package services

import (
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// Overview holds the headline dashboard numbers.
type Overview struct {
	TotalSubmissions    int     `json:"total_submissions"`
	NewSubmissions      int     `json:"new_submissions"`
	InProgress          int     `json:"in_progress"`
	WonSubmissions      int     `json:"won_submissions"`
	LostSubmissions     int     `json:"lost_submissions"`
	ConversionRate      float64 `json:"conversion_rate"`
	WinRate             float64 `json:"win_rate"`
	MonthGrowth         Growth  `json:"month_growth"`
	AvgTimeToClose      int     `json:"avg_time_to_close"`
	ActivePipelineValue int     `json:"active_pipeline_value"`
}

// OverviewService assembles the headline metrics from the other calculators.
type OverviewService struct {
	revenueService *RevenueAnalyticsService
	teamService    *TeamPerformanceService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

func NewOverviewService(revenueService *RevenueAnalyticsService, teamService *TeamPerformanceService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *OverviewService {
	return &OverviewService{
		revenueService: revenueService,
		teamService:    teamService,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// ComputeOverview counts the snapshot by stage and compares this calendar
// month against last month. conversion_rate divides won by all submissions;
// win_rate divides won by closed.
func (s *OverviewService) ComputeOverview(snapshot []*lead.Lead, asOf time.Time) *Overview {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_overview")
	defer marker.Complete()

	asOf = asOf.UTC()
	thisMonthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	total := len(snapshot)
	newCount := 0
	contacted := 0
	proposal := 0
	won := 0
	lost := 0
	thisMonth := 0
	lastMonth := 0

	for _, l := range snapshot {
		switch l.Status {
		case lead.StatusNew:
			newCount++
		case lead.StatusContacted:
			contacted++
		case lead.StatusProposalSent:
			proposal++
		case lead.StatusWon:
			won++
		case lead.StatusLost:
			lost++
		}

		created := l.CreatedAt.UTC()
		if !created.Before(thisMonthStart) {
			thisMonth++
		} else if !created.Before(lastMonthStart) {
			lastMonth++
		}
	}

	conversionRate := 0.0
	if total > 0 {
		conversionRate = round1(float64(won) / float64(total) * 100)
	}

	winRate := 0.0
	if closed := won + lost; closed > 0 {
		winRate = round1(float64(won) / float64(closed) * 100)
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed overview metrics", "total", total, "won", won, "duration", time.Since(start))

	return &Overview{
		TotalSubmissions:    total,
		NewSubmissions:      newCount,
		InProgress:          contacted + proposal,
		WonSubmissions:      won,
		LostSubmissions:     lost,
		ConversionRate:      conversionRate,
		WinRate:             winRate,
		MonthGrowth:         CalculateGrowth(thisMonth, lastMonth),
		AvgTimeToClose:      s.teamService.AvgTimeToClose(snapshot),
		ActivePipelineValue: s.revenueService.ComputePipelineValue(snapshot),
	}
}
