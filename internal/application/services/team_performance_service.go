package services

import (
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// quickResponseDays is the resolution cutoff counted as a quick close.
const quickResponseDays = 3

// StatusDistribution holds the resolved count and average resolution time
// per terminal stage. Both are zero when no lead closed in that stage.
type StatusDistribution struct {
	WonCount    int `json:"won_count"`
	WonAvgTime  int `json:"won_avg_time"`
	LostCount   int `json:"lost_count"`
	LostAvgTime int `json:"lost_avg_time"`
}

// TeamPerformance reports resolution-time metrics over closed leads.
type TeamPerformance struct {
	AvgResolutionTime  int                `json:"avg_resolution_time"`
	QuickResponseRate  int                `json:"quick_response_rate"`
	StatusDistribution StatusDistribution `json:"status_distribution"`
}

// TeamPerformanceService measures elapsed days from creation to close.
type TeamPerformanceService struct {
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

func NewTeamPerformanceService(logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *TeamPerformanceService {
	return &TeamPerformanceService{logger: logger, perfTracker: perfTracker}
}

// ComputeTeamPerformance averages resolution times for Won/Lost leads that
// carry both timestamps. Sub-day closes truncate to zero days.
func (s *TeamPerformanceService) ComputeTeamPerformance(snapshot []*lead.Lead) *TeamPerformance {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_team_performance")
	defer marker.Complete()

	var resolutionDays []int
	byStatus := map[string][]int{}

	for _, l := range snapshot {
		if !lead.IsTerminal(l.Status) || l.UpdatedAt == nil {
			continue
		}
		days := s.resolutionDays(l)
		resolutionDays = append(resolutionDays, days)
		byStatus[l.Status] = append(byStatus[l.Status], days)
	}

	avgResolution := 0
	quickRate := 0
	if len(resolutionDays) > 0 {
		total := 0
		quick := 0
		for _, d := range resolutionDays {
			total += d
			if d <= quickResponseDays {
				quick++
			}
		}
		avgResolution = roundInt(float64(total) / float64(len(resolutionDays)))
		quickRate = roundInt(float64(quick) / float64(len(resolutionDays)) * 100)
	}

	marker.SetSuccess(true)
	s.logger.Analytics().Debug("Computed team performance", "resolved", len(resolutionDays), "avgDays", avgResolution, "duration", time.Since(start))

	return &TeamPerformance{
		AvgResolutionTime: avgResolution,
		QuickResponseRate: quickRate,
		StatusDistribution: StatusDistribution{
			WonCount:    len(byStatus[lead.StatusWon]),
			WonAvgTime:  avgDays(byStatus[lead.StatusWon]),
			LostCount:   len(byStatus[lead.StatusLost]),
			LostAvgTime: avgDays(byStatus[lead.StatusLost]),
		},
	}
}

// AvgTimeToClose is the overview-level average over all closed leads.
func (s *TeamPerformanceService) AvgTimeToClose(snapshot []*lead.Lead) int {
	var days []int
	for _, l := range snapshot {
		if lead.IsTerminal(l.Status) && l.UpdatedAt != nil {
			days = append(days, s.resolutionDays(l))
		}
	}
	return avgDays(days)
}

// resolutionDays truncates the close duration to whole days. An updated_at
// earlier than created_at is a data-quality fault: clamp to zero and warn.
func (s *TeamPerformanceService) resolutionDays(l *lead.Lead) int {
	elapsed := l.UpdatedAt.Sub(l.CreatedAt)
	if elapsed < 0 {
		s.logger.Analytics().Warn("Lead updated_at precedes created_at, clamping resolution time to 0",
			"leadId", l.ID, "createdAt", l.CreatedAt, "updatedAt", *l.UpdatedAt)
		return 0
	}
	return int(elapsed.Hours() / 24)
}

func avgDays(days []int) int {
	if len(days) == 0 {
		return 0
	}
	total := 0
	for _, d := range days {
		total += d
	}
	return roundInt(float64(total) / float64(len(days)))
}
