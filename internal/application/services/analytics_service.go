// Package services holds the stateless analytics calculators that turn a
// lead snapshot into dashboard report sections. Every windowed calculation
// takes an explicit asOf instant so results are deterministic for a given
// snapshot and time.
package services

import (
	"time"

	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
)

// ComprehensiveMetrics is the full merged dashboard report. A nil section
// means that calculator failed; the rest of the report is still served.
type ComprehensiveMetrics struct {
	Overview          *Overview          `json:"overview"`
	ConversionFunnel  *ConversionFunnel  `json:"conversion_funnel"`
	RevenueAnalytics  *RevenueAnalytics  `json:"revenue_analytics"`
	PlatformAnalytics *PlatformAnalytics `json:"platform_analytics"`
	TimelineAnalytics *TimelineAnalytics `json:"timeline_analytics"`
	LeadQuality       *LeadQuality       `json:"lead_quality"`
	TeamPerformance   *TeamPerformance   `json:"team_performance"`
	Forecasting       *Forecast          `json:"forecasting"`
}

// AnalyticsService assembles the full report from the section calculators.
type AnalyticsService struct {
	overviewService *OverviewService
	funnelService   *FunnelAnalyticsService
	revenueService  *RevenueAnalyticsService
	platformService *PlatformAnalyticsService
	timelineService *TimelineAnalyticsService
	qualityService  *LeadQualityService
	teamService     *TeamPerformanceService
	forecastService *ForecastService
	logger          *logging.ChanneledLogger
	perfTracker     *performance.Tracker
}

func NewAnalyticsService(
	overviewService *OverviewService,
	funnelService *FunnelAnalyticsService,
	revenueService *RevenueAnalyticsService,
	platformService *PlatformAnalyticsService,
	timelineService *TimelineAnalyticsService,
	qualityService *LeadQualityService,
	teamService *TeamPerformanceService,
	forecastService *ForecastService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *AnalyticsService {
	return &AnalyticsService{
		overviewService: overviewService,
		funnelService:   funnelService,
		revenueService:  revenueService,
		platformService: platformService,
		timelineService: timelineService,
		qualityService:  qualityService,
		teamService:     teamService,
		forecastService: forecastService,
		logger:          logger,
		perfTracker:     perfTracker,
	}
}

// GetComprehensiveMetrics computes every section over one snapshot. Each
// section runs behind a recover boundary so a broken calculator surfaces as
// a nil section instead of blanking the whole dashboard.
func (s *AnalyticsService) GetComprehensiveMetrics(snapshot []*lead.Lead, asOf time.Time) *ComprehensiveMetrics {
	start := time.Now()
	marker := s.perfTracker.StartOperation("compute_comprehensive_metrics")
	defer marker.Complete()

	report := &ComprehensiveMetrics{}

	s.computeSection("overview", func() { report.Overview = s.overviewService.ComputeOverview(snapshot, asOf) })
	s.computeSection("conversion_funnel", func() { report.ConversionFunnel = s.funnelService.ComputeFunnel(snapshot) })
	s.computeSection("revenue_analytics", func() { report.RevenueAnalytics = s.revenueService.ComputeRevenue(snapshot) })
	s.computeSection("platform_analytics", func() { report.PlatformAnalytics = s.platformService.ComputePlatforms(snapshot) })
	s.computeSection("timeline_analytics", func() { report.TimelineAnalytics = s.timelineService.ComputeTimeline(snapshot, asOf) })
	s.computeSection("lead_quality", func() { report.LeadQuality = s.qualityService.ComputeLeadQuality(snapshot) })
	s.computeSection("team_performance", func() { report.TeamPerformance = s.teamService.ComputeTeamPerformance(snapshot) })
	s.computeSection("forecasting", func() { report.Forecasting = s.forecastService.ComputeForecast(snapshot, asOf) })

	marker.SetSuccess(true)
	s.logger.Analytics().Info("Computed comprehensive metrics", "leads", len(snapshot), "asOf", asOf, "duration", time.Since(start))

	return report
}

// computeSection isolates one calculator; a panic downgrades to a nil
// section with an error log.
func (s *AnalyticsService) computeSection(name string, compute func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Analytics().Error("Analytics section failed, omitting from report", "section", name, "panic", r)
		}
	}()
	compute()
}
