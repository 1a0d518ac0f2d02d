// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/mwdesignstudio/leadpulse-go/internal/application/services"
	domain "github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/performance"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/database"
	leadrepo "github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/persistence/lead"
)

// Container holds all singleton services and infrastructure dependencies.
type Container struct {
	// Analytics services (stateless singletons)
	AnalyticsService *services.AnalyticsService
	OverviewService  *services.OverviewService
	FunnelService    *services.FunnelAnalyticsService
	RevenueService   *services.RevenueAnalyticsService
	PlatformService  *services.PlatformAnalyticsService
	TimelineService  *services.TimelineAnalyticsService
	QualityService   *services.LeadQualityService
	TeamService      *services.TeamPerformanceService
	ForecastService  *services.ForecastService
	RangeService     *services.RangeAnalyticsService
	ExportService    *services.ExportService
	AuthService      *services.AuthService

	// Infrastructure dependencies
	DB          *database.DB
	LeadRepo    domain.Repository
	Logger      *logging.ChanneledLogger
	PerfTracker *performance.Tracker
}

// NewContainer creates and wires all singleton services.
func NewContainer(db *database.DB, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	leadRepo := leadrepo.NewSQLLeadRepository(db, logger)

	revenueService := services.NewRevenueAnalyticsService(logger, perfTracker)
	teamService := services.NewTeamPerformanceService(logger, perfTracker)
	overviewService := services.NewOverviewService(revenueService, teamService, logger, perfTracker)
	funnelService := services.NewFunnelAnalyticsService(logger, perfTracker)
	platformService := services.NewPlatformAnalyticsService(logger, perfTracker)
	timelineService := services.NewTimelineAnalyticsService(logger, perfTracker)
	qualityService := services.NewLeadQualityService(logger, perfTracker)
	forecastService := services.NewForecastService(logger, perfTracker)

	return &Container{
		AnalyticsService: services.NewAnalyticsService(
			overviewService,
			funnelService,
			revenueService,
			platformService,
			timelineService,
			qualityService,
			teamService,
			forecastService,
			logger,
			perfTracker,
		),
		OverviewService: overviewService,
		FunnelService:   funnelService,
		RevenueService:  revenueService,
		PlatformService: platformService,
		TimelineService: timelineService,
		QualityService:  qualityService,
		TeamService:     teamService,
		ForecastService: forecastService,
		RangeService:    services.NewRangeAnalyticsService(logger, perfTracker),
		ExportService:   services.NewExportService(logger, perfTracker),
		AuthService:     services.NewAuthService(logger),

		DB:          db,
		LeadRepo:    leadRepo,
		Logger:      logger,
		PerfTracker: perfTracker,
	}
}
