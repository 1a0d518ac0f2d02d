// Package handlers provides HTTP handlers for the admin dashboard API.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwdesignstudio/leadpulse-go/internal/application/services"
	"github.com/mwdesignstudio/leadpulse-go/internal/domain/lead"
	"github.com/mwdesignstudio/leadpulse-go/internal/infrastructure/observability/logging"
)

// AnalyticsHandlers contains all analytics-related HTTP handlers. Every
// handler fetches one fresh snapshot and computes over it, so concurrent
// dashboard requests never share mutable state.
type AnalyticsHandlers struct {
	leadRepo         lead.Repository
	analyticsService *services.AnalyticsService
	overviewService  *services.OverviewService
	funnelService    *services.FunnelAnalyticsService
	revenueService   *services.RevenueAnalyticsService
	platformService  *services.PlatformAnalyticsService
	timelineService  *services.TimelineAnalyticsService
	qualityService   *services.LeadQualityService
	teamService      *services.TeamPerformanceService
	forecastService  *services.ForecastService
	rangeService     *services.RangeAnalyticsService
	logger           *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies.
func NewAnalyticsHandlers(
	leadRepo lead.Repository,
	analyticsService *services.AnalyticsService,
	overviewService *services.OverviewService,
	funnelService *services.FunnelAnalyticsService,
	revenueService *services.RevenueAnalyticsService,
	platformService *services.PlatformAnalyticsService,
	timelineService *services.TimelineAnalyticsService,
	qualityService *services.LeadQualityService,
	teamService *services.TeamPerformanceService,
	forecastService *services.ForecastService,
	rangeService *services.RangeAnalyticsService,
	logger *logging.ChanneledLogger,
) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		leadRepo:         leadRepo,
		analyticsService: analyticsService,
		overviewService:  overviewService,
		funnelService:    funnelService,
		revenueService:   revenueService,
		platformService:  platformService,
		timelineService:  timelineService,
		qualityService:   qualityService,
		teamService:      teamService,
		forecastService:  forecastService,
		rangeService:     rangeService,
		logger:           logger,
	}
}

// parseAsOf reads the optional as_of query parameter (RFC3339), defaulting
// to now. Deterministic windows for testing and backfill.
func (h *AnalyticsHandlers) parseAsOf(c *gin.Context) time.Time {
	if raw := c.Query("as_of"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return t.UTC()
		}
		h.logger.Analytics().Warn("Ignoring malformed as_of parameter", "as_of", raw)
	}
	return time.Now().UTC()
}

// snapshot fetches the full lead collection, writing a 500 on failure.
func (h *AnalyticsHandlers) snapshot(c *gin.Context) ([]*lead.Lead, bool) {
	leads, err := h.leadRepo.FindAll()
	if err != nil {
		h.logger.Analytics().Error("Failed to load lead snapshot", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return nil, false
	}
	return leads, true
}

// HandleDashboard handles GET /api/v1/analytics/dashboard.
func (h *AnalyticsHandlers) HandleDashboard(c *gin.Context) {
	start := time.Now()
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}

	report := h.analyticsService.GetComprehensiveMetrics(snapshot, h.parseAsOf(c))
	h.logger.Analytics().Info("Dashboard analytics request completed", "leads", len(snapshot), "duration", time.Since(start))
	c.JSON(http.StatusOK, report)
}

// HandleOverview handles GET /api/v1/analytics/overview.
func (h *AnalyticsHandlers) HandleOverview(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.overviewService.ComputeOverview(snapshot, h.parseAsOf(c)))
}

// HandleFunnel handles GET /api/v1/analytics/funnel.
func (h *AnalyticsHandlers) HandleFunnel(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.funnelService.ComputeFunnel(snapshot))
}

// HandleRevenue handles GET /api/v1/analytics/revenue.
func (h *AnalyticsHandlers) HandleRevenue(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.revenueService.ComputeRevenue(snapshot))
}

// HandlePlatforms handles GET /api/v1/analytics/platforms.
func (h *AnalyticsHandlers) HandlePlatforms(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.platformService.ComputePlatforms(snapshot))
}

// HandleTimeline handles GET /api/v1/analytics/timeline.
func (h *AnalyticsHandlers) HandleTimeline(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.timelineService.ComputeTimeline(snapshot, h.parseAsOf(c)))
}

// HandleLeadQuality handles GET /api/v1/analytics/lead-quality.
func (h *AnalyticsHandlers) HandleLeadQuality(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.qualityService.ComputeLeadQuality(snapshot))
}

// HandleTeamPerformance handles GET /api/v1/analytics/team-performance.
func (h *AnalyticsHandlers) HandleTeamPerformance(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.teamService.ComputeTeamPerformance(snapshot))
}

// HandleForecast handles GET /api/v1/analytics/forecast.
func (h *AnalyticsHandlers) HandleForecast(c *gin.Context) {
	snapshot, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.forecastService.ComputeForecast(snapshot, h.parseAsOf(c)))
}

// HandleRange handles GET /api/v1/analytics/range?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *AnalyticsHandlers) HandleRange(c *gin.Context) {
	startDate, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected YYYY-MM-DD"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end date before start date"})
		return
	}

	leads, err := h.leadRepo.FindByCreatedRange(startDate, endDate)
	if err != nil {
		h.logger.Analytics().Error("Failed to load leads for range", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}

	c.JSON(http.StatusOK, h.rangeService.ComputeRange(leads, startDate, endDate))
}
