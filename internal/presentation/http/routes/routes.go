// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mwdesignstudio/leadpulse-go/internal/application/container"
	"github.com/mwdesignstudio/leadpulse-go/internal/presentation/http/handlers"
	"github.com/mwdesignstudio/leadpulse-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	analyticsHandlers := handlers.NewAnalyticsHandlers(
		c.LeadRepo,
		c.AnalyticsService,
		c.OverviewService,
		c.FunnelService,
		c.RevenueService,
		c.PlatformService,
		c.TimelineService,
		c.QualityService,
		c.TeamService,
		c.ForecastService,
		c.RangeService,
		c.Logger,
	)
	authHandlers := handlers.NewAuthHandlers(c.AuthService, c.Logger)
	dbHandlers := handlers.NewDBHandlers(c.DB, c.Logger)
	exportHandlers := handlers.NewExportHandlers(c.LeadRepo, c.ExportService, c.Logger)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandlers.PostLogin)
		api.GET("/db/status", dbHandlers.GetDatabaseStatus)

		// Admin-only dashboard endpoints
		admin := api.Group("")
		admin.Use(middleware.AdminAuthMiddleware(c.AuthService))
		{
			analytics := admin.Group("/analytics")
			{
				analytics.GET("/dashboard", analyticsHandlers.HandleDashboard)
				analytics.GET("/overview", analyticsHandlers.HandleOverview)
				analytics.GET("/funnel", analyticsHandlers.HandleFunnel)
				analytics.GET("/revenue", analyticsHandlers.HandleRevenue)
				analytics.GET("/platforms", analyticsHandlers.HandlePlatforms)
				analytics.GET("/timeline", analyticsHandlers.HandleTimeline)
				analytics.GET("/lead-quality", analyticsHandlers.HandleLeadQuality)
				analytics.GET("/team-performance", analyticsHandlers.HandleTeamPerformance)
				analytics.GET("/forecast", analyticsHandlers.HandleForecast)
				analytics.GET("/range", analyticsHandlers.HandleRange)
			}

			admin.GET("/leads/export", exportHandlers.GetExport)
		}
	}

	return r
}
