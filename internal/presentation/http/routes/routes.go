// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/container"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/handlers"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(c *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Uploaded property media is served directly.
	r.Static("/media", config.MediaBasePath)

	// Initialize handlers
	catalogHandlers := handlers.NewCatalogHandlers(c.CatalogService, c.AnalyticsService, c.Logger, c.PerfTracker)
	sessionHandlers := handlers.NewSessionHandlers(c.SessionService, c.Logger, c.PerfTracker)
	consentHandlers := handlers.NewConsentHandlers(c.ConsentService, c.Logger)
	engagementHandlers := handlers.NewEngagementHandlers(c.PopupService, c.CacheManager.Sessions, c.Logger)
	leadHandlers := handlers.NewLeadHandlers(c.LeadService, c.Logger, c.PerfTracker)
	analyticsHandlers := handlers.NewAnalyticsHandlers(c.AnalyticsService, c.Logger)
	sitemapHandlers := handlers.NewSitemapHandlers(c.SitemapService, c.Logger)
	authHandlers := handlers.NewAuthHandlers(c.AuthService, c.Logger)
	adminHandlers := handlers.NewAdminHandlers(c.LeadService, c.EventRepository, c.ActivityFeed, c.ImageProcessor, c.Database, c.Logger, c.PerfTracker)

	// Crawlers fetch the sitemap without session headers.
	r.GET("/sitemap.xml", sitemapHandlers.GetSitemap)
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(200, gin.H{"status": "ok"}) })

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandlers.Login)

		// Public catalogue reads; session headers are optional except where
		// per-session state is touched.
		content := api.Group("/content")
		{
			content.GET("/properties", catalogHandlers.GetProperties)
			content.GET("/properties/featured", catalogHandlers.GetFeaturedProperties)
			content.GET("/properties/:slug", catalogHandlers.GetPropertyBySlug)
			content.GET("/areas", catalogHandlers.GetAreas)
			content.GET("/areas/:slug", catalogHandlers.GetAreaBySlug)
			content.GET("/blog", catalogHandlers.GetBlogPosts)
			content.GET("/blog/:slug", catalogHandlers.GetBlogPostBySlug)
			content.GET("/testimonials", catalogHandlers.GetTestimonials)
		}

		// Session-scoped routes require session identity headers.
		session := api.Group("")
		session.Use(middleware.SessionMiddleware())
		{
			session.POST("/session/register", sessionHandlers.Register)

			session.GET("/consent", consentHandlers.GetState)
			session.POST("/consent/accept-all", consentHandlers.AcceptAll)
			session.POST("/consent/reject-all", consentHandlers.RejectAll)
			session.POST("/consent/preferences", consentHandlers.SavePreferences)
			session.POST("/consent/settings/open", consentHandlers.OpenSettings)
			session.POST("/consent/settings/close", consentHandlers.CloseSettings)

			session.POST("/engagement/exit-intent", engagementHandlers.ReportExitIntent)
			session.POST("/engagement/scroll-depth", engagementHandlers.ReportScrollDepth)
			session.GET("/engagement/dialog", engagementHandlers.GetDialogState)
			session.POST("/engagement/dialog/step-one", engagementHandlers.SubmitStepOne)
			session.POST("/engagement/dialog/step-two", engagementHandlers.SubmitStepTwo)
			session.POST("/engagement/dialog/close", engagementHandlers.CloseDialog)
			session.POST("/engagement/overlay/open", engagementHandlers.OpenOverlay)
			session.POST("/engagement/overlay/close", engagementHandlers.CloseOverlay)

			session.GET("/leads/draft", leadHandlers.GetDraft)
			session.POST("/leads/draft", leadHandlers.SaveDraft)
			session.POST("/leads/contact", leadHandlers.SubmitContact)
			session.POST("/leads/valuation", leadHandlers.SubmitValuation)
			session.POST("/leads/newsletter", leadHandlers.SubscribeNewsletter)

			session.POST("/events", analyticsHandlers.TrackEvent)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			admin.GET("/leads", adminHandlers.GetRecentLeads)
			admin.GET("/metrics/events", adminHandlers.GetEventMetrics)
			admin.GET("/activity/stream", adminHandlers.StreamActivity)
			admin.POST("/media/photo", adminHandlers.UploadPropertyPhoto)
			admin.POST("/media/floor-plan", adminHandlers.UploadFloorPlan)
			admin.GET("/status", adminHandlers.GetSystemStatus)
		}
	}

	return r
}
