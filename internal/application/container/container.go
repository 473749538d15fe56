// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/manager"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/database"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/email"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/media"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/messaging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	analyticsrepo "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/analytics"
	catalogrepo "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/catalog"
	leadsrepo "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	CatalogService   *services.CatalogService
	LeadService      *services.LeadService
	ConsentService   *services.ConsentService
	AnalyticsService *services.AnalyticsService
	PopupService     *services.PopupService
	SessionService   *services.SessionService
	SitemapService   *services.SitemapService
	AuthService      *services.AuthService

	// Infrastructure
	Database        *database.Database
	CacheManager    *manager.Manager
	SettingsService *settings.Service
	SessionSettings *settings.MemoryStore
	EventRepository *analyticsrepo.EventRepository
	ActivityFeed    *messaging.ActivityBroadcaster
	ImageProcessor  *media.ImageProcessor
	EmailService    email.Service
	Logger          *logging.ChanneledLogger
	PerfTracker     *performance.Tracker
}

// NewContainer creates and wires all singleton services
func NewContainer(db *database.Database, cacheManager *manager.Manager, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *Container {
	// Settings: profile state in SQL, session state in memory.
	sessionSettings := settings.NewMemoryStore()
	settingsService := settings.NewService(
		settings.NewSQLStore(db.Conn, logger),
		sessionSettings,
	)

	// Repositories
	propertyRepo := catalogrepo.NewPropertyRepository(db.Conn, logger)
	areaRepo := catalogrepo.NewAreaRepository(db.Conn, logger)
	blogPostRepo := catalogrepo.NewBlogPostRepository(db.Conn, logger)
	testimonialRepo := catalogrepo.NewTestimonialRepository(db.Conn, logger)
	leadRepo := leadsrepo.NewLeadRepository(db.Conn, logger)
	subscriberRepo := leadsrepo.NewSubscriberRepository(db.Conn, logger)
	eventRepo := analyticsrepo.NewEventRepository(db.Conn, logger)

	// Email is optional; without an API key, lead notifications are skipped.
	emailService, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Email service disabled", "reason", err.Error())
		emailService = nil
	}

	activityFeed := messaging.NewActivityBroadcaster(cacheManager, logger)

	analyticsService := services.NewAnalyticsService(eventRepo, settingsService, logger)
	catalogService := services.NewCatalogService(cacheManager, propertyRepo, areaRepo, blogPostRepo, testimonialRepo, logger, perfTracker)
	leadService := services.NewLeadService(leadRepo, subscriberRepo, cacheManager.Sessions, analyticsService, emailService, activityFeed, logger, perfTracker)
	consentService := services.NewConsentService(settingsService, cacheManager.Sessions, analyticsService, logger)
	popupService := services.NewPopupService(cacheManager.Sessions, settingsService, analyticsService, leadService, activityFeed, logger)
	sessionService := services.NewSessionService(cacheManager.Sessions, settingsService, consentService, popupService, logger, perfTracker)
	sitemapService := services.NewSitemapService(catalogService, logger)
	authService := services.NewAuthService(logger)

	return &Container{
		CatalogService:   catalogService,
		LeadService:      leadService,
		ConsentService:   consentService,
		AnalyticsService: analyticsService,
		PopupService:     popupService,
		SessionService:   sessionService,
		SitemapService:   sitemapService,
		AuthService:      authService,

		Database:        db,
		CacheManager:    cacheManager,
		SettingsService: settingsService,
		SessionSettings: sessionSettings,
		EventRepository: eventRepo,
		ActivityFeed:    activityFeed,
		ImageProcessor:  media.NewImageProcessor(config.MediaBasePath),
		EmailService:    emailService,
		Logger:          logger,
		PerfTracker:     perfTracker,
	}
}
