// Package handlers provides HTTP handlers for the site's API endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// CatalogHandlers contains the read-only content endpoints.
type CatalogHandlers struct {
	catalogService *services.CatalogService
	analytics      *services.AnalyticsService
	logger         *logging.ChanneledLogger
	perfTracker    *performance.Tracker
}

// NewCatalogHandlers creates catalogue handlers with injected dependencies.
func NewCatalogHandlers(catalogService *services.CatalogService, analytics *services.AnalyticsService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *CatalogHandlers {
	return &CatalogHandlers{
		catalogService: catalogService,
		analytics:      analytics,
		logger:         logger,
		perfTracker:    perfTracker,
	}
}

// GetProperties returns all published listings.
func (h *CatalogHandlers) GetProperties(c *gin.Context) {
	start := time.Now()
	marker := h.perfTracker.StartOperation("get_properties_request", "")
	defer marker.Complete()

	properties := h.catalogService.GetPublishedProperties()

	marker.SetSuccess(true)
	h.logger.Content().Debug("Properties request completed", "count", len(properties), "duration", time.Since(start))
	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetFeaturedProperties returns listings flagged for the landing page.
func (h *CatalogHandlers) GetFeaturedProperties(c *gin.Context) {
	properties := h.catalogService.GetFeaturedProperties()
	c.JSON(http.StatusOK, gin.H{
		"properties": properties,
		"count":      len(properties),
	})
}

// GetPropertyBySlug returns one listing, or 404 so the edge redirects to the
// index.
func (h *CatalogHandlers) GetPropertyBySlug(c *gin.Context) {
	slug := c.Param("slug")

	property, found := h.catalogService.GetPropertyBySlug(slug)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "property not found", "redirect": "/properties"})
		return
	}

	if sessionCtx, exists := middleware.GetSessionContext(c); exists {
		h.analytics.TrackPropertyView(sessionCtx.SessionID, sessionCtx.VisitorID, slug)
	}
	c.JSON(http.StatusOK, property)
}

// GetAreas returns enabled area guides.
func (h *CatalogHandlers) GetAreas(c *gin.Context) {
	areas := h.catalogService.GetAreas()
	c.JSON(http.StatusOK, gin.H{
		"areas": areas,
		"count": len(areas),
	})
}

// GetAreaBySlug returns one area guide with its listings.
func (h *CatalogHandlers) GetAreaBySlug(c *gin.Context) {
	slug := c.Param("slug")

	area, found := h.catalogService.GetAreaBySlug(slug)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "area not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"area":       area,
		"properties": h.catalogService.GetPropertiesByArea(slug),
	})
}

// GetBlogPosts returns published insights articles.
func (h *CatalogHandlers) GetBlogPosts(c *gin.Context) {
	posts := h.catalogService.GetBlogPosts()
	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"count": len(posts),
	})
}

// GetBlogPostBySlug returns one article.
func (h *CatalogHandlers) GetBlogPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, found := h.catalogService.GetBlogPostBySlug(slug)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// GetTestimonials returns client testimonials.
func (h *CatalogHandlers) GetTestimonials(c *gin.Context) {
	testimonials := h.catalogService.GetTestimonials()
	c.JSON(http.StatusOK, gin.H{
		"testimonials": testimonials,
		"count":        len(testimonials),
	})
}
