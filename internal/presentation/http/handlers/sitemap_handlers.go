package handlers

import (
	"net/http"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/gin-gonic/gin"
)

// SitemapHandlers contains the sitemap endpoint.
type SitemapHandlers struct {
	sitemapService *services.SitemapService
	logger         *logging.ChanneledLogger
}

// NewSitemapHandlers creates sitemap handlers with injected dependencies.
func NewSitemapHandlers(sitemapService *services.SitemapService, logger *logging.ChanneledLogger) *SitemapHandlers {
	return &SitemapHandlers{
		sitemapService: sitemapService,
		logger:         logger,
	}
}

// GetSitemap renders the sitemap XML.
func (h *SitemapHandlers) GetSitemap(c *gin.Context) {
	body, err := h.sitemapService.Generate()
	if err != nil {
		h.logger.Content().Error("Sitemap generation failed", "error", err.Error())
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", body)
}
