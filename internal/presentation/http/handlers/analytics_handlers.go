package handlers

import (
	"net/http"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// TrackEventRequest carries one client-reported event.
type TrackEventRequest struct {
	Action   string `json:"action" binding:"required"`
	Category string `json:"category" binding:"required"`
	Label    string `json:"label"`
}

// AnalyticsHandlers contains the event tracking endpoint.
type AnalyticsHandlers struct {
	analyticsService *services.AnalyticsService
	logger           *logging.ChanneledLogger
}

// NewAnalyticsHandlers creates analytics handlers with injected dependencies.
func NewAnalyticsHandlers(analyticsService *services.AnalyticsService, logger *logging.ChanneledLogger) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// TrackEvent records one event. Always returns accepted; consent gating and
// persistence failures are invisible to the page.
func (h *AnalyticsHandlers) TrackEvent(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req TrackEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "action and category are required"})
		return
	}

	h.analyticsService.TrackEvent(sessionCtx.SessionID, sessionCtx.VisitorID, req.Action, req.Category, req.Label)
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
