package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/database"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/media"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/messaging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/analytics"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// UploadPhotoRequest carries a base64 property photo.
type UploadPhotoRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Data       string `json:"data" binding:"required"`
}

// UploadFloorPlanRequest carries a base64 floor plan.
type UploadFloorPlanRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Data       string `json:"data" binding:"required"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// AdminHandlers contains the authenticated dashboard endpoints.
type AdminHandlers struct {
	leadService *services.LeadService
	events      *persistence.EventRepository
	feed        *messaging.ActivityBroadcaster
	processor   *media.ImageProcessor
	db          *database.Database
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewAdminHandlers creates admin handlers with injected dependencies.
func NewAdminHandlers(
	leadService *services.LeadService,
	events *persistence.EventRepository,
	feed *messaging.ActivityBroadcaster,
	processor *media.ImageProcessor,
	db *database.Database,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *AdminHandlers {
	return &AdminHandlers{
		leadService: leadService,
		events:      events,
		feed:        feed,
		processor:   processor,
		db:          db,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// GetRecentLeads returns the latest captured leads.
func (h *AdminHandlers) GetRecentLeads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := h.leadService.RecentLeads(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leads"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"leads": records,
		"count": len(records),
	})
}

// GetEventMetrics returns event counts by action over a trailing window.
func (h *AdminHandlers) GetEventMetrics(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days <= 0 || days > 90 {
		days = 7
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	counts, err := h.events.CountByAction(since)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"since":  since,
		"counts": counts,
	})
}

// StreamActivity upgrades to a websocket and joins the live activity feed.
func (h *AdminHandlers) StreamActivity(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.System().Warn("Activity feed upgrade failed", "error", err.Error())
		return
	}

	client := &messaging.ActivityClient{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.feed.Register(client)
	go h.feed.WritePump(client)
}

// UploadPropertyPhoto stores a listing photo and its serving variants.
func (h *AdminHandlers) UploadPropertyPhoto(c *gin.Context) {
	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "propertyId and data are required"})
		return
	}

	original, variants, err := h.processor.ProcessPropertyPhoto(req.Data, req.PropertyID)
	if err != nil {
		h.logger.Content().Error("Property photo upload failed", "error", err.Error(), "propertyId", req.PropertyID)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"original": original,
		"variants": variants,
	})
}

// UploadFloorPlan stores a floor plan image.
func (h *AdminHandlers) UploadFloorPlan(c *gin.Context) {
	var req UploadFloorPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "propertyId and data are required"})
		return
	}

	url, err := h.processor.ProcessFloorPlan(req.Data, req.PropertyID)
	if err != nil {
		h.logger.Content().Error("Floor plan upload failed", "error", err.Error(), "propertyId", req.PropertyID)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// GetSystemStatus reports database and performance health.
func (h *AdminHandlers) GetSystemStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"database":    h.db.Status(),
		"performance": h.perfTracker.GetOverallStats(),
	})
}
