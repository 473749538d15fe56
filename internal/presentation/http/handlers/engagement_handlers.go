package handlers

import (
	"net/http"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// StepOneRequest carries the popup's first capture step.
type StepOneRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	Email     string `json:"email" binding:"required"`
}

// StepTwoRequest carries the popup's buyer criteria step.
type StepTwoRequest struct {
	FirstName  string `json:"firstName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address" binding:"required"`
	PriceRange string `json:"priceRange" binding:"required"`
	MinBeds    int    `json:"minBeds"`
}

// OverlayRequest names an overlay surface being opened or closed.
type OverlayRequest struct {
	Name string `json:"name" binding:"required"`
}

// EngagementHandlers contains the popup trigger, overlay, and dialog flow
// endpoints.
type EngagementHandlers struct {
	popupService *services.PopupService
	sessions     *stores.SessionStore
	logger       *logging.ChanneledLogger
}

// NewEngagementHandlers creates engagement handlers with injected dependencies.
func NewEngagementHandlers(popupService *services.PopupService, sessions *stores.SessionStore, logger *logging.ChanneledLogger) *EngagementHandlers {
	return &EngagementHandlers{
		popupService: popupService,
		sessions:     sessions,
		logger:       logger,
	}
}

// OpenOverlay registers a modal surface on the session's overlay stack.
func (h *EngagementHandlers) OpenOverlay(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req OverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "overlay name is required"})
		return
	}

	h.sessions.OverlayPush(sessionCtx.SessionID, req.Name)
	c.JSON(http.StatusOK, gin.H{"overlayOpen": true})
}

// CloseOverlay releases a modal surface's overlay registration.
func (h *EngagementHandlers) CloseOverlay(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req OverlayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "overlay name is required"})
		return
	}

	h.sessions.OverlayPop(sessionCtx.SessionID, req.Name)
	c.JSON(http.StatusOK, gin.H{"overlayOpen": h.sessions.OverlayOpen(sessionCtx.SessionID)})
}

// ReportExitIntent accepts a pointer movement report.
func (h *EngagementHandlers) ReportExitIntent(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var signal engagement.ExitIntentSignal
	if err := c.ShouldBindJSON(&signal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.popupService.ReportExitIntent(sessionCtx.SessionID, signal)
	c.JSON(http.StatusOK, h.dialogState(sessionCtx.SessionID))
}

// ReportScrollDepth accepts a scroll position report.
func (h *EngagementHandlers) ReportScrollDepth(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var signal engagement.ScrollDepthSignal
	if err := c.ShouldBindJSON(&signal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.popupService.ReportScrollDepth(sessionCtx.SessionID, signal)
	c.JSON(http.StatusOK, h.dialogState(sessionCtx.SessionID))
}

// GetDialogState returns the popup's current step for the session.
func (h *EngagementHandlers) GetDialogState(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}
	c.JSON(http.StatusOK, h.dialogState(sessionCtx.SessionID))
}

// SubmitStepOne captures first name and email, advancing to step two.
func (h *EngagementHandlers) SubmitStepOne(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req StepOneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "firstName and email are required"})
		return
	}

	result := h.popupService.SubmitStepOne(sessionCtx.SessionID, sessionCtx.VisitorID, req.FirstName, req.Email)
	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"step":   h.popupService.DialogStep(sessionCtx.SessionID),
	})
}

// SubmitStepTwo captures buyer criteria and closes the dialog.
func (h *EngagementHandlers) SubmitStepTwo(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req StepTwoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "address and priceRange are required"})
		return
	}

	result := h.popupService.SubmitStepTwo(sessionCtx.SessionID, sessionCtx.VisitorID,
		req.FirstName, req.Email, req.Phone, req.Address, req.PriceRange, req.MinBeds)
	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"step":   h.popupService.DialogStep(sessionCtx.SessionID),
	})
}

// CloseDialog dismisses the popup at its current step.
func (h *EngagementHandlers) CloseDialog(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	h.popupService.CloseDialog(sessionCtx.SessionID, sessionCtx.VisitorID)
	c.JSON(http.StatusOK, h.dialogState(sessionCtx.SessionID))
}

func (h *EngagementHandlers) dialogState(sessionID string) gin.H {
	step := h.popupService.DialogStep(sessionID)
	return gin.H{
		"step": step,
		"open": step != engagement.DialogClosed,
	}
}
