package handlers

import (
	"net/http"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/consent"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// SavePreferencesRequest carries the settings panel's selection.
type SavePreferencesRequest struct {
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// ConsentHandlers contains the consent banner and settings panel endpoints.
type ConsentHandlers struct {
	consentService *services.ConsentService
	logger         *logging.ChanneledLogger
}

// NewConsentHandlers creates consent handlers with injected dependencies.
func NewConsentHandlers(consentService *services.ConsentService, logger *logging.ChanneledLogger) *ConsentHandlers {
	return &ConsentHandlers{
		consentService: consentService,
		logger:         logger,
	}
}

// GetState returns the banner eligibility and current preferences.
func (h *ConsentHandlers) GetState(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"banner":      h.consentService.BannerState(sessionCtx.VisitorID),
		"preferences": h.consentService.Preferences(sessionCtx.VisitorID),
	})
}

// AcceptAll grants every category.
func (h *ConsentHandlers) AcceptAll(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	if err := h.consentService.AcceptAll(sessionCtx.VisitorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save consent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": h.consentService.Preferences(sessionCtx.VisitorID)})
}

// RejectAll declines everything optional.
func (h *ConsentHandlers) RejectAll(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	if err := h.consentService.RejectAll(sessionCtx.VisitorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save consent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": h.consentService.Preferences(sessionCtx.VisitorID)})
}

// SavePreferences persists a partial selection and closes the panel.
func (h *ConsentHandlers) SavePreferences(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req SavePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record := consent.Record{
		Analytics: req.Analytics,
		Marketing: req.Marketing,
	}
	if err := h.consentService.SavePreferences(sessionCtx.SessionID, sessionCtx.VisitorID, record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save consent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": h.consentService.Preferences(sessionCtx.VisitorID)})
}

// OpenSettings registers the settings panel on the overlay stack.
func (h *ConsentHandlers) OpenSettings(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	h.consentService.OpenSettings(sessionCtx.SessionID)
	c.JSON(http.StatusOK, gin.H{"open": true})
}

// CloseSettings releases the settings panel's overlay registration.
func (h *ConsentHandlers) CloseSettings(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	h.consentService.CloseSettings(sessionCtx.SessionID)
	c.JSON(http.StatusOK, gin.H{"open": false})
}
