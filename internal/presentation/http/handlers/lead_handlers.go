package handlers

import (
	"net/http"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/application/services"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
)

// NewsletterRequest carries a newsletter signup.
type NewsletterRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"firstName"`
	Source    string `json:"source"`
}

// LeadHandlers contains the lead capture endpoints.
type LeadHandlers struct {
	leadService *services.LeadService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewLeadHandlers creates lead handlers with injected dependencies.
func NewLeadHandlers(leadService *services.LeadService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *LeadHandlers {
	return &LeadHandlers{
		leadService: leadService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// SaveDraft stores the contact form's in-progress values.
func (h *LeadHandlers) SaveDraft(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var draft leads.FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	h.leadService.SaveDraft(sessionCtx.SessionID, draft)
	c.JSON(http.StatusOK, gin.H{"saved": true})
}

// GetDraft returns the session's current contact form values.
func (h *LeadHandlers) GetDraft(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}
	c.JSON(http.StatusOK, h.leadService.Draft(sessionCtx.SessionID))
}

// SubmitContact captures a contact form submission. On failure the response
// carries the restored draft so the page can re-fill the form.
func (h *LeadHandlers) SubmitContact(c *gin.Context) {
	start := time.Now()
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var draft leads.FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.leadService.SubmitContact(sessionCtx.SessionID, sessionCtx.VisitorID, draft)
	h.logger.Leads().Debug("Contact submission handled",
		"success", result.Success, "duration", time.Since(start))

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"draft":  h.leadService.Draft(sessionCtx.SessionID),
	})
}

// SubmitValuation captures a valuation request.
func (h *LeadHandlers) SubmitValuation(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var draft leads.FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result := h.leadService.SubmitValuation(sessionCtx.SessionID, sessionCtx.VisitorID, draft)
	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"draft":  h.leadService.Draft(sessionCtx.SessionID),
	})
}

// SubscribeNewsletter records a newsletter signup.
func (h *LeadHandlers) SubscribeNewsletter(c *gin.Context) {
	sessionCtx, exists := middleware.GetSessionContext(c)
	if !exists {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session context not found"})
		return
	}

	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	source := req.Source
	if source == "" {
		source = "footer"
	}

	result := h.leadService.SubscribeNewsletter(sessionCtx.SessionID, sessionCtx.VisitorID, req.Email, req.FirstName, source)
	c.JSON(http.StatusOK, gin.H{"result": result})
}
