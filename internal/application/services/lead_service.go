package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/email"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/messaging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/security"
)

// SubmitResult is what a capture surface renders after a submission attempt.
type SubmitResult struct {
	Success bool   `json:"success"`
	Toast   string `json:"toast"`
}

// LeadService owns lead capture: contact submissions with optimistic draft
// semantics, newsletter signups, and the popup's two lead writes. Email
// notification and the admin activity feed are best effort.
type LeadService struct {
	leads       *persistence.LeadRepository
	subscribers *persistence.SubscriberRepository
	sessions    *stores.SessionStore
	analytics   *AnalyticsService
	email       email.Service
	feed        *messaging.ActivityBroadcaster
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewLeadService creates a new lead capture service. The email service may be
// nil when no API key is configured; notifications are skipped.
func NewLeadService(
	leadRepo *persistence.LeadRepository,
	subscriberRepo *persistence.SubscriberRepository,
	sessions *stores.SessionStore,
	analytics *AnalyticsService,
	emailSvc email.Service,
	feed *messaging.ActivityBroadcaster,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *LeadService {
	return &LeadService{
		leads:       leadRepo,
		subscribers: subscriberRepo,
		sessions:    sessions,
		analytics:   analytics,
		email:       emailSvc,
		feed:        feed,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// SaveDraft stores the contact form's in-progress values for a session.
func (s *LeadService) SaveDraft(sessionID string, draft leads.FormDraft) {
	s.sessions.SetFormDraft(sessionID, draft)
}

// Draft returns the session's current contact form values.
func (s *LeadService) Draft(sessionID string) leads.FormDraft {
	return s.sessions.FormDraft(sessionID)
}

// SubmitContact captures a contact form submission with optimistic clear
// semantics. The draft is cleared immediately; if the write fails every
// previously entered value is restored and the result carries an error toast.
func (s *LeadService) SubmitContact(sessionID, visitorID string, draft leads.FormDraft) SubmitResult {
	marker := s.perfTracker.StartOperation("lead_submit_contact", sessionID)
	defer marker.Complete()

	if draft.Name == "" || draft.Email == "" {
		return SubmitResult{Success: false, Toast: "Please provide your name and email address."}
	}

	inquiryType := draft.InquiryType
	if inquiryType == "" {
		inquiryType = leads.InquiryGeneral
	}

	record := &leads.LeadRecord{
		ID:          security.GenerateULID(),
		Name:        strings.TrimSpace(draft.Name),
		Email:       strings.ToLower(strings.TrimSpace(draft.Email)),
		Phone:       strings.TrimSpace(draft.Phone),
		Message:     draft.Message,
		InquiryType: inquiryType,
		PropertyID:  draft.PropertyID,
		Source:      "contact_form",
		CreatedAt:   time.Now().UTC(),
	}

	action := OptimisticAction[leads.FormDraft]{
		Apply: func() leads.FormDraft {
			previous := s.sessions.FormDraft(sessionID)
			s.sessions.SetFormDraft(sessionID, leads.FormDraft{})
			return previous
		},
		Commit: func() error {
			return s.leads.Store(record)
		},
		Rollback: func(previous leads.FormDraft) {
			s.sessions.SetFormDraft(sessionID, previous)
		},
	}

	if err := action.Run(); err != nil {
		marker.SetError(err)
		s.logger.Leads().Error("Contact submission failed", "error", err.Error(), "sessionId", sessionID)
		return SubmitResult{Success: false, Toast: "Something went wrong sending your message. Please try again."}
	}

	s.afterCapture(record, sessionID, visitorID)
	return SubmitResult{Success: true, Toast: "Thank you, we'll be in touch shortly."}
}

// SubscribeNewsletter records a newsletter signup. Duplicate emails succeed
// quietly.
func (s *LeadService) SubscribeNewsletter(sessionID, visitorID, emailAddr, firstName, source string) SubmitResult {
	if emailAddr == "" {
		return SubmitResult{Success: false, Toast: "Please provide an email address."}
	}

	subscriber := &leads.Subscriber{
		ID:        security.GenerateULID(),
		Email:     strings.ToLower(strings.TrimSpace(emailAddr)),
		FirstName: strings.TrimSpace(firstName),
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.subscribers.Store(subscriber); err != nil {
		s.logger.Leads().Error("Newsletter signup failed", "error", err.Error())
		return SubmitResult{Success: false, Toast: "Something went wrong. Please try again."}
	}

	s.analytics.TrackFormSubmit(sessionID, visitorID, "newsletter")
	return SubmitResult{Success: true, Toast: "You're on the list."}
}

// CaptureNewsletterLead writes the popup's step-one lead: a newsletter signup
// captured as a lead row plus a subscriber row.
func (s *LeadService) CaptureNewsletterLead(sessionID, visitorID, firstName, emailAddr string) error {
	record := &leads.LeadRecord{
		ID:          security.GenerateULID(),
		Name:        strings.TrimSpace(firstName),
		Email:       strings.ToLower(strings.TrimSpace(emailAddr)),
		InquiryType: leads.InquiryNewsletter,
		Source:      "popup_step_one",
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.leads.Store(record); err != nil {
		return err
	}

	subscriber := &leads.Subscriber{
		ID:        security.GenerateULID(),
		Email:     record.Email,
		FirstName: record.Name,
		Source:    "popup",
		CreatedAt: record.CreatedAt,
	}
	if err := s.subscribers.Store(subscriber); err != nil {
		s.logger.Leads().Warn("Popup subscriber row failed", "error", err.Error())
	}

	s.afterCapture(record, sessionID, visitorID)
	return nil
}

// CapturePriorityLead writes the popup's step-two lead. The buyer's search
// criteria travel in the message body.
func (s *LeadService) CapturePriorityLead(sessionID, visitorID, firstName, emailAddr, phone, address, priceRange string, minBeds int) error {
	message := fmt.Sprintf("Current address: %s\nPrice range: %s\nMinimum bedrooms: %d",
		address, priceRange, minBeds)

	record := &leads.LeadRecord{
		ID:          security.GenerateULID(),
		Name:        strings.TrimSpace(firstName),
		Email:       strings.ToLower(strings.TrimSpace(emailAddr)),
		Phone:       strings.TrimSpace(phone),
		Message:     message,
		InquiryType: leads.InquiryNewsletter,
		Source:      "popup_step_two",
		Priority:    true,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.leads.Store(record); err != nil {
		return err
	}

	s.afterCapture(record, sessionID, visitorID)
	return nil
}

// SubmitValuation captures a valuation request.
func (s *LeadService) SubmitValuation(sessionID, visitorID string, draft leads.FormDraft) SubmitResult {
	draft.InquiryType = leads.InquiryValuation
	result := s.SubmitContact(sessionID, visitorID, draft)
	if result.Success {
		s.analytics.TrackValuationRequest(sessionID, visitorID)
	}
	return result
}

// RecentLeads returns the latest captures for the admin dashboard.
func (s *LeadService) RecentLeads(limit int) ([]*leads.LeadRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.leads.FindRecent(limit)
}

// afterCapture runs the best-effort side effects of a stored lead: analytics,
// the agency notification email, and the admin live feed.
func (s *LeadService) afterCapture(record *leads.LeadRecord, sessionID, visitorID string) {
	s.logger.Leads().Info("Lead captured",
		"id", record.ID,
		"inquiryType", string(record.InquiryType),
		"source", record.Source,
		"priority", record.Priority)

	s.analytics.TrackFormSubmit(sessionID, visitorID, record.Source)
	if record.PropertyID != "" {
		s.analytics.TrackPropertyEnquiry(sessionID, visitorID, record.PropertyID)
	}

	if s.feed != nil {
		s.feed.Publish("lead", fmt.Sprintf("%s enquiry from %s", record.InquiryType, record.Name))
	}

	if s.email != nil {
		go func() {
			if err := s.email.SendLeadNotification(record); err != nil {
				s.logger.Email().Warn("Lead notification email failed", "error", err.Error(), "leadId", record.ID)
			}
		}()
	}
}
