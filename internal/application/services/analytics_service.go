package services

import (
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/events"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	persistence "github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/analytics"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/security"
)

// AnalyticsService dispatches behavioral events. Every dispatch is best
// effort: failures are logged and swallowed, and nothing is recorded for a
// visitor who has not granted analytics consent.
type AnalyticsService struct {
	events   *persistence.EventRepository
	settings *settings.Service
	logger   *logging.ChanneledLogger
}

// NewAnalyticsService creates a new analytics dispatcher.
func NewAnalyticsService(events *persistence.EventRepository, settingsSvc *settings.Service, logger *logging.ChanneledLogger) *AnalyticsService {
	return &AnalyticsService{
		events:   events,
		settings: settingsSvc,
		logger:   logger,
	}
}

// SetConsent records the visitor's analytics opt-in state change. The gate
// itself is re-read from the settings service on every dispatch, so repeated
// calls with the same value are harmless.
func (s *AnalyticsService) SetConsent(visitorID string, granted bool) {
	if granted {
		s.logger.Analytics().Info("Analytics tracking opted in", "visitorId", visitorID)
		return
	}
	s.logger.Analytics().Info("Analytics tracking opted out", "visitorId", visitorID)
}

// TrackEvent dispatches one event if the visitor has granted analytics
// consent. Persistence happens off the request path; errors never propagate.
func (s *AnalyticsService) TrackEvent(sessionID, visitorID, action, category, label string) {
	record, found, err := s.settings.ConsentPreferences(visitorID)
	if err != nil || !found || !record.Analytics {
		return
	}

	event := &events.Event{
		ID:        security.GenerateULID(),
		SessionID: sessionID,
		Action:    action,
		Category:  category,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		if err := s.events.Store(event); err != nil {
			s.logger.Analytics().Warn("Event dropped", "action", action, "error", err.Error())
		}
	}()
}

// TrackPageView records a page view.
func (s *AnalyticsService) TrackPageView(sessionID, visitorID, path string) {
	s.TrackEvent(sessionID, visitorID, events.ActionPageView, "navigation", path)
}

// TrackCTAClick records a call-to-action click.
func (s *AnalyticsService) TrackCTAClick(sessionID, visitorID, label string) {
	s.TrackEvent(sessionID, visitorID, events.ActionCTAClick, "engagement", label)
}

// TrackFormSubmit records a form submission.
func (s *AnalyticsService) TrackFormSubmit(sessionID, visitorID, form string) {
	s.TrackEvent(sessionID, visitorID, events.ActionFormSubmit, "leads", form)
}

// TrackPropertyView records a property detail view.
func (s *AnalyticsService) TrackPropertyView(sessionID, visitorID, slug string) {
	s.TrackEvent(sessionID, visitorID, events.ActionPropertyView, "catalogue", slug)
}

// TrackPropertyEnquiry records a property-specific enquiry.
func (s *AnalyticsService) TrackPropertyEnquiry(sessionID, visitorID, slug string) {
	s.TrackEvent(sessionID, visitorID, events.ActionPropertyEnquiry, "leads", slug)
}

// TrackScrollDepth records a scroll depth milestone.
func (s *AnalyticsService) TrackScrollDepth(sessionID, visitorID, milestone string) {
	s.TrackEvent(sessionID, visitorID, events.ActionScrollDepth, "engagement", milestone)
}

// TrackValuationRequest records a valuation request.
func (s *AnalyticsService) TrackValuationRequest(sessionID, visitorID string) {
	s.TrackEvent(sessionID, visitorID, events.ActionValuationRequest, "leads", "valuation")
}

// TrackPopupView records the lead-capture popup opening.
func (s *AnalyticsService) TrackPopupView(sessionID, visitorID, trigger string) {
	s.TrackEvent(sessionID, visitorID, events.ActionPopupView, "engagement", trigger)
}

// TrackPopupDismiss records an explicit popup dismissal.
func (s *AnalyticsService) TrackPopupDismiss(sessionID, visitorID, step string) {
	s.TrackEvent(sessionID, visitorID, events.ActionPopupDismiss, "engagement", step)
}
