package services

import (
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/consent"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// Overlay name the consent settings panel registers on the session's stack.
const consentSettingsOverlay = "consent-settings"

// BannerState tells the page whether to offer the consent banner.
type BannerState struct {
	Show  bool          `json:"show"`
	Delay time.Duration `json:"delay"`
}

// ConsentService manages the tri-state consent record and the settings
// panel's overlay registration. The analytics dispatcher may be nil during
// early startup; consent changes still persist.
type ConsentService struct {
	settings  *settings.Service
	sessions  *stores.SessionStore
	analytics *AnalyticsService
	logger    *logging.ChanneledLogger
}

// NewConsentService creates a new consent service.
func NewConsentService(settingsSvc *settings.Service, sessions *stores.SessionStore, analytics *AnalyticsService, logger *logging.ChanneledLogger) *ConsentService {
	return &ConsentService{
		settings:  settingsSvc,
		sessions:  sessions,
		analytics: analytics,
		logger:    logger,
	}
}

// BannerState reports whether the banner should be offered. It shows once,
// after a short delay, and never again after any consent action.
func (s *ConsentService) BannerState(visitorID string) BannerState {
	if s.settings.ConsentGiven(visitorID) {
		return BannerState{Show: false}
	}
	if _, found, err := s.settings.ConsentPreferences(visitorID); err == nil && found {
		return BannerState{Show: false}
	}
	return BannerState{Show: true, Delay: config.ConsentBannerDelay}
}

// Preferences returns the visitor's current consent record, defaulted when
// none has been saved.
func (s *ConsentService) Preferences(visitorID string) consent.Record {
	record, _, err := s.settings.ConsentPreferences(visitorID)
	if err != nil {
		s.logger.Consent().Warn("Consent read failed, serving defaults", "error", err.Error())
		return consent.Defaults()
	}
	return record
}

// AcceptAll grants every category.
func (s *ConsentService) AcceptAll(visitorID string) error {
	return s.save(visitorID, consent.Record{
		Necessary: true,
		Analytics: true,
		Marketing: true,
	})
}

// RejectAll declines everything optional. Necessary stays granted.
func (s *ConsentService) RejectAll(visitorID string) error {
	return s.save(visitorID, consent.Record{Necessary: true})
}

// SavePreferences persists a partial selection from the settings panel, then
// closes the panel. Necessary is forced on regardless of input.
func (s *ConsentService) SavePreferences(sessionID, visitorID string, record consent.Record) error {
	if err := s.save(visitorID, record); err != nil {
		return err
	}
	s.CloseSettings(sessionID)
	return nil
}

// OpenSettings registers the settings panel on the session's overlay stack.
func (s *ConsentService) OpenSettings(sessionID string) {
	s.sessions.OverlayPush(sessionID, consentSettingsOverlay)
}

// CloseSettings releases the settings panel's overlay registration.
func (s *ConsentService) CloseSettings(sessionID string) {
	s.sessions.OverlayPop(sessionID, consentSettingsOverlay)
}

func (s *ConsentService) save(visitorID string, record consent.Record) error {
	previous, _, err := s.settings.ConsentPreferences(visitorID)
	if err != nil {
		previous = consent.Defaults()
	}

	normalized := record.Normalize()
	normalized.UpdatedAt = time.Now().UTC()
	if err := s.settings.SetConsentPreferences(visitorID, normalized); err != nil {
		s.logger.Consent().Error("Consent save failed", "error", err.Error(), "visitorId", visitorID)
		return err
	}

	s.logger.Consent().Info("Consent recorded",
		"visitorId", visitorID,
		"analytics", normalized.Analytics,
		"marketing", normalized.Marketing)

	if s.analytics != nil && previous.Analytics != normalized.Analytics {
		s.analytics.SetConsent(visitorID, normalized.Analytics)
	}
	return nil
}
