package services

import (
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/performance"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
)

// RegistrationResult is returned to the page on session registration.
type RegistrationResult struct {
	Created    bool                  `json:"created"`
	HasVisited bool                  `json:"hasVisited"`
	Banner     BannerState           `json:"banner"`
	DialogStep engagement.DialogStep `json:"dialogStep"`
}

// SessionService registers browsing sessions and arms their popup
// coordinators. Registration is idempotent per session.
type SessionService struct {
	sessions    *stores.SessionStore
	settings    *settings.Service
	consent     *ConsentService
	popup       *PopupService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewSessionService creates a new session service.
func NewSessionService(
	sessions *stores.SessionStore,
	settingsSvc *settings.Service,
	consent *ConsentService,
	popup *PopupService,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *SessionService {
	return &SessionService{
		sessions:    sessions,
		settings:    settingsSvc,
		consent:     consent,
		popup:       popup,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// Register ensures session state exists, records the visit marker, and arms
// the popup coordinator. The coordinator itself refuses to arm when the
// visitor has already dismissed the popup.
func (s *SessionService) Register(sessionID, visitorID string) RegistrationResult {
	marker := s.perfTracker.StartOperation("session_register", sessionID)
	defer marker.Complete()

	_, created := s.sessions.Register(sessionID, visitorID)

	hasVisited := s.settings.HasVisited(sessionID)
	if !hasVisited {
		if err := s.settings.MarkVisited(sessionID); err != nil {
			s.logger.System().Warn("Visit marker write failed", "error", err.Error(), "sessionId", sessionID)
		}
	}

	s.popup.ArmSession(sessionID, visitorID)

	if created {
		s.logger.System().Debug("Session registered", "sessionId", sessionID)
	}

	return RegistrationResult{
		Created:    created,
		HasVisited: hasVisited,
		Banner:     s.consent.BannerState(visitorID),
		DialogStep: s.sessions.DialogStep(sessionID),
	}
}

// ReleaseEvicted tears down the per-session state other components hold for
// a timed-out session. Wired as the cleanup worker's eviction hook.
func (s *SessionService) ReleaseEvicted(sessionStore *settings.MemoryStore) func(sessionID string) {
	return func(sessionID string) {
		s.popup.Disarm(sessionID)
		sessionStore.Clear(sessionID)
	}
}
