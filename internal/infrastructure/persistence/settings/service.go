package settings

import (
	"encoding/json"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/consent"
)

// Service exposes typed accessors over the profile and session stores.
// Profile settings survive across sessions; session settings do not.
type Service struct {
	profile Store
	session Store
}

// NewService wires the settings service with injected backends.
func NewService(profile, session Store) *Service {
	return &Service{profile: profile, session: session}
}

// ConsentPreferences returns the persisted consent record, if any.
func (s *Service) ConsentPreferences(visitorID string) (consent.Record, bool, error) {
	raw, ok, err := s.profile.Get(visitorID, KeyConsentPreferences)
	if err != nil || !ok {
		return consent.Defaults(), false, err
	}

	var record consent.Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		// A corrupt record is treated as absent so the banner re-offers.
		return consent.Defaults(), false, nil
	}
	return record.Normalize(), true, nil
}

// SetConsentPreferences persists a consent record and the given-consent marker.
func (s *Service) SetConsentPreferences(visitorID string, record consent.Record) error {
	raw, err := json.Marshal(record.Normalize())
	if err != nil {
		return err
	}
	if err := s.profile.Set(visitorID, KeyConsentPreferences, string(raw)); err != nil {
		return err
	}
	return s.profile.Set(visitorID, KeyConsentGiven, "true")
}

// ConsentGiven reports whether any consent action has ever been taken.
func (s *Service) ConsentGiven(visitorID string) bool {
	_, ok, err := s.profile.Get(visitorID, KeyConsentGiven)
	return err == nil && ok
}

// PopupDismissed reports the sticky profile-level popup suppression flag.
func (s *Service) PopupDismissed(visitorID string) bool {
	_, ok, err := s.profile.Get(visitorID, KeyPopupDismissed)
	return err == nil && ok
}

// SetPopupDismissed sets the sticky suppression flag. Recorded at dialog-open
// time so a reload never re-offers the popup.
func (s *Service) SetPopupDismissed(visitorID string) error {
	return s.profile.Set(visitorID, KeyPopupDismissed, "true")
}

// PopupShown reports whether the popup already opened this session.
func (s *Service) PopupShown(sessionID string) bool {
	_, ok, err := s.session.Get(sessionID, KeyPopupShown)
	return err == nil && ok
}

// MarkPopupShown records the session-scoped already-triggered flag.
func (s *Service) MarkPopupShown(sessionID string) error {
	return s.session.Set(sessionID, KeyPopupShown, "true")
}

// HasVisited reports whether this session has already been registered.
func (s *Service) HasVisited(sessionID string) bool {
	_, ok, err := s.session.Get(sessionID, KeyHasVisited)
	return err == nil && ok
}

// MarkVisited records the session registration marker.
func (s *Service) MarkVisited(sessionID string) error {
	return s.session.Set(sessionID, KeyHasVisited, "true")
}
