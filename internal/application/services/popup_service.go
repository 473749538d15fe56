package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/stores"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/messaging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/observability/logging"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/persistence/settings"
	"github.com/archielvc/bartlett-partners-v10-sub002/pkg/config"
)

// Overlay name the popup dialog registers while open.
const popupOverlay = "lead-popup"

// popupCoordinator is the per-session trigger consumer. Signal sources post
// candidates to the channel; exactly one goroutine drains it, so the popup
// can open at most once no matter how many signals race.
type popupCoordinator struct {
	sessionID  string
	visitorID  string
	candidates chan engagement.Candidate
	cancel     context.CancelFunc
}

// PopupService coordinates the lead-capture popup: trigger arbitration,
// the sticky dismissal flag, and the two-step dialog flow.
type PopupService struct {
	coordinators map[string]*popupCoordinator
	mu           sync.Mutex

	sessions  *stores.SessionStore
	settings  *settings.Service
	analytics *AnalyticsService
	leads     *LeadService
	feed      *messaging.ActivityBroadcaster
	logger    *logging.ChanneledLogger
}

// NewPopupService creates the popup coordinator service.
func NewPopupService(
	sessions *stores.SessionStore,
	settingsSvc *settings.Service,
	analytics *AnalyticsService,
	leadSvc *LeadService,
	feed *messaging.ActivityBroadcaster,
	logger *logging.ChanneledLogger,
) *PopupService {
	return &PopupService{
		coordinators: make(map[string]*popupCoordinator),
		sessions:     sessions,
		settings:     settingsSvc,
		analytics:    analytics,
		leads:        leadSvc,
		feed:         feed,
		logger:       logger,
	}
}

// ArmSession starts a trigger coordinator for the session unless the visitor
// has already dismissed the popup or it already opened this session. The
// dwell timer starts counting from here. Coordinators outlive the arming
// request; they stop on open, session eviction, or shutdown.
func (s *PopupService) ArmSession(sessionID, visitorID string) {
	if s.settings.PopupDismissed(visitorID) || s.settings.PopupShown(sessionID) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, armed := s.coordinators[sessionID]; armed {
		return
	}

	runCtx, cancel := context.WithCancel(context.Background())
	coordinator := &popupCoordinator{
		sessionID:  sessionID,
		visitorID:  visitorID,
		candidates: make(chan engagement.Candidate, config.TriggerChannelBuffer),
		cancel:     cancel,
	}
	s.coordinators[sessionID] = coordinator

	go s.run(runCtx, coordinator)
	s.logger.Engagement().Debug("Popup coordinator armed", "sessionId", sessionID)
}

// Disarm stops a session's coordinator, if any. Called on session eviction.
func (s *PopupService) Disarm(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if coordinator, armed := s.coordinators[sessionID]; armed {
		coordinator.cancel()
		delete(s.coordinators, sessionID)
	}
}

// DisarmAll stops every coordinator. Called on shutdown.
func (s *PopupService) DisarmAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sessionID, coordinator := range s.coordinators {
		coordinator.cancel()
		delete(s.coordinators, sessionID)
	}
}

// Armed reports whether a coordinator is running for the session.
func (s *PopupService) Armed(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, armed := s.coordinators[sessionID]
	return armed
}

// ReportExitIntent feeds a pointer movement report to the coordinator. Only
// qualifying signals become candidates.
func (s *PopupService) ReportExitIntent(sessionID string, signal engagement.ExitIntentSignal) {
	if !signal.Qualifies(config.ExitIntentEdgePx) {
		return
	}
	s.post(sessionID, engagement.TriggerExitIntent)
}

// ReportScrollDepth feeds a scroll position report to the coordinator.
func (s *PopupService) ReportScrollDepth(sessionID string, signal engagement.ScrollDepthSignal) {
	if !signal.Qualifies(config.ScrollDepthThreshold) {
		return
	}
	s.post(sessionID, engagement.TriggerScrollDepth)
}

// post enqueues a candidate without blocking. A full channel means triggers
// are already racing; dropping extras is fine since only the first one wins.
func (s *PopupService) post(sessionID string, kind engagement.TriggerKind) {
	s.mu.Lock()
	coordinator, armed := s.coordinators[sessionID]
	s.mu.Unlock()
	if !armed {
		return
	}

	select {
	case coordinator.candidates <- engagement.Candidate{Kind: kind, At: time.Now().UTC()}:
	default:
	}
}

// run is the single consumer for a session's trigger candidates. A candidate
// arriving while an overlay is open is skipped and the coordinator stays
// armed; the dwell timer is one-shot and never rearms.
func (s *PopupService) run(ctx context.Context, c *popupCoordinator) {
	dwell := time.NewTimer(config.PopupDwellDelay)
	defer dwell.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case candidate := <-c.candidates:
			if s.sessions.OverlayOpen(c.sessionID) {
				continue
			}
			s.open(c, string(candidate.Kind))
			return

		case <-dwell.C:
			if s.sessions.OverlayOpen(c.sessionID) {
				continue
			}
			s.open(c, string(engagement.TriggerDwell))
			return
		}
	}
}

// open transitions the dialog to step one and records both suppression
// flags. The dismissal flag is written at open time so a reload never
// re-offers the popup.
func (s *PopupService) open(c *popupCoordinator, trigger string) {
	s.mu.Lock()
	delete(s.coordinators, c.sessionID)
	s.mu.Unlock()
	c.cancel()

	if err := s.settings.MarkPopupShown(c.sessionID); err != nil {
		s.logger.Engagement().Warn("Popup shown flag write failed", "error", err.Error())
	}
	if err := s.settings.SetPopupDismissed(c.visitorID); err != nil {
		s.logger.Engagement().Warn("Popup dismissed flag write failed", "error", err.Error())
	}

	s.sessions.SetDialogStep(c.sessionID, engagement.DialogStepOne)
	s.sessions.OverlayPush(c.sessionID, popupOverlay)

	s.analytics.TrackPopupView(c.sessionID, c.visitorID, trigger)
	if s.feed != nil {
		s.feed.Publish("popup", fmt.Sprintf("Popup opened via %s", trigger))
	}
	s.logger.Engagement().Info("Popup opened", "sessionId", c.sessionID, "trigger", trigger)
}

// DialogStep returns the session's current position in the popup flow.
func (s *PopupService) DialogStep(sessionID string) engagement.DialogStep {
	return s.sessions.DialogStep(sessionID)
}

// SubmitStepOne captures the first-name-and-email step and advances to step
// two. The dialog advances whether or not the lead write lands; a failed
// write only surfaces a toast.
func (s *PopupService) SubmitStepOne(sessionID, visitorID, firstName, email string) SubmitResult {
	if s.sessions.DialogStep(sessionID) != engagement.DialogStepOne {
		return SubmitResult{Success: false, Toast: "This form is no longer open."}
	}
	if firstName == "" || email == "" {
		return SubmitResult{Success: false, Toast: "Please provide your first name and email."}
	}

	s.sessions.SetDialogStep(sessionID, engagement.DialogStepTwo)

	if err := s.leads.CaptureNewsletterLead(sessionID, visitorID, firstName, email); err != nil {
		s.logger.Engagement().Error("Popup step one lead failed", "error", err.Error(), "sessionId", sessionID)
		return SubmitResult{Success: true, Toast: "We couldn't save your details, but you can carry on."}
	}
	return SubmitResult{Success: true, Toast: ""}
}

// SubmitStepTwo captures the buyer criteria step and closes the dialog.
func (s *PopupService) SubmitStepTwo(sessionID, visitorID, firstName, email, phone, address, priceRange string, minBeds int) SubmitResult {
	if s.sessions.DialogStep(sessionID) != engagement.DialogStepTwo {
		return SubmitResult{Success: false, Toast: "This form is no longer open."}
	}

	s.sessions.SetDialogStep(sessionID, engagement.DialogClosed)
	s.sessions.OverlayPop(sessionID, popupOverlay)

	if err := s.leads.CapturePriorityLead(sessionID, visitorID, firstName, email, phone, address, priceRange, minBeds); err != nil {
		s.logger.Engagement().Error("Popup step two lead failed", "error", err.Error(), "sessionId", sessionID)
		return SubmitResult{Success: true, Toast: "We couldn't save your details. Please get in touch directly."}
	}
	return SubmitResult{Success: true, Toast: "You're on the priority list."}
}

// CloseDialog dismisses the popup at whichever step it is on and records a
// dismissal event.
func (s *PopupService) CloseDialog(sessionID, visitorID string) {
	step := s.sessions.DialogStep(sessionID)
	if step == engagement.DialogClosed {
		return
	}

	s.sessions.SetDialogStep(sessionID, engagement.DialogClosed)
	s.sessions.OverlayPop(sessionID, popupOverlay)

	label := "step_one"
	if step == engagement.DialogStepTwo {
		label = "step_two"
	}
	s.analytics.TrackPopupDismiss(sessionID, visitorID, label)
	s.logger.Engagement().Info("Popup dismissed", "sessionId", sessionID, "step", label)
}
