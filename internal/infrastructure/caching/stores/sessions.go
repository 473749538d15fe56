package stores

import (
	"sync"
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/caching/types"
)

// SessionStore holds per-session state: the overlay stack, the dialog step,
// and the contact form draft.
type SessionStore struct {
	sessions    map[string]*types.SessionState
	maxSessions int
	mu          sync.RWMutex
}

// NewSessionStore creates a session store bounded at maxSessions.
func NewSessionStore(maxSessions int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*types.SessionState),
		maxSessions: maxSessions,
	}
}

// Register creates the session if absent. Returns the state and whether it
// was newly created.
func (ss *SessionStore) Register(sessionID, visitorID string) (*types.SessionState, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if existing, exists := ss.sessions[sessionID]; exists {
		existing.LastActivity = time.Now().UTC()
		return existing, false
	}

	if len(ss.sessions) >= ss.maxSessions {
		ss.evictOldestLocked()
	}

	now := time.Now().UTC()
	state := &types.SessionState{
		SessionID:    sessionID,
		VisitorID:    visitorID,
		CreatedAt:    now,
		LastActivity: now,
		DialogStep:   engagement.DialogClosed,
	}
	ss.sessions[sessionID] = state
	return state, true
}

// Get retrieves a session, touching last activity.
func (ss *SessionStore) Get(sessionID string) (*types.SessionState, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	state, exists := ss.sessions[sessionID]
	if exists {
		state.LastActivity = time.Now().UTC()
	}
	return state, exists
}

// OverlayPush registers an open overlay surface for the session.
func (ss *SessionStore) OverlayPush(sessionID, name string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if state, exists := ss.sessions[sessionID]; exists {
		state.Overlays = append(state.Overlays, name)
		state.LastActivity = time.Now().UTC()
	}
}

// OverlayPop releases the most recent registration of the named overlay.
func (ss *SessionStore) OverlayPop(sessionID, name string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	state, exists := ss.sessions[sessionID]
	if !exists {
		return
	}
	for i := len(state.Overlays) - 1; i >= 0; i-- {
		if state.Overlays[i] == name {
			state.Overlays = append(state.Overlays[:i], state.Overlays[i+1:]...)
			break
		}
	}
	state.LastActivity = time.Now().UTC()
}

// OverlayOpen reports whether any overlay is currently registered.
func (ss *SessionStore) OverlayOpen(sessionID string) bool {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	state, exists := ss.sessions[sessionID]
	return exists && len(state.Overlays) > 0
}

// DialogStep returns the session's popup dialog position.
func (ss *SessionStore) DialogStep(sessionID string) engagement.DialogStep {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if state, exists := ss.sessions[sessionID]; exists {
		return state.DialogStep
	}
	return engagement.DialogClosed
}

// SetDialogStep updates the session's popup dialog position.
func (ss *SessionStore) SetDialogStep(sessionID string, step engagement.DialogStep) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if state, exists := ss.sessions[sessionID]; exists {
		state.DialogStep = step
		state.LastActivity = time.Now().UTC()
	}
}

// FormDraft returns the session's contact form draft.
func (ss *SessionStore) FormDraft(sessionID string) leads.FormDraft {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	if state, exists := ss.sessions[sessionID]; exists {
		return state.FormDraft
	}
	return leads.FormDraft{}
}

// SetFormDraft replaces the session's contact form draft.
func (ss *SessionStore) SetFormDraft(sessionID string, draft leads.FormDraft) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if state, exists := ss.sessions[sessionID]; exists {
		state.FormDraft = draft
		state.LastActivity = time.Now().UTC()
	}
}

// EvictExpired removes sessions idle past the TTL and returns their IDs so
// callers can release dependent state.
func (ss *SessionStore) EvictExpired(ttl time.Duration) []string {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	var evicted []string
	for sessionID, state := range ss.sessions {
		if time.Since(state.LastActivity) > ttl {
			delete(ss.sessions, sessionID)
			evicted = append(evicted, sessionID)
		}
	}
	return evicted
}

// Count returns the number of live sessions.
func (ss *SessionStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

// evictOldestLocked drops the least recently active session. Caller holds the lock.
func (ss *SessionStore) evictOldestLocked() {
	var oldestID string
	var oldestAt time.Time
	for sessionID, state := range ss.sessions {
		if oldestID == "" || state.LastActivity.Before(oldestAt) {
			oldestID = sessionID
			oldestAt = state.LastActivity
		}
	}
	if oldestID != "" {
		delete(ss.sessions, oldestID)
	}
}
