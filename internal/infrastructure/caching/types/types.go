// Package types defines cache entry and session state shapes
package types

import (
	"time"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/engagement"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
)

// QueryState describes how usable a cached query entry is.
type QueryState int

const (
	QueryMiss QueryState = iota
	QueryFresh
	QueryStale
)

// QueryEntry is one cached read keyed by a semantic query key.
type QueryEntry struct {
	Value      any
	FetchedAt  time.Time
	LastAccess time.Time
	Refreshing bool
}

// SessionState is the server-held state for one browsing session.
type SessionState struct {
	SessionID    string
	VisitorID    string
	CreatedAt    time.Time
	LastActivity time.Time

	// Overlays is the explicit overlay stack. Any component that opens a
	// modal surface registers here and releases on close; the popup
	// coordinator consults it instead of inferring from style side effects.
	Overlays []string

	DialogStep engagement.DialogStep
	FormDraft  leads.FormDraft
}
