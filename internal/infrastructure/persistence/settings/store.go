// Package settings provides the persisted visitor-settings service: a typed
// get/set contract over an injected storage backend, replacing ad-hoc browser
// storage flags.
package settings

// Profile-scoped keys persist for the life of the visitor profile.
const (
	KeyConsentPreferences = "cookie-consent-preferences"
	KeyConsentGiven       = "cookie-consent"
	KeyPopupDismissed     = "popup_dismissed_v1"
)

// Session-scoped keys last only as long as the browsing session.
const (
	KeyHasVisited = "hasVisited"
	KeyPopupShown = "popup_shown"
)

// Store is the injected storage backend. Implementations must treat a
// missing key as (value="", ok=false, err=nil).
type Store interface {
	Get(scopeID, key string) (string, bool, error)
	Set(scopeID, key, value string) error
	Delete(scopeID, key string) error
}
