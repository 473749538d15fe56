// Package events provides analytics event types
package events

import "time"

// Event is a single tracked interaction. Action/category/label mirror the
// shape the tracking client consumes.
type Event struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Well-known actions emitted by the convenience wrappers.
const (
	ActionPageView         = "page_view"
	ActionCTAClick         = "cta_click"
	ActionFormSubmit       = "form_submit"
	ActionPropertyView     = "property_view"
	ActionPropertyEnquiry  = "property_enquiry"
	ActionScrollDepth      = "scroll_depth"
	ActionValuationRequest = "valuation_request"
	ActionPopupView        = "popup_view"
	ActionPopupDismiss     = "popup_dismiss"
	ActionConversion       = "conversion"
)
