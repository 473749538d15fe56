// Package leads defines lead capture records and form state.
package leads

import "time"

// InquiryType classifies how a lead reached us.
type InquiryType string

const (
	InquiryGeneral    InquiryType = "general"
	InquiryProperty   InquiryType = "property"
	InquiryValuation  InquiryType = "valuation"
	InquiryNewsletter InquiryType = "newsletter"
)

// LeadRecord is a captured prospective-customer submission. Ownership
// transfers to the database on write; the capture surfaces keep no
// authoritative copy.
type LeadRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone,omitempty"`
	Message     string      `json:"message"`
	InquiryType InquiryType `json:"inquiryType"`
	PropertyID  string      `json:"propertyId,omitempty"`
	Source      string      `json:"source,omitempty"`
	Priority    bool        `json:"priority"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FormDraft holds the contact form's in-progress field values for a session.
// It is what gets restored when a submission fails.
type FormDraft struct {
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Message     string      `json:"message"`
	InquiryType InquiryType `json:"inquiryType"`
	PropertyID  string      `json:"propertyId"`
}

// Empty reports whether the draft carries no user input.
func (d FormDraft) Empty() bool {
	return d.Name == "" && d.Email == "" && d.Phone == "" && d.Message == "" &&
		d.InquiryType == "" && d.PropertyID == ""
}
