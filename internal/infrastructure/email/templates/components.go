package templates

import (
	"fmt"
	"html"
	"strings"
)

// LeadNotificationProps carries the lead fields for the internal notification.
type LeadNotificationProps struct {
	Name        string
	Email       string
	Phone       string
	Message     string
	InquiryType string
	PropertyID  string
	Source      string
	Priority    bool
}

// GetLeadNotificationContent composes the body of the new-lead notification.
func GetLeadNotificationContent(props LeadNotificationProps) string {
	var rows strings.Builder

	addRow := func(label, value string) {
		if value == "" {
			return
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:6px 12px 6px 0;color:#71717a;">%s</td><td style="padding:6px 0;">%s</td></tr>`,
			label, html.EscapeString(value)))
	}

	addRow("Name", props.Name)
	addRow("Email", props.Email)
	addRow("Phone", props.Phone)
	addRow("Enquiry", props.InquiryType)
	addRow("Property", props.PropertyID)
	addRow("Source", props.Source)

	headline := "New website enquiry"
	if props.Priority {
		headline = "New priority access request"
	}

	content := fmt.Sprintf(`<h2 style="margin:0 0 16px;color:#1c2b33;">%s</h2>
<table role="presentation" cellpadding="0" cellspacing="0" style="font-size:14px;color:#1c2b33;">%s</table>`,
		headline, rows.String())

	if props.Message != "" {
		content += fmt.Sprintf(
			`<p style="margin:16px 0 0;padding:16px;background-color:#f4f4f5;border-radius:4px;font-size:14px;color:#1c2b33;">%s</p>`,
			html.EscapeString(props.Message))
	}
	return content
}
