// Package email provides the email client for sending transactional emails.
package email

import (
	"fmt"
	"os"

	"github.com/archielvc/bartlett-partners-v10-sub002/internal/domain/entities/leads"
	"github.com/archielvc/bartlett-partners-v10-sub002/internal/infrastructure/email/templates"
	"github.com/resendlabs/resend-go"
)

// Service defines the interface for sending emails, allowing for mock implementations in tests.
type Service interface {
	SendLeadNotification(lead *leads.LeadRecord) error
}

// ResendClient is the concrete implementation of the email Service using the Resend API.
type ResendClient struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	toEmail   string
}

// NewService creates a new email service client, returning the Service interface.
func NewService() (Service, error) {
	apiKey := os.Getenv("RESEND_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	fromEmail := os.Getenv("LEAD_EMAIL_FROM")
	if fromEmail == "" {
		fromEmail = "noreply@bartlettpartners.com"
	}

	fromName := os.Getenv("LEAD_EMAIL_FROM_NAME")
	if fromName == "" {
		fromName = "Bartlett & Partners"
	}

	toEmail := os.Getenv("LEAD_EMAIL_TO")
	if toEmail == "" {
		toEmail = "enquiries@bartlettpartners.com"
	}

	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
	}, nil
}

// SendLeadNotification composes and sends the internal new-lead notification.
func (c *ResendClient) SendLeadNotification(lead *leads.LeadRecord) error {
	subject := fmt.Sprintf("New %s enquiry from %s", lead.InquiryType, lead.Name)
	if lead.Priority {
		subject = fmt.Sprintf("Priority access request from %s", lead.Name)
	}

	content := templates.GetLeadNotificationContent(templates.LeadNotificationProps{
		Name:        lead.Name,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Message:     lead.Message,
		InquiryType: string(lead.InquiryType),
		PropertyID:  lead.PropertyID,
		Source:      lead.Source,
		Priority:    lead.Priority,
	})

	htmlContent := templates.GetEmailLayout(templates.EmailLayoutProps{
		Content: content,
	})

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{c.toEmail},
		Subject: subject,
		Html:    htmlContent,
	}

	_, err := c.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send lead notification via Resend: %w", err)
	}

	return nil
}
