package utils

import (
	"fmt"

	"github.com/keighl/postmark"
)

// EmailService sends transactional mail using Postmark. When no API token
// is configured the service is disabled and every send reports an error,
// which callers log and otherwise ignore.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance.
func NewEmailService(apiToken, sender string) *EmailService {
	if apiToken == "" {
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: sender,
	}
}

// SendEmail sends a basic email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return fmt.Errorf("email service disabled: no API token configured")
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendWelcomeEmail greets a newly registered identity.
func (es *EmailService) SendWelcomeEmail(toEmail, name string) error {
	if name == "" {
		name = "Customer"
	}
	subject := "Welcome to the Marketplace"
	htmlContent := fmt.Sprintf(
		"<strong>Dear %s,</strong><br><br>Your account has been created. Happy shopping!",
		name,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}

// SendOrderShippedEmail notifies the buyer that their order is on its way.
func (es *EmailService) SendOrderShippedEmail(toEmail, orderID string) error {
	subject := "Your Order Has Shipped"
	htmlContent := fmt.Sprintf(
		"<strong>Dear Customer,</strong><br><br>Your order (ID: %s) has been shipped.<br><br>Thank you for shopping with us!",
		orderID,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
