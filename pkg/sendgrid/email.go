package sendgrid

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional email. The storefront only needs it for
// order confirmations, so the surface is a single call.
type EmailService interface {
	Send(ctx context.Context, to, subject, plainText, htmlContent string) error
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (e *emailService) Send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), plainText, htmlContent)

	resp, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected the email: status %d", resp.StatusCode)
	}

	return nil
}
