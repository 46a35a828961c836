package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// EmailService sends transactional mail through SendGrid. With no API key
// configured the service is a no-op, which is also how tests run.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

func NewEmailService(cfg *config.Config) *EmailService {
	svc := &EmailService{sender: cfg.EmailSender}
	if cfg.SendgridAPIKey != "" {
		svc.client = sendgrid.NewSendClient(cfg.SendgridAPIKey)
	}
	return svc
}

func (s *EmailService) send(toEmail, toName, subject, htmlBody string) error {
	if s.client == nil {
		return nil
	}

	from := mail.NewEmail("Course Platform", s.sender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	resp, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid responded with status %d", resp.StatusCode)
	}
	return nil
}

// SendPurchaseConfirmation is best-effort: a mail failure is logged and
// never fails the purchase that triggered it.
func (s *EmailService) SendPurchaseConfirmation(toEmail, toName, courseTitle, receiptNumber string) {
	body := fmt.Sprintf(`
		<h2>Enrollment confirmed</h2>
		<p>Hi %s,</p>
		<p>You now have access to <strong>%s</strong>.</p>
		<p>Receipt: %s</p>`,
		toName, courseTitle, receiptNumber,
	)

	if err := s.send(toEmail, toName, "Enrollment confirmed: "+courseTitle, body); err != nil {
		log.Printf("Error sending purchase confirmation to %s: %v", toEmail, err)
	}
}
