package services

import (
	"fmt"

	"smartbiz/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendInvoice emails a freshly generated invoice to the client.
func (s *EmailService) SendInvoice(inv models.Invoice) error {
	subject := fmt.Sprintf("Invoice #%s", inv.OrderID)
	return s.send(inv, subject, inv.Body)
}

// SendPaymentReminder re-sends an existing invoice as a payment reminder.
func (s *EmailService) SendPaymentReminder(inv models.Invoice) error {
	subject := fmt.Sprintf("Payment reminder: invoice #%s", inv.OrderID)
	body := fmt.Sprintf("This is a friendly reminder that the invoice below is awaiting payment.\n\n%s", inv.Body)
	return s.send(inv, subject, body)
}

func (s *EmailService) send(inv models.Invoice, subject, plainContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(inv.ClientName, inv.ClientEmail)
	htmlContent := fmt.Sprintf("<pre>%s</pre>", plainContent)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", inv.ClientEmail, response.StatusCode)
	}
	return nil
}
