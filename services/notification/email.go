package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailSender delivers one transactional email.
type EmailSender interface {
	SendEmail(ctx context.Context, toEmail, toName, subject, plainText, html string) error
}

// SendgridSender sends mail through the SendGrid v3 API.
type SendgridSender struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *zap.Logger
}

// NewEmailSender returns a SendGrid sender, or a logging no-op when apiKey is empty.
func NewEmailSender(apiKey, fromEmail, fromName string, logger *zap.Logger) EmailSender {
	if apiKey == "" || fromEmail == "" {
		logger.Warn("SENDGRID_API_KEY or MAIL_FROM not set; emails will only be logged")
		return &LogEmailSender{logger: logger}
	}
	return &SendgridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

func (s *SendgridSender) SendEmail(ctx context.Context, toEmail, toName, subject, plainText, html string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, toEmail), plainText, html)
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: failed to send to %s: %w", toEmail, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", response.StatusCode, response.Body)
	}
	s.logger.Info("Email sent", zap.String("to", toEmail), zap.String("subject", subject), zap.Int("status", response.StatusCode))
	return nil
}

// LogEmailSender only logs. Used when SendGrid is not configured.
type LogEmailSender struct {
	logger *zap.Logger
}

func (s *LogEmailSender) SendEmail(_ context.Context, toEmail, _, subject, _, _ string) error {
	s.logger.Info("Email skipped (no sender configured)", zap.String("to", toEmail), zap.String("subject", subject))
	return nil
}
