package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/gommon/log"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// SendGridSender is the HTTP alternative to the SMTP relay.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewSendGridSender(cfg SendGridConfig) (*SendGridSender, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("mailer: sendgrid api key is required")
	}
	if cfg.FromName == "" {
		cfg.FromName = "Elderly Companion"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}, nil
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return errors.New("mailer: sendgrid client not configured")
	}

	from := sgmail.NewEmail(s.fromName, s.fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)
	message := sgmail.NewV3MailInit(from, msg.Subject, to, sgmail.NewContent("text/plain", msg.Body))

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Errorf("sendgrid send to %s failed: %v", msg.To, err)
		return fmt.Errorf("mailer: sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Errorf("sendgrid returned status %d for %s: %s", response.StatusCode, msg.To, response.Body)
		return fmt.Errorf("mailer: sendgrid returned status %d", response.StatusCode)
	}

	log.Infof("email %q sent to %s via sendgrid", msg.Subject, msg.To)
	return nil
}
