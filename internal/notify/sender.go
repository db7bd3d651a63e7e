// Package notify delivers outgoing mail.
package notify

import (
	"errors"
	"fmt"
	"net/smtp"

	"github.com/dafibh/paydue/paydue-backend/internal/config"
	"github.com/jordan-wright/email"
	"github.com/rs/zerolog/log"
)

// ErrNoRecipients is returned when a message has no To address
var ErrNoRecipients = errors.New("message has no recipients")

// Message is a plain text mail with an optional HTML alternative
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages
type Sender interface {
	Send(msg Message) error
}

// SMTPSender sends mail through an SMTP relay
type SMTPSender struct {
	cfg  config.SMTPConfig
	auth smtp.Auth
}

// NewSMTPSender creates a sender for the configured relay.
// No auth is used when the relay has no username.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	s := &SMTPSender{cfg: cfg}
	if cfg.Username != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return s
}

// Send delivers the message
func (s *SMTPSender) Send(msg Message) error {
	e, err := s.build(msg)
	if err != nil {
		return err
	}

	if err := e.Send(s.cfg.Addr(), s.auth); err != nil {
		log.Error().Err(err).Strs("to", msg.To).Str("subject", msg.Subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

func (s *SMTPSender) build(msg Message) (*email.Email, error) {
	if len(msg.To) == 0 {
		return nil, ErrNoRecipients
	}
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	return e, nil
}
