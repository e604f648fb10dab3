package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sgoap/sgoap-backend/internal/platform/config"
)

// Mailer dispatches notification emails. Delivery failure never rolls back the state
// change that triggered the email; callers surface it as a degraded success.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	host string
	port string
	from string
	auth smtp.Auth
}

// NewSMTPMailer builds a mailer from application config. It returns an error when no
// SMTP host is configured so callers can decide between failing and degrading.
func NewSMTPMailer(cfg *config.Config) (*SMTPMailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host not configured")
	}
	m := &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		from: cfg.SMTPFrom,
	}
	if cfg.SMTPUser != "" {
		m.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}
	return m, nil
}

// Send delivers a single plain-text message.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := m.host + ":" + m.port
	if err := smtp.SendMail(addr, m.auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", addr, err)
	}
	return nil
}
