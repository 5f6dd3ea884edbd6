package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/ppsociety/membership-backend/internal/config"
)

// Mailer sends transactional email
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay
type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

// MockMailer logs messages instead of sending them, for local development
// and tests
type MockMailer struct {
	logger *zap.Logger

	// Sent records messages for test assertions.
	Sent []SentMessage
}

// SentMessage is a message captured by the mock mailer
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// New creates a Mailer from configuration, selecting the mock implementation
// when Mail.Mock is set.
func New(cfg config.MailConfig, logger *zap.Logger) Mailer {
	if cfg.Mock {
		return &MockMailer{logger: logger}
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		auth: auth,
		from: cfg.From,
	}
}

// Send sends a plain-text message through the SMTP relay
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

// Send logs the message and records it
func (m *MockMailer) Send(to, subject, body string) error {
	m.Sent = append(m.Sent, SentMessage{To: to, Subject: subject, Body: body})
	if m.logger != nil {
		m.logger.Info("mock mail sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}
	return nil
}
