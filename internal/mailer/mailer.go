// Package mailer delivers the HTML briefing shape over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends HTML mail through a single SMTP account.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       []string
}

// New creates a mailer. Recipients must be non-empty; auth fields may be
// empty for unauthenticated relays.
func New(host, port, username, password, from string, to []string) (*Mailer, error) {
	if host == "" || port == "" {
		return nil, fmt.Errorf("SMTP host and port are required")
	}
	if from == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	if len(to) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}, nil
}

// Send delivers one HTML message to all configured recipients.
func (m *Mailer) Send(subject, htmlBody string) error {
	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + strings.Join(m.to, ", ") + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, m.to, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
