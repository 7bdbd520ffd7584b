// FILE: connect4/internal/server/service/mailer.go
package service

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends reminder mail through a plain SMTP relay. Auth is used
// only when a username is configured, so local relays work without
// credentials.
type SMTPMailer struct {
	Addr     string // host:port
	From     string
	Username string
	Password string
}

// Send delivers a single message.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.From, to, subject, body)

	var auth smtp.Auth
	if m.Username != "" {
		host := m.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.Username, m.Password, host)
	}

	if err := smtp.SendMail(m.Addr, auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp delivery failed: %w", err)
	}
	return nil
}
