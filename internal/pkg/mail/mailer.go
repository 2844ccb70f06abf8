package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Mailer sends one plain-text message to a list of recipients. Transient
// transport failures are the caller's problem to log; there is no retry.
type Mailer interface {
	Send(ctx context.Context, from, subject, body string, to []string) error
}

// SMTPMailer talks to a real SMTP endpoint (host:port).
type SMTPMailer struct {
	addr     string
	username string
	password string
}

func NewSMTPMailer(addr, username, password string) *SMTPMailer {
	return &SMTPMailer{addr: addr, username: username, password: password}
}

func (m *SMTPMailer) Send(_ context.Context, from, subject, body string, to []string) error {
	if len(to) == 0 {
		return nil
	}

	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		from, strings.Join(to, ", "), subject, body)

	return smtp.SendMail(m.addr, auth, from, to, []byte(msg))
}

// DevConsoleMailer logs outbound mail instead of sending it.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) Send(_ context.Context, from, subject, body string, to []string) error {
	if m.enabled {
		log.Printf("[DEV-EMAIL] from=%s to=%s subject=%q\n%s", from, strings.Join(to, ","), subject, body)
	}
	return nil
}
