package web

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio/internal/config"
)

// Mailer delivers contact form submissions.
type Mailer interface {
	Send(name, email, message string) error
}

// SMTPMailer sends contact messages through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg      config.SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for cfg.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

// Send composes the notification mail and hands it to the relay.
func (m *SMTPMailer) Send(name, email, message string) error {
	if !m.cfg.Configured() {
		return errors.New("SMTP credentials not configured")
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	msg := composeContactMail(m.cfg.User, m.cfg.To, name, email, message)
	if err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, msg); err != nil {
		return errors.Wrap(err, "sending contact email")
	}

	log.Printf("Email sent successfully from %s (%s)", name, email)
	return nil
}

var headerCleaner = strings.NewReplacer("\r", " ", "\n", " ")

func composeContactMail(from, to, name, email, message string) []byte {
	name = headerCleaner.Replace(name)
	email = headerCleaner.Replace(email)
	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
