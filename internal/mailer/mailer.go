// Package mailer sends plain-text reply emails over SMTP.
package mailer

import (
	"time"

	"gopkg.in/mail.v2"
)

// Mailer holds two pre-configured SMTP dialers. Some providers block the
// STARTTLS port while leaving the implicit-SSL port open, so sends are
// attempted on port 587 first and fall back to port 465. Both failing is
// a delivery failure; there is no further retry.
type Mailer struct {
	dialers []*mail.Dialer
	sender  string
}

// New initializes the dialers with the given SMTP server settings. Each
// attempt is bounded by a 30-second timeout.
func New(host string, port, fallbackPort int, username, password, sender string) Mailer {
	primary := mail.NewDialer(host, port, username, password)
	primary.Timeout = 30 * time.Second
	primary.StartTLSPolicy = mail.MandatoryStartTLS
	fallback := mail.NewDialer(host, fallbackPort, username, password)
	fallback.Timeout = 30 * time.Second
	fallback.SSL = true
	return Mailer{
		dialers: []*mail.Dialer{primary, fallback},
		sender:  sender,
	}
}

// Send delivers a plain-text message, trying each transport configuration
// in order. The first success wins.
func (m Mailer) Send(recipient, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain; charset=UTF-8", body)
	var err error
	for _, dialer := range m.dialers {
		if err = dialer.DialAndSend(msg); err == nil {
			return nil
		}
	}
	return err
}
