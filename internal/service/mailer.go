package service

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends best-effort invitation emails. The notification row is the
// source of truth; a send failure is only logged by the caller.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when no SMTP host is configured, which disables mail.
func NewMailer(host string, port int, user, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (m *Mailer) SendInvitation(email, boardTitle string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Board invitation")

	body := fmt.Sprintf(`
		<h3>You've been invited</h3>
		<p>You've been invited to collaborate on board <strong>%s</strong>.</p>
		<p>Log in to see it on your dashboard.</p>
	`, boardTitle)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send invitation email: %w", err)
	}
	return nil
}
