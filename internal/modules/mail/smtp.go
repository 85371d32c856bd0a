package mail

import (
	"context"

	"gopkg.in/gomail.v2"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer that delivers over SMTP.
func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg *Message) error {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(gm) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
