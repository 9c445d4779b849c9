// Package mailer delivers transactional email. SMTPSender is used when
// SMTP is configured; LogSender only records what would have been sent.
package mailer

import (
	"context"
	"log/slog"
	"regexp"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", textOf(msg))
	m.AddAlternative("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}

	slog.InfoContext(ctx, "email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	slog.InfoContext(ctx, "smtp not configured, email not delivered",
		"to", msg.To,
		"subject", msg.Subject,
		"body", textOf(msg),
	)
	return nil
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func textOf(msg Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return tagPattern.ReplaceAllString(msg.HTML, "")
}
