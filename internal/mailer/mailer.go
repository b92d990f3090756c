// Package mailer delivers outbound notification email over SMTP.
//
// Delivery is always fire-and-forget from the caller's perspective: the
// service layer dispatches sends on background goroutines and logs failures
// without ever surfacing them to a request.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Config holds SMTP settings.
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Mailer sends HTML email through a configured SMTP relay. When disabled
// (the development default) sends are logged and dropped.
type Mailer struct {
	cfg    Config
	client *mail.Client
}

// New creates a mailer. The SMTP connection is established lazily per send.
func New(cfg Config) (*Mailer, error) {
	m := &Mailer{cfg: cfg}
	if !cfg.Enabled {
		return m, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	m.client = client
	return m, nil
}

// Send delivers a single HTML message.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if !m.cfg.Enabled {
		slog.Debug("email delivery disabled, dropping message",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
