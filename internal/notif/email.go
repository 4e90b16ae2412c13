package notif

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"prestevent/internal/config"
)

const smtpTimeout = 30 * time.Second

// SMTPEmailService sends plain text mail. STARTTLS is used when the relay offers it;
// credentials are only sent when a username is configured.
type SMTPEmailService struct {
	cfg  config.EmailConfig
	send func(ctx context.Context, msg *mail.Msg) error
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	s := &SMTPEmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

func (s *SMTPEmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if strings.ContainsAny(to, "\r\n") {
		return fmt.Errorf("invalid recipient %q", to)
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromEmail); err != nil {
		return fmt.Errorf("invalid sender: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}
	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)

	return s.send(ctx, msg)
}

func (s *SMTPEmailService) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTimeout(smtpTimeout),
	}
	if s.cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.SMTPUsername),
			mail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
