package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/userhub/internal/config"
	"gopkg.in/gomail.v2"
)

// dialer is the part of *gomail.Dialer the sender depends on.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers mail through an SMTP relay. Port 465 uses implicit
// TLS; other ports upgrade with STARTTLS when the server offers it.
type SMTPSender struct {
	dialer dialer
	from   string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender creates an SMTPSender from cfg.
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, errors.New("smtp host is required")
	}
	if cfg.From == "" {
		return nil, errors.New("sender address is required")
	}

	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	d.SSL = cfg.SMTPPort == 465

	return &SMTPSender{dialer: d, from: cfg.From}, nil
}

// SendPasswordReset implements Sender.
func (s *SMTPSender) SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rendered, err := renderPasswordReset(msg)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", rendered.Subject)
	m.SetBody("text/plain", rendered.Text)
	m.AddAlternative("text/html", rendered.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}
