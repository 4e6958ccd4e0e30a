package mail

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/userhub/internal/config"
)

// PasswordResetMessage is the data rendered into a password reset email.
type PasswordResetMessage struct {
	To        string
	Name      string
	Link      string
	ExpiresAt time.Time
}

// Sender dispatches transactional email. Implementations return only after
// the message has been handed to the transport, or with the failure.
type Sender interface {
	SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error
}

// NewSender builds the Sender selected by cfg.Driver.
func NewSender(cfg config.MailConfig, logger *slog.Logger) (Sender, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPSender(cfg)
	case "log":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
	}
}
