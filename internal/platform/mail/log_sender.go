package mail

import (
	"context"
	"log/slog"

	"github.com/phrazzld/userhub/internal/platform/logger"
)

// LogSender writes outgoing messages to the log instead of delivering them.
// It is meant for local development, where the reset link can be copied
// from the log output.
type LogSender struct {
	logger *slog.Logger
}

var _ Sender = (*LogSender)(nil)

// NewLogSender creates a LogSender. A nil logger falls back to the context logger.
func NewLogSender(l *slog.Logger) *LogSender {
	return &LogSender{logger: l}
}

// SendPasswordReset implements Sender.
func (s *LogSender) SendPasswordReset(ctx context.Context, msg PasswordResetMessage) error {
	l := logger.FromContextOrDefault(ctx, s.logger)
	if l == nil {
		l = slog.Default()
	}

	l.Info("password reset email",
		slog.String("to", msg.To),
		slog.String("subject", passwordResetSubject),
		slog.String("link", msg.Link),
		slog.Time("expires_at", msg.ExpiresAt))
	return nil
}
