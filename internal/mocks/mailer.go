package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/userhub/internal/platform/mail"
)

// MockMailer implements mail.Sender and records every message it is given.
type MockMailer struct {
	mu       sync.Mutex
	messages []mail.PasswordResetMessage

	// Err, when set, is returned from every send after the message is recorded.
	Err error
}

var _ mail.Sender = (*MockMailer)(nil)

// SendPasswordReset implements mail.Sender.
func (m *MockMailer) SendPasswordReset(_ context.Context, msg mail.PasswordResetMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return m.Err
}

// Messages returns a copy of the recorded messages.
func (m *MockMailer) Messages() []mail.PasswordResetMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]mail.PasswordResetMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Last returns the most recent message and whether one exists.
func (m *MockMailer) Last() (mail.PasswordResetMessage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return mail.PasswordResetMessage{}, false
	}
	return m.messages[len(m.messages)-1], true
}
