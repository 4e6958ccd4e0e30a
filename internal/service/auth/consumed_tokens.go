package auth

import (
	"context"
	"sync"
	"time"
)

// ConsumedTokenStore records redeemed reset token IDs so a token can be
// used only once. Entries only need to outlive the token itself.
type ConsumedTokenStore interface {
	// Consume marks tokenID as used for ttl. It returns false when the ID
	// had already been consumed.
	Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error)
	// Release forgets tokenID so it can be redeemed again. It is used when
	// the reset that consumed the token did not commit.
	Release(ctx context.Context, tokenID string) error
}

// MemoryConsumedTokens is an in-process ConsumedTokenStore for single-node
// deployments and tests. Expired entries are pruned on write.
type MemoryConsumedTokens struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

var _ ConsumedTokenStore = (*MemoryConsumedTokens)(nil)

// NewMemoryConsumedTokens creates an empty in-memory store.
func NewMemoryConsumedTokens() *MemoryConsumedTokens {
	return &MemoryConsumedTokens{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Consume implements ConsumedTokenStore.
func (m *MemoryConsumedTokens) Consume(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, expires := range m.entries {
		if !now.Before(expires) {
			delete(m.entries, id)
		}
	}

	if _, used := m.entries[tokenID]; used {
		return false, nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	m.entries[tokenID] = now.Add(ttl)
	return true, nil
}

// Release implements ConsumedTokenStore.
func (m *MemoryConsumedTokens) Release(_ context.Context, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, tokenID)
	return nil
}
