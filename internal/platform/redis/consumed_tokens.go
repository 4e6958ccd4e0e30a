// Package redis keeps short-lived application state in Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/phrazzld/userhub/internal/service/auth"
)

const consumedTokenPrefix = "userhub:reset:consumed:"

// ConsumedTokens implements auth.ConsumedTokenStore with SET NX so that
// concurrent redemptions of one token across replicas cannot both win.
type ConsumedTokens struct {
	client goredis.UniversalClient
}

var _ auth.ConsumedTokenStore = (*ConsumedTokens)(nil)

// NewConsumedTokens wraps an existing client.
func NewConsumedTokens(client goredis.UniversalClient) *ConsumedTokens {
	return &ConsumedTokens{client: client}
}

// Consume implements auth.ConsumedTokenStore.
func (c *ConsumedTokens) Consume(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl < time.Second {
		ttl = time.Second
	}
	ok, err := c.client.SetNX(ctx, consumedTokenPrefix+tokenID, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record consumed token: %w", err)
	}
	return ok, nil
}

// Release implements auth.ConsumedTokenStore.
func (c *ConsumedTokens) Release(ctx context.Context, tokenID string) error {
	if err := c.client.Del(ctx, consumedTokenPrefix+tokenID).Err(); err != nil {
		return fmt.Errorf("failed to release consumed token: %w", err)
	}
	return nil
}

// Connect parses url, creates a client and verifies it with PING.
func Connect(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
