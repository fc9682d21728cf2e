package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevokedSessions remembers logged-out session tokens until they would have
// expired anyway.
// Key format: session:revoked:<token_id>
type RevokedSessions struct {
	client *redis.Client
}

// NewRevokedSessions creates a RevokedSessions store wrapping the given Redis client.
func NewRevokedSessions(client *redis.Client) *RevokedSessions {
	return &RevokedSessions{client: client}
}

// Revoke marks the token as logged out for ttl.
func (s *RevokedSessions) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was logged out.
func (s *RevokedSessions) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "session:revoked:" + tokenID
}
