package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "blacklist:"

// ErrUnavailable is returned by Revoke when no Redis client is configured.
var ErrUnavailable = errors.New("token revocation is not configured")

// Store records revoked token ids until the tokens would have expired anyway.
type Store struct {
	client *redis.Client
	now    func() time.Time
}

// NewStore returns a Store backed by client. A nil client yields a store
// that reports nothing as revoked and refuses to revoke.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, now: time.Now}
}

// Enabled reports whether a Redis client backs the store.
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Revoke marks jti revoked until expiresAt. Tokens that already expired
// need no entry.
func (s *Store) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if !s.Enabled() {
		return ErrUnavailable
	}
	if jti == "" {
		return errors.New("token has no id")
	}
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, keyPrefix+jti, "1", ttl).Err()
}

// IsRevoked reports whether jti was revoked.
func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
