package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/routeledger/routeledger/internal/shared"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps issued tokens in redis so a restart of the API server
// does not invalidate live sessions. Token expiry is enforced by the key
// TTL, never re-checked in Go.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// Issue mints a fresh token for the user.
func (s *SessionStore) Issue(ctx context.Context, userID int64) (Session, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, strconv.FormatInt(userID, 10), s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("auth: store session: %w", err)
	}
	return Session{Token: token, UserID: userID, ExpiresAt: time.Now().Add(s.ttl)}, nil
}

// Resolve returns the user id behind a token, or ErrInvalidCredentials when
// the token is unknown or expired.
func (s *SessionStore) Resolve(ctx context.Context, token string) (int64, error) {
	value, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, shared.ErrInvalidCredentials
		}
		return 0, fmt.Errorf("auth: resolve session: %w", err)
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, shared.ErrInvalidCredentials
	}
	return userID, nil
}

// Revoke deletes the token. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("auth: revoke session: %w", err)
	}
	return nil
}
