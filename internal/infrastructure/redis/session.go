package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	SessionTTL = 24 * time.Hour
	keyPrefix  = "auth_"
)

// ErrSessionStore marks a backend failure, as opposed to an unknown token.
var ErrSessionStore = errors.New("session store unavailable")

// Commands is the subset of the redis client the session store needs.
type Commands interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

type SessionStore struct {
	rdb      Commands
	newToken func() string
}

func NewSessionStore(rdb Commands) *SessionStore {
	return &SessionStore{
		rdb:      rdb,
		newToken: func() string { return uuid.NewString() },
	}
}

func key(token string) string { return keyPrefix + token }

// Create issues a random token that resolves to userID for SessionTTL.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	token := s.newToken()
	if err := s.rdb.Set(ctx, key(token), userID, SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	return token, nil
}

// Validate returns the user id for token, or "" when the token is unknown or expired.
func (s *SessionStore) Validate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}
	userID, err := s.rdb.Get(ctx, key(token)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	return userID, nil
}

// Revoke removes token. Revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionStore, err)
	}
	return nil
}
