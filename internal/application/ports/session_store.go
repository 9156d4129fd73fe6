package ports

import "context"

type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	// Validate returns "" for an unknown, expired or revoked token.
	Validate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
