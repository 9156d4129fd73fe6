package ports

import (
	"context"

	"files-manager-api/internal/domain/user"
)

type AuthService interface {
	Connect(ctx context.Context, email, password string) (string, error)
	Disconnect(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (user.UUID, error)
}
