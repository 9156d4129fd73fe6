package ports

import (
	"context"

	"files-manager-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	CreateUser(ctx context.Context, email, password string) (*user.User, error)
}
