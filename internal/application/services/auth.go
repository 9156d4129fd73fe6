package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/domain/user"
)

type AuthService struct {
	sessions       ports.SessionStore
	userRepository user.Repository
}

func NewAuthService(
	sessions ports.SessionStore,
	userRepository user.Repository,
) ports.AuthService {
	return &AuthService{
		sessions:       sessions,
		userRepository: userRepository,
	}
}

// Connect checks the credentials and opens a session for the user.
func (as *AuthService) Connect(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := as.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrInvalidCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return as.sessions.Create(ctx, u.UUID.String())
}

func (as *AuthService) Disconnect(ctx context.Context, token string) error {
	if _, err := as.Authenticate(ctx, token); err != nil {
		return err
	}
	return as.sessions.Revoke(ctx, token)
}

// Authenticate resolves token to its user id. Unknown, expired and revoked
// tokens yield ErrUnauthorized, store failures are returned as is.
func (as *AuthService) Authenticate(ctx context.Context, token string) (user.UUID, error) {
	userID, err := as.sessions.Validate(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if userID == "" {
		return uuid.Nil, ErrUnauthorized
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return id, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
