package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/application/services"
)

const (
	HeaderToken = "X-Token"

	CtxUserID = "userID"
	CtxToken  = "token"
)

// AuthMiddleware resolves the X-Token header to a user id. Missing, unknown
// or expired tokens and session store failures all answer the same 401.
func AuthMiddleware(logger *zap.Logger, auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderToken)
		if token == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				logger.Error("Authenticate() error", zap.Error(err))
			}
			abortUnauthorized(c)
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxToken, token)

		c.Next()
	}
}

// OptionalAuthMiddleware sets the caller when the token resolves and
// otherwise lets the request through anonymously.
func OptionalAuthMiddleware(logger *zap.Logger, auth ports.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(HeaderToken); token != "" {
			userID, err := auth.Authenticate(c.Request.Context(), token)
			switch {
			case err == nil:
				c.Set(CtxUserID, userID)
				c.Set(CtxToken, token)
			case !errors.Is(err, services.ErrUnauthorized):
				logger.Error("Authenticate() error", zap.Error(err))
			}
		}

		c.Next()
	}
}

// UserID returns the caller set by one of the auth middlewares.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		gin.H{"error": "Unauthorized"},
	)
}
