package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/application/services"
	"files-manager-api/internal/interface/api/rest/dto/auth"
	"files-manager-api/internal/interface/api/rest/middleware"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.AuthService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
	}

	r.GET(RouteConnect, ac.ConnectHandler)
	r.GET(RouteDisconnect, middleware.AuthMiddleware(logger, authService), ac.DisconnectHandler)

	return ac
}

// ConnectHandler exchanges Basic credentials for a session token.
func (ac *AuthController) ConnectHandler(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := ac.authService.Connect(c.Request.Context(), email, password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			ac.logger.Error("Connect() error", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.JSON(http.StatusOK, auth.Token{Token: token})
}

func (ac *AuthController) DisconnectHandler(c *gin.Context) {
	err := ac.authService.Disconnect(c.Request.Context(), c.GetString(middleware.CtxToken))
	if err != nil {
		if !errors.Is(err, services.ErrUnauthorized) {
			ac.logger.Error("Disconnect() error", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Status(http.StatusNoContent)
}
