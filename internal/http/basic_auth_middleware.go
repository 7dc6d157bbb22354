package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"newsletter-api/internal/auth"
	"newsletter-api/internal/domain"
)

const authUserKey = "auth_user"

// BasicAuthMiddleware autentica requests con esquema Basic y deja la
// identidad en el contexto. Todo rechazo de autenticación responde 401
// con el mismo challenge, sin distinguir la causa.
func BasicAuthMiddleware(logger *zap.Logger, verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		creds, err := auth.ParseBasicAuth(c.GetHeader("Authorization"))
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := verifier.Verify(c.Request.Context(), creds.Username, creds.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				unauthorized(c)
				return
			}
			logger.Error("credential verification failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.Header("WWW-Authenticate", auth.BasicChallenge)
	c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	c.Abort()
}

// GetAuthenticatedUser obtiene la identidad autenticada desde el contexto.
func GetAuthenticatedUser(c *gin.Context) (domain.AuthenticatedUser, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return domain.AuthenticatedUser{}, false
	}
	user, ok := val.(domain.AuthenticatedUser)
	return user, ok
}
