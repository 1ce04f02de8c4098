package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fotolog/fotolog-backend/internal/auth"
	errs "github.com/fotolog/fotolog-backend/internal/pkg/errors"
	"github.com/fotolog/fotolog-backend/internal/platform/logger"
	"github.com/fotolog/fotolog-backend/internal/requestdata"
)

type AuthMiddleware struct {
	log      *logger.Logger
	provider auth.Provider
}

func NewAuthMiddleware(baseLog *logger.Logger, provider auth.Provider) *AuthMiddleware {
	middlewareLog := baseLog.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLog, provider: provider}
}

// RequireAuth resolves the bearer token into an identity and attaches it to
// the request context. A provider outage is reported as 503, not 401, so
// clients can tell a bad token apart from a backend that could not check.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		identity, err := am.provider.IdentityFromToken(c.Request.Context(), tokenString)
		if err != nil {
			if errors.Is(err, errs.ErrProviderUnavailable) {
				am.log.Error("identity provider unavailable", "error", err)
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
					"error": gin.H{"message": "identity provider unavailable", "code": "provider_unavailable"},
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing or invalid token", "code": "unauthorized"},
			})
			return
		}

		rd := &requestdata.RequestData{
			IdentityID:  identity.ID,
			Email:       identity.Email,
			TokenString: tokenString,
			UserAgent:   c.Request.UserAgent(),
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
