package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/homeservices/internal/auth"
	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/httperr"
)

const ContextIdentity = "identity"

// tokenVerifier is satisfied by *auth.TokenManager.
type tokenVerifier interface {
	VerifyAccess(token string) (auth.Identity, error)
}

// AuthMiddleware resolves the bearer access token into an identity. A
// missing header is 401, anything that does not verify is 403.
func AuthMiddleware(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_token", "Access token required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Unauthorized(c, "missing_token", "Access token required")
			return
		}

		id, err := tokens.VerifyAccess(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Forbidden(c, "invalid_token", "Invalid or expired token")
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(allowed ...role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := Identity(c)
		if !ok {
			httperr.Unauthorized(c, "missing_token", "Authentication required")
			return
		}
		if !id.Role.In(allowed...) {
			httperr.Forbidden(c, "insufficient_permissions", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// Identity returns the caller attached by AuthMiddleware.
func Identity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
