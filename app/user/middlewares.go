package user

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/app/api"
	"github.com/joefazee/betpoints/internal/security"
)

// AuthMiddleware verifies the bearer token, rejects revoked tokens and loads the
// caller's permissions for api.Can.
func AuthMiddleware(tokenMaker security.Maker, authService AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Vary", AuthorizationHeaderKey)

		authHeader := c.GetHeader(AuthorizationHeaderKey)
		if authHeader == "" {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) != 2 || fields[0] != AuthorizationTypeBearer {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil || payload.Scope != security.TokenScopeAccess {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		revoked, err := authService.IsRevoked(c.Request.Context(), payload.ID.String())
		if err != nil || revoked {
			api.UnauthorizedResponse(c)
			c.Abort()
			return
		}

		permissions, err := authService.GetUserPermissions(c.Request.Context(), payload.UserID)
		if err != nil {
			api.ForbiddenResponse(c, "Could not retrieve user permissions")
			c.Abort()
			return
		}

		c.Set(ContextUserID, payload.UserID)
		c.Set(ContextPermissions, permissions)
		ContextSetToken(c, payload)
		c.Next()
	}
}
