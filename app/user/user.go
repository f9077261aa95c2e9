package user

import (
	"github.com/gin-gonic/gin"
	"github.com/joefazee/betpoints/internal/security"
)

const (
	AuthorizationHeaderKey  = "Authorization"
	AuthorizationTypeBearer = "Bearer"
)

const (
	ContextUserID      = "userID"
	ContextPermissions = "permissions"
	ContextToken       = "context_token"
)

// ContextSetToken stores the verified token payload.
func ContextSetToken(c *gin.Context, payload *security.Payload) *gin.Context {
	c.Set(ContextToken, payload)
	return c
}

// TokenFromContext returns the payload stored by AuthMiddleware.
func TokenFromContext(c *gin.Context) (*security.Payload, bool) {
	v, ok := c.Get(ContextToken)
	if !ok {
		return nil, false
	}
	payload, ok := v.(*security.Payload)
	return payload, ok && payload != nil
}
