package security

import (
	"time"

	"github.com/google/uuid"
)

const (
	TokenScopeAccess = "access"
)

// Maker issues and verifies access tokens.
type Maker interface {
	CreateToken(userID uuid.UUID, duration time.Duration, scope string) (string, *Payload, error)
	VerifyToken(token string) (*Payload, error)
}
